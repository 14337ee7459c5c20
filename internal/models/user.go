package models

// UserModel is an account that owns contacts. Deleting a user cascades to
// its contacts.
type UserModel struct {
	Base
	Name     string         `json:"name"  gorm:"not null"`
	Email    string         `json:"email" gorm:"uniqueIndex;not null"`
	Password string         `json:"-"     gorm:"not null"`
	Contacts []ContactModel `json:"-"     gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (UserModel) TableName() string { return "users" }
