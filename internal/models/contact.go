package models

// ContactModel is an address-book entry. The CPF is unique per owner, not
// globally: the composite index is what makes concurrent duplicate creates
// safe, the service-level pre-check only aggregates error messages.
type ContactModel struct {
	Base
	UserID       string  `json:"user_id"      gorm:"index;not null;uniqueIndex:idx_contacts_user_cpf"`
	Name         string  `json:"name"         gorm:"not null"`
	CPF          string  `json:"cpf"          gorm:"size:14;not null;uniqueIndex:idx_contacts_user_cpf"`
	Phone        string  `json:"phone"        gorm:"size:20;not null"`
	CEP          string  `json:"cep"          gorm:"size:9;not null"`
	Street       string  `json:"street"       gorm:"not null"`
	Number       string  `json:"number"       gorm:"size:10;not null"`
	Complement   *string `json:"complement"`
	Neighborhood string  `json:"neighborhood" gorm:"not null"`
	City         string  `json:"city"         gorm:"not null"`
	State        string  `json:"state"        gorm:"size:2;not null"`
	Latitude     float64 `json:"latitude"     gorm:"not null"`
	Longitude    float64 `json:"longitude"    gorm:"not null"`
}

func (ContactModel) TableName() string { return "contacts" }
