package contact

import "errors"

// ContactDTO carries every writable contact field. Create and update both
// require the full set; complement is the only optional field. Latitude
// and longitude are pointers so "missing" and "zero" stay distinguishable.
type ContactDTO struct {
	Name         string   `json:"name"         validate:"required,max=255"`
	CPF          string   `json:"cpf"          validate:"required,max=14,cpf"`
	Phone        string   `json:"phone"        validate:"required,max=20"`
	CEP          string   `json:"cep"          validate:"required,max=9"`
	Street       string   `json:"street"       validate:"required,max=255"`
	Number       string   `json:"number"       validate:"required,max=10"`
	Complement   *string  `json:"complement"   validate:"omitempty,max=255"`
	Neighborhood string   `json:"neighborhood" validate:"required,max=255"`
	City         string   `json:"city"         validate:"required,max=255"`
	State        string   `json:"state"        validate:"required,len=2"`
	Latitude     *float64 `json:"latitude"     validate:"required"`
	Longitude    *float64 `json:"longitude"    validate:"required"`
}

// ErrNotFound covers both a missing id and another owner's contact; the
// two cases are indistinguishable to the caller.
var ErrNotFound = errors.New("contact not found")
