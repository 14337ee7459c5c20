package auth

import "errors"

type RegisterDTO struct {
	Name                 string `json:"name"                  validate:"required,max=255"`
	Email                string `json:"email"                 validate:"required,email,max=255"`
	Password             string `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}

type LoginDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordDTO struct {
	Email string `json:"email" validate:"required,email"`
}

type DeleteAccountDTO struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var (
	// errWrongCredentials deliberately covers both "unknown email" and
	// "wrong password" so the response never distinguishes them.
	errWrongCredentials = errors.New("auth: wrong credentials")
	errResetFailed      = errors.New("auth: password reset failed")
	// errAccountGone means a valid token points at a deleted account.
	errAccountGone = errors.New("auth: account no longer exists")
)
