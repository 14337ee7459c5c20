package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agenda-br/core/internal/models"
	jwtpkg "github.com/agenda-br/core/internal/pkg/jwt"
	"github.com/agenda-br/core/internal/pkg/mail"
	"github.com/agenda-br/core/internal/pkg/session"
	"github.com/agenda-br/core/internal/pkg/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	uniqueEmailMessage = "O campo email já está em uso."
	resetTokenTTL      = 30 * time.Minute
	resetTokenPurpose  = "password_reset"
)

type Service struct {
	db       *gorm.DB
	sessions *session.Manager
	mailer   mail.Sender
}

func NewService(db *gorm.DB, sessions *session.Manager, mailer mail.Sender) *Service {
	return &Service{db: db, sessions: sessions, mailer: mailer}
}

// Register creates an account with a bcrypt-hashed password. Email
// uniqueness is backed by the unique index; the pre-check only shapes the
// aggregated error response.
func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, error) {
	errs := validation.Check(dto)
	if len(errs["email"]) == 0 {
		var count int64
		if err := s.db.Model(&models.UserModel{}).Where("email = ?", dto.Email).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			errs["email"] = append(errs["email"], uniqueEmailMessage)
		}
	}
	if len(errs) > 0 {
		return nil, &validation.Error{Fields: errs}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := models.UserModel{Name: dto.Name, Email: dto.Email, Password: string(hash)}
	if err := s.db.Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &validation.Error{Fields: map[string][]string{"email": {uniqueEmailMessage}}}
		}
		return nil, err
	}
	return &u, nil
}

// Login verifies credentials and mints a bearer token. Unknown email and
// wrong password are indistinguishable.
func (s *Service) Login(email, password string) (string, error) {
	u, err := s.findByCredentials(email, password)
	if err != nil {
		return "", err
	}
	return s.sessions.Issue(u.ID)
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// Me loads the authenticated account. A token can outlive its account
// (delete-account does not revoke issued tokens), so a missing row is a
// credential problem, not a server fault.
func (s *Service) Me(userID string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Where("id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errAccountGone
		}
		return nil, err
	}
	return &u, nil
}

// SendPasswordReset mails a short-lived reset token. Any failure,
// including an unknown email, collapses into errResetFailed so callers
// cannot probe which addresses are registered.
func (s *Service) SendPasswordReset(email string) error {
	var u models.UserModel
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		return errResetFailed
	}

	token, err := jwtpkg.SignPurpose(u.ID, resetTokenPurpose, resetTokenTTL)
	if err != nil {
		return errResetFailed
	}

	msg := mail.Message{
		To:      []string{u.Email},
		Subject: "Recuperação de senha",
		Body: fmt.Sprintf(
			"Olá %s,\n\nUse o token abaixo para redefinir sua senha. Ele expira em 30 minutos.\n\n%s\n",
			u.Name, token,
		),
	}
	if err := s.mailer.Send(msg); err != nil {
		return errResetFailed
	}
	return nil
}

// DeleteAccount verifies credentials and removes the account together
// with every contact it owns.
func (s *Service) DeleteAccount(email, password string) error {
	u, err := s.findByCredentials(email, password)
	if err != nil {
		return err
	}
	// Explicit cascade inside one transaction, so a partial failure never
	// leaves orphaned contacts.
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", u.ID).Delete(&models.ContactModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.UserModel{}, "id = ?", u.ID).Error
	})
}

func (s *Service) findByCredentials(email, password string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errWrongCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, errWrongCredentials
	}
	return &u, nil
}
