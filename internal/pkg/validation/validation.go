// Package validation runs declarative field rules and aggregates every
// violation into a field→reasons map, evaluated fully before any
// rejection.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/agenda-br/core/internal/pkg/cpf"
	"github.com/go-playground/validator/v10"
)

// Error aggregates every violated field at once.
type Error struct {
	Fields map[string][]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields under their json names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return cpf.Valid(fl.Field().String())
	})
	return v
}

// Check validates s and returns field→reasons; empty map means valid.
func Check(s interface{}) map[string][]string {
	errs := map[string][]string{}
	err := validate.Struct(s)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_"] = []string{err.Error()}
		return errs
	}
	for _, fe := range verrs {
		field := fe.Field()
		errs[field] = append(errs[field], message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("O campo %s é obrigatório.", fe.Field())
	case "email":
		return fmt.Sprintf("O campo %s deve ser um e-mail válido.", fe.Field())
	case "max":
		return fmt.Sprintf("O campo %s não pode ter mais que %s caracteres.", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("O campo %s deve ter no mínimo %s caracteres.", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("O campo %s deve ter %s caracteres.", fe.Field(), fe.Param())
	case "eqfield":
		return fmt.Sprintf("A confirmação do campo %s não confere.", fe.Field())
	case "cpf":
		return "O campo cpf não é um CPF válido."
	default:
		return fmt.Sprintf("O campo %s é inválido.", fe.Field())
	}
}

// BindErrorFields translates a JSON decode failure into the same
// field-keyed shape, so a non-numeric latitude reads as a validation
// problem rather than a bare 400. Returns nil for undecodable bodies.
func BindErrorFields(err error) map[string][]string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := typeErr.Field
		reason := fmt.Sprintf("O campo %s é inválido.", field)
		if typeErr.Type != nil && typeErr.Type.Kind() == reflect.Float64 {
			reason = fmt.Sprintf("O campo %s deve ser um número.", field)
		}
		return map[string][]string{field: {reason}}
	}
	return nil
}
