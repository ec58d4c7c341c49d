package authenticating

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrInvalidAPIKey      = errors.New("invalid api key")
	ErrAPIKeyNotEnabled   = errors.New("service api key not configured")
	ErrMissingSecretKey   = errors.New("auth secret key not configured")
	ErrInvalidRole        = errors.New("invalid role")
	ErrVendorIDRequired   = errors.New("vendor role requires a vendor id")
	ErrTokenSigningFailed = errors.New("error signing token")
)

// AuthError é um erro com contexto adicional para autenticação
type AuthError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func NewAuthError(err error, code string, details string) *AuthError {
	return &AuthError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
