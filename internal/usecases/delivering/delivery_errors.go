package delivering

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRecipients = errors.New("invalid recipients")
	ErrRenderFailed      = errors.New("error rendering report")
	ErrSendFailed        = errors.New("error sending report email")
)

// DeliveryError é um erro com contexto adicional para envios
type DeliveryError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
	Cause   error
}

func (e *DeliveryError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *DeliveryError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

func NewDeliveryError(err error, code string, cause error) *DeliveryError {
	deliveryErr := &DeliveryError{Err: err, Code: code, Cause: cause}
	if cause != nil {
		deliveryErr.Details = cause.Error()
	}
	return deliveryErr
}
