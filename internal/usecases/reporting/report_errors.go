package reporting

import (
	"errors"
	"fmt"

	"github.com/alokyadav9045/travellr-sub002/pkg/apiErrors"
)

// Erros específicos para geração de relatórios
var (
	// Erros de validação
	ErrInvalidPeriod      = errors.New("invalid report period")
	ErrInvalidGroupBy     = errors.New("invalid group_by for report type")
	ErrInvalidStatus      = errors.New("invalid booking status")
	ErrUnknownReportType  = errors.New("unknown report type")
	ErrVendorScopeMissing = errors.New("vendor users must have a vendor id")

	// Erros de acesso a dados
	ErrAggregationFailed = errors.New("aggregation query failed")

	ErrGenerateID = errors.New("error generating report id")
)

// ReportError carrega o código de API e a causa original
type ReportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
	Cause   error  // Erro de infraestrutura, quando houver
}

func (e *ReportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message(), e.Cause.Error())
	}
	return e.Message()
}

// Message é o texto devolvido ao cliente da API, sem a causa de infraestrutura
func (e *ReportError) Message() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReportError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

func NewReportError(err error, code string, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func validationError(err error, details string) *ReportError {
	code := apiErrors.ErrInvalidRequest
	switch {
	case errors.Is(err, ErrInvalidPeriod):
		code = apiErrors.ErrInvalidPeriod
	case errors.Is(err, ErrInvalidGroupBy):
		code = apiErrors.ErrInvalidGroupBy
	case errors.Is(err, ErrUnknownReportType):
		code = apiErrors.ErrUnknownReportType
	case errors.Is(err, ErrInvalidStatus):
		code = apiErrors.ErrInvalidFormat
	}
	return NewReportError(err, code, details)
}

func aggregationError(cause error) *ReportError {
	return &ReportError{
		Err:   ErrAggregationFailed,
		Code:  apiErrors.ErrDatabaseOperation,
		Cause: cause,
	}
}

// IsValidationError indica se o erro decorre de parâmetros inválidos
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidGroupBy) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrUnknownReportType) ||
		errors.Is(err, ErrVendorScopeMissing)
}
