package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/alokyadav9045/travellr-sub002/internal/rendering"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/delivering"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/reporting"
	"github.com/alokyadav9045/travellr-sub002/pkg/apiErrors"
	"github.com/alokyadav9045/travellr-sub002/pkg/log"
	"github.com/alokyadav9045/travellr-sub002/pkg/middleware"
	"github.com/alokyadav9045/travellr-sub002/pkg/utils"
	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Renderers agrupa os formatos de saída servidos pela API
type Renderers struct {
	PDF  *rendering.PDFRenderer
	HTML *rendering.HTMLRenderer
	CSV  *rendering.CSVRenderer
}

// EmailReportRequest é o corpo de POST /v1/reports/:type/email
type EmailReportRequest struct {
	Recipients []string `json:"recipients"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	GroupBy    string   `json:"group_by"`
	VendorID   string   `json:"vendor_id"`
	Statuses   []string `json:"statuses"`
}

// GetReport retorna o relatório em JSON
func GetReport(reporter reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report, ok := generateFromQuery(w, r, reporter)
		if !ok {
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("reports: erro ao codificar resposta")
		}
	})
}

// GetReportPDF devolve o PDF como anexo, gerado em memória
func GetReportPDF(reporter reporting.Reporter, renderer *rendering.PDFRenderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report, ok := generateFromQuery(w, r, reporter)
		if !ok {
			return
		}

		var buf bytes.Buffer
		if err := renderer.Write(&buf, report); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("reports: erro ao gerar PDF")
			apiErrors.WriteError(w, apiErrors.ErrRenderFailed, "Erro ao gerar PDF", nil)
			return
		}

		writeAttachment(w, r, "application/pdf", fileName(report, "pdf"), buf.Bytes())
	})
}

func GetReportHTML(reporter reporting.Reporter, renderer *rendering.HTMLRenderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report, ok := generateFromQuery(w, r, reporter)
		if !ok {
			return
		}

		html, err := renderer.Render(report)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("reports: erro ao gerar HTML")
			apiErrors.WriteError(w, apiErrors.ErrRenderFailed, "Erro ao gerar HTML", nil)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write([]byte(html)); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("reports: erro ao escrever resposta")
		}
	})
}

func GetReportCSV(reporter reporting.Reporter, renderer *rendering.CSVRenderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report, ok := generateFromQuery(w, r, reporter)
		if !ok {
			return
		}

		var buf bytes.Buffer
		if err := renderer.Write(&buf, report); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("reports: erro ao gerar CSV")
			apiErrors.WriteError(w, apiErrors.ErrRenderFailed, "Erro ao gerar CSV", nil)
			return
		}

		writeAttachment(w, r, "text/csv; charset=utf-8", fileName(report, "csv"), buf.Bytes())
	})
}

// EmailReport gera o relatório e envia para os destinatários informados
func EmailReport(reporter reporting.Reporter, deliverer delivering.Deliverer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req EmailReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if len(req.Recipients) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRecipients, "Informe ao menos um destinatário", nil)
			return
		}

		reportType, filters, ok := prepare(w, r, req.StartDate, req.EndDate, req.GroupBy, req.VendorID, req.Statuses)
		if !ok {
			return
		}

		report, err := reporter.Generate(r.Context(), reportType, filters)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		record, err := deliverer.Deliver(r.Context(), report, req.Recipients)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		logger.WithFields(log.Fields{
			"report_id":   report.ID,
			"report_type": report.Type,
			"recipients":  strings.Join(record.Recipients, ","),
		}).Info("reports: relatório enviado por email")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(record); err != nil {
			logger.WithError(err).Error("reports: erro ao codificar resposta")
		}
	})
}

func generateFromQuery(w http.ResponseWriter, r *http.Request, reporter reporting.Reporter) (*domain.Report, bool) {
	query := r.URL.Query()

	var statuses []string
	if raw := query.Get("statuses"); raw != "" {
		statuses = strings.Split(raw, ",")
	}

	reportType, filters, ok := prepare(w, r,
		query.Get("start_date"),
		query.Get("end_date"),
		query.Get("group_by"),
		query.Get("vendor_id"),
		statuses,
	)
	if !ok {
		return nil, false
	}

	report, err := reporter.Generate(r.Context(), reportType, filters)
	if err != nil {
		writeServiceError(w, r, err)
		return nil, false
	}

	return report, true
}

// prepare lê o tipo da URL, monta os filtros e aplica o escopo do fornecedor
func prepare(
	w http.ResponseWriter,
	r *http.Request,
	startDate, endDate, groupBy, vendorID string,
	statuses []string,
) (domain.ReportType, reporting.ReportFilters, bool) {
	reportType, err := domain.ParseReportType(httprouter.ParamsFromContext(r.Context()).ByName("type"))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrUnknownReportType, err.Error(), nil)
		return "", reporting.ReportFilters{}, false
	}

	start, end, err := utils.ParseDateRange(startDate, endDate)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, err.Error(), nil)
		return "", reporting.ReportFilters{}, false
	}

	filters := reporting.ReportFilters{
		Period:   domain.NewPeriod(start, end),
		GroupBy:  domain.GroupBy(strings.TrimSpace(groupBy)),
		VendorID: strings.TrimSpace(vendorID),
	}
	for _, s := range statuses {
		if s = strings.TrimSpace(s); s != "" {
			filters.Statuses = append(filters.Statuses, domain.BookingStatus(s))
		}
	}

	claims, ok := middleware.GetClaims(r.Context())
	if ok && claims.IsVendor() {
		if reportType != domain.ReportTypeVendor {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Fornecedores só podem acessar o relatório de fornecedores", nil)
			return "", reporting.ReportFilters{}, false
		}
		if claims.VendorID == "" {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, reporting.ErrVendorScopeMissing.Error(), nil)
			return "", reporting.ReportFilters{}, false
		}
		filters.VendorID = claims.VendorID
	}

	return reportType, filters, true
}

// writeServiceError traduz os erros tipados dos casos de uso em respostas da API
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.ForContext(r.Context()).WithError(err)

	var reportErr *reporting.ReportError
	if errors.As(err, &reportErr) {
		if reporting.IsValidationError(err) {
			logger.Warn("reports: parâmetros inválidos")
		} else {
			logger.Error("reports: erro ao gerar relatório")
		}
		apiErrors.WriteError(w, reportErr.Code, reportErr.Message(), nil)
		return
	}

	var deliveryErr *delivering.DeliveryError
	if errors.As(err, &deliveryErr) {
		logger.Error("reports: erro ao enviar relatório")
		apiErrors.WriteError(w, deliveryErr.Code, deliveryErr.Error(), nil)
		return
	}

	logger.Error("reports: erro inesperado")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno", nil)
}

func writeAttachment(w http.ResponseWriter, r *http.Request, contentType, name string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", fmt.Sprint(len(body)))

	if _, err := w.Write(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("reports: erro ao escrever anexo")
	}
}

func fileName(report *domain.Report, ext string) string {
	return strings.TrimSuffix(delivering.AttachmentName(report), ".pdf") + "." + ext
}
