package handler

import (
	"errors"
	"net/http"

	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/alokyadav9045/travellr-sub002/internal/scheduler"
	"github.com/alokyadav9045/travellr-sub002/pkg/apiErrors"
	"github.com/alokyadav9045/travellr-sub002/pkg/log"
	"github.com/julienschmidt/httprouter"
)

// CronJobTypeAll executa todos os tipos configurados no agendamento
const CronJobTypeAll = "all"

// ReportScheduler é a parte do agendador exposta pela API
type ReportScheduler interface {
	TriggerManualSync(types ...domain.ReportType) error
	GetStatus() map[string]any
}

// RunCronJob dispara manualmente o envio agendado de relatórios
func RunCronJob(reportScheduler ReportScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		var types []domain.ReportType
		if cronType != CronJobTypeAll {
			reportType, err := domain.ParseReportType(cronType)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: all, revenue, booking, vendor, custom", nil)
				return
			}
			types = append(types, reportType)
		}

		if err := reportScheduler.TriggerManualSync(types...); err != nil {
			if errors.Is(err, scheduler.ErrRunInProgress) {
				apiErrors.WriteError(w, apiErrors.ErrJobRunning, "Envio de relatórios já em andamento", nil)
				return
			}
			logger.WithError(err).Error("cron: erro ao iniciar envio manual")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
			return
		}

		logger.WithField("type", cronType).Info("cron: envio manual iniciado")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status do envio agendado
func GetCronStatus(reportScheduler ReportScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"reports": reportScheduler.GetStatus(),
		})
	}
}
