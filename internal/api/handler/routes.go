package handler

import (
	"net/http"

	"github.com/alokyadav9045/travellr-sub002/internal/api/handler/router"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/delivering"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/reporting"
	"github.com/alokyadav9045/travellr-sub002/pkg/middleware"
)

// HealthcheckPath fica fora da autenticação
const HealthcheckPath = "/healthcheck"

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    HealthcheckPath,
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

// Reports expõe os relatórios; fornecedores são restringidos no handler
func Reports(reporter reporting.Reporter, deliverer delivering.Deliverer, renderers Renderers) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/reports/:type",
			Method:      http.MethodGet,
			Handler:     GetReport(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/:type/pdf",
			Method:      http.MethodGet,
			Handler:     GetReportPDF(reporter, renderers.PDF),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/:type/html",
			Method:      http.MethodGet,
			Handler:     GetReportHTML(reporter, renderers.HTML),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/:type/csv",
			Method:      http.MethodGet,
			Handler:     GetReportCSV(reporter, renderers.CSV),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/:type/email",
			Method:      http.MethodPost,
			Handler:     EmailReport(reporter, deliverer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrStaff()},
		},
	}
}

func CronJobs(reportScheduler ReportScheduler) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(reportScheduler),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(reportScheduler),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
