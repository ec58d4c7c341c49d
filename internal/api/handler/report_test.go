package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alokyadav9045/travellr-sub002/internal/api/handler/router"
	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/alokyadav9045/travellr-sub002/internal/rendering"
	"github.com/alokyadav9045/travellr-sub002/internal/scheduler"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/delivering"
	delivermocks "github.com/alokyadav9045/travellr-sub002/internal/usecases/delivering/mocks"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/reporting"
	reportmocks "github.com/alokyadav9045/travellr-sub002/internal/usecases/reporting/mocks"
	"github.com/alokyadav9045/travellr-sub002/pkg/apiErrors"
	"github.com/alokyadav9045/travellr-sub002/pkg/log"
	"github.com/alokyadav9045/travellr-sub002/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	adminClaims  = &domain.Claims{UserID: 1, UserRoleID: domain.RoleAdmin}
	vendorClaims = &domain.Claims{UserID: 7, UserRoleID: domain.RoleVendor, VendorID: "v-42"}
	marchPeriod  = domain.Period{
		Start: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
)

func revenueReport() *domain.Report {
	return &domain.Report{
		ID:          "rep123",
		Type:        domain.ReportTypeRevenue,
		Title:       domain.ReportTypeRevenue.Title(),
		Period:      marchPeriod,
		GeneratedAt: time.Date(2024, time.April, 1, 8, 0, 0, 0, time.UTC),
		Summary: domain.Summary{
			{Key: "totalRevenue", Value: 2500},
			{Key: "totalBookings", Value: 3},
		},
		Data: &domain.RevenueData{
			GroupBy: domain.GroupByDay,
			Rows: []domain.AggregateRow{
				{Key: "2024-03-01", Count: 2, TotalAmount: 2000, AverageAmount: 1000},
				{Key: "2024-03-02", Count: 1, TotalAmount: 500, AverageAmount: 500},
			},
		},
	}
}

type testEnv struct {
	handler   http.Handler
	reporter  *reportmocks.MockReporter
	deliverer *delivermocks.MockDeliverer
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	reporter := reportmocks.NewMockReporter(ctrl)
	deliverer := delivermocks.NewMockDeliverer(ctrl)

	formatter := rendering.NewFormatter("$", 1000)
	htmlRenderer, err := rendering.NewHTMLRenderer(formatter)
	require.NoError(t, err)

	rt := router.New(router.WithRoutes(Reports(reporter, deliverer, Renderers{
		PDF:  rendering.NewPDFRenderer(formatter, t.TempDir()),
		HTML: htmlRenderer,
		CSV:  rendering.NewCSVRenderer(formatter),
	})...))

	return testEnv{handler: rt, reporter: reporter, deliverer: deliverer}
}

func serve(h http.Handler, claims *domain.Claims, method, target string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if claims != nil {
		req = req.WithContext(middleware.WithClaims(req.Context(), claims))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestGetReport(t *testing.T) {
	env := newTestEnv(t)

	env.reporter.EXPECT().
		Generate(gomock.Any(), domain.ReportTypeRevenue, reporting.ReportFilters{
			Period:   marchPeriod,
			GroupBy:  domain.GroupByWeek,
			Statuses: []domain.BookingStatus{domain.BookingStatusConfirmed, domain.BookingStatusCompleted},
		}).
		Return(revenueReport(), nil)

	rec := serve(env.handler, adminClaims, http.MethodGet,
		"/v1/reports/revenue?start_date=2024-03-01&end_date=2024-03-31&group_by=week&statuses=confirmed,%20completed", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "rep123", body["id"])
	assert.Equal(t, "revenue", body["type"])
}

func TestGetReportValidation(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		setup    func(m *reportmocks.MockReporter)
		wantCode string
		status   int
	}{
		{
			name:     "tipo desconhecido",
			target:   "/v1/reports/inventory?start_date=2024-03-01&end_date=2024-03-31",
			setup:    func(m *reportmocks.MockReporter) {},
			wantCode: apiErrors.ErrUnknownReportType,
			status:   http.StatusNotFound,
		},
		{
			name:     "datas ausentes",
			target:   "/v1/reports/revenue?start_date=2024-03-01",
			setup:    func(m *reportmocks.MockReporter) {},
			wantCode: apiErrors.ErrInvalidPeriod,
			status:   http.StatusBadRequest,
		},
		{
			name:     "data mal formatada",
			target:   "/v1/reports/revenue?start_date=01/03/2024&end_date=2024-03-31",
			setup:    func(m *reportmocks.MockReporter) {},
			wantCode: apiErrors.ErrInvalidPeriod,
			status:   http.StatusBadRequest,
		},
		{
			name:   "group_by rejeitado pelo serviço",
			target: "/v1/reports/revenue?start_date=2024-03-01&end_date=2024-03-31&group_by=vendor",
			setup: func(m *reportmocks.MockReporter) {
				m.EXPECT().
					Generate(gomock.Any(), domain.ReportTypeRevenue, gomock.Any()).
					Return(nil, reporting.NewReportError(reporting.ErrInvalidGroupBy, apiErrors.ErrInvalidGroupBy, `group_by "vendor"`))
			},
			wantCode: apiErrors.ErrInvalidGroupBy,
			status:   http.StatusBadRequest,
		},
		{
			name:   "falha no banco",
			target: "/v1/reports/booking?start_date=2024-03-01&end_date=2024-03-31",
			setup: func(m *reportmocks.MockReporter) {
				m.EXPECT().
					Generate(gomock.Any(), domain.ReportTypeBooking, gomock.Any()).
					Return(nil, &reporting.ReportError{
						Err:   reporting.ErrAggregationFailed,
						Code:  apiErrors.ErrDatabaseOperation,
						Cause: errors.New("connection refused"),
					})
			},
			wantCode: apiErrors.ErrDatabaseOperation,
			status:   http.StatusInternalServerError,
		},
		{
			name:   "erro sem tipo",
			target: "/v1/reports/custom?start_date=2024-03-01&end_date=2024-03-31",
			setup: func(m *reportmocks.MockReporter) {
				m.EXPECT().Generate(gomock.Any(), domain.ReportTypeCustom, gomock.Any()).Return(nil, errors.New("boom"))
			},
			wantCode: apiErrors.ErrInternalServer,
			status:   http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.setup(env.reporter)

			rec := serve(env.handler, adminClaims, http.MethodGet, tt.target, "")

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.wantCode, decodeAPIError(t, rec).Code)
		})
	}
}

func TestGetReportHidesDatabaseCause(t *testing.T) {
	env := newTestEnv(t)
	env.reporter.EXPECT().
		Generate(gomock.Any(), domain.ReportTypeBooking, gomock.Any()).
		Return(nil, &reporting.ReportError{
			Err:   reporting.ErrAggregationFailed,
			Code:  apiErrors.ErrDatabaseOperation,
			Cause: errors.New(`pq: relation "bookings" does not exist`),
		})

	rec := serve(env.handler, adminClaims, http.MethodGet,
		"/v1/reports/booking?start_date=2024-03-01&end_date=2024-03-31", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	apiErr := decodeAPIError(t, rec)
	assert.Equal(t, apiErrors.ErrDatabaseOperation, apiErr.Code)
	assert.Equal(t, reporting.ErrAggregationFailed.Error(), apiErr.Message)
	assert.NotContains(t, rec.Body.String(), "relation")
}

func TestVendorScope(t *testing.T) {
	t.Run("relatório de fornecedor restrito ao próprio id", func(t *testing.T) {
		env := newTestEnv(t)
		env.reporter.EXPECT().
			Generate(gomock.Any(), domain.ReportTypeVendor, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ domain.ReportType, f reporting.ReportFilters) (*domain.Report, error) {
				assert.Equal(t, "v-42", f.VendorID)
				return &domain.Report{ID: "v", Type: domain.ReportTypeVendor, Data: &domain.VendorData{}}, nil
			})

		rec := serve(env.handler, vendorClaims, http.MethodGet,
			"/v1/reports/vendor?start_date=2024-03-01&end_date=2024-03-31&vendor_id=v-99", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("outros relatórios negados", func(t *testing.T) {
		env := newTestEnv(t)

		rec := serve(env.handler, vendorClaims, http.MethodGet,
			"/v1/reports/revenue?start_date=2024-03-01&end_date=2024-03-31", "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, apiErrors.ErrInsufficientPrivilege, decodeAPIError(t, rec).Code)
	})

	t.Run("fornecedor sem id", func(t *testing.T) {
		env := newTestEnv(t)

		rec := serve(env.handler, &domain.Claims{UserID: 8, UserRoleID: domain.RoleVendor}, http.MethodGet,
			"/v1/reports/vendor?start_date=2024-03-01&end_date=2024-03-31", "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("fornecedor não envia email", func(t *testing.T) {
		env := newTestEnv(t)

		rec := serve(env.handler, vendorClaims, http.MethodPost, "/v1/reports/vendor/email",
			`{"recipients":["a@travellr.com"],"start_date":"2024-03-01","end_date":"2024-03-31"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestGetReportDocuments(t *testing.T) {
	const query = "?start_date=2024-03-01&end_date=2024-03-31"

	t.Run("pdf", func(t *testing.T) {
		env := newTestEnv(t)
		env.reporter.EXPECT().Generate(gomock.Any(), domain.ReportTypeRevenue, gomock.Any()).Return(revenueReport(), nil)

		rec := serve(env.handler, adminClaims, http.MethodGet, "/v1/reports/revenue/pdf"+query, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="revenue-report_2024-03-01_2024-03-31.pdf"`, rec.Header().Get("Content-Disposition"))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
	})

	t.Run("html", func(t *testing.T) {
		env := newTestEnv(t)
		env.reporter.EXPECT().Generate(gomock.Any(), domain.ReportTypeRevenue, gomock.Any()).Return(revenueReport(), nil)

		rec := serve(env.handler, adminClaims, http.MethodGet, "/v1/reports/revenue/html"+query, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "Revenue Report")
		assert.Contains(t, rec.Body.String(), "$2,500.00")
	})

	t.Run("csv", func(t *testing.T) {
		env := newTestEnv(t)
		env.reporter.EXPECT().Generate(gomock.Any(), domain.ReportTypeRevenue, gomock.Any()).Return(revenueReport(), nil)

		rec := serve(env.handler, adminClaims, http.MethodGet, "/v1/reports/revenue/csv"+query, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "revenue-report_2024-03-01_2024-03-31.csv")
		assert.Contains(t, rec.Body.String(), "2024-03-01")
	})
}

func TestEmailReport(t *testing.T) {
	const body = `{"recipients":["ops@travellr.com"],"start_date":"2024-03-01","end_date":"2024-03-31","group_by":"month"}`

	t.Run("envia e retorna o registro", func(t *testing.T) {
		env := newTestEnv(t)
		report := revenueReport()
		sentAt := time.Date(2024, time.April, 1, 9, 0, 0, 0, time.UTC)

		env.reporter.EXPECT().
			Generate(gomock.Any(), domain.ReportTypeRevenue, reporting.ReportFilters{Period: marchPeriod, GroupBy: domain.GroupByMonth}).
			Return(report, nil)
		env.deliverer.EXPECT().
			Deliver(gomock.Any(), report, []string{"ops@travellr.com"}).
			Return(&domain.DeliveryRecord{
				ReportID:   report.ID,
				ReportType: report.Type,
				Recipients: []string{"ops@travellr.com"},
				MessageID:  "msg-1@travellr.com",
				SentAt:     &sentAt,
			}, nil)

		rec := serve(env.handler, adminClaims, http.MethodPost, "/v1/reports/revenue/email", body)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "msg-1@travellr.com")
	})

	t.Run("sem destinatários", func(t *testing.T) {
		env := newTestEnv(t)

		rec := serve(env.handler, adminClaims, http.MethodPost, "/v1/reports/revenue/email",
			`{"recipients":[],"start_date":"2024-03-01","end_date":"2024-03-31"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidRecipients, decodeAPIError(t, rec).Code)
	})

	t.Run("json inválido", func(t *testing.T) {
		env := newTestEnv(t)

		rec := serve(env.handler, adminClaims, http.MethodPost, "/v1/reports/revenue/email", "{")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeAPIError(t, rec).Code)
	})

	t.Run("falha no provedor", func(t *testing.T) {
		env := newTestEnv(t)
		env.reporter.EXPECT().Generate(gomock.Any(), domain.ReportTypeRevenue, gomock.Any()).Return(revenueReport(), nil)
		env.deliverer.EXPECT().
			Deliver(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&domain.DeliveryRecord{Error: "550 rejected"},
				delivering.NewDeliveryError(delivering.ErrSendFailed, apiErrors.ErrExternalService, errors.New("550 rejected")))

		rec := serve(env.handler, adminClaims, http.MethodPost, "/v1/reports/revenue/email", body)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, apiErrors.ErrExternalService, decodeAPIError(t, rec).Code)
	})
}

type fakeScheduler struct {
	triggered []domain.ReportType
	err       error
}

func (f *fakeScheduler) TriggerManualSync(types ...domain.ReportType) error {
	f.triggered = types
	return f.err
}

func (f *fakeScheduler) GetStatus() map[string]any {
	return map[string]any{"running": false, "cron": "0 7 * * 1"}
}

func TestCronJobs(t *testing.T) {
	log.SetupTestLogger()

	t.Run("dispara um tipo", func(t *testing.T) {
		s := &fakeScheduler{}
		rt := router.New(router.WithRoutes(CronJobs(s)...))

		rec := serve(rt, adminClaims, http.MethodPost, "/v1/cron/vendor/run", "")

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, []domain.ReportType{domain.ReportTypeVendor}, s.triggered)
	})

	t.Run("todos os tipos", func(t *testing.T) {
		s := &fakeScheduler{}
		rt := router.New(router.WithRoutes(CronJobs(s)...))

		rec := serve(rt, adminClaims, http.MethodPost, "/v1/cron/all/run", "")

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Empty(t, s.triggered)
	})

	t.Run("tipo inválido", func(t *testing.T) {
		rt := router.New(router.WithRoutes(CronJobs(&fakeScheduler{})...))

		rec := serve(rt, adminClaims, http.MethodPost, "/v1/cron/meta/run", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("execução em andamento", func(t *testing.T) {
		rt := router.New(router.WithRoutes(CronJobs(&fakeScheduler{err: scheduler.ErrRunInProgress})...))

		rec := serve(rt, adminClaims, http.MethodPost, "/v1/cron/all/run", "")

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, apiErrors.ErrJobRunning, decodeAPIError(t, rec).Code)
	})

	t.Run("status apenas para admin", func(t *testing.T) {
		rt := router.New(router.WithRoutes(CronJobs(&fakeScheduler{})...))

		rec := serve(rt, vendorClaims, http.MethodGet, "/v1/cron/status", "")
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = serve(rt, adminClaims, http.MethodGet, "/v1/cron/status", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"cron":"0 7 * * 1"`)
	})
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthcheck(t *testing.T) {
	log.SetupTestLogger()

	rec := serve(HealthcheckHandler(pingerFunc(func(context.Context) error { return nil })), nil, http.MethodGet, "/healthcheck", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(HealthcheckHandler(pingerFunc(func(context.Context) error { return errors.New("down") })), nil, http.MethodGet, "/healthcheck", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouterNotFound(t *testing.T) {
	rt := router.New()

	rec := serve(rt, nil, http.MethodGet, "/v1/unknown", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrNotFound, decodeAPIError(t, rec).Code)
}
