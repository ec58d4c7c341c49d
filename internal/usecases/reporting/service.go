package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/alokyadav9045/travellr-sub002/infrastructure/repository"
	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/alokyadav9045/travellr-sub002/pkg/apiErrors"
	"github.com/alokyadav9045/travellr-sub002/pkg/log"
	"github.com/alokyadav9045/travellr-sub002/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// ReportFilters são os parâmetros aceitos por todos os relatórios
type ReportFilters struct {
	Period   domain.Period
	GroupBy  domain.GroupBy
	VendorID string
	Statuses []domain.BookingStatus
}

// Reporter gera relatórios sob demanda; nada é persistido
type Reporter interface {
	Generate(ctx context.Context, reportType domain.ReportType, filters ReportFilters) (*domain.Report, error)
	GenerateRevenueReport(ctx context.Context, filters ReportFilters) (*domain.Report, error)
	GenerateBookingReport(ctx context.Context, filters ReportFilters) (*domain.Report, error)
	GenerateVendorReport(ctx context.Context, filters ReportFilters) (*domain.Report, error)
	GenerateCustomReport(ctx context.Context, filters ReportFilters) (*domain.Report, error)
}

type ReportService struct {
	repository repository.BookingAggregateRepository
	now        func() time.Time
}

func NewReportService(bookingAggregateRepository repository.BookingAggregateRepository) *ReportService {
	return &ReportService{
		repository: bookingAggregateRepository,
		now:        time.Now,
	}
}

func (s *ReportService) Generate(ctx context.Context, reportType domain.ReportType, filters ReportFilters) (*domain.Report, error) {
	switch reportType {
	case domain.ReportTypeRevenue:
		return s.GenerateRevenueReport(ctx, filters)
	case domain.ReportTypeBooking:
		return s.GenerateBookingReport(ctx, filters)
	case domain.ReportTypeVendor:
		return s.GenerateVendorReport(ctx, filters)
	case domain.ReportTypeCustom:
		return s.GenerateCustomReport(ctx, filters)
	}
	return nil, validationError(ErrUnknownReportType, string(reportType))
}

func (s *ReportService) GenerateRevenueReport(ctx context.Context, filters ReportFilters) (*domain.Report, error) {
	groupBy, err := validate(filters, domain.GroupByDay, true)
	if err != nil {
		return nil, err
	}

	logger := reportLogger(ctx, domain.ReportTypeRevenue, filters)
	logger.Info("Gerando relatório de receita")

	rows, err := s.repository.Aggregate(ctx, domain.AggregateQuery{
		Period:   filters.Period,
		GroupBy:  groupBy,
		Statuses: domain.RevenueStatuses,
		VendorID: filters.VendorID,
	})
	if err != nil {
		logger.WithError(err).Error("Erro na agregação de receita")
		return nil, aggregationError(err)
	}

	return s.build(filters.Period, &domain.RevenueData{GroupBy: groupBy, Rows: rows})
}

// GenerateBookingReport executa as três agregações em paralelo e junta o resultado
func (s *ReportService) GenerateBookingReport(ctx context.Context, filters ReportFilters) (*domain.Report, error) {
	trendGroupBy, err := validate(filters, domain.GroupByDay, true)
	if err != nil {
		return nil, err
	}

	logger := reportLogger(ctx, domain.ReportTypeBooking, filters)
	logger.Info("Gerando relatório de reservas")

	data := &domain.BookingData{TrendGroupBy: trendGroupBy}
	query := func(groupBy domain.GroupBy) domain.AggregateQuery {
		return domain.AggregateQuery{
			Period:   filters.Period,
			GroupBy:  groupBy,
			Statuses: filters.Statuses,
			VendorID: filters.VendorID,
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.repository.Aggregate(gctx, query(domain.GroupByStatus))
		data.ByStatus = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.repository.Aggregate(gctx, query(trendGroupBy))
		data.Trend = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.repository.Aggregate(gctx, query(domain.GroupByPromoCode))
		data.ByPromoCode = rows
		return err
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("Erro na agregação de reservas")
		return nil, aggregationError(err)
	}

	return s.build(filters.Period, data)
}

func (s *ReportService) GenerateVendorReport(ctx context.Context, filters ReportFilters) (*domain.Report, error) {
	if _, err := validate(filters, domain.GroupByVendor, false); err != nil {
		return nil, err
	}

	logger := reportLogger(ctx, domain.ReportTypeVendor, filters)
	logger.Info("Gerando relatório de fornecedores")

	vendors, err := s.repository.AggregateVendors(ctx, domain.AggregateQuery{
		Period:   filters.Period,
		GroupBy:  domain.GroupByVendor,
		Statuses: domain.RevenueStatuses,
		VendorID: filters.VendorID,
	})
	if err != nil {
		logger.WithError(err).Error("Erro na agregação de fornecedores")
		return nil, aggregationError(err)
	}

	return s.build(filters.Period, &domain.VendorData{Vendors: vendors})
}

func (s *ReportService) GenerateCustomReport(ctx context.Context, filters ReportFilters) (*domain.Report, error) {
	groupBy, err := validate(filters, domain.GroupByDay, false)
	if err != nil {
		return nil, err
	}

	logger := reportLogger(ctx, domain.ReportTypeCustom, filters)
	logger.Info("Gerando relatório personalizado")

	rows, err := s.repository.Aggregate(ctx, domain.AggregateQuery{
		Period:   filters.Period,
		GroupBy:  groupBy,
		Statuses: filters.Statuses,
		VendorID: filters.VendorID,
	})
	if err != nil {
		logger.WithError(err).Error("Erro na agregação personalizada")
		return nil, aggregationError(err)
	}

	return s.build(filters.Period, &domain.CustomData{GroupBy: groupBy, Statuses: filters.Statuses, Rows: rows})
}

func (s *ReportService) build(period domain.Period, data domain.ReportData) (*domain.Report, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewReportError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	return &domain.Report{
		ID:          id,
		Type:        data.Kind(),
		Title:       data.Kind().Title(),
		Period:      period,
		GeneratedAt: s.now().UTC(),
		Summary:     Summarize(data),
		Data:        data,
	}, nil
}

// validate confere período, status e agrupamento; timeOnly restringe a buckets temporais
func validate(filters ReportFilters, fallback domain.GroupBy, timeOnly bool) (domain.GroupBy, error) {
	if err := filters.Period.Validate(); err != nil {
		return "", validationError(ErrInvalidPeriod, err.Error())
	}

	for _, status := range filters.Statuses {
		if !status.IsValid() {
			return "", validationError(ErrInvalidStatus, string(status))
		}
	}

	groupBy := filters.GroupBy
	if groupBy == "" {
		groupBy = fallback
	}
	if !groupBy.IsValid() || (timeOnly && !groupBy.IsTimeBucket()) {
		return "", validationError(ErrInvalidGroupBy, fmt.Sprintf("group_by %q", groupBy))
	}

	return groupBy, nil
}

func reportLogger(ctx context.Context, reportType domain.ReportType, filters ReportFilters) log.Logger {
	return log.ForContext(ctx).WithFields(log.Fields{
		"report_type": reportType,
		"start_date":  filters.Period.Start.Format(utils.DateLayout),
		"end_date":    filters.Period.End.Format(utils.DateLayout),
		"vendor_id":   filters.VendorID,
	})
}
