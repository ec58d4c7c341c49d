package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alokyadav9045/travellr-sub002/internal/config"
	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/delivering"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/reporting"
	"github.com/alokyadav9045/travellr-sub002/pkg/log"
	"github.com/go-co-op/gocron"
)

var ErrRunInProgress = errors.New("scheduled report delivery already running")

// ReportDeliveryConfig representa a configuração do envio agendado de relatórios
type ReportDeliveryConfig struct {
	CronSchedule string
	Enabled      bool
	LookbackDays int
	Types        []domain.ReportType
	Recipients   []string
}

// RunResult é o resultado de um tipo de relatório em uma execução
type RunResult struct {
	ReportType domain.ReportType `json:"reportType"`
	ReportID   string            `json:"reportId,omitempty"`
	Period     string            `json:"period"`
	Recipients []string          `json:"recipients"`
	Error      string            `json:"error,omitempty"`
}

// ReportDeliveryService gera e envia os relatórios configurados no cron
type ReportDeliveryService struct {
	scheduler          *gocron.Scheduler
	config             ReportDeliveryConfig
	reporter           reporting.Reporter
	deliverer          delivering.Deliverer
	now                func() time.Time
	runMutex           sync.Mutex
	running            bool
	lastRunStartedAt   time.Time
	lastRunCompletedAt time.Time
	lastResults        []RunResult
}

func NewReportDeliveryService(
	reporter reporting.Reporter,
	deliverer delivering.Deliverer,
	appConfig *config.Config,
) (*ReportDeliveryService, error) {
	types := make([]domain.ReportType, 0, len(appConfig.ReportSchedule.Types))
	for _, t := range appConfig.ReportSchedule.Types {
		reportType, err := domain.ParseReportType(t)
		if err != nil {
			return nil, fmt.Errorf("REPORT_SCHEDULE_TYPES: %w", err)
		}
		types = append(types, reportType)
	}

	lookback := appConfig.ReportSchedule.LookbackDays
	if lookback <= 0 {
		lookback = 7
	}

	deliveryConfig := ReportDeliveryConfig{
		CronSchedule: appConfig.ReportSchedule.CronSchedule,
		Enabled:      appConfig.ReportSchedule.Enabled,
		LookbackDays: lookback,
		Types:        types,
		Recipients:   appConfig.ReportSchedule.Recipients,
	}

	log.L.WithFields(log.Fields{
		"cron_schedule": deliveryConfig.CronSchedule,
		"enabled":       deliveryConfig.Enabled,
		"lookback_days": deliveryConfig.LookbackDays,
		"report_types":  deliveryConfig.Types,
	}).Info("Configuração do envio agendado de relatórios carregada")

	return &ReportDeliveryService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    deliveryConfig,
		reporter:  reporter,
		deliverer: deliverer,
		now:       time.Now,
	}, nil
}

// Start agenda o envio e para o agendador quando o contexto é cancelado
func (s *ReportDeliveryService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.L.Info("Envio agendado de relatórios desabilitado por configuração")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de relatórios")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			log.L.WithError(err).Warn("Execução agendada ignorada")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar envio de relatórios: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("Parando agendador de relatórios")
		s.scheduler.Stop()
	}()

	return nil
}

// RunOnce executa o envio de forma síncrona. Execuções sobrepostas são recusadas.
func (s *ReportDeliveryService) RunOnce(ctx context.Context, types ...domain.ReportType) ([]RunResult, error) {
	if !s.acquire() {
		return nil, ErrRunInProgress
	}
	return s.run(ctx, types), nil
}

// TriggerManualSync dispara o envio em background
func (s *ReportDeliveryService) TriggerManualSync(types ...domain.ReportType) error {
	if !s.acquire() {
		log.L.Info("Envio de relatórios já em andamento, ignorando solicitação manual")
		return ErrRunInProgress
	}

	ctx, _ := log.WithCorrelationID(context.Background())
	log.ForContext(ctx).Info("Iniciando envio manual de relatórios")
	go s.run(ctx, types)
	return nil
}

// GetStatus retorna o status atual do agendador
func (s *ReportDeliveryService) GetStatus() map[string]any {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	return map[string]any{
		"running":               s.running,
		"cron":                  s.config.CronSchedule,
		"enabled":               s.config.Enabled,
		"report_types":          s.config.Types,
		"lookback_days":         s.config.LookbackDays,
		"last_run_started_at":   s.lastRunStartedAt,
		"last_run_completed_at": s.lastRunCompletedAt,
		"last_results":          s.lastResults,
	}
}

func (s *ReportDeliveryService) acquire() bool {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	if s.running {
		return false
	}
	s.running = true
	s.lastRunStartedAt = s.now()
	return true
}

// run gera cada tipo sobre os últimos LookbackDays dias encerrados ontem.
// A falha de um tipo não interrompe os demais.
func (s *ReportDeliveryService) run(ctx context.Context, types []domain.ReportType) []RunResult {
	if len(types) == 0 {
		types = s.config.Types
	}

	period := domain.LastDays(s.now().UTC(), s.config.LookbackDays)
	results := make([]RunResult, 0, len(types))

	for _, reportType := range types {
		result := RunResult{
			ReportType: reportType,
			Period:     period.String(),
			Recipients: s.config.Recipients,
		}
		logger := log.ForContext(ctx).WithFields(log.Fields{
			"report_type": reportType,
			"start_date":  period.Start,
			"end_date":    period.End,
		})

		report, err := s.reporter.Generate(ctx, reportType, reporting.ReportFilters{Period: period})
		if err != nil {
			logger.WithError(err).Error("Erro ao gerar relatório agendado")
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.ReportID = report.ID

		if _, err := s.deliverer.Deliver(ctx, report, s.config.Recipients); err != nil {
			logger.WithError(err).Error("Erro ao enviar relatório agendado")
			result.Error = err.Error()
		} else {
			logger.Info("Relatório agendado enviado")
		}
		results = append(results, result)
	}

	s.runMutex.Lock()
	s.running = false
	s.lastRunCompletedAt = s.now()
	s.lastResults = results
	s.runMutex.Unlock()

	return results
}
