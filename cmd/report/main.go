package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alokyadav9045/travellr-sub002/infrastructure/repository"
	"github.com/alokyadav9045/travellr-sub002/internal/config"
	"github.com/alokyadav9045/travellr-sub002/internal/domain"
	"github.com/alokyadav9045/travellr-sub002/internal/rendering"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/reporting"
	"github.com/alokyadav9045/travellr-sub002/pkg/log"
	"github.com/alokyadav9045/travellr-sub002/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const commandTimeout = 2 * time.Minute

// reportFlags são as opções comuns a generate e send
type reportFlags struct {
	reportType string
	start      string
	end        string
	groupBy    string
	vendorID   string
	statuses   []string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.reportType, "type", "t", "", "Tipo do relatório (revenue, booking, vendor, custom)")
	cmd.Flags().StringVar(&f.start, "start", "", "Data inicial YYYY-MM-DD")
	cmd.Flags().StringVar(&f.end, "end", "", "Data final YYYY-MM-DD (inclusiva)")
	cmd.Flags().StringVar(&f.groupBy, "group-by", "", "Agrupamento (day, week, month, status, vendor, promo_code)")
	cmd.Flags().StringVar(&f.vendorID, "vendor", "", "Restringe a um fornecedor")
	cmd.Flags().StringSliceVar(&f.statuses, "statuses", nil, "Status das reservas, separados por vírgula")

	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
}

func (f *reportFlags) filters() (domain.ReportType, reporting.ReportFilters, error) {
	reportType, err := domain.ParseReportType(f.reportType)
	if err != nil {
		return "", reporting.ReportFilters{}, err
	}

	start, end, err := utils.ParseDateRange(f.start, f.end)
	if err != nil {
		return "", reporting.ReportFilters{}, err
	}

	filters := reporting.ReportFilters{
		Period:   domain.NewPeriod(start, end),
		GroupBy:  domain.GroupBy(f.groupBy),
		VendorID: f.vendorID,
	}
	for _, s := range f.statuses {
		if s = strings.TrimSpace(s); s != "" {
			filters.Statuses = append(filters.Statuses, domain.BookingStatus(s))
		}
	}

	return reportType, filters, nil
}

// app carrega configuração e dependências sob demanda para cada comando
type app struct {
	cfg *config.Config
}

func (a *app) load(*cobra.Command, []string) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	if err := log.Configure(cfg.App.LogLevel, cfg.IsDevelopment()); err != nil {
		return fmt.Errorf("LOG_LEVEL inválido: %w", err)
	}
	a.cfg = cfg
	return nil
}

func (a *app) formatter() *rendering.Formatter {
	return rendering.NewFormatter(a.cfg.Report.CurrencySymbol, a.cfg.Report.CurrencyThreshold)
}

// generate abre o banco, gera o relatório e fecha a conexão
func (a *app) generate(ctx context.Context, flags *reportFlags) (*domain.Report, error) {
	reportType, filters, err := flags.filters()
	if err != nil {
		return nil, err
	}

	repo, db, err := repository.Open(ctx, a.cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			logrus.WithError(err).Warn("Erro ao fechar conexão com o banco de dados")
		}
	}()

	return reporting.NewReportService(repo).Generate(ctx, reportType, filters)
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "report",
		Short:         "Gera e envia relatórios do marketplace Travellr",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newGenerateCmd(a),
		newSendCmd(a),
		newTokenCmd(a),
		newHashKeyCmd(),
	)

	return rootCmd
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logrus.Error(err)
		cancel()
		os.Exit(1)
	}
}
