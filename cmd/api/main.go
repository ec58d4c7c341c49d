package main

import (
	"context"
	"time"

	"github.com/alokyadav9045/travellr-sub002/infrastructure/integrator/mail/mailclient"
	"github.com/alokyadav9045/travellr-sub002/infrastructure/repository"
	"github.com/alokyadav9045/travellr-sub002/internal/api"
	"github.com/alokyadav9045/travellr-sub002/internal/api/handler"
	"github.com/alokyadav9045/travellr-sub002/internal/config"
	"github.com/alokyadav9045/travellr-sub002/internal/rendering"
	"github.com/alokyadav9045/travellr-sub002/internal/scheduler"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/authenticating"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/delivering"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/reporting"
	"github.com/alokyadav9045/travellr-sub002/pkg/log"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if err := log.Configure(cfg.App.LogLevel, cfg.IsDevelopment()); err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		_ = log.Configure("info", cfg.IsDevelopment())
	}
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	aggregateRepo, db, err := repository.Open(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao banco de dados")
	}
	defer closeDatabase(db)
	logrus.WithField("driver", cfg.Database.Driver).Info("Conexão com o banco de dados estabelecida com sucesso")

	formatter := rendering.NewFormatter(cfg.Report.CurrencySymbol, cfg.Report.CurrencyThreshold)
	pdfRenderer := rendering.NewPDFRenderer(formatter, cfg.Report.TempDir)
	htmlRenderer, err := rendering.NewHTMLRenderer(formatter)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar template HTML")
	}

	mailClient, err := mailclient.NewClient(cfg.Mail)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar cliente de email")
	}

	reportService := reporting.NewReportService(aggregateRepo)
	deliveryService := delivering.NewDeliveryService(mailClient, pdfRenderer, htmlRenderer)
	authenticator := authenticating.NewService(cfg.Auth)

	reportDeliveryService, err := scheduler.NewReportDeliveryService(reportService, deliveryService, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar envio agendado de relatórios")
	}

	if err := reportDeliveryService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de relatórios")
	} else {
		logrus.Info("Agendador de relatórios iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Dependencies{
		Reporter:  reportService,
		Deliverer: deliveryService,
		Renderers: handler.Renderers{
			PDF:  pdfRenderer,
			HTML: htmlRenderer,
			CSV:  rendering.NewCSVRenderer(formatter),
		},
		Authenticator:   authenticator,
		ReportScheduler: reportDeliveryService,
		Database:        db,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// closeDatabase encerra a conexão no desligamento
func closeDatabase(db repository.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Close(ctx); err != nil {
		logrus.WithError(err).Warn("Erro ao fechar conexão com o banco de dados")
	}
}
