package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alokyadav9045/travellr-sub002/internal/api/handler"
	"github.com/alokyadav9045/travellr-sub002/internal/api/handler/router"
	"github.com/alokyadav9045/travellr-sub002/internal/config"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/authenticating"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/delivering"
	"github.com/alokyadav9045/travellr-sub002/internal/usecases/reporting"
	"github.com/alokyadav9045/travellr-sub002/pkg/middleware"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// Dependencies reúne os serviços injetados nas rotas
type Dependencies struct {
	Reporter        reporting.Reporter
	Deliverer       delivering.Deliverer
	Renderers       handler.Renderers
	Authenticator   authenticating.Authenticator
	ReportScheduler handler.ReportScheduler
	Database        handler.Pinger
}

// NewHandler monta o router com a cadeia de middlewares globais
func NewHandler(cfg *config.Config, deps Dependencies) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(deps.Database)...),
		router.WithRoutes(handler.Reports(deps.Reporter, deps.Deliverer, deps.Renderers)...),
		router.WithRoutes(handler.CronJobs(deps.ReportScheduler)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Cors.AllowedOrigins),
		middleware.AuthMiddleware(deps.Authenticator, handler.HealthcheckPath),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(cfg *config.Config, deps Dependencies) (*Server, error) {
	if deps.Reporter == nil || deps.Deliverer == nil || deps.Authenticator == nil || deps.ReportScheduler == nil {
		return nil, fmt.Errorf("api: dependências obrigatórias não informadas")
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, deps),
			ReadHeaderTimeout: 2 * time.Second,
			// PDFs grandes podem demorar para serem gerados
			WriteTimeout: 2 * time.Minute,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
