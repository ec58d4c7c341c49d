package main

import (
	"errors"
	"os"
	"time"

	"github.com/alokyadav9045/travellr-sub002/infrastructure/database/migrate"
	"github.com/alokyadav9045/travellr-sub002/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newDirectionCmd(direction, short string) *cobra.Command {
	return &cobra.Command{
		Use:   direction,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			if cfg.Database.Driver != config.DriverPostgres {
				return errors.New("migrações só se aplicam ao driver postgres")
			}

			logrus.WithField("direction", direction).Info("Iniciando migração")
			startTime := time.Now()

			if err := migrate.Run(cfg.Database.DSN, direction); err != nil {
				return err
			}

			logrus.WithField("duration", time.Since(startTime).String()).Info("Migração concluída")
			return nil
		},
	}
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Aplica as migrações do modelo de leitura Postgres",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		newDirectionCmd(migrate.DirectionUp, "Aplica todas as migrações pendentes"),
		newDirectionCmd(migrate.DirectionDown, "Reverte todas as migrações"),
	)

	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
