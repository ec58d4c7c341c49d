// Package migrate aplica os scripts SQL embutidos no modelo de leitura Postgres.
package migrate

import (
	"errors"
	"fmt"

	"github.com/alokyadav9045/travellr-sub002/infrastructure/database/postgres"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// ErrNoChange indica que o banco já está na versão desejada
var ErrNoChange = migrate.ErrNoChange

func Run(dsn string, direction string) error {
	if dsn == "" {
		return errors.New("migrate: DSN do banco não configurado")
	}
	if direction != DirectionUp && direction != DirectionDown {
		return fmt.Errorf("migrate: direção deve ser up ou down, recebido %q", direction)
	}

	sourceDriver, err := iofs.New(postgres.MigrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, dsn)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if direction == DirectionUp {
		err = m.Up()
	} else {
		err = m.Down()
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
