package repository

import (
	"context"
	"fmt"

	"github.com/alokyadav9045/travellr-sub002/infrastructure/database/mongodb"
	"github.com/alokyadav9045/travellr-sub002/infrastructure/database/postgres"
	"github.com/alokyadav9045/travellr-sub002/internal/config"
	"github.com/pkg/errors"
)

// Database é a conexão aberta com o driver configurado
type Database interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type postgresDatabase struct {
	postgres.Conn
}

func (p postgresDatabase) Close(context.Context) error {
	return p.Conn.Close()
}

// Open conecta ao banco de DATABASE_DRIVER e devolve o repositório correspondente
func Open(ctx context.Context, cfg *config.Config) (BookingAggregateRepository, Database, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, nil, errors.Wrap(err, "erro ao conectar ao PostgreSQL")
		}
		return NewBookingAggregateRepository(conn), postgresDatabase{conn}, nil

	case config.DriverMongoDB:
		conn, err := mongodb.NewConnection(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, errors.Wrap(err, "erro ao conectar ao MongoDB")
		}
		return NewMongoBookingAggregateRepository(conn.DB), conn, nil
	}

	return nil, nil, fmt.Errorf("driver de banco de dados não suportado: %q", cfg.Database.Driver)
}
