package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/alokyadav9045/travellr-sub002/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Connection encapsula o client e o banco usado pelos relatórios
type Connection struct {
	client *mongo.Client
	DB     *mongo.Database
}

func NewConnection(ctx context.Context, cfg config.Mongo) (*Connection, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongodb: MONGO_URI não configurada")
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetReadPreference(readpref.SecondaryPreferred()).
		SetAppName("travellr-reports")

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: erro ao conectar: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: erro no ping: %w", err)
	}

	return &Connection{client: client, DB: client.Database(cfg.Database)}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Connection) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
