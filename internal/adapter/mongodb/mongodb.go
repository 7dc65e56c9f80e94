package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/storefront/pkg/retry"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	productsCollection = "products"
	cartCollection     = "cart"
	chatCollection     = "chat_history"

	pingAttempts = 3
	pingDelay    = 500 * time.Millisecond
)

// Client owns the mongo connection lifecycle: constructed and pinged at
// process start, closed at shutdown. Repositories are views over it.
type Client struct {
	cl *mongo.Client
	db *mongo.Database
}

func NewClient(ctx context.Context, uri, database string) (Client, error) {
	const op = "mongodb.NewClient"
	log := slog.With("op", op)

	cl, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return Client{}, fmt.Errorf("%s: %w", op, err)
	}

	retryCfg := retry.Config{
		MaxAttempts: pingAttempts,
		Backoff:     retry.LinearBackoff(pingDelay),
	}
	err = retry.Do(ctx, retryCfg, func() error {
		return cl.Ping(ctx, readpref.Primary())
	})
	if err != nil {
		return Client{}, fmt.Errorf("%s: database is unavailable: %w", op, err)
	}

	log.Info("database is available")
	return Client{cl, cl.Database(database)}, nil
}

func (c Client) Close(ctx context.Context) {
	const op = "mongodb.Client.Close"
	log := slog.With("op", op)

	log.Info("closing database client...")
	if err := c.cl.Disconnect(ctx); err != nil {
		log.Error("failed to disconnect", "err", err)
		return
	}
	log.Info("database client is closed")
}
