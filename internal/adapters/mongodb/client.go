// Package mongodb implements the repository ports on top of MongoDB.
//
// Authors and posts live in two collections of one database. Identifiers are
// ObjectIDs in the store and 24-character hex strings everywhere else; see
// ParseID for how the two meet.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	AuthorsCollection = "authors"
	PostsCollection   = "posts"
)

// healthCheckName is the name the client registers under in the health registry.
const healthCheckName = "mongodb"

// Config holds connection settings.
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
	AppName        string
	Logger         *slog.Logger
}

// Client owns the driver connection pool and hands out the database used by
// the repositories. It also serves as the readiness check for the store.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

// Connect dials MongoDB and verifies the primary is reachable before
// returning.
func Connect(ctx context.Context, cfg *Config) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(cfg.AppName).
		SetMonitor(commandMonitor(logger.With(slog.String("component", "mongodb"))))

	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
		opts.SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc

		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	logger.Info("connected to mongodb", slog.String("database", cfg.Database))

	return NewClient(client, cfg.Database, logger), nil
}

// NewClient wraps an already connected driver client.
func NewClient(client *mongo.Client, database string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		client: client,
		db:     client.Database(database),
		logger: logger.With(slog.String("component", "mongodb")),
	}
}

// Database returns the blog database.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Name implements ports.HealthChecker.
func (c *Client) Name() string {
	return healthCheckName
}

// Check implements ports.HealthChecker by pinging the primary.
func (c *Client) Check(ctx context.Context) error {
	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	return nil
}

// EnsureIndexes creates the lookup indexes: authors by email for login and
// posts by author. Neither is unique. Creating an existing index is a no-op.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{AuthorsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_1"),
		}},
		{PostsCollection, mongo.IndexModel{
			Keys:    bson.D{{Key: "author_id", Value: 1}},
			Options: options.Index().SetName("author_id_1"),
		}},
	}

	for _, idx := range indexes {
		name, err := c.db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model)
		if err != nil {
			return storeError(fmt.Sprintf("creating index on %s", idx.collection), err)
		}

		c.logger.Debug("index ready", slog.String("collection", idx.collection), slog.String("index", name))
	}

	return nil
}

// Disconnect closes the pool, waiting for in-use connections until ctx ends.
func (c *Client) Disconnect(ctx context.Context) error {
	c.logger.Info("disconnecting from mongodb")

	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnecting from mongodb: %w", err)
	}

	return nil
}
