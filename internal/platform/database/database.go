package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Open connects to MongoDB and pings the deployment before returning the
// database handle.
func Open(ctx context.Context, uri, dbName string) (*mongo.Database, func() error, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetRetryReads(true).
		SetRetryWrites(true).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("open mongo connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo deployment: %w", err)
	}

	closeFn := func() error {
		return client.Disconnect(context.Background())
	}
	return client.Database(dbName), closeFn, nil
}
