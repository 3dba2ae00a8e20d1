// Package mongo is the MongoDB document store backing albums and photos.
package mongo

import (
	"context"
	"time"

	"album-service/internal"
	"album-service/internal/metrics"

	"github.com/pkg/errors"
	"github.com/twitsprout/tools"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionAlbums = "albums"
	collectionPhotos = "photos"
)

// Config represents the options for connecting to MongoDB.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Mongo interacts with the album and photo collections.
type Mongo struct {
	client  *mongo.Client
	albums  *mongo.Collection
	photos  *mongo.Collection
	timeout time.Duration
	sc      tools.StatsClient
}

var _ internal.Store = (*Mongo)(nil)

// New connects to MongoDB, pings it, and makes sure the photo lookup index
// exists.
func New(ctx context.Context, c Config, sc tools.StatsClient) (*Mongo, error) {
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.URI))
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongo")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "ping mongo")
	}

	db := client.Database(c.Database)
	m := &Mongo{
		client:  client,
		albums:  db.Collection(collectionAlbums),
		photos:  db.Collection(collectionPhotos),
		timeout: c.Timeout,
		sc:      sc,
	}

	_, err = m.photos.Indexes().CreateOne(pingCtx, mongo.IndexModel{
		Keys: bson.D{{Key: "album", Value: 1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "create photos album index")
	}
	return m, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// do bounds fn by the store timeout and records its duration.
func (m *Mongo) do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	if m.sc != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		m.sc.Histogram(metrics.StoreDuration, time.Since(start).Seconds(), []string{"mongo", op, status})
	}
	return err
}

// objectID parses a hex identifier. Malformed identifiers can't name a stored
// document, so callers report them as not found.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

func afterUpdate() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}
