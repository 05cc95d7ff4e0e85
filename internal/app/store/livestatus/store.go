// Package livestatusstore persists keyed live-status reports (train
// positions, road closures) with per-key last-write-wins semantics.
// Earlier revisions of the product cached these in a process-global map;
// reports must survive restarts and be shared across instances, so they
// live in Mongo keyed by (kind, key).
package livestatusstore

import (
	"context"
	"time"

	"github.com/sakuramc/craftport/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collection = "live_status"

// Store provides access to live-status documents.
type Store struct {
	c *mongo.Collection
}

// New creates a Store bound to the given database.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(collection)}
}

// EnsureIndexes creates the unique (kind, key) index the upsert relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "kind", Value: 1}, {Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Upsert replaces the report for (kind, key). The previous report for the
// same pair is overwritten unconditionally.
func (s *Store) Upsert(ctx context.Context, st models.LiveStatus) error {
	st.UpdatedAt = time.Now()
	filter := bson.M{"kind": st.Kind, "key": st.Key}
	update := bson.M{"$set": st}
	_, err := s.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// Get returns the latest report for (kind, key), or (nil, nil) if none
// has been recorded.
func (s *Store) Get(ctx context.Context, kind, key string) (*models.LiveStatus, error) {
	var st models.LiveStatus
	err := s.c.FindOne(ctx, bson.M{"kind": kind, "key": key}).Decode(&st)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// ListByKind returns all current reports of one kind.
func (s *Store) ListByKind(ctx context.Context, kind string) ([]models.LiveStatus, error) {
	cur, err := s.c.Find(ctx, bson.M{"kind": kind})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.LiveStatus
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
