// Package store implements the key to JSON document persistence layer.
//
// Each collection is persisted as a single JSON document under a fixed key;
// every save rewrites the whole collection. That is O(collection size) per
// write, which is intentional at the portal's scale.
package store

import (
	"context"
	"encoding/json"
	"time"

	"placement/internal/models"
	"placement/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// Persisted keys. These names are the storage schema and must not change.
const (
	KeyUsers        = "placement_users"
	KeyJobs         = "jobs"
	KeyApplications = "applications"
	KeySession      = "placement_current_user"
)

// Store is a durable key to JSON document mapping. Backends must treat an
// absent key as a normal condition, reported through the ok return of Get
// rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LoadAll reads the collection stored under key. An absent key loads as an
// empty slice, never an error.
func LoadAll[T any](ctx context.Context, s Store, key string) ([]T, error) {
	ctx, span := observability.Tracer.Start(ctx, "store.LoadAll")
	span.SetAttributes(attribute.String("store.key", key))
	defer span.End()

	start := time.Now()
	raw, ok, err := s.Get(ctx, key)
	observability.StoreOpLatency.WithLabelValues("load", key).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.StoreErrors.WithLabelValues("load", key).Inc()
		return nil, models.NewInternalError(err)
	}
	if !ok {
		return []T{}, nil
	}

	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		observability.StoreErrors.WithLabelValues("decode", key).Inc()
		return nil, models.NewInternalError(err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// SaveAll overwrites the collection stored under key with items.
func SaveAll[T any](ctx context.Context, s Store, key string, items []T) error {
	ctx, span := observability.Tracer.Start(ctx, "store.SaveAll")
	span.SetAttributes(attribute.String("store.key", key), attribute.Int("store.count", len(items)))
	defer span.End()

	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		observability.StoreErrors.WithLabelValues("encode", key).Inc()
		return models.NewInternalError(err)
	}

	start := time.Now()
	err = s.Put(ctx, key, raw)
	observability.StoreOpLatency.WithLabelValues("save", key).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.StoreErrors.WithLabelValues("save", key).Inc()
		return models.NewInternalError(err)
	}
	return nil
}

// LoadSession returns the persisted session user, or nil when logged out.
func LoadSession(ctx context.Context, s Store) (*models.User, error) {
	raw, ok, err := s.Get(ctx, KeySession)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !ok {
		return nil, nil
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// SaveSession persists user as the current session.
func SaveSession(ctx context.Context, s Store, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return models.NewInternalError(err)
	}
	if err := s.Put(ctx, KeySession, raw); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ClearSession removes the session record. Clearing an absent session is a
// no-op.
func ClearSession(ctx context.Context, s Store) error {
	if err := s.Delete(ctx, KeySession); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
