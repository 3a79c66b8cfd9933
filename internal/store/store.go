// Package store persists products. It offers PostgreSQL-backed and
// in-memory implementations of the same Store contract.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/fairyhunter13/product-stock-services/internal/config"
	"github.com/fairyhunter13/product-stock-services/internal/model"
	"github.com/fairyhunter13/product-stock-services/internal/obs"
)

var (
	// ErrUnavailable wraps failures of the underlying storage such as lost
	// connectivity. Callers may retry.
	ErrUnavailable = errors.New("product store unavailable")
	// ErrProductNotFound is returned when saving a product whose id has no row.
	ErrProductNotFound = errors.New("product not found")
)

// Store is the product persistence contract.
type Store interface {
	// ListAll returns every product in insertion order, or an empty slice.
	ListAll(ctx context.Context) ([]model.Product, error)
	// Save inserts p when p.ID is zero and updates the matching row otherwise.
	// It returns the stored row including its id.
	Save(ctx context.Context, p model.Product) (model.Product, error)
	Close() error
}

// Open builds the Store selected by cfg.StoreDriver and prepares its schema.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	obs.Logger.Infow("store_opening", "driver", cfg.StoreDriver)
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		return NewMemory(), nil
	case config.StoreDriverPostgres:
		pg, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			_ = pg.Close()
			return nil, err
		}
		return pg, nil
	case config.StoreDriverEmbedded:
		emb, err := OpenEmbedded(ctx, cfg.EmbeddedDBPort)
		if err != nil {
			return nil, err
		}
		if err := emb.EnsureSchema(ctx); err != nil {
			_ = emb.Close()
			return nil, err
		}
		return emb, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
