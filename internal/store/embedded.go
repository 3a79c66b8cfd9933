package store

import (
	"context"
	"errors"
	"fmt"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"

	"github.com/fairyhunter13/product-stock-services/internal/obs"
)

const embeddedDatabase = "products"

// Embedded runs a throwaway PostgreSQL server next to the process and stores
// products in it. It is meant for local runs and tests.
type Embedded struct {
	*Postgres
	server *embeddedpostgres.EmbeddedPostgres
}

// OpenEmbedded starts PostgreSQL on port and connects to it.
func OpenEmbedded(ctx context.Context, port uint32) (*Embedded, error) {
	server := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		Port(port).
		Database(embeddedDatabase))
	if err := server.Start(); err != nil {
		return nil, fmt.Errorf("%w: starting embedded postgres: %w", ErrUnavailable, err)
	}
	obs.Logger.Infow("embedded_postgres_started", "port", port)

	dsn := fmt.Sprintf("host=localhost port=%d user=postgres password=postgres dbname=%s sslmode=disable", port, embeddedDatabase)
	pg, err := OpenPostgres(ctx, dsn)
	if err != nil {
		_ = server.Stop()
		return nil, err
	}
	return &Embedded{Postgres: pg, server: server}, nil
}

// Close closes the connection pool and stops the server.
func (e *Embedded) Close() error {
	err := e.Postgres.Close()
	if stopErr := e.server.Stop(); stopErr != nil {
		err = errors.Join(err, fmt.Errorf("stopping embedded postgres: %w", stopErr))
	}
	obs.Logger.Infow("embedded_postgres_stopped")
	return err
}
