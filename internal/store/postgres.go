package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/fairyhunter13/product-stock-services/internal/model"
)

const productsTable = "products"

const createProductsTable = `CREATE TABLE IF NOT EXISTS products (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT,
	description TEXT,
	image_url   TEXT
)`

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Postgres stores products in the products table through database/sql.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects with the lib/pq driver and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", ErrUnavailable, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: pinging database: %w", ErrUnavailable, err)
	}
	return NewPostgres(db), nil
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the products table when it does not exist yet.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createProductsTable); err != nil {
		return fmt.Errorf("%w: creating products table: %w", ErrUnavailable, err)
	}
	return nil
}

func listProducts() squirrel.SelectBuilder {
	return psql.Select("id", "name", "description", "image_url").
		From(productsTable).
		OrderBy("id")
}

// nullable maps a nil text field to SQL NULL.
func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func insertProduct(p model.Product) squirrel.InsertBuilder {
	return psql.Insert(productsTable).
		SetMap(map[string]interface{}{
			"name":        nullable(p.Name),
			"description": nullable(p.Description),
			"image_url":   nullable(p.ImageURL),
		}).
		Suffix("RETURNING id")
}

func updateProduct(p model.Product) squirrel.UpdateBuilder {
	return psql.Update(productsTable).
		SetMap(map[string]interface{}{
			"name":        nullable(p.Name),
			"description": nullable(p.Description),
			"image_url":   nullable(p.ImageURL),
		}).
		Where(squirrel.Eq{"id": p.ID})
}

func (s *Postgres) ListAll(ctx context.Context) ([]model.Product, error) {
	rows, err := listProducts().RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing products: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	out := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("%w: scanning product: %w", ErrUnavailable, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating products: %w", ErrUnavailable, err)
	}
	return out, nil
}

func (s *Postgres) Save(ctx context.Context, p model.Product) (model.Product, error) {
	if p.ID == 0 {
		if err := insertProduct(p).RunWith(s.db).QueryRowContext(ctx).Scan(&p.ID); err != nil {
			return model.Product{}, fmt.Errorf("%w: inserting product: %w", ErrUnavailable, err)
		}
		return p, nil
	}

	res, err := updateProduct(p).RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return model.Product{}, fmt.Errorf("%w: updating product: %w", ErrUnavailable, err)
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return model.Product{}, fmt.Errorf("%w: getting affected rows: %w", ErrUnavailable, err)
	}
	if rowsAffected == 0 {
		return model.Product{}, fmt.Errorf("updating product %d: %w", p.ID, ErrProductNotFound)
	}
	return p, nil
}

func (s *Postgres) Close() error {
	return s.db.Close()
}
