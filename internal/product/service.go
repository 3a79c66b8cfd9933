// Package product orchestrates product persistence and stock notification.
package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/fairyhunter13/product-stock-services/internal/model"
	"github.com/fairyhunter13/product-stock-services/internal/obs"
	"github.com/fairyhunter13/product-stock-services/internal/store"
)

// ErrNotifyFailed marks a save whose row was persisted but whose stock
// notification failed. The row is not rolled back.
var ErrNotifyFailed = errors.New("stock notification failed")

// Notifier forwards a persisted product to the stock service.
type Notifier interface {
	SubmitNewProduct(ctx context.Context, p model.ProductDTO) (string, error)
}

// Service converts between wire and storage representations and runs the
// persist-then-notify workflow.
type Service struct {
	store    store.Store
	notifier Notifier
}

func NewService(st store.Store, n Notifier) *Service {
	return &Service{store: st, notifier: n}
}

// FindAll returns every stored product as a DTO. The result is never nil.
func (s *Service) FindAll(ctx context.Context) ([]model.ProductDTO, error) {
	products, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	out := make([]model.ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, ToDTO(p))
	}
	return out, nil
}

// Save persists dto and then notifies the stock service exactly once.
// If the notification fails, the persisted DTO is returned together with an
// error wrapping ErrNotifyFailed.
func (s *Service) Save(ctx context.Context, dto model.ProductDTO) (model.ProductDTO, error) {
	saved, err := s.store.Save(ctx, ToEntity(dto))
	if err != nil {
		return model.ProductDTO{}, fmt.Errorf("saving product: %w", err)
	}
	out := ToDTO(saved)
	obs.Logger.Infow("product_saved", "product_id", saved.ID, "name", model.Deref(saved.Name))

	ack, err := s.notifier.SubmitNewProduct(ctx, out)
	if err != nil {
		return out, fmt.Errorf("%w for product %d: %w", ErrNotifyFailed, saved.ID, err)
	}
	obs.Logger.Infow("stock_acknowledged", "product_id", saved.ID, "ack", ack)
	return out, nil
}

// ToEntity copies dto into a Product. The id is copied only when present.
func ToEntity(dto model.ProductDTO) model.Product {
	p := model.Product{
		Name:        dto.Name,
		Description: dto.Description,
		ImageURL:    dto.ImageURL,
	}
	if dto.ID != nil {
		p.ID = *dto.ID
	}
	return p
}

// ToDTO copies p into a DTO with the id always set.
func ToDTO(p model.Product) model.ProductDTO {
	id := p.ID
	return model.ProductDTO{
		ID:          &id,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
	}
}
