package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/fairyhunter13/product-stock-services/internal/model"
)

// Memory keeps products in a map. Ids come from a process-local sequencer.
type Memory struct {
	mu  sync.RWMutex
	m   map[int64]model.Product
	ids sequencer
}

func NewMemory() *Memory {
	return &Memory{m: make(map[int64]model.Product)}
}

func (s *Memory) ListAll(ctx context.Context) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b model.Product) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

func (s *Memory) Save(ctx context.Context, p model.Product) (model.Product, error) {
	if err := ctx.Err(); err != nil {
		return model.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID != 0 {
		if _, ok := s.m[p.ID]; !ok {
			return model.Product{}, fmt.Errorf("updating product %d: %w", p.ID, ErrProductNotFound)
		}
		s.m[p.ID] = p
		return p, nil
	}
	// new entry
	p.ID = s.ids.next()
	s.m[p.ID] = p
	return p, nil
}

func (s *Memory) Close() error { return nil }
