package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"sow-breeding-records/internal/domain/boars"
)

type boarRepo struct {
	mu   sync.RWMutex
	byID map[string]boars.Boar
}

func NewBoarRepo() boars.Repository {
	return &boarRepo{byID: make(map[string]boars.Boar)}
}

func (r *boarRepo) Create(ctx context.Context, b boars.Boar) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(b.ID) == "" {
		return errors.New("boar id required")
	}
	if _, exists := r.byID[b.ID]; exists {
		return errors.New("boar already exists")
	}
	if r.codeTaken(b) {
		return boars.ErrDuplicateCode
	}
	r.byID[b.ID] = b
	return nil
}

func (r *boarRepo) Update(ctx context.Context, b boars.Boar) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[b.ID]; !exists {
		return boars.ErrNotFound
	}
	if r.codeTaken(b) {
		return boars.ErrDuplicateCode
	}
	r.byID[b.ID] = b
	return nil
}

func (r *boarRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return boars.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *boarRepo) GetByID(ctx context.Context, id string) (boars.Boar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return boars.Boar{}, boars.ErrNotFound
	}
	return b, nil
}

func (r *boarRepo) List(ctx context.Context, activeOnly bool) ([]boars.Boar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]boars.Boar, 0, len(r.byID))
	for _, b := range r.byID {
		if activeOnly && !b.Active {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *boarRepo) codeTaken(b boars.Boar) bool {
	for _, other := range r.byID {
		if other.ID != b.ID && other.Code == b.Code {
			return true
		}
	}
	return false
}
