package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"sow-breeding-records/internal/domain/incidents"
)

type incidentRepo struct {
	mu   sync.RWMutex
	byID map[string]incidents.Incident
}

func NewIncidentRepo() incidents.Repository {
	return &incidentRepo{byID: make(map[string]incidents.Incident)}
}

func (r *incidentRepo) Create(ctx context.Context, i incidents.Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i.ID == "" {
		return errors.New("incident id required")
	}
	if _, exists := r.byID[i.ID]; exists {
		return errors.New("incident already exists")
	}
	r.byID[i.ID] = i
	return nil
}

func (r *incidentRepo) Update(ctx context.Context, i incidents.Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[i.ID]; !exists {
		return incidents.ErrNotFound
	}
	r.byID[i.ID] = i
	return nil
}

func (r *incidentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return incidents.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *incidentRepo) GetByID(ctx context.Context, id string) (incidents.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return incidents.Incident{}, incidents.ErrNotFound
	}
	return i, nil
}

func (r *incidentRepo) ListBySow(ctx context.Context, sowID string) ([]incidents.Incident, error) {
	return r.list(func(i incidents.Incident) bool { return i.SowID == sowID }), nil
}

func (r *incidentRepo) ListSince(ctx context.Context, since time.Time, openOnly bool) ([]incidents.Incident, error) {
	return r.list(func(i incidents.Incident) bool {
		if openOnly && i.Resolved {
			return false
		}
		return !i.At.Before(since)
	}), nil
}

func (r *incidentRepo) CountOpen(ctx context.Context, since *time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, i := range r.byID {
		if i.Resolved {
			continue
		}
		if since != nil && i.At.Before(*since) {
			continue
		}
		n++
	}
	return n, nil
}

func (r *incidentRepo) list(keep func(incidents.Incident) bool) []incidents.Incident {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]incidents.Incident, 0)
	for _, i := range r.byID {
		if keep(i) {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].At.After(out[b].At)
	})
	return out
}
