package incidents

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("incident not found")

type Repository interface {
	Create(ctx context.Context, i Incident) error
	Update(ctx context.Context, i Incident) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Incident, error)

	// Listados ordenados por fecha_hora desc.
	ListBySow(ctx context.Context, sowID string) ([]Incident, error)
	ListSince(ctx context.Context, since time.Time, openOnly bool) ([]Incident, error)

	// CountOpen cuenta las no resueltas; since nil = todas.
	CountOpen(ctx context.Context, since *time.Time) (int, error)
}
