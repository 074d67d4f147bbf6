package sows

import (
	"context"
	"errors"
	"time"

	"sow-breeding-records/internal/domain/breeding"
)

var (
	ErrNotFound      = errors.New("sow not found")
	ErrDuplicateCode = errors.New("sow code already exists")
)

type Repository interface {
	Create(ctx context.Context, s Sow) error
	Update(ctx context.Context, s Sow) error
	GetByID(ctx context.Context, id string) (Sow, error)
	List(ctx context.Context, filter ListFilter) ([]Sow, error)
}

// ListFilter filtra el listado; por defecto sólo cerdas activas, ordenadas por código.
type ListFilter struct {
	Statuses        []breeding.Status
	Search          string     // código o nombre, sin distinguir mayúsculas ni tildes
	IncidentsSince  *time.Time // ultima_incidencia_fecha >= IncidentsSince
	IncludeInactive bool
}

// Matches aplica el filtro en memoria. Lo usan el repo en memoria y los tests.
func (f ListFilter) Matches(s Sow) bool {
	if !f.IncludeInactive && !s.Active {
		return false
	}
	if len(f.Statuses) > 0 {
		ok := false
		for _, st := range f.Statuses {
			if s.Status == st {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.IncidentsSince != nil {
		if s.LastIncidentAt == nil || s.LastIncidentAt.Before(*f.IncidentsSince) {
			return false
		}
	}
	if q := NormalizeSearch(f.Search); q != "" {
		if !contains(NormalizeSearch(s.Code), q) && !contains(NormalizeSearch(s.Name), q) {
			return false
		}
	}
	return true
}
