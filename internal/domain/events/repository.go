package events

import (
	"context"
	"errors"
	"time"

	"sow-breeding-records/internal/domain/breeding"
	"sow-breeding-records/internal/domain/sows"
)

var ErrNotFound = errors.New("event not found")

type Repository interface {
	Create(ctx context.Context, e Event) error
	// Update reemplaza fecha, notas y datos.
	Update(ctx context.Context, e Event) error
	GetByID(ctx context.Context, id string) (Event, error)
	// ListBySow ordena por fecha desc, created_at desc.
	ListBySow(ctx context.Context, sowID string, filter ListFilter) ([]Event, error)
	// ListByKind recorre todas las cerdas activas, mismo orden que ListBySow.
	ListByKind(ctx context.Context, kind breeding.EventKind) ([]Event, error)
}

// ListFilter: Limit <= 0 = sin límite.
type ListFilter struct {
	Kinds []breeding.EventKind
	From  *time.Time
	To    *time.Time
	Limit int
}

// Matches aplica Kinds/From/To; Limit lo aplica quien ordena.
func (f ListFilter) Matches(e Event) bool {
	if len(f.Kinds) > 0 {
		ok := false
		for _, k := range f.Kinds {
			if e.Kind == k {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && e.Date.After(*f.To) {
		return false
	}
	return true
}

// Less es el orden de los listados: más reciente primero.
func Less(a, b Event) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// SowStore es lo que el registro de eventos necesita de las cerdas.
type SowStore interface {
	GetByID(ctx context.Context, id string) (sows.Sow, error)
	Update(ctx context.Context, s sows.Sow) error
}

// TxRepos son los repositorios ligados a una transacción.
type TxRepos struct {
	Sows   SowStore
	Events Repository
}

// Transactor ejecuta fn de forma atómica: si fn devuelve error no queda nada escrito.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx TxRepos) error) error
}
