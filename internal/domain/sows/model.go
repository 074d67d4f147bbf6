package sows

import (
	"time"

	"sow-breeding-records/internal/domain/breeding"
)

// Sow representa una cerda reproductora registrada en la granja.
type Sow struct {
	ID   string
	Code string // codigo, único
	Name string

	// Estado reproductivo. Sólo lo mutan los eventos o la edición administrativa.
	Status   breeding.Status
	Parity   int
	Averages *breeding.Averages // nil hasta el primer destete

	Barn   string // nave
	Origin string

	RegisteredAt *time.Time // fecha_alta
	BirthDate    *time.Time

	LastIncidentAt *time.Time

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}

// Reproductive devuelve la parte del estado que maneja el motor reproductivo.
func (s Sow) Reproductive() breeding.Reproductive {
	return breeding.Reproductive{
		Status:   s.Status,
		Parity:   s.Parity,
		Averages: s.Averages,
	}
}

// SetReproductive copia el resultado del motor sobre la cerda.
func (s *Sow) SetReproductive(r breeding.Reproductive) {
	s.Status = r.Status
	s.Parity = r.Parity
	s.Averages = r.Averages
}
