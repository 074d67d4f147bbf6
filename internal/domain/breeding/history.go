package breeding

import (
	"fmt"
	"sort"
	"time"
)

// HistoryEvent es la vista mínima de un evento para reconstruir los valores derivados.
type HistoryEvent struct {
	ID          string
	Kind        EventKind
	Date        time.Time
	RecordedAt  time.Time
	BornAlive   int    // parto
	Weaned      int    // destete
	FarrowingID string // destete: parto enlazado
}

// Derived son los valores de la cerda que se pueden recalcular desde el log.
type Derived struct {
	Parity   int
	Averages *Averages
}

// Rebuild recalcula paridad y medios históricos recorriendo el historial en orden
// cronológico (fecha, luego momento de registro) con el mismo pliegue que el
// registro incremental.
func Rebuild(history []HistoryEvent) (Derived, error) {
	evs := make([]HistoryEvent, len(history))
	copy(evs, history)
	sort.SliceStable(evs, func(i, j int) bool {
		di, dj := Date(evs[i].Date), Date(evs[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return evs[i].RecordedAt.Before(evs[j].RecordedAt)
	})

	// Un parto_id explícito se resuelve aunque el destete venga antes en fecha.
	litters := make(map[string]int)
	for _, e := range evs {
		if e.Kind == KindFarrowing {
			litters[e.ID] = e.BornAlive
		}
	}

	var out Derived
	lastFarrowing := ""

	for _, e := range evs {
		switch e.Kind {
		case KindFarrowing:
			out.Parity++
			lastFarrowing = e.ID
		case KindWeaning:
			ref := e.FarrowingID
			if ref == "" {
				ref = lastFarrowing
			}
			born, ok := litters[ref]
			if !ok {
				return Derived{}, fmt.Errorf("weaning %s: %w", e.ID, ErrNoFarrowing)
			}
			avg := FoldWeaning(out.Parity, Litter{BornAlive: born, Weaned: e.Weaned}, out.Averages)
			out.Averages = &avg
		}
	}

	return out, nil
}
