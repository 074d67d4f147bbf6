package breeding

import "errors"

// ErrNoFarrowing se devuelve al destetar una cerda sin ningún parto registrado.
var ErrNoFarrowing = errors.New("no farrowing on record")

// Reproductive agrupa los campos de la cerda que sólo muta el registro de eventos.
type Reproductive struct {
	Status   Status
	Parity   int
	Averages *Averages
}

// Litter es el resultado de la camada que se desteta: nacidos vivos del parto
// enlazado y lechones destetados.
type Litter struct {
	BornAlive int
	Weaned    int
}

// Transition describe qué hace un tipo de evento sobre la cerda.
type Transition struct {
	Status            Status
	Moves             bool
	IncrementsParity  bool
	RecomputeAverages bool
}

// Next es la tabla de transiciones. No valida el estado de origen: cualquier
// cubrición deja la cerda cubierta, cualquier parto la deja en parto, etc.
// Los tipos sin transición (gestacion, ecografia, baja) sólo se registran.
func Next(kind EventKind) Transition {
	switch kind {
	case KindService:
		return Transition{Status: StatusServed, Moves: true}
	case KindFarrowing:
		return Transition{Status: StatusFarrowed, Moves: true, IncrementsParity: true}
	case KindWeaning:
		return Transition{Status: StatusWeaned, Moves: true, RecomputeAverages: true}
	default:
		return Transition{}
	}
}

// Apply devuelve el nuevo estado reproductivo tras registrar un evento de tipo kind.
// Para destete, litter debe venir del parto enlazado; nil significa que no hay
// parto previo y la operación falla con ErrNoFarrowing sin tocar cur.
func Apply(cur Reproductive, kind EventKind, litter *Litter) (Reproductive, error) {
	t := Next(kind)
	if !t.Moves {
		return cur, nil
	}

	next := cur
	if t.RecomputeAverages {
		if litter == nil {
			return cur, ErrNoFarrowing
		}
		avg := FoldWeaning(cur.Parity, *litter, cur.Averages)
		next.Averages = &avg
	}
	if t.IncrementsParity {
		next.Parity = cur.Parity + 1
	}
	next.Status = t.Status
	return next, nil
}
