// Package details define los datos específicos de cada tipo de evento reproductivo.
// Cada tipo tiene su propia forma; Decode elige la forma según el tipo declarado.
package details

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"sow-breeding-records/internal/domain/breeding"
)

var ErrInvalidPayload = errors.New("invalid event data")

var (
	_ Payload = Mating{}
	_ Payload = Farrowing{}
	_ Payload = Weaning{}
	_ Payload = Gestation{}
	_ Payload = Ultrasound{}
	_ Payload = Cull{}
)

// Payload es el contenido de "datos" de un evento.
type Payload interface {
	Kind() breeding.EventKind
	Validate() error
}

// Empty devuelve el payload vacío de un tipo, o nil si el tipo no existe.
func Empty(kind breeding.EventKind) Payload {
	switch kind {
	case breeding.KindService:
		return Mating{}
	case breeding.KindFarrowing:
		return Farrowing{}
	case breeding.KindWeaning:
		return Weaning{}
	case breeding.KindGestation:
		return Gestation{}
	case breeding.KindUltrasound:
		return Ultrasound{}
	case breeding.KindCull:
		return Cull{}
	default:
		return nil
	}
}

// Decode interpreta raw según kind. raw vacío o "null" da el payload vacío.
// Campos desconocidos se rechazan para no perder datos mal escritos.
func Decode(kind breeding.EventKind, raw []byte) (Payload, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown tipo_evento %q", ErrInvalidPayload, kind)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Empty(kind), nil
	}

	switch kind {
	case breeding.KindService:
		return decodeInto[Mating](trimmed)
	case breeding.KindFarrowing:
		return decodeInto[Farrowing](trimmed)
	case breeding.KindWeaning:
		return decodeInto[Weaning](trimmed)
	case breeding.KindGestation:
		return decodeInto[Gestation](trimmed)
	case breeding.KindUltrasound:
		return decodeInto[Ultrasound](trimmed)
	default:
		return decodeInto[Cull](trimmed)
	}
}

func decodeInto[T Payload](raw []byte) (Payload, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return v, nil
}

func nonNegative(field string, v int) error {
	if v < 0 {
		return fmt.Errorf("%w: %s must be >= 0", ErrInvalidPayload, field)
	}
	return nil
}
