package details

import (
	"fmt"
	"strings"

	"sow-breeding-records/internal/domain/breeding"
)

// Gestation es una confirmación de gestación sin datos propios.
type Gestation struct{}

func (Gestation) Kind() breeding.EventKind { return breeding.KindGestation }
func (Gestation) Validate() error          { return nil }

// Ultrasound es una ecografía; Positive nil = sin resultado anotado.
type Ultrasound struct {
	Positive *bool `json:"positiva,omitempty"`
}

func (Ultrasound) Kind() breeding.EventKind { return breeding.KindUltrasound }
func (Ultrasound) Validate() error          { return nil }

// Cull es el registro de una baja.
type Cull struct {
	Reason string `json:"motivo,omitempty"`
}

func (Cull) Kind() breeding.EventKind { return breeding.KindCull }

func (c Cull) Validate() error {
	if len([]rune(strings.TrimSpace(c.Reason))) > 200 {
		return fmt.Errorf("%w: motivo too long", ErrInvalidPayload)
	}
	return nil
}
