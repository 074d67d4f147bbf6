package details

import (
	"fmt"

	"sow-breeding-records/internal/domain/breeding"
)

// Weaning son los datos de un destete. FarrowingID apunta al parto de la camada;
// si no viene se usa el último parto de la cerda.
type Weaning struct {
	PigletsWeaned int      `json:"lechones_destetados"`
	AvgWeightKg   *float64 `json:"peso_medio_kg,omitempty"`
	FarrowingID   string   `json:"parto_id,omitempty"`
}

func (Weaning) Kind() breeding.EventKind { return breeding.KindWeaning }

func (w Weaning) Validate() error {
	if err := nonNegative("lechones_destetados", w.PigletsWeaned); err != nil {
		return err
	}
	if w.AvgWeightKg != nil && *w.AvgWeightKg < 0 {
		return fmt.Errorf("%w: peso_medio_kg must be >= 0", ErrInvalidPayload)
	}
	return nil
}
