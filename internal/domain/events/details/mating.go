package details

import (
	"fmt"
	"strings"

	"sow-breeding-records/internal/domain/breeding"
)

// Mating son los datos de una cubrición. Código y nombre del verraco se copian
// al registrar, así el historial sobrevive a cambios en el verraco.
type Mating struct {
	BoarID   string `json:"verraco_id"`
	BoarCode string `json:"verraco_codigo,omitempty"`
	BoarName string `json:"verraco_nombre,omitempty"`
}

func (Mating) Kind() breeding.EventKind { return breeding.KindService }

func (m Mating) Validate() error {
	if strings.TrimSpace(m.BoarID) == "" {
		return fmt.Errorf("%w: verraco_id is required", ErrInvalidPayload)
	}
	return nil
}
