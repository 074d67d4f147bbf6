package details

import "sow-breeding-records/internal/domain/breeding"

// Farrowing son los datos de un parto.
// Weaned/WeaningID se completan cuando se registra el destete de esta camada.
type Farrowing struct {
	BornAlive int `json:"nacidos_vivos"`
	StillBorn int `json:"nacidos_muertos"`
	Mummified int `json:"momificados"`
	Total     int `json:"total"`

	Weaned    *int   `json:"destetados,omitempty"`
	WeaningID string `json:"destete_id,omitempty"`
}

func (Farrowing) Kind() breeding.EventKind { return breeding.KindFarrowing }

func (f Farrowing) Validate() error {
	for _, c := range []struct {
		field string
		v     int
	}{
		{"nacidos_vivos", f.BornAlive},
		{"nacidos_muertos", f.StillBorn},
		{"momificados", f.Mummified},
		{"total", f.Total},
	} {
		if err := nonNegative(c.field, c.v); err != nil {
			return err
		}
	}
	if f.Weaned != nil {
		if err := nonNegative("destetados", *f.Weaned); err != nil {
			return err
		}
	}
	return nil
}

// Normalize completa total cuando no viene informado.
func (f Farrowing) Normalize() Farrowing {
	if f.Total == 0 {
		f.Total = f.BornAlive + f.StillBorn + f.Mummified
	}
	return f
}

// WithWeaning anota el destete de la camada sobre el parto.
func (f Farrowing) WithWeaning(weaned int, weaningID string) Farrowing {
	f.Weaned = &weaned
	f.WeaningID = weaningID
	return f
}

// Litter es la camada que el motor usa para los medios.
func (f Farrowing) Litter(weaned int) *breeding.Litter {
	return &breeding.Litter{BornAlive: f.BornAlive, Weaned: weaned}
}
