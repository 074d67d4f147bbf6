package boars

import "time"

// Boar es un verraco usado en las cubriciones.
type Boar struct {
	ID        string
	Code      string
	Name      string
	Breed     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
