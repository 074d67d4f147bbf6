package incidents

import "time"

// Incident es una observación libre sobre una cerda (cojera, fiebre, etc.).
type Incident struct {
	ID       string
	SowID    string
	UserID   string
	At       time.Time // fecha_hora
	Text     string
	Resolved bool

	CreatedAt time.Time
}
