package breeding

import (
	"iter"
	"math"
	"time"
)

const (
	GestationDays = 114
	CheckupDays   = 21

	// Ventanas de coincidencia alrededor de la fecha consultada (inclusive).
	FarrowingWindowDays = 3
	CheckupWindowDays   = 2
)

// DateLayout es el formato de las fechas civiles (fecha de evento, consulta).
const DateLayout = "2006-01-02"

// Date trunca t a su fecha civil, a medianoche UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate interpreta una fecha YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func ExpectedFarrowing(service time.Time) time.Time {
	return Date(service).AddDate(0, 0, GestationDays)
}

func ExpectedCheckup(service time.Time) time.Time {
	return Date(service).AddDate(0, 0, CheckupDays)
}

// DaysBetween devuelve a - b en días civiles.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(Date(a).Sub(Date(b)).Hours() / 24))
}

// ServiceRecord es una cubrición de una cerda activa junto al estado actual de la cerda.
type ServiceRecord struct {
	EventID     string
	SowID       string
	SowCode     string
	SowStatus   Status
	ServiceDate time.Time
}

// Projection es una cubrición que cae dentro de la ventana de la fecha consultada.
// OffsetDays es fecha esperada - fecha consultada.
type Projection struct {
	ServiceRecord
	ExpectedDate time.Time
	OffsetDays   int
}

// FarrowingsDue recorre las cubriciones cuyo parto esperado cae a ±3 días de d.
// No deduplica: varias cubriciones de la misma cerda salen todas.
func FarrowingsDue(d time.Time, services []ServiceRecord) iter.Seq[Projection] {
	return func(yield func(Projection) bool) {
		for _, s := range services {
			expected := ExpectedFarrowing(s.ServiceDate)
			off := DaysBetween(expected, d)
			if abs(off) > FarrowingWindowDays {
				continue
			}
			if !yield(Projection{ServiceRecord: s, ExpectedDate: expected, OffsetDays: off}) {
				return
			}
		}
	}
}

// CheckupsDue recorre las cubriciones de cerdas todavía cubiertas cuya ecografía
// esperada cae a ±2 días de d.
func CheckupsDue(d time.Time, services []ServiceRecord) iter.Seq[Projection] {
	return func(yield func(Projection) bool) {
		for _, s := range services {
			if s.SowStatus != StatusServed {
				continue
			}
			expected := ExpectedCheckup(s.ServiceDate)
			off := DaysBetween(expected, d)
			if abs(off) > CheckupWindowDays {
				continue
			}
			if !yield(Projection{ServiceRecord: s, ExpectedDate: expected, OffsetDays: off}) {
				return
			}
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
