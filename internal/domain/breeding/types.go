package breeding

// Status es el estado reproductivo de una cerda (campo estado).
type Status string

const (
	StatusInService Status = "en_servicio"
	StatusDry       Status = "seca"
	StatusServed    Status = "cubierta"
	StatusPregnant  Status = "gestante"
	StatusFarrowed  Status = "parto"
	StatusWeaned    Status = "destete"
	StatusCulled    Status = "baja"
)

// Statuses devuelve todos los estados en el orden en que se muestran.
func Statuses() []Status {
	return []Status{
		StatusInService,
		StatusDry,
		StatusServed,
		StatusPregnant,
		StatusFarrowed,
		StatusWeaned,
		StatusCulled,
	}
}

func (s Status) Valid() bool {
	for _, v := range Statuses() {
		if s == v {
			return true
		}
	}
	return false
}

// EventKind es el tipo de evento reproductivo (tipo_evento).
type EventKind string

const (
	KindService    EventKind = "cubricion"
	KindFarrowing  EventKind = "parto"
	KindWeaning    EventKind = "destete"
	KindGestation  EventKind = "gestacion"
	KindUltrasound EventKind = "ecografia"
	KindCull       EventKind = "baja"
)

func EventKinds() []EventKind {
	return []EventKind{
		KindService,
		KindFarrowing,
		KindWeaning,
		KindGestation,
		KindUltrasound,
		KindCull,
	}
}

func (k EventKind) Valid() bool {
	for _, v := range EventKinds() {
		if k == v {
			return true
		}
	}
	return false
}

// Averages son los medios históricos de la cerda acumulados en cada destete.
type Averages struct {
	BornAlive float64 `json:"nacidos_vivos"`
	Weaned    float64 `json:"destetados"`
	Viability int     `json:"viabilidad"`
}
