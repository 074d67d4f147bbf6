package dashboard

import "sow-breeding-records/internal/domain/breeding"

// Stats es el resumen del rebaño sobre las cerdas activas.
type Stats struct {
	TotalSows        int                     `json:"total_cerdas"`
	ByStatus         map[breeding.Status]int `json:"cerdas_por_estado"`
	OpenIncidents    int                     `json:"incidencias_activas"`
	OpenIncidents24h int                     `json:"incidencias_ultimas_24h"`

	// Medias sobre cerdas con medios y nacidos_vivos > 0; un decimal.
	MeanBornAlive float64 `json:"media_nacidos_vivos"`
	MeanWeaned    float64 `json:"media_destetados"`
	MeanViability float64 `json:"media_viabilidad"`

	// Cerdas secas sin actualizar en más de StaleDryDays días.
	StaleDry int `json:"secas_sin_actividad"`
}
