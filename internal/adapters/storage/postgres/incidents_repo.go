package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sow-breeding-records/internal/domain/incidents"
	"sow-breeding-records/internal/domain/sows"
)

const incidentColumns = `id, cerda_id, usuario_id, fecha_hora, texto, resuelta, created_at`

type IncidentsRepo struct {
	db dbtx
}

func NewIncidentsRepo(db *sql.DB) *IncidentsRepo {
	return &IncidentsRepo{db: db}
}

func (r *IncidentsRepo) Create(ctx context.Context, i incidents.Incident) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO incidencias (`+incidentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, i.ID, i.SowID, i.UserID, i.At, i.Text, i.Resolved, i.CreatedAt)
	// cerda_id referencia cerdas(id): un id ajeno o mal formado es una cerda inexistente.
	if isForeignKeyViolation(err) || isInvalidID(err) {
		return sows.ErrNotFound
	}
	return err
}

func (r *IncidentsRepo) Update(ctx context.Context, i incidents.Incident) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE incidencias SET texto = $2, resuelta = $3, fecha_hora = $4
		WHERE id = $1
	`, i.ID, i.Text, i.Resolved, i.At)
	if err != nil {
		return err
	}
	return expectOne(res, incidents.ErrNotFound)
}

func (r *IncidentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM incidencias WHERE id = $1`, id)
	if isInvalidID(err) {
		return incidents.ErrNotFound
	}
	if err != nil {
		return err
	}
	return expectOne(res, incidents.ErrNotFound)
}

func (r *IncidentsRepo) GetByID(ctx context.Context, id string) (incidents.Incident, error) {
	var i incidents.Incident
	err := r.db.QueryRowContext(ctx,
		`SELECT `+incidentColumns+` FROM incidencias WHERE id = $1`, id,
	).Scan(&i.ID, &i.SowID, &i.UserID, &i.At, &i.Text, &i.Resolved, &i.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return incidents.Incident{}, incidents.ErrNotFound
	}
	return i, err
}

func (r *IncidentsRepo) ListBySow(ctx context.Context, sowID string) ([]incidents.Incident, error) {
	return r.query(ctx, `
		SELECT `+incidentColumns+` FROM incidencias
		WHERE cerda_id = $1
		ORDER BY fecha_hora DESC
	`, sowID)
}

func (r *IncidentsRepo) ListSince(ctx context.Context, since time.Time, openOnly bool) ([]incidents.Incident, error) {
	q := `SELECT ` + incidentColumns + ` FROM incidencias WHERE fecha_hora >= $1`
	if openOnly {
		q += ` AND NOT resuelta`
	}
	q += ` ORDER BY fecha_hora DESC`
	return r.query(ctx, q, since)
}

func (r *IncidentsRepo) CountOpen(ctx context.Context, since *time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT count(*) FROM incidencias
		WHERE NOT resuelta AND ($1::timestamptz IS NULL OR fecha_hora >= $1)
	`, toNullTime(since)).Scan(&n)
	return n, err
}

func (r *IncidentsRepo) query(ctx context.Context, q string, args ...any) ([]incidents.Incident, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]incidents.Incident, 0)
	for rows.Next() {
		var i incidents.Incident
		if err := rows.Scan(&i.ID, &i.SowID, &i.UserID, &i.At, &i.Text, &i.Resolved, &i.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}
