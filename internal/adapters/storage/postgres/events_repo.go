package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"sow-breeding-records/internal/domain/breeding"
	"sow-breeding-records/internal/domain/events"
	"sow-breeding-records/internal/domain/events/details"
)

const eventColumns = `e.id, e.cerda_id, e.tipo_evento, e.fecha, e.datos, e.notas, e.usuario_id, e.created_at`

type EventsRepo struct {
	db dbtx
}

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

func (r *EventsRepo) Create(ctx context.Context, e events.Event) error {
	data, err := marshalPayload(e.Data)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO eventos (
			id, cerda_id, tipo_evento, fecha, datos, notas, usuario_id, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		e.ID,
		e.SowID,
		string(e.Kind),
		e.Date,
		data,
		e.Notes,
		e.UserID,
		e.CreatedAt,
	)
	return err
}

func (r *EventsRepo) Update(ctx context.Context, e events.Event) error {
	data, err := marshalPayload(e.Data)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE eventos
		SET fecha = $2, notas = $3, datos = $4
		WHERE id = $1
	`, e.ID, e.Date, e.Notes, data)
	if err != nil {
		return err
	}
	return expectOne(res, events.ErrNotFound)
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM eventos e WHERE e.id = $1`, id)

	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return events.Event{}, events.ErrNotFound
	}
	return e, err
}

func (r *EventsRepo) ListBySow(ctx context.Context, sowID string, filter events.ListFilter) ([]events.Event, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + eventColumns + ` FROM eventos e WHERE e.cerda_id = $1`)

	args := []any{sowID}
	argN := 2

	if len(filter.Kinds) > 0 {
		placeholders := make([]string, 0, len(filter.Kinds))
		for _, k := range filter.Kinds {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(k))
			argN++
		}
		sb.WriteString(" AND e.tipo_evento IN (" + strings.Join(placeholders, ",") + ")")
	}
	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND e.fecha >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND e.fecha <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	sb.WriteString(" ORDER BY e.fecha DESC, e.created_at DESC")

	if filter.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, filter.Limit)
	}

	return r.query(ctx, sb.String(), args...)
}

func (r *EventsRepo) ListByKind(ctx context.Context, kind breeding.EventKind) ([]events.Event, error) {
	return r.query(ctx, `
		SELECT `+eventColumns+`
		FROM eventos e
		JOIN cerdas c ON c.id = e.cerda_id
		WHERE e.tipo_evento = $1 AND c.activa
		ORDER BY e.fecha DESC, e.created_at DESC
	`, string(kind))
}

func (r *EventsRepo) query(ctx context.Context, q string, args ...any) ([]events.Event, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]events.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEvent(row scanner) (events.Event, error) {
	var (
		e    events.Event
		kind string
		data []byte
	)
	if err := row.Scan(
		&e.ID,
		&e.SowID,
		&kind,
		&e.Date,
		&data,
		&e.Notes,
		&e.UserID,
		&e.CreatedAt,
	); err != nil {
		return events.Event{}, err
	}

	e.Kind = breeding.EventKind(kind)
	p, err := details.Decode(e.Kind, data)
	if err != nil {
		return events.Event{}, fmt.Errorf("decode datos of event %s: %w", e.ID, err)
	}
	e.Data = p
	return e, nil
}

func marshalPayload(p details.Payload) ([]byte, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p)
}
