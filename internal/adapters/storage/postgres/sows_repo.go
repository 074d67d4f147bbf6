package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"sow-breeding-records/internal/domain/breeding"
	"sow-breeding-records/internal/domain/sows"
)

const sowColumns = `
	id, codigo, nombre,
	estado, paridad, medios_historicos,
	nave, origen,
	fecha_alta, fecha_nacimiento, ultima_incidencia_fecha,
	activa, created_by, created_at, updated_at`

type SowsRepo struct {
	db        dbtx
	forUpdate bool
}

func NewSowsRepo(db *sql.DB) *SowsRepo {
	return &SowsRepo{db: db}
}

func (r *SowsRepo) Create(ctx context.Context, s sows.Sow) error {
	avg, err := marshalAverages(s.Averages)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO cerdas (`+sowColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		s.ID,
		s.Code,
		s.Name,
		string(s.Status),
		s.Parity,
		avg,
		s.Barn,
		s.Origin,
		toNullTime(s.RegisteredAt),
		toNullTime(s.BirthDate),
		toNullTime(s.LastIncidentAt),
		s.Active,
		s.CreatedBy,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return sows.ErrDuplicateCode
	}
	return err
}

func (r *SowsRepo) Update(ctx context.Context, s sows.Sow) error {
	avg, err := marshalAverages(s.Averages)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE cerdas
		SET
			codigo = $2,
			nombre = $3,
			estado = $4,
			paridad = $5,
			medios_historicos = $6,
			nave = $7,
			origen = $8,
			fecha_alta = $9,
			fecha_nacimiento = $10,
			ultima_incidencia_fecha = $11,
			activa = $12,
			updated_at = $13
		WHERE id = $1
	`,
		s.ID,
		s.Code,
		s.Name,
		string(s.Status),
		s.Parity,
		avg,
		s.Barn,
		s.Origin,
		toNullTime(s.RegisteredAt),
		toNullTime(s.BirthDate),
		toNullTime(s.LastIncidentAt),
		s.Active,
		s.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return sows.ErrDuplicateCode
	}
	if err != nil {
		return err
	}
	return expectOne(res, sows.ErrNotFound)
}

func (r *SowsRepo) GetByID(ctx context.Context, id string) (sows.Sow, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return sows.Sow{}, sows.ErrNotFound
	}

	q := `SELECT ` + sowColumns + ` FROM cerdas WHERE id = $1`
	if r.forUpdate {
		q += ` FOR UPDATE`
	}

	s, err := scanSow(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return sows.Sow{}, sows.ErrNotFound
	}
	return s, err
}

func (r *SowsRepo) List(ctx context.Context, filter sows.ListFilter) ([]sows.Sow, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + sowColumns + ` FROM cerdas WHERE TRUE`)

	args := []any{}
	argN := 1

	if !filter.IncludeInactive {
		sb.WriteString(" AND activa")
	}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, 0, len(filter.Statuses))
		for _, st := range filter.Statuses {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(st))
			argN++
		}
		sb.WriteString(" AND estado IN (" + strings.Join(placeholders, ",") + ")")
	}

	if q := sows.NormalizeSearch(filter.Search); q != "" {
		sb.WriteString(fmt.Sprintf(" AND ("+unaccented("codigo")+" LIKE $%d OR "+unaccented("nombre")+" LIKE $%d)", argN, argN))
		args = append(args, "%"+q+"%")
		argN++
	}

	if filter.IncidentsSince != nil {
		sb.WriteString(fmt.Sprintf(" AND ultima_incidencia_fecha >= $%d", argN))
		args = append(args, *filter.IncidentsSince)
		argN++
	}

	sb.WriteString(" ORDER BY codigo")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]sows.Sow, 0)
	for rows.Next() {
		s, err := scanSow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSow(row scanner) (sows.Sow, error) {
	var (
		s                       sows.Sow
		status                  string
		avg                     []byte
		alta, birth, incidentAt sql.NullTime
	)
	if err := row.Scan(
		&s.ID,
		&s.Code,
		&s.Name,
		&status,
		&s.Parity,
		&avg,
		&s.Barn,
		&s.Origin,
		&alta,
		&birth,
		&incidentAt,
		&s.Active,
		&s.CreatedBy,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return sows.Sow{}, err
	}

	s.Status = breeding.Status(status)
	s.RegisteredAt = fromNullTime(alta)
	s.BirthDate = fromNullTime(birth)
	s.LastIncidentAt = fromNullTime(incidentAt)

	if len(avg) > 0 {
		var a breeding.Averages
		if err := json.Unmarshal(avg, &a); err != nil {
			return sows.Sow{}, fmt.Errorf("decode medios_historicos: %w", err)
		}
		s.Averages = &a
	}
	return s, nil
}

// medios_historicos es NULL hasta el primer destete.
func marshalAverages(a *breeding.Averages) (any, error) {
	if a == nil {
		return nil, nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return b, nil
}

const (
	accented   = "áàäâéèëêíìïîóòöôúùüûñç"
	unaccentTo = "aaaaeeeeiiiioooouuuunc"
)

// unaccented pasa la columna a minúsculas sin tildes, igual que sows.NormalizeSearch.
func unaccented(col string) string {
	return fmt.Sprintf("translate(lower(%s), '%s', '%s')", col, accented, unaccentTo)
}
