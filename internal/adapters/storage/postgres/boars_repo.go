package postgres

import (
	"context"
	"database/sql"
	"errors"

	"sow-breeding-records/internal/domain/boars"
)

type BoarsRepo struct {
	db dbtx
}

func NewBoarsRepo(db *sql.DB) *BoarsRepo {
	return &BoarsRepo{db: db}
}

func (r *BoarsRepo) Create(ctx context.Context, b boars.Boar) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO verracos (id, codigo, nombre, raza, activo, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, b.ID, b.Code, b.Name, b.Breed, b.Active, b.CreatedAt, b.UpdatedAt)
	if isUniqueViolation(err) {
		return boars.ErrDuplicateCode
	}
	return err
}

func (r *BoarsRepo) Update(ctx context.Context, b boars.Boar) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE verracos
		SET codigo = $2, nombre = $3, raza = $4, activo = $5, updated_at = $6
		WHERE id = $1
	`, b.ID, b.Code, b.Name, b.Breed, b.Active, b.UpdatedAt)
	if isUniqueViolation(err) {
		return boars.ErrDuplicateCode
	}
	if err != nil {
		return err
	}
	return expectOne(res, boars.ErrNotFound)
}

func (r *BoarsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM verracos WHERE id = $1`, id)
	if isInvalidID(err) {
		return boars.ErrNotFound
	}
	if err != nil {
		return err
	}
	return expectOne(res, boars.ErrNotFound)
}

func (r *BoarsRepo) GetByID(ctx context.Context, id string) (boars.Boar, error) {
	var b boars.Boar
	err := r.db.QueryRowContext(ctx, `
		SELECT id, codigo, nombre, raza, activo, created_at, updated_at
		FROM verracos WHERE id = $1
	`, id).Scan(&b.ID, &b.Code, &b.Name, &b.Breed, &b.Active, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return boars.Boar{}, boars.ErrNotFound
	}
	return b, err
}

func (r *BoarsRepo) List(ctx context.Context, activeOnly bool) ([]boars.Boar, error) {
	q := `SELECT id, codigo, nombre, raza, activo, created_at, updated_at FROM verracos`
	if activeOnly {
		q += ` WHERE activo`
	}
	q += ` ORDER BY codigo`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]boars.Boar, 0)
	for rows.Next() {
		var b boars.Boar
		if err := rows.Scan(&b.ID, &b.Code, &b.Name, &b.Breed, &b.Active, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
