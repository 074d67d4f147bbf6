package boars

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("boar not found")
	ErrDuplicateCode = errors.New("boar code already exists")
)

type Repository interface {
	Create(ctx context.Context, b Boar) error
	Update(ctx context.Context, b Boar) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Boar, error)
	// List ordena por código.
	List(ctx context.Context, activeOnly bool) ([]Boar, error)
}
