package boars

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInactive     = errors.New("boar is not active")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateInput struct {
	Code  string
	Name  string
	Breed string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Boar, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return Boar{}, fmt.Errorf("%w: codigo is required", ErrInvalidInput)
	}

	now := s.now()
	b := Boar{
		ID:        uuid.NewString(),
		Code:      code,
		Name:      strings.TrimSpace(in.Name),
		Breed:     strings.TrimSpace(in.Breed),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return Boar{}, err
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Boar, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Boar{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetActive devuelve el verraco sólo si existe y está activo.
func (s *Service) GetActive(ctx context.Context, id string) (Boar, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return Boar{}, err
	}
	if !b.Active {
		return Boar{}, ErrInactive
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]Boar, error) {
	return s.repo.List(ctx, activeOnly)
}

type UpdateInput struct {
	Code   *string
	Name   *string
	Breed  *string
	Active *bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Boar, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return Boar{}, err
	}
	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code == "" {
			return Boar{}, fmt.Errorf("%w: codigo is required", ErrInvalidInput)
		}
		b.Code = code
	}
	if in.Name != nil {
		b.Name = strings.TrimSpace(*in.Name)
	}
	if in.Breed != nil {
		b.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Active != nil {
		b.Active = *in.Active
	}
	b.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, b); err != nil {
		return Boar{}, err
	}
	return b, nil
}

// Delete borra el verraco. Las cubriciones ya registradas conservan código y nombre.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
