package sows

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sow-breeding-records/internal/domain/breeding"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInactive     = errors.New("sow is not active")
)

// CacheInvalidator se avisa después de cada escritura (p.ej. el dashboard).
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

type Service struct {
	repo Repository
	inv  CacheInvalidator
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// WithInvalidator registra quién debe refrescar cachés de lectura tras escribir.
func (s *Service) WithInvalidator(inv CacheInvalidator) *Service {
	s.inv = inv
	return s
}

type RegisterInput struct {
	Code         string
	Name         string
	Origin       string
	Barn         string
	BirthDate    *time.Time
	RegisteredAt *time.Time
}

// Register da de alta una cerda. Toda cerda nueva entra en servicio con paridad 0.
func (s *Service) Register(ctx context.Context, userID string, in RegisterInput) (Sow, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return Sow{}, fmt.Errorf("%w: codigo is required", ErrInvalidInput)
	}

	now := s.now()
	registered := in.RegisteredAt
	if registered == nil {
		d := breeding.Date(now)
		registered = &d
	}

	sow := Sow{
		ID:           uuid.NewString(),
		Code:         code,
		Name:         strings.TrimSpace(in.Name),
		Status:       breeding.StatusInService,
		Parity:       0,
		Barn:         strings.TrimSpace(in.Barn),
		Origin:       strings.TrimSpace(in.Origin),
		RegisteredAt: registered,
		BirthDate:    in.BirthDate,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    strings.TrimSpace(userID),
	}

	if err := s.repo.Create(ctx, sow); err != nil {
		return Sow{}, err
	}
	s.changed(ctx)
	return sow, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Sow, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Sow{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Sow, error) {
	return s.repo.List(ctx, filter)
}

// UpdateInput es un PATCH: nil = no tocar.
// Status y Parity son la vía administrativa (p.ej. pasar a baja o cargar la
// paridad de una cerda que llega con partos previos). Los medios sólo se
// corrigen con el rebuild del historial.
type UpdateInput struct {
	Code      *string
	Name      *string
	Barn      *string
	Origin    *string
	BirthDate *time.Time
	Status    *breeding.Status
	Parity    *int
	Active    *bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Sow, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Sow{}, err
	}

	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code == "" {
			return Sow{}, fmt.Errorf("%w: codigo is required", ErrInvalidInput)
		}
		current.Code = code
	}
	if in.Name != nil {
		current.Name = strings.TrimSpace(*in.Name)
	}
	if in.Barn != nil {
		current.Barn = strings.TrimSpace(*in.Barn)
	}
	if in.Origin != nil {
		current.Origin = strings.TrimSpace(*in.Origin)
	}
	if in.BirthDate != nil {
		d := breeding.Date(*in.BirthDate)
		current.BirthDate = &d
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return Sow{}, fmt.Errorf("%w: unknown estado %q", ErrInvalidInput, *in.Status)
		}
		current.Status = *in.Status
	}
	if in.Parity != nil {
		if *in.Parity < 0 {
			return Sow{}, fmt.Errorf("%w: paridad must be >= 0", ErrInvalidInput)
		}
		current.Parity = *in.Parity
	}
	if in.Active != nil {
		current.Active = *in.Active
	}

	current.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, current); err != nil {
		return Sow{}, err
	}
	s.changed(ctx)
	return current, nil
}

// Deactivate es la baja lógica: la cerda nunca se borra.
func (s *Service) Deactivate(ctx context.Context, id string) (Sow, error) {
	off := false
	return s.Update(ctx, id, UpdateInput{Active: &off})
}

// TouchIncident anota la fecha de la última incidencia si es más reciente.
func (s *Service) TouchIncident(ctx context.Context, id string, at time.Time) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.LastIncidentAt != nil && !at.After(*current.LastIncidentAt) {
		return nil
	}
	current.LastIncidentAt = &at
	current.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, current); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *Service) changed(ctx context.Context) {
	if s.inv != nil {
		s.inv.Invalidate(ctx)
	}
}
