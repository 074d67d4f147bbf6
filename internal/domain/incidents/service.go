package incidents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaxTextLength = 500
	DefaultDays   = 30
)

var ErrInvalidInput = errors.New("invalid input")

// SowToucher actualiza ultima_incidencia_fecha de la cerda.
type SowToucher interface {
	TouchIncident(ctx context.Context, sowID string, at time.Time) error
}

type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

type Service struct {
	repo Repository
	sows SowToucher
	inv  CacheInvalidator
	now  func() time.Time
}

func NewService(repo Repository, sows SowToucher) *Service {
	return &Service{repo: repo, sows: sows, now: time.Now}
}

func (s *Service) WithInvalidator(inv CacheInvalidator) *Service {
	s.inv = inv
	return s
}

type CreateInput struct {
	At   *time.Time // nil = ahora
	Text string
}

// Create registra la incidencia y marca la cerda. Falla si la cerda no existe.
func (s *Service) Create(ctx context.Context, sowID, userID string, in CreateInput) (Incident, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return Incident{}, fmt.Errorf("%w: texto is required", ErrInvalidInput)
	}
	if len([]rune(text)) > MaxTextLength {
		return Incident{}, fmt.Errorf("%w: texto must be at most %d characters", ErrInvalidInput, MaxTextLength)
	}

	now := s.now()
	at := now
	if in.At != nil {
		at = *in.At
	}

	i := Incident{
		ID:        uuid.NewString(),
		SowID:     strings.TrimSpace(sowID),
		UserID:    strings.TrimSpace(userID),
		At:        at,
		Text:      text,
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return Incident{}, err
	}
	// La marca va después del alta; si la cerda no existe se deshace el alta.
	if err := s.sows.TouchIncident(ctx, i.SowID, at); err != nil {
		if derr := s.repo.Delete(ctx, i.ID); derr != nil {
			return Incident{}, errors.Join(err, derr)
		}
		return Incident{}, err
	}
	s.changed(ctx)
	return i, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Incident, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Incident{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListBySow(ctx context.Context, sowID string) ([]Incident, error) {
	return s.repo.ListBySow(ctx, sowID)
}

// Recent lista las incidencias de los últimos days días (DefaultDays si days <= 0).
func (s *Service) Recent(ctx context.Context, days int, openOnly bool) ([]Incident, error) {
	if days <= 0 {
		days = DefaultDays
	}
	since := s.now().AddDate(0, 0, -days)
	return s.repo.ListSince(ctx, since, openOnly)
}

// SetResolved marca o desmarca la incidencia como resuelta.
func (s *Service) SetResolved(ctx context.Context, id string, resolved bool) (Incident, error) {
	i, err := s.GetByID(ctx, id)
	if err != nil {
		return Incident{}, err
	}
	i.Resolved = resolved
	if err := s.repo.Update(ctx, i); err != nil {
		return Incident{}, err
	}
	s.changed(ctx)
	return i, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
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
