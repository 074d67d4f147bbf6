package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sow-breeding-records/internal/domain/boars"
	"sow-breeding-records/internal/domain/breeding"
	"sow-breeding-records/internal/domain/events/details"
	"sow-breeding-records/internal/domain/sows"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const MaxNotesLength = 500

var (
	ErrInvalidInput = errors.New("invalid input")
)

// BoarLookup resuelve el verraco de una cubrición.
type BoarLookup interface {
	GetActive(ctx context.Context, id string) (boars.Boar, error)
}

// CacheInvalidator se avisa después de cada escritura confirmada.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

type Service struct {
	repo    Repository
	tx      Transactor
	boars   BoarLookup
	inv     CacheInvalidator
	metrics Recorder
	log     *zap.Logger
	now     func() time.Time
}

func NewService(repo Repository, tx Transactor, boarLookup BoarLookup, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:  repo,
		tx:    tx,
		boars: boarLookup,
		log:   log,
		now:   time.Now,
	}
}

func (s *Service) WithInvalidator(inv CacheInvalidator) *Service {
	s.inv = inv
	return s
}

func (s *Service) WithMetrics(m Recorder) *Service {
	s.metrics = m
	return s
}

type RecordInput struct {
	Kind  breeding.EventKind
	Date  *time.Time // nil = hoy
	Notes string
	Data  details.Payload // nil = payload vacío del tipo
}

// RecordResult devuelve el evento creado y la cerda tal como quedó.
type RecordResult struct {
	Event Event
	Sow   sows.Sow
}

// Record registra un evento y aplica su transición en una sola transacción.
func (s *Service) Record(ctx context.Context, sowID, userID string, in RecordInput) (RecordResult, error) {
	res, err := s.record(ctx, sowID, userID, in)
	if err != nil {
		s.rejected(in.Kind, err)
		s.log.Warn("event rejected",
			zap.String("sow_id", sowID),
			zap.String("tipo_evento", string(in.Kind)),
			zap.Error(err),
		)
		return RecordResult{}, err
	}

	if s.metrics != nil {
		s.metrics.EventRecorded(string(res.Event.Kind))
	}
	s.changed(ctx)
	s.log.Info("event recorded",
		zap.String("sow_id", res.Sow.ID),
		zap.String("event_id", res.Event.ID),
		zap.String("tipo_evento", string(res.Event.Kind)),
		zap.String("estado", string(res.Sow.Status)),
		zap.Int("paridad", res.Sow.Parity),
	)
	return res, nil
}

func (s *Service) record(ctx context.Context, sowID, userID string, in RecordInput) (RecordResult, error) {
	sowID = strings.TrimSpace(sowID)
	userID = strings.TrimSpace(userID)
	if sowID == "" {
		return RecordResult{}, sows.ErrNotFound
	}
	if userID == "" {
		return RecordResult{}, fmt.Errorf("%w: usuario_id is required", ErrInvalidInput)
	}
	if !in.Kind.Valid() {
		return RecordResult{}, fmt.Errorf("%w: unknown tipo_evento %q", ErrInvalidInput, in.Kind)
	}

	notes := strings.TrimSpace(in.Notes)
	if err := validateNotes(notes); err != nil {
		return RecordResult{}, err
	}

	data := in.Data
	if data == nil {
		data = details.Empty(in.Kind)
	}
	if data.Kind() != in.Kind {
		return RecordResult{}, fmt.Errorf("%w: datos do not match tipo_evento %q", ErrInvalidInput, in.Kind)
	}
	if err := data.Validate(); err != nil {
		return RecordResult{}, err
	}

	// La cubrición guarda una copia del verraco, que debe existir y estar activo.
	if m, ok := data.(details.Mating); ok {
		b, err := s.boars.GetActive(ctx, strings.TrimSpace(m.BoarID))
		if err != nil {
			return RecordResult{}, err
		}
		data = details.Mating{BoarID: b.ID, BoarCode: b.Code, BoarName: b.Name}
	}
	if f, ok := data.(details.Farrowing); ok {
		// El destete de la camada se anota después, nunca desde el alta del parto.
		f.Weaned, f.WeaningID = nil, ""
		data = f.Normalize()
	}

	now := s.now()
	date := breeding.Date(now)
	if in.Date != nil {
		date = breeding.Date(*in.Date)
	}

	e := Event{
		ID:        uuid.NewString(),
		SowID:     sowID,
		Kind:      in.Kind,
		Date:      date,
		Data:      data,
		Notes:     notes,
		UserID:    userID,
		CreatedAt: now,
	}

	var out RecordResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx TxRepos) error {
		sow, err := tx.Sows.GetByID(ctx, sowID)
		if err != nil {
			return err
		}
		if !sow.Active {
			return sows.ErrInactive
		}

		var (
			litter    *breeding.Litter
			farrowing Event
		)
		if w, ok := e.Data.(details.Weaning); ok {
			farrowing, err = s.farrowingFor(ctx, tx.Events, sowID, w.FarrowingID)
			if err != nil {
				return err
			}
			f, _ := farrowing.Farrowing()
			if f.WeaningID != "" {
				return fmt.Errorf("%w: parto %s already weaned by %s", ErrInvalidInput, farrowing.ID, f.WeaningID)
			}
			if e.Date.Before(farrowing.Date) {
				return fmt.Errorf("%w: destete dated before its parto (%s)", ErrInvalidInput, farrowing.Date.Format(breeding.DateLayout))
			}
			litter = f.Litter(w.PigletsWeaned)
			w.FarrowingID = farrowing.ID
			e.Data = w
		}

		next, err := breeding.Apply(sow.Reproductive(), e.Kind, litter)
		if err != nil {
			return err
		}

		if err := tx.Events.Create(ctx, e); err != nil {
			return err
		}

		if litter != nil {
			f, _ := farrowing.Farrowing()
			farrowing.Data = f.WithWeaning(litter.Weaned, e.ID)
			if err := tx.Events.Update(ctx, farrowing); err != nil {
				return err
			}
		}

		if breeding.Next(e.Kind).Moves {
			sow.SetReproductive(next)
			sow.UpdatedAt = now
			if err := tx.Sows.Update(ctx, sow); err != nil {
				return err
			}
		}

		out = RecordResult{Event: e, Sow: sow}
		return nil
	})
	if err != nil {
		return RecordResult{}, err
	}
	return out, nil
}

// farrowingFor busca el parto de la camada destetada: el indicado, o el más reciente.
func (s *Service) farrowingFor(ctx context.Context, repo Repository, sowID, farrowingID string) (Event, error) {
	farrowingID = strings.TrimSpace(farrowingID)
	if farrowingID != "" {
		ev, err := repo.GetByID(ctx, farrowingID)
		if errors.Is(err, ErrNotFound) {
			return Event{}, fmt.Errorf("%w: parto_id %s not found", ErrInvalidInput, farrowingID)
		}
		if err != nil {
			return Event{}, err
		}
		if _, ok := ev.Farrowing(); !ok || ev.SowID != sowID {
			return Event{}, fmt.Errorf("%w: parto_id %s is not a farrowing of this sow", ErrInvalidInput, farrowingID)
		}
		return ev, nil
	}

	items, err := repo.ListBySow(ctx, sowID, ListFilter{
		Kinds: []breeding.EventKind{breeding.KindFarrowing},
		Limit: 1,
	})
	if err != nil {
		return Event{}, err
	}
	if len(items) == 0 {
		return Event{}, breeding.ErrNoFarrowing
	}
	return items[0], nil
}

func (s *Service) GetByID(ctx context.Context, sowID, id string) (Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Event{}, ErrNotFound
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if e.SowID != sowID {
		return Event{}, ErrNotFound
	}
	return e, nil
}

func (s *Service) ListBySow(ctx context.Context, sowID string, filter ListFilter) ([]Event, error) {
	return s.repo.ListBySow(ctx, sowID, filter)
}

// UpdateInput sólo permite corregir fecha y notas; tipo y datos no se editan.
type UpdateInput struct {
	Date  *time.Time
	Notes *string
}

// Update corrige un evento. No recalcula el estado: para eso está Rebuild.
func (s *Service) Update(ctx context.Context, sowID, id string, in UpdateInput) (Event, error) {
	e, err := s.GetByID(ctx, sowID, id)
	if err != nil {
		return Event{}, err
	}

	if in.Date != nil {
		e.Date = breeding.Date(*in.Date)
		if err := s.checkLitterOrder(ctx, e); err != nil {
			return Event{}, err
		}
	}
	if in.Notes != nil {
		notes := strings.TrimSpace(*in.Notes)
		if err := validateNotes(notes); err != nil {
			return Event{}, err
		}
		e.Notes = notes
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return Event{}, err
	}
	s.changed(ctx)
	return e, nil
}

// checkLitterOrder impide que una corrección de fecha deje un destete antes de su parto.
func (s *Service) checkLitterOrder(ctx context.Context, e Event) error {
	switch d := e.Data.(type) {
	case details.Weaning:
		if d.FarrowingID == "" {
			return nil
		}
		farrowing, err := s.repo.GetByID(ctx, d.FarrowingID)
		if err != nil {
			return err
		}
		if e.Date.Before(farrowing.Date) {
			return fmt.Errorf("%w: destete dated before its parto (%s)", ErrInvalidInput, farrowing.Date.Format(breeding.DateLayout))
		}
	case details.Farrowing:
		if d.WeaningID == "" {
			return nil
		}
		weaning, err := s.repo.GetByID(ctx, d.WeaningID)
		if err != nil {
			return err
		}
		if weaning.Date.Before(e.Date) {
			return fmt.Errorf("%w: parto dated after its destete (%s)", ErrInvalidInput, weaning.Date.Format(breeding.DateLayout))
		}
	}
	return nil
}

// Rebuild recalcula paridad y medios de la cerda desde su historial completo.
// El estado no se toca: puede haber sido fijado a mano.
func (s *Service) Rebuild(ctx context.Context, sowID string) (sows.Sow, error) {
	var out sows.Sow
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx TxRepos) error {
		sow, err := tx.Sows.GetByID(ctx, sowID)
		if err != nil {
			return err
		}

		items, err := tx.Events.ListBySow(ctx, sowID, ListFilter{})
		if err != nil {
			return err
		}
		history := make([]breeding.HistoryEvent, 0, len(items))
		for _, e := range items {
			history = append(history, e.History())
		}

		derived, err := breeding.Rebuild(history)
		if err != nil {
			return err
		}

		sow.Parity = derived.Parity
		sow.Averages = derived.Averages
		sow.UpdatedAt = s.now()
		if err := tx.Sows.Update(ctx, sow); err != nil {
			return err
		}
		out = sow
		return nil
	})
	if err != nil {
		return sows.Sow{}, err
	}

	s.changed(ctx)
	s.log.Info("sow rebuilt",
		zap.String("sow_id", out.ID),
		zap.Int("paridad", out.Parity),
	)
	return out, nil
}

func validateNotes(notes string) error {
	if len([]rune(notes)) > MaxNotesLength {
		return fmt.Errorf("%w: notas must be at most %d characters", ErrInvalidInput, MaxNotesLength)
	}
	return nil
}

func (s *Service) changed(ctx context.Context) {
	if s.inv != nil {
		s.inv.Invalidate(ctx)
	}
}

func (s *Service) rejected(kind breeding.EventKind, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.EventRejected(string(kind), reason(err))
}

// reason agrupa errores en etiquetas de baja cardinalidad.
func reason(err error) string {
	switch {
	case errors.Is(err, breeding.ErrNoFarrowing):
		return "no_farrowing"
	case errors.Is(err, sows.ErrNotFound):
		return "sow_not_found"
	case errors.Is(err, sows.ErrInactive):
		return "sow_inactive"
	case errors.Is(err, boars.ErrNotFound), errors.Is(err, boars.ErrInactive):
		return "boar"
	case errors.Is(err, ErrInvalidInput), errors.Is(err, details.ErrInvalidPayload):
		return "invalid"
	default:
		return "internal"
	}
}
