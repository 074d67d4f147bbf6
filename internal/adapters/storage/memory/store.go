package memory

import (
	"context"
	"sync"

	"sow-breeding-records/internal/domain/events"
	"sow-breeding-records/internal/domain/sows"
)

// state son las tablas que comparten transacción: cerdas y eventos.
type state struct {
	sows   map[string]sows.Sow
	events map[string]events.Event
}

func newState() *state {
	return &state{
		sows:   make(map[string]sows.Sow),
		events: make(map[string]events.Event),
	}
}

func (s *state) clone() *state {
	c := &state{
		sows:   make(map[string]sows.Sow, len(s.sows)),
		events: make(map[string]events.Event, len(s.events)),
	}
	for k, v := range s.sows {
		c.sows[k] = v
	}
	for k, v := range s.events {
		c.events[k] = v
	}
	return c
}

// Store guarda cerdas y eventos en memoria. WithinTx trabaja sobre una copia
// y la publica sólo si fn termina sin error; mientras tanto bloquea al resto.
type Store struct {
	mu sync.RWMutex
	st *state
}

func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) Sows() sows.Repository {
	return &sowRepo{store: s}
}

func (s *Store) Events() events.Repository {
	return &eventRepo{store: s}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx events.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.st.clone()
	err := fn(ctx, events.TxRepos{
		Sows:   &sowRepo{store: s, tx: staged},
		Events: &eventRepo{store: s, tx: staged},
	})
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = staged
	return nil
}

// view ejecuta fn sobre el estado: el de la transacción si lo hay, o el
// publicado bajo el lock correspondiente.
func (s *Store) view(tx *state, write bool, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	if write {
		s.mu.Lock()
		defer s.mu.Unlock()
	} else {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	return fn(s.st)
}
