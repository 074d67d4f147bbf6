package postgres

import (
	"context"
	"database/sql"

	"sow-breeding-records/internal/domain/events"
)

// Store agrupa los repos que comparten transacción (cerdas y eventos).
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Sows() *SowsRepo {
	return &SowsRepo{db: s.db}
}

func (s *Store) Events() *EventsRepo {
	return &EventsRepo{db: s.db}
}

// WithinTx abre una transacción; dentro, la cerda se lee con FOR UPDATE.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx events.TxRepos) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	err = fn(ctx, events.TxRepos{
		Sows:   &SowsRepo{db: tx, forUpdate: true},
		Events: &EventsRepo{db: tx},
	})
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
