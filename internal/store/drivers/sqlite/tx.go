package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/summitlog/summitlog/internal/store"
)

// txStore is a Tx-scoped Store. Every repo accessor runs against the
// transaction; nested transactions are rejected.
type txStore struct {
	tx   *sql.Tx
	done bool
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	return t.tx.Commit()
}

func (t *txStore) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	return t.tx.Rollback()
}

func (t *txStore) Users() store.Users               { return &usersRepo{db: t.tx} }
func (t *txStore) OTPs() store.OTPs                 { return &otpsRepo{db: t.tx} }
func (t *txStore) ResetTickets() store.ResetTickets { return &resetTicketsRepo{db: t.tx} }
func (t *txStore) Achievements() store.Achievements { return &achievementsRepo{db: t.tx} }
func (t *txStore) Skills() store.Skills             { return &skillsRepo{db: t.tx} }
func (t *txStore) Goals() store.Goals               { return &goalsRepo{db: t.tx} }
func (t *txStore) Categories() store.Categories     { return &categoriesRepo{db: t.tx} }
func (t *txStore) Media() store.Media               { return &mediaRepo{db: t.tx} }
func (t *txStore) Stats() store.Stats               { return &statsRepo{db: t.tx} }

func (t *txStore) ApplyMigrations() error {
	return errors.New("sqlite: migrations cannot run inside a transaction")
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, errors.New("sqlite: nested transactions are not supported")
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Already inside a transaction; run fn against it.
	return fn(t)
}

func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }
