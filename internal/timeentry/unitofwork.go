// AngelaMos | 2026
// unitofwork.go

package timeentry

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/calendar"
	"github.com/gorjessbbyx3/LawCRMpro-sub000/internal/core"
)

type EventWriter interface {
	Create(ctx context.Context, e *calendar.Event) error
}

// Store is the set of repositories bound to one transaction.
type Store struct {
	Entries Repository
	Events  EventWriter
}

// UnitOfWork runs fn against a Store whose writes commit together or not
// at all. A non-nil error from fn rolls everything back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(Store) error) error
}

type txUnitOfWork struct {
	db core.TxBeginner
}

func NewUnitOfWork(db core.TxBeginner) UnitOfWork {
	return &txUnitOfWork{db: db}
}

func (u *txUnitOfWork) Do(ctx context.Context, fn func(Store) error) error {
	return core.InTx(ctx, u.db, func(tx *sqlx.Tx) error {
		return fn(Store{
			Entries: NewRepository(tx),
			Events:  calendar.NewRepository(tx),
		})
	})
}
