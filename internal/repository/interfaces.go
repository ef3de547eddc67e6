package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/baharkarakas/stocksim/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// Repositories bundles one implementation of every store interface.
type Repositories struct {
	Users     Users
	History   History
	Holdings  Holdings
	AuditLogs AuditLogs
	Ledger    Ledger
}

type Users interface {
	// Create fails with ErrConflict when the username is already taken.
	Create(ctx context.Context, username, passwordHash string, cash decimal.Decimal) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
}

type History interface {
	// ListByUser returns the user's entries newest first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.HistoryEntry, error)
}

type Holdings interface {
	ListByUser(ctx context.Context, userID string) ([]models.Holding, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}

// Ledger runs a unit of work atomically: either every write made through the
// LedgerTx is committed, or none is.
type Ledger interface {
	WithTx(ctx context.Context, fn func(LedgerTx) error) error
}

// LedgerTx is the set of statements a buy, sell or reconciliation needs
// inside one transaction.
type LedgerTx interface {
	// LockUser reads the user row and holds it until the transaction ends.
	LockUser(ctx context.Context, userID string) (models.User, error)
	SetCash(ctx context.Context, userID string, cash decimal.Decimal) error
	AppendHistory(ctx context.Context, e models.HistoryEntry) (models.HistoryEntry, error)
	// UserHistory returns all of the user's entries oldest first.
	UserHistory(ctx context.Context, userID string) ([]models.HistoryEntry, error)
	UpsertHoldings(ctx context.Context, hs []models.Holding) error
}
