package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/stocksim/internal/models"
	"github.com/baharkarakas/stocksim/internal/repository"
)

type ledgerRepo struct{ pool *pgxpool.Pool }

// WithTx runs fn inside one database transaction. The user row is locked
// with SELECT ... FOR UPDATE by LockUser, so read committed is enough to
// serialize trades of the same user.
func (r *ledgerRepo) WithTx(ctx context.Context, fn func(repository.LedgerTx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	if err := fn(&ledgerTx{tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

type ledgerTx struct{ tx pgx.Tx }

func (t *ledgerTx) LockUser(ctx context.Context, userID string) (models.User, error) {
	var u models.User
	err := t.tx.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1 FOR UPDATE`, userID,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Cash, &u.CreatedAt)
	return u, mapErr(err)
}

func (t *ledgerTx) SetCash(ctx context.Context, userID string, cash decimal.Decimal) error {
	tag, err := t.tx.Exec(ctx, `UPDATE users SET cash=$2 WHERE id=$1`, userID, cash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows)
	}
	return nil
}

func (t *ledgerTx) AppendHistory(ctx context.Context, e models.HistoryEntry) (models.HistoryEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := t.tx.Exec(ctx,
		`INSERT INTO history(id, user_id, symbol, quantity, price, executed_at)
		 VALUES($1,$2,$3,$4,$5,$6)`,
		e.ID, e.UserID, e.Symbol, e.Quantity, e.Price, e.ExecutedAt,
	)
	return e, mapErr(err)
}

func (t *ledgerTx) UserHistory(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	rows, err := t.tx.Query(ctx,
		`SELECT `+historyColumns+`
		   FROM history
		  WHERE user_id=$1
		  ORDER BY executed_at, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return scanHistory(rows)
}

func (t *ledgerTx) UpsertHoldings(ctx context.Context, hs []models.Holding) error {
	if len(hs) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, h := range hs {
		b.Queue(
			`INSERT INTO shares(user_id, symbol, quantity) VALUES($1,$2,$3)
			 ON CONFLICT (user_id, symbol) DO UPDATE SET quantity = EXCLUDED.quantity`,
			h.UserID, h.Symbol, h.Quantity,
		)
	}
	br := t.tx.SendBatch(ctx, b)
	for range hs {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return err
		}
	}
	return br.Close()
}
