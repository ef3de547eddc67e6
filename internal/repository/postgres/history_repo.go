package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/stocksim/internal/models"
)

type historyRepo struct{ pool *pgxpool.Pool }

const historyColumns = `id, user_id, symbol, quantity, price, executed_at`

func (r *historyRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.HistoryEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+historyColumns+`
		   FROM history
		  WHERE user_id=$1
		  ORDER BY executed_at DESC, id DESC
		  LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return scanHistory(rows)
}

func scanHistory(rows pgx.Rows) ([]models.HistoryEntry, error) {
	defer rows.Close()

	out := []models.HistoryEntry{}
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Symbol, &e.Quantity, &e.Price, &e.ExecutedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
