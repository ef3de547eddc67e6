package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/stocksim/internal/models"
)

// holdingsRepo reads the shares table, the stored projection of history.
type holdingsRepo struct{ pool *pgxpool.Pool }

func (r *holdingsRepo) ListByUser(ctx context.Context, userID string) ([]models.Holding, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, symbol, quantity FROM shares WHERE user_id=$1 ORDER BY symbol`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Holding{}
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.UserID, &h.Symbol, &h.Quantity); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
