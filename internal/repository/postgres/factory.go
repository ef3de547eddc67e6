package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/baharkarakas/stocksim/internal/repository"
)

func NewRepositories(pool *pgxpool.Pool) repo.Repositories {
	return repo.Repositories{
		Users:     &usersRepo{pool},
		History:   &historyRepo{pool},
		Holdings:  &holdingsRepo{pool},
		AuditLogs: &auditLogsRepo{pool},
		Ledger:    &ledgerRepo{pool},
	}
}
