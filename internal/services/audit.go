package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/baharkarakas/stocksim/internal/models"
	repo "github.com/baharkarakas/stocksim/internal/repository"
	"github.com/baharkarakas/stocksim/internal/worker"
)

// Auditor writes audit records off the request path.
type Auditor struct {
	r  repo.AuditLogs
	wp *worker.Pool
}

// NewAuditor returns an Auditor; with a nil pool records are written inline.
func NewAuditor(r repo.AuditLogs, wp *worker.Pool) *Auditor {
	return &Auditor{r: r, wp: wp}
}

func (a *Auditor) Record(entityType, entityID, action string, details map[string]any) {
	if a == nil || a.r == nil {
		return
	}
	l := models.AuditLog{
		EntityType: entityType,
		EntityID:   &entityID,
		Action:     action,
		Details:    details,
	}
	job := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.r.Create(ctx, l); err != nil {
			slog.Error("audit log", "action", action, "entity_id", entityID, "err", err)
		}
	}
	if a.wp == nil {
		job()
		return
	}
	a.wp.Submit(job)
}
