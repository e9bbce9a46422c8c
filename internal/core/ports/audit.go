package ports

import (
	"context"

	"spyfi/internal/core/domain"
)

// AuditService records control-plane actions and attack lifecycle events.
type AuditService interface {
	Log(ctx context.Context, action domain.AuditAction, target, details string) error
	GetLogs(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

// AuditRepository is the persistence half of AuditService.
type AuditRepository interface {
	SaveAuditLog(log domain.AuditLog) error
	ListAuditLogs(limit int) ([]domain.AuditLog, error)
}
