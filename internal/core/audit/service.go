// Package audit implements ports.AuditService: the thin layer between the
// control plane and the audit repository that applies domain.NewAuditLog's
// validation before anything is persisted.
package audit

import (
	"context"

	"spyfi/internal/core/domain"
	"spyfi/internal/core/ports"
)

// Service records control-plane actions through repo.
type Service struct {
	repo ports.AuditRepository
}

// NewService builds an audit Service backed by repo.
func NewService(repo ports.AuditRepository) *Service {
	return &Service{repo: repo}
}

// Log validates and persists one audit entry. ctx is accepted for interface
// symmetry with other services but the repository itself is synchronous.
func (s *Service) Log(ctx context.Context, action domain.AuditAction, target, details string) error {
	entry, err := domain.NewAuditLog(action, target, details)
	if err != nil {
		return err
	}
	return s.repo.SaveAuditLog(*entry)
}

// GetLogs returns the most recent limit entries, newest first.
func (s *Service) GetLogs(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	return s.repo.ListAuditLogs(limit)
}

var _ ports.AuditService = (*Service)(nil)
