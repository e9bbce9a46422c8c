package audit

import (
	"context"
	"testing"

	"spyfi/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) SaveAuditLog(log domain.AuditLog) error {
	args := m.Called(log)
	return args.Error(0)
}

func (m *mockRepository) ListAuditLogs(limit int) ([]domain.AuditLog, error) {
	args := m.Called(limit)
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

func TestServiceLog(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	repo.On("SaveAuditLog", mock.MatchedBy(func(l domain.AuditLog) bool {
		return l.Action == domain.ActionMonitorStart && l.Target == "wlan0" && l.Details == "enum"
	})).Return(nil)

	err := svc.Log(context.Background(), domain.ActionMonitorStart, "wlan0", "enum")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestServiceLogRejectsInvalidAction(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	err := svc.Log(context.Background(), domain.AuditAction("BOGUS"), "wlan0", "")
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
	repo.AssertNotCalled(t, "SaveAuditLog", mock.Anything)
}

func TestServiceGetLogs(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	logs := []domain.AuditLog{{ID: 1, Action: domain.ActionAttackStart}}
	repo.On("ListAuditLogs", 10).Return(logs, nil)

	res, err := svc.GetLogs(context.Background(), 10)
	assert.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, domain.ActionAttackStart, res[0].Action)
}
