package storage

import (
	"testing"

	"spyfi/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupInMemoryDB(t *testing.T) *SQLiteAdapter {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&AuditLogModel{})
	require.NoError(t, err)

	return &SQLiteAdapter{db: db}
}

func TestSaveAndListAuditLogs(t *testing.T) {
	adapter := setupInMemoryDB(t)

	l1, err := domain.NewAuditLog(domain.ActionMonitorStart, "wlan0", "monitor mode enabled")
	require.NoError(t, err)
	l2, err := domain.NewAuditLog(domain.ActionHandshakeCaptured, "AA:BB:CC:DD:EE:FF", "ssid=TestNet")
	require.NoError(t, err)

	require.NoError(t, adapter.SaveAuditLog(*l1))
	require.NoError(t, adapter.SaveAuditLog(*l2))

	logs, err := adapter.ListAuditLogs(10)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestListAuditLogsRespectsLimit(t *testing.T) {
	adapter := setupInMemoryDB(t)

	for i := 0; i < 5; i++ {
		l, err := domain.NewAuditLog(domain.ActionChannelSet, "wlan0", "channel change")
		require.NoError(t, err)
		require.NoError(t, adapter.SaveAuditLog(*l))
	}

	logs, err := adapter.ListAuditLogs(2)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestNewAuditLogRejectsInvalidAction(t *testing.T) {
	_, err := domain.NewAuditLog(domain.AuditAction("BOGUS"), "wlan0", "")
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
}
