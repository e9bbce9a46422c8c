// Package storage implements the audit/event log adapter: a GORM model over
// SQLite, carrying forward the teacher's WAL-mode pragmas but scoped to a
// single append-only events table instead of a device-fingerprinting store.
package storage

import (
	"context"
	"time"

	"spyfi/internal/core/domain"
	"spyfi/internal/core/ports"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func timeFromUnix(sec int64) time.Time { return time.Unix(sec, 0).UTC() }

// SQLiteAdapter implements ports.Storage using GORM and SQLite.
type SQLiteAdapter struct {
	db *gorm.DB
}

// AuditLogModel is the GORM model backing domain.AuditLog.
type AuditLogModel struct {
	ID        uint   `gorm:"primaryKey"`
	Action    string `gorm:"index"`
	Target    string `gorm:"index"`
	Details   string
	Timestamp int64 `gorm:"index"` // unix seconds, UTC
}

func toModel(l domain.AuditLog) AuditLogModel {
	return AuditLogModel{
		ID:        l.ID,
		Action:    string(l.Action),
		Target:    l.Target,
		Details:   l.Details,
		Timestamp: l.Timestamp.Unix(),
	}
}

func fromModel(m AuditLogModel) domain.AuditLog {
	return domain.AuditLog{
		ID:        m.ID,
		Action:    domain.AuditAction(m.Action),
		Target:    m.Target,
		Details:   m.Details,
		Timestamp: timeFromUnix(m.Timestamp),
	}
}

// NewSQLiteAdapter opens (creating if absent) the SQLite database at path,
// migrates the events schema, and tunes it for a single-writer/many-reader
// workload the way the teacher's device store does.
func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&AuditLogModel{}); err != nil {
		return nil, err
	}

	// WAL mode allows simultaneous readers and one writer; entries are
	// appended by the CLI subcommands through the audit service.
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA busy_timeout=5000;")
	db.Exec("PRAGMA synchronous=NORMAL;")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_audit_logs_action ON audit_log_models(action)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_audit_logs_timestamp ON audit_log_models(timestamp)")

	return &SQLiteAdapter{db: db}, nil
}

// SaveAuditLog appends one entry.
func (a *SQLiteAdapter) SaveAuditLog(l domain.AuditLog) error {
	model := toModel(l)
	return a.db.WithContext(context.Background()).Create(&model).Error
}

// ListAuditLogs returns the most recent entries, newest first.
func (a *SQLiteAdapter) ListAuditLogs(limit int) ([]domain.AuditLog, error) {
	var models []AuditLogModel
	if err := a.db.WithContext(context.Background()).Order("timestamp desc").Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}
	logs := make([]domain.AuditLog, len(models))
	for i, m := range models {
		logs[i] = fromModel(m)
	}
	return logs, nil
}

// Close releases the underlying database connection.
func (a *SQLiteAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ ports.Storage = (*SQLiteAdapter)(nil)
