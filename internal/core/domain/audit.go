package domain

import (
	"errors"
	"time"
)

// AuditAction identifies a control-plane command or lifecycle transition
// recorded in the audit log. It never records capture *state* itself, only
// that an action occurred, so the log stays outside the cross-process
// capture-state persistence this system deliberately avoids.
type AuditAction string

const (
	ActionMonitorStart      AuditAction = "MONITOR_START"
	ActionMonitorEnd        AuditAction = "MONITOR_END"
	ActionChannelSet        AuditAction = "CHANNEL_SET"
	ActionSweepEnabled      AuditAction = "SWEEP_ENABLED"
	ActionDeauthSent        AuditAction = "DEAUTH_SENT"
	ActionHandshakeCaptured AuditAction = "HANDSHAKE_CAPTURED"
	ActionAttackStart       AuditAction = "ATTACK_START"
	ActionAttackAbort       AuditAction = "ATTACK_ABORT"
	ActionAttackFound       AuditAction = "ATTACK_FOUND"
	ActionAttackExhausted   AuditAction = "ATTACK_EXHAUSTED"
	ActionPermissionError   AuditAction = "PERMISSION_ERROR"
)

// Domain Errors
var (
	ErrInvalidAction = errors.New("invalid audit action")
	ErrMissingTarget = errors.New("audit target is required")
)

// AuditLog is a pure domain entity, decoupled from persistence (GORM) or
// transport (JSON) constraints where possible, although JSON tags are kept
// for API compatibility.
type AuditLog struct {
	ID        uint        `json:"id"`
	Action    AuditAction `json:"action"`
	Target    string      `json:"target"` // bssid, iface, or attack session id
	Details   string      `json:"details"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewAuditLog is the designated factory for creating valid AuditLog entities.
func NewAuditLog(action AuditAction, target, details string) (*AuditLog, error) {
	if !isValidAction(action) {
		return nil, ErrInvalidAction
	}
	if target == "" {
		return nil, ErrMissingTarget
	}
	return &AuditLog{
		Action:    action,
		Target:    target,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}, nil
}

// isValidAction encapsulates the validation logic for audit actions.
func isValidAction(action AuditAction) bool {
	switch action {
	case ActionMonitorStart, ActionMonitorEnd, ActionChannelSet, ActionSweepEnabled,
		ActionDeauthSent, ActionHandshakeCaptured, ActionAttackStart, ActionAttackAbort,
		ActionAttackFound, ActionAttackExhausted, ActionPermissionError:
		return true
	}
	return false
}

// ARCHITECTURAL NOTE: GORM tags were deliberately left off this type; the
// storage adapter maps it to its own model so persistence metadata never
// leaks into the domain.
