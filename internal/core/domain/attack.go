package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MaxThreads is the hard cap on Attack Coordinator worker threads, per §4.7.
const MaxThreads = 150

// RecentAttemptsCap bounds how many of the most recent candidates are kept
// for front-end display.
const RecentAttemptsCap = 37 // one JOB_SIZE batch's worth

var (
	ErrInvalidThreadCount = errors.New("thread count must be between 1 and 150")
	ErrWordlistOpen       = errors.New("could not open wordlist")
)

// AttackInfo tracks one dictionary-attack session against a captured
// handshake. Created on demand per BSSID; may be re-attacked (its mutable
// counters reset) after an abort.
type AttackInfo struct {
	SessionID string
	Hs        Handshake
	Wordlist  string
	Threads   int

	SizeOfWordlist int64 // 0 means "still loading" for file-mode wordlists
	NumOfAttempts  int64
	RecentAttempts []string

	Password *string
	IsAttacking bool
	Exhausted   bool

	TStart time.Time
	TEnd   time.Time
}

// NewAttackInfo validates threads and constructs a fresh, not-yet-started
// attack session.
func NewAttackInfo(hs Handshake, wordlist string, threads int) (*AttackInfo, error) {
	if threads < 1 || threads > MaxThreads {
		return nil, ErrInvalidThreadCount
	}
	return &AttackInfo{
		SessionID: uuid.New().String(),
		Hs:        hs,
		Wordlist:  wordlist,
		Threads:   threads,
	}, nil
}

// Reset clears the mutable progress counters so the session can be
// re-attacked after an abort, keeping the handshake/wordlist/threads intact.
func (a *AttackInfo) Reset() {
	a.NumOfAttempts = 0
	a.RecentAttempts = nil
	a.Password = nil
	a.IsAttacking = false
	a.Exhausted = false
	a.TStart = time.Time{}
	a.TEnd = time.Time{}
}

// RecordBatch folds a dispatched batch into the progress counters, capping
// RecentAttempts at RecentAttemptsCap for front-end display.
func (a *AttackInfo) RecordBatch(batch []string) {
	a.NumOfAttempts += int64(len(batch))
	a.RecentAttempts = batch
	if len(a.RecentAttempts) > RecentAttemptsCap {
		a.RecentAttempts = a.RecentAttempts[len(a.RecentAttempts)-RecentAttemptsCap:]
	}
}
