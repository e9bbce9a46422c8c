// Package attack implements the Attack Coordinator (C7): a bounded worker
// pool that streams candidate passphrases against one captured handshake,
// reporting progress and results over the control bus.
package attack

import (
	"sync"

	"spyfi/internal/core/control"
	"spyfi/internal/core/domain"
	"spyfi/internal/core/ports"
	"spyfi/internal/telemetry"
)

// JobSize is the number of candidates dispatched to a worker per batch.
// It equals domain.RecentAttemptsCap: a batch is exactly one "recent
// attempts" window.
const JobSize = domain.RecentAttemptsCap

// workJob is what the coordinator sends to a worker goroutine. Termination
// is signaled by closing the job channel rather than by a sentinel value:
// the coordinator's own goroutine is the channel's only sender, so closing
// it is always safe and, unlike a best-effort send into a size-1 buffer,
// can never be silently dropped.
type workJob struct{ candidates []string }

// result is what a worker sends back: either nothing found (Done) or a hit
// (Found).
type result struct {
	workerID int
	found    *string
}

// Coordinator drives one dictionary-attack session: a.Info.Threads workers,
// each holding a clone of the handshake, are kept fed with batches pulled
// from src until the source is exhausted, a password is found, or an
// AbortCommand arrives on the bus.
type Coordinator struct {
	bus  *control.Bus
	info *domain.AttackInfo
	src  ports.WordlistSource
}

// NewCoordinator builds a coordinator for info's handshake and thread
// count, sourcing candidates from src.
func NewCoordinator(bus *control.Bus, info *domain.AttackInfo, src ports.WordlistSource) *Coordinator {
	return &Coordinator{bus: bus, info: info, src: src}
}

// Run spawns the worker pool and drives it to completion, emitting
// ProgressEvent after every dispatched batch, PasswordEvent on a hit, and
// ExhaustedEvent if the source runs dry without the coordinator having been
// aborted. It returns once every worker has exited.
func (c *Coordinator) Run() {
	n := c.info.Threads
	jobs := make([]chan workJob, n)
	retired := make([]bool, n)
	results := make(chan result, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		jobs[i] = make(chan workJob, 1)
		wg.Add(1)
		go runWorker(i, c.info.Hs, jobs[i], results, &wg)
	}
	defer wg.Wait()

	c.info.IsAttacking = true
	live := n
	for i := 0; i < n; i++ {
		c.dispatchOrRetire(i, jobs[i], retired, &live)
	}

	for live > 0 {
		select {
		case cmd := <-c.bus.AttackCommands:
			if _, ok := cmd.(control.AbortCommand); ok {
				c.retireAll(jobs, retired)
				c.info.IsAttacking = false
				return
			}
		case r := <-results:
			if r.found != nil {
				c.info.Password = r.found
				c.info.IsAttacking = false
				c.bus.AttackEvents <- control.PasswordEvent{Password: *r.found}
				// The worker that found it has already exited; the rest
				// keep running until upstream answers with Abort.
				continue
			}
			c.dispatchOrRetire(r.workerID, jobs[r.workerID], retired, &live)
		}
	}

	c.info.IsAttacking = false
	if c.info.Password == nil {
		c.info.Exhausted = true
		c.bus.AttackEvents <- control.ExhaustedEvent{}
	}
}

// dispatchOrRetire pulls the next batch for worker id; if the source is
// dry, it retires that worker by closing its job channel and decrements
// live. Closing (rather than sending a sentinel) terminates the worker's
// range loop as soon as it drains whatever batch is already buffered,
// instead of risking the sentinel being dropped by a full buffer.
func (c *Coordinator) dispatchOrRetire(id int, jobCh chan workJob, retired []bool, live *int) {
	batch, ok := c.nextBatch()
	if !ok {
		close(jobCh)
		retired[id] = true
		*live--
		return
	}
	c.info.RecordBatch(batch)
	telemetry.CandidatesAttempted.WithLabelValues(c.info.Hs.StationMac.String()).Add(float64(len(batch)))
	jobCh <- workJob{candidates: batch}
	c.bus.AttackEvents <- control.ProgressEvent{
		SizeOfWordlist: c.info.SizeOfWordlist,
		NumOfAttempts:  c.info.NumOfAttempts,
		RecentAttempts: c.info.RecentAttempts,
	}
}

// retireAll closes every job channel not already retired, so every worker's
// range loop returns once it finishes whatever batch it's currently on —
// regardless of whether a batch was sitting unconsumed in its buffer at the
// moment Abort arrived.
func (c *Coordinator) retireAll(jobs []chan workJob, retired []bool) {
	for i, jc := range jobs {
		if !retired[i] {
			close(jc)
			retired[i] = true
		}
	}
}

func (c *Coordinator) nextBatch() ([]string, bool) {
	batch := make([]string, 0, JobSize)
	for len(batch) < JobSize {
		pw, ok := c.src.Next()
		if !ok {
			break
		}
		batch = append(batch, pw)
	}
	if len(batch) == 0 {
		return nil, false
	}
	return batch, true
}

func runWorker(id int, hs domain.Handshake, jobs <-chan workJob, results chan<- result, wg *sync.WaitGroup) {
	defer wg.Done()
	for j := range jobs {
		if pw, ok := tryBatch(hs, j.candidates); ok {
			results <- result{workerID: id, found: &pw}
			return
		}
		results <- result{workerID: id}
	}
}

func tryBatch(hs domain.Handshake, candidates []string) (string, bool) {
	for _, pw := range candidates {
		if hs.TryPassword(pw) {
			return pw, true
		}
	}
	return "", false
}
