// Package persist queues edit operations and saves them to a backend with
// bounded retry. It is an external collaborator of the simulation engine:
// the engine neither depends on it nor reacts to its failures.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hsupple6/CircuitWiz-sub002/pkg/auth"
)

// Op is one queued edit operation.
type Op struct {
	ID       uuid.UUID       `json:"id"`
	Kind     string          `json:"kind"` // "place", "remove", "wire", "unwire", "override"
	Payload  json.RawMessage `json:"payload"`
	QueuedAt time.Time       `json:"queuedAt"`
}

// NewOp creates an operation with a fresh identity.
func NewOp(kind string, payload json.RawMessage) Op {
	return Op{
		ID:       uuid.New(),
		Kind:     kind,
		Payload:  payload,
		QueuedAt: time.Now(),
	}
}

// Backend accepts a batch of operations for durable storage.
type Backend interface {
	Save(ctx context.Context, cred auth.Credential, ops []Op) error
}

// ErrSaveInFlight is returned by Flush when a save is already running.
var ErrSaveInFlight = errors.New("persist: save already in flight")

const maxRetries = 3

// Saver owns the edit queue. At most one save is in flight at a time; a
// failed batch is re-queued ahead of newly queued operations so ordering
// is preserved. Construct one explicitly and pass it to whatever drives
// the edit loop.
type Saver struct {
	backend Backend
	creds   auth.Source
	log     *log.Logger
	sleep   func(time.Duration)

	// onLost receives operations dropped after the retry bound; the UI
	// surfaces them as a lost-operations condition.
	onLost func([]Op)

	mu       sync.Mutex
	queue    []Op
	inFlight bool
}

// Option configures a Saver.
type Option func(*Saver)

// WithLogger sets the anomaly logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Saver) { s.log = logger }
}

// WithSleep replaces the backoff sleep, for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *Saver) { s.sleep = sleep }
}

// WithLostHandler registers the lost-operations callback.
func WithLostHandler(fn func([]Op)) Option {
	return func(s *Saver) { s.onLost = fn }
}

// NewSaver creates a saver for the given backend and credential source.
func NewSaver(backend Backend, creds auth.Source, opts ...Option) *Saver {
	s := &Saver{
		backend: backend,
		creds:   creds,
		log:     log.New(io.Discard, "", 0),
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enqueue appends an operation to the queue.
func (s *Saver) Enqueue(op Op) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, op)
}

// Pending returns the number of queued operations.
func (s *Saver) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Flush drains the queue and saves the batch, retrying up to three times
// with exponential backoff (2^attempt seconds). On final failure the
// batch is re-queued ahead of anything enqueued meanwhile and the lost
// handler is invoked. Returns ErrSaveInFlight when a save is already
// running.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	if len(s.queue) == 0 {
		s.mu.Unlock()
		return nil
	}
	batch := s.queue
	s.queue = nil
	s.inFlight = true
	s.mu.Unlock()

	err := s.save(ctx, batch)

	s.mu.Lock()
	s.inFlight = false
	if err != nil {
		// Failed batch goes back in front of newer operations.
		s.queue = append(append([]Op(nil), batch...), s.queue...)
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Printf("persist: save failed after %d retries: %v", maxRetries, err)
		if s.onLost != nil {
			s.onLost(batch)
		}
		return fmt.Errorf("persist: save failed: %w", err)
	}
	return nil
}

func (s *Saver) save(ctx context.Context, batch []Op) error {
	cred, err := s.creds.Credential()
	if err != nil {
		return fmt.Errorf("persist: no credential: %w", err)
	}
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			s.sleep(time.Duration(1<<attempt) * time.Second)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = s.backend.Save(ctx, cred, batch)
		if lastErr == nil {
			return nil
		}
		s.log.Printf("persist: save attempt %d failed: %v", attempt+1, lastErr)
	}
	return lastErr
}
