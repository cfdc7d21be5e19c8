package search

import (
	"context"
	"sync"
)

// Sequencer orders the requests of one client stream. Starting a request
// cancels the one in flight, and only the latest sequence number may
// deliver a response.
type Sequencer struct {
	mu      sync.Mutex
	started bool
	latest  int64
	cancel  context.CancelFunc
}

// Begin registers seq as the latest request and returns a context that is
// cancelled when a newer request begins. It returns false, and a nil
// context, when seq is not newer than one already seen. The first request
// of a stream is accepted whatever its number.
func (s *Sequencer) Begin(parent context.Context, seq int64) (context.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started && seq <= s.latest {
		return nil, false
	}
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	s.started = true
	s.latest = seq
	s.cancel = cancel
	return ctx, true
}

// IsLatest reports whether seq is still the newest request.
func (s *Sequencer) IsLatest(seq int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started && seq == s.latest
}

// Finish releases the context of seq if it is still the latest request.
func (s *Sequencer) Finish(seq int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq == s.latest && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Stop cancels whatever is in flight.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
