package diagnostic

import (
	"sync"
	"sync/atomic"
)

const defaultStreamBuffer = 64

// Stream fans Diagnostics out to subscribers as they are produced, so a
// caller can surface warnings from a long render before the final result
// lands (e.g. in a progress display).
//
// Each [Stream.Publish] delivers the Diagnostic to every active
// [Subscription] via a buffered channel with ring-buffer semantics: when a
// subscriber's channel is full the oldest entry is dropped so Publish
// never blocks the render. Safe for concurrent use.
//
// Create instances with [NewStream].
type Stream struct {
	subscribers []*Subscription
	bufSize     int
	mu          sync.Mutex
	closed      bool
}

// StreamOption configures a [Stream].
type StreamOption func(*Stream)

// WithBufferSize sets the channel buffer size for new subscriptions.
// Values less than 1 are clamped to 1.
func WithBufferSize(n int) StreamOption {
	return func(s *Stream) {
		if n < 1 {
			n = 1
		}

		s.bufSize = n
	}
}

// NewStream creates a [Stream] with the given options.
// The default buffer size is 64.
func NewStream(opts ...StreamOption) *Stream {
	s := &Stream{bufSize: defaultStreamBuffer}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Publish sends d to all active subscribers. When a subscriber's channel
// is full the oldest entry is dropped to make room. Closed subscriptions
// are compacted out of the subscriber list. Publishing on a closed Stream
// is a no-op.
func (s *Stream) Publish(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	// Compact closed subscriptions and deliver in one pass.
	alive := s.subscribers[:0]
	for _, sub := range s.subscribers {
		if sub.closed.Load() {
			close(sub.ch)
			continue
		}
		// Ring-buffer: drop oldest if full.
		select {
		case sub.ch <- d:
		default:
			<-sub.ch

			sub.ch <- d
		}

		alive = append(alive, sub)
	}
	// Clear trailing references for GC.
	for i := len(alive); i < len(s.subscribers); i++ {
		s.subscribers[i] = nil
	}

	s.subscribers = alive
}

// Subscribe creates and registers a new [Subscription]. If the Stream is
// already closed the returned subscription's channel is immediately closed.
func (s *Stream) Subscribe() *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &Subscription{
		ch: make(chan Diagnostic, s.bufSize),
	}

	if s.closed {
		close(sub.ch)
		return sub
	}

	s.subscribers = append(s.subscribers, sub)

	return sub
}

// Close marks the Stream as closed, closes all subscription channels, and
// releases the subscriber list. Idempotent.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.closed = true
	for _, sub := range s.subscribers {
		close(sub.ch)
	}

	s.subscribers = nil
}

// Subscription receives Diagnostics from a [Stream].
type Subscription struct {
	ch     chan Diagnostic
	closed atomic.Bool
}

// C returns the read-only channel that delivers Diagnostics.
func (s *Subscription) C() <-chan Diagnostic {
	return s.ch
}

// Close marks the subscription as closed. The Stream will close the
// underlying channel on its next Publish or Close call. Idempotent.
func (s *Subscription) Close() {
	s.closed.Store(true)
}
