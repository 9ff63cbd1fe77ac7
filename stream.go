package cuco

import "sync"

// Stream is a host-issued FIFO command queue, the Go stand-in for an
// accelerator stream: a totally ordered command queue with a wait()
// barrier. Work submitted on the same Stream runs in issue order; two
// Streams are mutually unordered unless the caller synchronizes
// explicitly.
//
// A Stream has exactly one worker goroutine draining its queue, which
// is what gives same-stream submissions their happens-before ordering:
// each submitted closure completes (including any internal parallel
// fan-out it performs) before the next one starts.
type Stream struct {
	queue chan func()

	errMu sync.Mutex
	err   error

	closeOnce sync.Once
	closed    chan struct{}
}

// NewStream creates a Stream with its worker goroutine already running.
func NewStream() *Stream {
	s := &Stream{
		queue:  make(chan func(), 64),
		closed: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *Stream) run() {
	for fn := range s.queue {
		fn()
	}
	close(s.closed)
}

// Submit enqueues fn for execution on the stream's worker goroutine.
// Submit never blocks on fn's completion; it is the async dispatch
// primitive every *_async host operation is built on. If fn returns a
// non-nil error it becomes the Stream's sticky backend error, reported
// at the next Wait.
func (s *Stream) Submit(op string, fn func() error) {
	s.queue <- func() {
		if err := fn(); err != nil {
			s.setErr(op, err)
		}
	}
}

func (s *Stream) setErr(op string, err error) {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	if s.err == nil {
		s.err = backendErrorf(op, err)
	}
}

// Wait blocks until every command submitted before this call has
// completed, and returns (and clears) the stream's sticky backend
// error, if any. This is the host's only suspension point; every
// synchronous host API is implemented as Submit followed by Wait.
func (s *Stream) Wait() error {
	done := make(chan struct{})
	s.queue <- func() { close(done) }
	<-done

	s.errMu.Lock()
	err := s.err
	s.err = nil
	s.errMu.Unlock()
	return err
}

// Close drains and stops the stream's worker goroutine. Destroying a
// stream with work still in flight aborts that work at the caller's
// own risk.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		close(s.queue)
	})
	<-s.closed
}

// runSync submits fn on an ephemeral private stream and waits for it,
// the building block for every synchronous (non-Async) host API.
func runSync(op string, fn func() error) error {
	s := NewStream()
	s.Submit(op, fn)
	err := s.Wait()
	s.Close()
	return err
}
