package protocol

import (
	"encoding/json"
	"sync"
)

// Subscription is the mailbox of one observed property.
//
// The reactor pushes into it without ever blocking; a pump goroutine feeds
// the values, in order, to the channel returned by C. Closing the mailbox
// stops the pump and closes that channel. Values not yet received at that
// point are discarded.
type Subscription struct {
	name string

	mu     sync.Mutex
	queue  []json.RawMessage
	closed bool

	wake chan struct{}
	stop chan struct{}
	out  chan json.RawMessage
}

// NewSubscription creates a mailbox for the named property and starts its pump.
func NewSubscription(name string) *Subscription {
	s := &Subscription{
		name: name,
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
		out:  make(chan json.RawMessage),
	}

	go s.pump()

	return s
}

// Name returns the observed property name.
func (s *Subscription) Name() string {
	return s.name
}

// C returns the channel carrying every change notification payload.
func (s *Subscription) C() <-chan json.RawMessage {
	return s.out
}

// push queues a payload. It reports false once the mailbox is closed.
func (s *Subscription) push(data json.RawMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	s.queue = append(s.queue, data)

	select {
	case s.wake <- struct{}{}:
	default:
	}

	return true
}

// Close stops delivery and closes the channel returned by C.
// Safe to call more than once.
func (s *Subscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.closed = true
	s.queue = nil
	close(s.stop)
}

func (s *Subscription) pump() {
	defer close(s.out)

	for {
		data, ok := s.next()
		if !ok {
			return
		}

		select {
		case s.out <- data:
		case <-s.stop:
			return
		}
	}
}

// next blocks until a payload is queued or the mailbox is closed.
func (s *Subscription) next() (json.RawMessage, bool) {
	for {
		s.mu.Lock()

		if s.closed {
			s.mu.Unlock()

			return nil, false
		}

		if len(s.queue) > 0 {
			data := s.queue[0]
			s.queue[0] = nil
			s.queue = s.queue[1:]
			s.mu.Unlock()

			return data, true
		}

		s.mu.Unlock()

		select {
		case <-s.wake:
		case <-s.stop:
			return nil, false
		}
	}
}
