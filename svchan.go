// Package svchan implements a single-value "latest message" channel: a
// shared slot into which update sources publish successive values, and from
// which a receiver always reads the most recently published one.
//
// Unlike a buffered Go channel, publishing never blocks and never queues.
// Each update overwrites the previous value, so a slow receiver skips
// intermediate values instead of exerting backpressure on the writer. The
// internal lock is held only long enough to move a value in or out, which
// makes both sides practically non-blocking.
//
// [New] creates a channel and returns its two handles. The [Receiver] reads
// the latest value ([Receiver.Latest]), detects unobserved changes
// ([Receiver.HasChanged]), and can block until something happens
// ([Receiver.Wait]). The [Updater] publishes values ([Updater.Update]); once
// every updater handle for the channel has been closed, the channel is
// closed and the receiver can no longer block indefinitely.
package svchan

import (
	"errors"
	"sync"
)

// ErrClosed is the error reported for a channel that can no longer make
// progress: by [Receiver.Wait] when no updater remains open and no
// unobserved update is pending, and by a repeated Close of either handle.
var ErrClosed = errors.New("channel is closed")

// New creates a single-value channel whose initial value is initial, and
// returns the two handles bound to it. Until the first update, the receiver
// reports initial as the latest value, but not as a change.
//
// Additional write handles for the same channel may be created with
// [Updater.Clone]. The channel closes when every write handle is closed.
func New[T any](initial T) (*Receiver[T], *Updater[T]) {
	s := &slot[T]{cur: initial, writers: 1}
	return &Receiver[T]{s: s}, &Updater[T]{s: s}
}

// A slot is the state shared by the handles of a channel: the latest value,
// the bookkeeping needed to detect changes and closure, and the signal used
// to wake a blocked receiver. All fields are protected by μ.
type slot[T any] struct {
	μ       sync.Mutex
	cur     T             // the most recently published value
	version uint64        // incremented by each accepted update, never reset
	writers int           // open updater handles; the channel closes at zero
	closed  bool          // no updater handle remains open (terminal)
	rclosed bool          // the receiver has been closed (terminal)
	ready   chan struct{} // wake signal, lazily allocated; see wakeLocked
}

// wakeLocked wakes all goroutines blocked on the ready channel, if any.
// The caller must hold s.μ.
func (s *slot[T]) wakeLocked() {
	if s.ready != nil {
		close(s.ready)
		s.ready = nil
	}
}

// readyLocked returns the channel a goroutine must block on to be woken by
// the next call to wakeLocked. The caller must hold s.μ.
func (s *slot[T]) readyLocked() chan struct{} {
	if s.ready == nil {
		s.ready = make(chan struct{})
	}
	return s.ready
}
