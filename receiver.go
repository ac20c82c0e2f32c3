package svchan

import "context"

// A Receiver is the reading half of a single-value channel. It keeps track
// of the version of the value it most recently observed, so that it can
// report whether the value has changed since.
//
// A channel has a single logical receiver. The methods of a Receiver are
// safe for concurrent use by multiple goroutines, but all callers share that
// one receiver: a value observed by any of them counts as observed by all.
type Receiver[T any] struct {
	s    *slot[T]
	seen uint64 // version observed by the last Latest or Wait; guarded by s.μ
}

// Latest returns the most recently published value and marks it observed.
// It does not block and cannot fail: before the first update it returns the
// value the channel was created with, and after the channel closes it keeps
// returning the final value.
func (r *Receiver[T]) Latest() T {
	s := r.s
	s.μ.Lock()
	defer s.μ.Unlock()
	r.seen = s.version
	return s.cur
}

// HasChanged reports whether the value has been updated since it was last
// observed by [Receiver.Latest] or [Receiver.Wait]. It is a peek: it does
// not change what counts as observed.
//
// The version counter behind this check is 64 bits wide, so wraparound
// would need on the order of 10^19 updates to produce a false negative;
// that is not a practical concern.
func (r *Receiver[T]) HasChanged() bool {
	s := r.s
	s.μ.Lock()
	defer s.μ.Unlock()
	return s.version != r.seen
}

// Wait blocks until the value changes, the channel closes, or ctx ends.
//
// If an unobserved update is pending, whether published before or during
// the call, Wait returns it with a nil error and marks it observed. This
// holds even if the channel has closed in the meantime: a final update is
// delivered before closure is reported. Otherwise Wait reports [ErrClosed]
// once every updater handle has been closed, or ctx.Err() if ctx ends
// first; the two outcomes are always distinct. After the receiver itself
// has been closed, Wait reports ErrClosed.
//
// Wait suspends the calling goroutine; it does not poll.
func (r *Receiver[T]) Wait(ctx context.Context) (T, error) {
	s := r.s
	for {
		s.μ.Lock()
		if s.rclosed || (s.closed && s.version == r.seen) {
			s.μ.Unlock()
			var zero T
			return zero, ErrClosed
		}
		if s.version != r.seen {
			r.seen = s.version
			cur := s.cur
			s.μ.Unlock()
			return cur, nil
		}
		ready := s.readyLocked()
		s.μ.Unlock()

		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-ready:
			// Something happened; retry the checks above.
		}
	}
}

// Ready returns a channel that is closed when a call to [Receiver.Wait]
// would not block: an unobserved update is pending, the channel is closed,
// or the receiver has been closed. It allows a receiver to be combined with
// other channels in a select; use Latest to collect the value afterward.
func (r *Receiver[T]) Ready() <-chan struct{} {
	s := r.s
	s.μ.Lock()
	defer s.μ.Unlock()
	if s.version != r.seen || s.closed || s.rclosed {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return s.readyLocked()
}

// Close releases the receiver. Values published after Close are discarded,
// and the writing side can observe the closure via [Updater.HasReceiver].
// Latest and HasChanged remain usable and report the state as of the time
// of closure. Close reports ErrClosed if the receiver was already closed.
func (r *Receiver[T]) Close() error {
	s := r.s
	s.μ.Lock()
	defer s.μ.Unlock()
	if s.rclosed {
		return ErrClosed
	}
	s.rclosed = true
	s.wakeLocked()
	return nil
}

// HasUpdater reports whether any updater handle for the channel remains
// open. Once it reports false, no further updates can arrive, and it
// reports false forever after.
func (r *Receiver[T]) HasUpdater() bool {
	s := r.s
	s.μ.Lock()
	defer s.μ.Unlock()
	return !s.closed
}
