package svchan

// An Updater is the writing half of a single-value channel. Updates through
// any handle of the channel are serialized, and the receiver observes the
// most recent one; earlier values are overwritten, never queued.
//
// An Updater is safe for concurrent use by multiple goroutines. Writers
// that need independent lifecycles should each hold their own handle,
// created with [Updater.Clone].
type Updater[T any] struct {
	s      *slot[T]
	closed bool // this handle has been closed; guarded by s.μ
}

// Update publishes v as the channel's latest value, replacing any value the
// receiver has not yet observed, and wakes the receiver if it is blocked in
// Wait. Update does not block and does not fail: if the receiver has been
// closed, v is quietly discarded (use [Updater.HasReceiver] to find out
// when to stop publishing).
//
// Update panics if u itself has been closed, like a send on a closed
// channel.
func (u *Updater[T]) Update(v T) {
	s := u.s
	s.μ.Lock()
	defer s.μ.Unlock()
	if u.closed {
		panic("update on closed updater")
	}
	if s.rclosed {
		return // no observer remains for v
	}
	s.cur = v
	s.version++
	s.wakeLocked()
}

// Clone returns a new updater handle for the same channel. Updates from all
// handles are serialized, and the most recent one wins. The channel closes
// only when every handle, clones included, has been closed.
//
// Clone panics if u has already been closed.
func (u *Updater[T]) Clone() *Updater[T] {
	s := u.s
	s.μ.Lock()
	defer s.μ.Unlock()
	if u.closed {
		panic("clone of closed updater")
	}
	s.writers++
	return &Updater[T]{s: s}
}

// Close releases this updater handle. When the last open handle for the
// channel is closed, the channel itself closes: a receiver blocked in Wait
// wakes with [ErrClosed], and no further updates can occur. Closing an
// already-closed handle reports ErrClosed.
//
// Each writing goroutine should defer the Close of the handle it owns, so
// that the receiver is released on every exit path.
func (u *Updater[T]) Close() error {
	s := u.s
	s.μ.Lock()
	defer s.μ.Unlock()
	if u.closed {
		return ErrClosed
	}
	u.closed = true
	s.writers--
	if s.writers == 0 {
		s.closed = true
		s.wakeLocked()
	}
	return nil
}

// HasReceiver reports whether the receiver is still open. Once it reports
// false, every subsequent update will be discarded.
func (u *Updater[T]) HasReceiver() bool {
	s := u.s
	s.μ.Lock()
	defer s.μ.Unlock()
	return !s.rclosed
}
