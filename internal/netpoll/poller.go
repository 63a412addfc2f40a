// Package netpoll abstracts a level-triggered readiness notifier (epoll,
// poll, kqueue, ...) behind a small capability set: add/modify/remove a
// file descriptor, and a blocking wait that yields ready descriptors with
// their readiness bits. Nothing above this package knows which backend is
// in use.
package netpoll

import "time"

// Event reports the readiness of one file descriptor after a Wait.
type Event struct {
	FD       int
	Readable bool
	Writable bool
	// Error is set on HUP/ERR conditions; callers should treat the fd as
	// dead regardless of the other two bits.
	Error bool
}

// Poller is a level-triggered readiness notifier.
type Poller interface {
	// Add registers fd for read readiness, and for write readiness too if
	// writable is true.
	Add(fd int, writable bool) error

	// Modify changes whether fd is registered for write readiness. fd must
	// already have been Added.
	Modify(fd int, writable bool) error

	// Remove unregisters fd. It is not an error to Remove an fd that was
	// never Added.
	Remove(fd int) error

	// Wait blocks until at least one fd is ready or timeout elapses,
	// returning the ready set. A timeout of zero or less waits forever.
	Wait(timeout time.Duration) ([]Event, error)

	// Close releases the underlying notifier. The Poller must not be used
	// afterward.
	Close() error
}
