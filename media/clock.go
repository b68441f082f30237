// Package media holds the external playback clocks the player synchronises with.
package media

import "sync"

// State is the playback state reported by a media clock.
type State int

const (
	StateUnstarted State = iota
	StateCued
	StateBuffering
	StatePlaying
	StatePaused
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateUnstarted:
		return "UNSTARTED"
	case StateCued:
		return "CUED"
	case StateBuffering:
		return "BUFFERING"
	case StatePlaying:
		return "PLAYING"
	case StatePaused:
		return "PAUSED"
	case StateEnded:
		return "ENDED"
	default:
		return "UNKNOWN"
	}
}

// Clock is an external media clock such as an audio or video player. Times are in seconds.
type Clock interface {
	// Duration returns the length of the media, or false while it is not known.
	Duration() (float64, bool)

	CurrentTime() float64
	SetCurrentTime(t float64)

	// Play starts playback. The returned future resolves once the player is actually playing.
	Play() *Future

	Pause()

	// Seek moves the playhead. The returned future resolves once the player has settled at the new position.
	Seek(t float64) *Future

	State() State
}

// Poller is implemented by clocks that settle their commands when polled from the tick loop rather than
// from a goroutine of their own.
type Poller interface {
	Poll()
}

// Future is the outcome of an asynchronous media command.
type Future struct {
	once sync.Once
	done chan struct{}
	err  error
}

// NewFuture returns an unresolved future.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Resolved returns a future that has already completed with err.
func Resolved(err error) *Future {
	f := NewFuture()
	f.Resolve(err)
	return f
}

// Resolve completes the future. Only the first call has any effect.
func (f *Future) Resolve(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Done is closed when the command has completed.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// IsDone reports whether the command has completed, without blocking.
func (f *Future) IsDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Err returns the command's error. It is only meaningful once the future is done.
func (f *Future) Err() error {
	if !f.IsDone() {
		return nil
	}
	return f.err
}
