// Package playback keeps the virtual clock and an external media clock in step.
package playback

import (
	"github.com/robmorgan/choreo/logger"
	"github.com/robmorgan/choreo/media"
	"github.com/robmorgan/choreo/rhythm"
	"github.com/sirupsen/logrus"
)

// State is the transport state of the reconciler.
type State int

const (
	Paused State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "paused"
}

// TimeSource is the read-only view of the virtual clock handed to renderers and cue scanners.
type TimeSource interface {
	CurrentTime() float64
	PreviousTime() float64
	Window() rhythm.TimeWindow
}

// Reconciler decides each tick which clock is authoritative. While paused the virtual clock is, and its
// time is pushed into the media clock. While playing the media clock is, and its time is fed back into the
// virtual clock through a deferred override so every tick still sees one consistent window.
//
// A Reconciler is driven from a single tick loop and is not safe for concurrent use.
type Reconciler struct {
	clock *rhythm.VirtualClock
	media media.Clock
	state State

	// an asynchronous media command is in flight
	busy        bool
	pending     *media.Future
	pendingName string

	// a seek issued while playing still has to reach the media clock
	seekPending bool
	seekTarget  float64
}

// NewReconciler takes ownership of the virtual clock and starts paused.
func NewReconciler(vc *rhythm.VirtualClock, m media.Clock) *Reconciler {
	vc.SetRate(0)
	return &Reconciler{
		clock: vc,
		media: m,
		state: Paused,
	}
}

// Clock returns a read-only view of the virtual clock.
func (r *Reconciler) Clock() TimeSource {
	return r.clock
}

// CurrentTime is a shortcut for Clock().CurrentTime().
func (r *Reconciler) CurrentTime() float64 {
	return r.clock.CurrentTime()
}

// Window returns the window of the last Update.
func (r *Reconciler) Window() rhythm.TimeWindow {
	return r.clock.Window()
}

// State returns the transport state.
func (r *Reconciler) State() State {
	return r.state
}

// Busy reports whether an asynchronous media command is still in flight.
func (r *Reconciler) Busy() bool {
	return r.busy
}

// MediaState returns the state reported by the media clock.
func (r *Reconciler) MediaState() media.State {
	return r.media.State()
}

// Play switches to Playing: the virtual clock starts running and the media clock is moved to the virtual
// time and started. Play does not wait for the media to start.
func (r *Reconciler) Play() error {
	if r.busy {
		return &BusyError{Command: "play", Pending: r.pendingName}
	}
	if r.state == Playing {
		return nil
	}

	r.clock.SetRate(1)
	r.state = Playing
	r.startMedia()

	r.log().Info("Playback started")
	return nil
}

// Pause switches to Paused. The media clock is paused first so it can't run ahead of the frozen virtual time.
func (r *Reconciler) Pause() {
	if r.state == Paused {
		return
	}

	r.media.Pause()
	r.clock.SetRate(0)
	r.state = Paused
	r.seekPending = false
	r.settle()

	r.log().Info("Playback paused")
}

// Toggle plays when paused and pauses when playing.
func (r *Reconciler) Toggle() error {
	if r.state == Playing {
		r.Pause()
		return nil
	}
	return r.Play()
}

// Seek requests a jump to virtual time t. Neither clock moves until the next Update.
func (r *Reconciler) Seek(t float64) error {
	if r.busy {
		return &BusyError{Command: "seek", Pending: r.pendingName}
	}

	r.clock.RequestTimeOverride(t)
	if r.state == Playing {
		r.seekPending = true
		r.seekTarget = t
	}

	r.log().WithField("target", t).Debug("Seek requested")
	return nil
}

// Duration returns the media duration.
func (r *Reconciler) Duration() (float64, error) {
	d, ok := r.media.Duration()
	if !ok {
		return 0, &UnavailableError{What: "media duration"}
	}
	return d, nil
}

// Update runs once per tick. It makes exactly one authoritative read and then ticks the virtual clock.
func (r *Reconciler) Update() error {
	if p, ok := r.media.(media.Poller); ok {
		p.Poll()
	}
	r.settle()

	switch r.clock.Factor() {
	case 0:
		r.media.SetCurrentTime(r.clock.CurrentTime())
	case 1:
		r.followMedia()
	default:
		return &UnsupportedRateError{Factor: r.clock.Factor()}
	}

	r.clock.Tick()
	return nil
}

func (r *Reconciler) followMedia() {
	if r.seekPending {
		// the override requested by Seek stands for this tick; the media follows it
		r.seekPending = false
		if r.inMediaRange(r.seekTarget) {
			r.issue("seek", r.media.Seek(r.seekTarget))
		} else {
			// outside of the media: stop it until the virtual clock is back in range
			r.media.Pause()
			r.log().WithField("target", r.seekTarget).Debug("Seek outside of media, running on the virtual clock")
		}
		return
	}

	t := r.clock.CurrentTime()
	switch r.media.State() {
	case media.StatePlaying, media.StateBuffering:
		if r.inMediaRange(t) {
			r.clock.RequestTimeOverride(r.media.CurrentTime())
		}
	case media.StateEnded:
		// past the end of the media: the virtual clock carries on alone
	default:
		if !r.busy && r.inMediaRange(t) {
			r.startMedia()
		}
	}
}

// startMedia moves the media to the virtual time and starts it if the time lies inside the media.
func (r *Reconciler) startMedia() {
	t := r.clock.CurrentTime()
	if !r.inMediaRange(t) {
		r.log().WithField("position", t).Debug("Outside of media, running on the virtual clock")
		return
	}
	r.media.SetCurrentTime(t)
	r.issue("play", r.media.Play())
}

func (r *Reconciler) issue(name string, f *media.Future) {
	r.busy = true
	r.pending = f
	r.pendingName = name
	r.settle()
}

// settle clears the busy flag once the in-flight command has completed.
func (r *Reconciler) settle() {
	if !r.busy || !r.pending.IsDone() {
		return
	}
	if err := r.pending.Err(); err != nil {
		r.log().WithField("command", r.pendingName).Errorf("media command failed: %v", err)
	}
	r.busy = false
	r.pending = nil
	r.pendingName = ""
}

func (r *Reconciler) inMediaRange(t float64) bool {
	if t < 0 {
		return false
	}
	d, ok := r.media.Duration()
	return !ok || t < d
}

func (r *Reconciler) log() *logrus.Entry {
	return logger.GetProjectLogger().WithFields(logrus.Fields{
		"state":    r.state,
		"position": r.clock.CurrentTime(),
		"media":    r.media.State(),
	})
}
