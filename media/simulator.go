package media

import (
	"math"
	"time"

	"github.com/robmorgan/choreo/logger"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

type pendingCommand struct {
	due    time.Time
	name   string
	apply  func(at time.Time)
	future *Future
}

// Simulator is a media clock without any media behind it. It follows an injected wall clock and settles
// play and seek commands after a fixed latency, the way a streaming player does. It is not safe for
// concurrent use; commands settle when Poll (or any query) runs on the tick loop.
type Simulator struct {
	clock    clock.PassiveClock
	duration float64
	latency  time.Duration

	state    State
	position float64   // playhead at anchor
	anchor   time.Time // wall time the playhead was last set while playing

	pending []pendingCommand
}

// NewSimulator creates a cued simulator. A duration <= 0 stands for a source whose length is unknown.
func NewSimulator(c clock.PassiveClock, duration float64, latency time.Duration) *Simulator {
	return &Simulator{
		clock:    c,
		duration: duration,
		latency:  latency,
		state:    StateCued,
		anchor:   c.Now(),
	}
}

// Duration returns the simulated media length.
func (s *Simulator) Duration() (float64, bool) {
	if s.duration <= 0 {
		return 0, false
	}
	return s.duration, true
}

// SetDuration changes the simulated length, e.g. once a stream has loaded.
func (s *Simulator) SetDuration(d float64) {
	s.duration = d
}

// CurrentTime returns the playhead position.
func (s *Simulator) CurrentTime() float64 {
	s.Poll()
	return s.positionAt(s.clock.Now())
}

// SetCurrentTime moves the playhead immediately. Moving an ended player back inside the media pauses it
// there.
func (s *Simulator) SetCurrentTime(t float64) {
	s.Poll()
	s.position = s.clamp(t)
	s.anchor = s.clock.Now()
	s.rewind()
}

// Play starts playback after the configured latency.
func (s *Simulator) Play() *Future {
	s.Poll()
	if s.state == StatePlaying {
		return Resolved(nil)
	}
	if s.state == StateEnded {
		s.position = 0
	}

	s.state = StateBuffering
	return s.schedule("play", func(at time.Time) {
		s.anchor = at
		s.state = StatePlaying
	})
}

// Pause stops playback immediately and drops any command still in flight.
func (s *Simulator) Pause() {
	s.Poll()
	now := s.clock.Now()
	s.position = s.positionAt(now)
	s.anchor = now
	for _, cmd := range s.pending {
		cmd.future.Resolve(nil)
	}
	s.pending = nil
	if s.state != StateEnded {
		s.state = StatePaused
	}
}

// Seek moves the playhead. A paused or ended player settles immediately, a playing one rebuffers first.
func (s *Simulator) Seek(t float64) *Future {
	s.Poll()
	s.position = s.clamp(t)
	s.anchor = s.clock.Now()
	s.rewind()

	if s.state != StatePlaying && s.state != StateBuffering {
		return Resolved(nil)
	}

	s.state = StateBuffering
	return s.schedule("seek", func(at time.Time) {
		s.anchor = at
		s.state = StatePlaying
	})
}

// State returns the playback state.
func (s *Simulator) State() State {
	s.Poll()
	return s.state
}

// Poll settles every command whose latency has elapsed and marks the media ended when the playhead
// reaches the end.
func (s *Simulator) Poll() {
	now := s.clock.Now()
	for len(s.pending) > 0 && !s.pending[0].due.After(now) {
		cmd := s.pending[0]
		s.pending = s.pending[1:]
		cmd.apply(cmd.due)
		cmd.future.Resolve(nil)
		logger.GetProjectLogger().WithFields(logrus.Fields{"command": cmd.name, "state": s.state}).Debug("simulator command settled")
	}

	if s.state == StatePlaying && s.duration > 0 && s.positionAt(now) >= s.duration {
		s.position = s.duration
		s.anchor = now
		s.state = StateEnded
	}
}

// rewind leaves StateEnded once the playhead is back before the end.
func (s *Simulator) rewind() {
	if s.state == StateEnded && (s.duration <= 0 || s.position < s.duration) {
		s.state = StatePaused
	}
}

func (s *Simulator) schedule(name string, apply func(at time.Time)) *Future {
	f := NewFuture()
	s.pending = append(s.pending, pendingCommand{
		due:    s.clock.Now().Add(s.latency),
		name:   name,
		apply:  apply,
		future: f,
	})
	s.Poll()
	return f
}

func (s *Simulator) positionAt(now time.Time) float64 {
	if s.state != StatePlaying {
		return s.position
	}
	return s.clamp(s.position + now.Sub(s.anchor).Seconds())
}

func (s *Simulator) clamp(t float64) float64 {
	t = math.Max(t, 0)
	if s.duration > 0 {
		t = math.Min(t, s.duration)
	}
	return t
}
