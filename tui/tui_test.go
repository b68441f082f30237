package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/robmorgan/choreo/beatmap"
	"github.com/robmorgan/choreo/choreo"
	"github.com/robmorgan/choreo/config"
	"github.com/robmorgan/choreo/cuelist"
	"github.com/robmorgan/choreo/media"
	"github.com/robmorgan/choreo/osctrigger"
	"github.com/robmorgan/choreo/playback"
	"github.com/robmorgan/choreo/rhythm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"
)

func newTestTimeline(t *testing.T) *choreo.Timeline {
	t.Helper()

	bm, err := beatmap.FromPairs([][2]float64{{0, 1}, {16, 9}, {32, 17}})
	require.NoError(t, err)
	return &choreo.Timeline{
		Title:   "Jump Session",
		BeatMap: bm,
		Sections: []choreo.Section{
			{Start: 0, End: 8, Name: "intro", RGB: colorful.Color{R: 1}},
			{Start: 8, End: 16, Name: "verse", RGB: colorful.Color{G: 1}},
		},
	}
}

func newTestPlayer(t *testing.T) (Player, *clocktesting.FakeClock) {
	t.Helper()

	fc := clocktesting.NewFakeClock(time.Unix(1000, 0))
	sim := media.NewSimulator(fc, 60, 50*time.Millisecond)
	r := playback.NewReconciler(rhythm.NewVirtualClock(fc), sim)

	tl := newTestTimeline(t)
	master := cuelist.InitializeMaster()
	master.AddCueList(cuelist.SectionStarts(tl))

	metronome := rhythm.NewMetronome()
	return Player{
		Reconciler: r,
		Timeline:   tl,
		Master:     master,
		Metronome:  metronome,
		Pattern:    rhythm.NewPattern(metronome),
		Config:     config.NewChoreoConfig(),
	}, fc
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m tea.Model, msg tea.Msg) model {
	t.Helper()

	next, _ := m.Update(msg)
	return next.(model)
}

func TestPlayAndJumpToSection(t *testing.T) {
	t.Parallel()

	p, fc := newTestPlayer(t)
	m := NewModel(p).(model)

	m = update(t, m, key(" "))
	assert.Equal(t, playback.Playing, p.Reconciler.State())
	assert.True(t, p.Reconciler.Busy())

	// the media is still starting
	m = update(t, m, key("]"))
	assert.Contains(t, m.status, "player is busy")

	fc.Step(100 * time.Millisecond)
	m = update(t, m, tickMsg(fc.Now()))
	assert.False(t, p.Reconciler.Busy())
	assert.InDelta(t, 0.05, p.Reconciler.CurrentTime(), 1e-9)

	m = update(t, m, key("]"))
	assert.Empty(t, m.status)

	fc.Step(25 * time.Millisecond)
	m = update(t, m, tickMsg(fc.Now()))
	assert.InDelta(t, 1.0, p.Reconciler.CurrentTime(), 1e-9)

	require.NotNil(t, m.lastCue)
	assert.Equal(t, "intro", m.lastCue.Name)
	assert.Contains(t, m.View(), "intro")
	assert.Contains(t, m.View(), "0:01 / 1:00")
}

func TestPausedSeekByBeats(t *testing.T) {
	t.Parallel()

	p, fc := newTestPlayer(t)
	m := NewModel(p).(model)

	// 0.5s per beat, seek step of 4 beats
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	fc.Step(25 * time.Millisecond)
	m = update(t, m, tickMsg(fc.Now()))
	assert.InDelta(t, 2.0, p.Reconciler.CurrentTime(), 1e-9)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	fc.Step(25 * time.Millisecond)
	update(t, m, tickMsg(fc.Now()))
	assert.InDelta(t, 0.0, p.Reconciler.CurrentTime(), 1e-9)
	assert.Equal(t, playback.Paused, p.Reconciler.State())
}

func TestLoopAndTempoKeys(t *testing.T) {
	t.Parallel()

	p, _ := newTestPlayer(t)
	m := NewModel(p).(model)

	m = update(t, m, key("1"))
	m = update(t, m, key("8"))
	m = update(t, m, key("9"))
	assert.True(t, p.Pattern.IsSet(0))
	assert.True(t, p.Pattern.IsSet(7))

	m = update(t, m, key("+"))
	update(t, m, key("+"))
	assert.Equal(t, 122.0, p.Metronome.GetTempo())
}

func TestRemoteCommands(t *testing.T) {
	t.Parallel()

	p, _ := newTestPlayer(t)
	commands := make(chan osctrigger.Command, 1)
	p.Remote = commands
	m := NewModel(p).(model)

	m = update(t, m, commandMsg{Kind: osctrigger.CommandPlay})
	assert.Equal(t, playback.Playing, p.Reconciler.State())

	update(t, m, commandMsg{Kind: osctrigger.CommandPause})
	assert.Equal(t, playback.Paused, p.Reconciler.State())

	commands <- osctrigger.Command{Kind: osctrigger.CommandSeek, Seconds: 3}
	msg := waitForCommand(commands)()
	assert.Equal(t, commandMsg{Kind: osctrigger.CommandSeek, Seconds: 3}, msg)

	close(commands)
	assert.Nil(t, waitForCommand(commands)())
	assert.Nil(t, waitForCommand(nil))
}

func TestQuit(t *testing.T) {
	t.Parallel()

	p, _ := newTestPlayer(t)
	m := update(t, NewModel(p), tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.quitting)
}

func TestUnsupportedRateStopsPlayer(t *testing.T) {
	t.Parallel()

	p, fc := newTestPlayer(t)
	vc := rhythm.NewVirtualClock(fc)
	p.Reconciler = playback.NewReconciler(vc, media.NewSimulator(fc, 60, 0))
	m := NewModel(p).(model)

	fc.Step(25 * time.Millisecond)
	next, cmd := m.Update(tickMsg(fc.Now()))
	require.NotNil(t, cmd)
	assert.False(t, next.(model).quitting)

	vc.SetRate(2)
	fc.Step(25 * time.Millisecond)
	next, cmd = next.Update(tickMsg(fc.Now()))
	require.NotNil(t, cmd)
	assert.True(t, next.(model).quitting)
	assert.Contains(t, next.(model).status, "unsupported playback rate")
}
