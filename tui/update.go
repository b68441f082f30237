package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robmorgan/choreo/logger"
	"github.com/robmorgan/choreo/osctrigger"
	"github.com/robmorgan/choreo/playback"
	"github.com/robmorgan/choreo/utils"
	"github.com/sirupsen/logrus"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if err := m.tick(); err != nil {
			m.quitting = true
			return m, tea.Quit
		}
		return m, tickCmd(m.player.Config.TickInterval)
	case commandMsg:
		m.apply(osctrigger.Command(msg))
		return m, waitForCommand(m.player.Remote)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = utils.Clamp(msg.Width-4, 20, 160)
		m.progress.Width = m.width
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// tick runs one cycle of the playback loop. It returns an error only when the loop can't go on.
func (m *model) tick() error {
	r := m.player.Reconciler
	if err := r.Update(); err != nil {
		m.fail(err)
		if playback.IsUnsupportedRate(err) {
			return err
		}
	}

	for _, c := range m.player.Master.Process(r.Window()) {
		m.lastCue = c
	}

	if m.player.Rig != nil {
		if err := m.player.Rig.Render(r.CurrentTime()); err != nil {
			m.fail(err)
		}
	}
	return nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.player.Reconciler
	tl := m.player.Timeline
	now := r.CurrentTime()
	m.status = ""

	switch key := msg.String(); key {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case " ":
		m.fail(r.Toggle())
	case "left", "h":
		m.seekBeats(-m.player.Config.SeekStep)
	case "right", "l":
		m.seekBeats(m.player.Config.SeekStep)
	case "[":
		if t, ok := tl.PreviousSectionStart(now); ok {
			m.seek(t)
		}
	case "]":
		if t, ok := tl.NextSectionStart(now); ok {
			m.seek(t)
		}
	case "home", "g":
		m.seek(0)
	case "-":
		m.player.Metronome.SetTempo(m.player.Metronome.GetTempo()-1, now)
	case "+", "=":
		m.player.Metronome.SetTempo(m.player.Metronome.GetTempo()+1, now)
	default:
		if step, err := strconv.Atoi(key); err == nil && step >= 1 && step <= m.player.Pattern.Len() {
			m.player.Pattern.Toggle(step - 1)
		}
	}
	return m, nil
}

func (m *model) apply(cmd osctrigger.Command) {
	r := m.player.Reconciler
	switch cmd.Kind {
	case osctrigger.CommandPlay:
		m.fail(r.Play())
	case osctrigger.CommandPause:
		r.Pause()
	case osctrigger.CommandToggle:
		m.fail(r.Toggle())
	case osctrigger.CommandSeek:
		m.seek(cmd.Seconds)
	}
}

func (m *model) seekBeats(delta float64) {
	tl := m.player.Timeline
	beat := tl.BeatAt(m.player.Reconciler.CurrentTime())
	m.seek(tl.TimeOfBeat(beat + delta))
}

func (m *model) seek(t float64) {
	m.fail(m.player.Reconciler.Seek(t))
}

func (m *model) fail(err error) {
	if err == nil {
		return
	}
	m.status = err.Error()
	logger.GetProjectLogger().WithFields(logrus.Fields{"position": m.player.Reconciler.CurrentTime()}).Warn(err)
}
