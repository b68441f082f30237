// Package tui is the terminal player. Its tick drives the playback loop: clocks, cues and lights.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robmorgan/choreo/choreo"
	"github.com/robmorgan/choreo/config"
	"github.com/robmorgan/choreo/cuelist"
	"github.com/robmorgan/choreo/fixture"
	"github.com/robmorgan/choreo/osctrigger"
	"github.com/robmorgan/choreo/playback"
	"github.com/robmorgan/choreo/rhythm"
)

const defaultWidth = 72

// Player holds everything the terminal player drives. Rig and Remote are optional.
type Player struct {
	Reconciler *playback.Reconciler
	Timeline   *choreo.Timeline
	Master     *cuelist.Master
	Metronome  *rhythm.Metronome
	Pattern    *rhythm.Pattern
	Rig        *fixture.Rig
	Remote     <-chan osctrigger.Command
	Config     config.ChoreoConfig
}

type model struct {
	player   Player
	spinner  spinner.Model
	progress progress.Model
	lastCue  *cuelist.Cue
	status   string // last command error
	width    int
	quitting bool
}

// NewModel creates the bubbletea model for a player.
func NewModel(p Player) tea.Model {
	s := spinner.New()
	s.Style = spinnerStyle

	return model{
		player:  p,
		spinner: s,
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(defaultWidth),
			progress.WithoutPercentage(),
		),
		width: defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.player.Config.TickInterval), m.spinner.Tick, waitForCommand(m.player.Remote))
}

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type commandMsg osctrigger.Command

// waitForCommand delivers the next remote command. It returns nil when there is no remote.
func waitForCommand(commands <-chan osctrigger.Command) tea.Cmd {
	if commands == nil {
		return nil
	}
	return func() tea.Msg {
		cmd, ok := <-commands
		if !ok {
			return nil
		}
		return commandMsg(cmd)
	}
}

var spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
