package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/robmorgan/choreo/playback"
	"github.com/robmorgan/choreo/utils"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	dimStyle     = helpStyle.Copy().UnsetMargins()
	outsideStyle = dimStyle.Copy()
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	stepOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	stepNowStyle = lipgloss.NewStyle().Reverse(true)
	appStyle     = lipgloss.NewStyle().Margin(1, 2, 0, 2)
)

func (m model) View() string {
	r := m.player.Reconciler
	tl := m.player.Timeline
	now := r.CurrentTime()

	var b strings.Builder
	b.WriteString(titleStyle.Render(tl.Title) + "\n\n")

	// transport
	state := "❚❚ paused"
	if r.State() == playback.Playing {
		state = "▶ playing"
	}
	if r.Busy() {
		state += " " + m.spinner.View() + " " + strings.ToLower(r.MediaState().String())
	}
	duration := "--:--"
	d, err := r.Duration()
	if err == nil {
		duration = utils.FormatClock(d)
	}
	fmt.Fprintf(&b, "%s  %s / %s  beat %d", state, utils.FormatClock(now), duration, int(math.Floor(tl.BeatAt(now))))
	if s, ok := tl.SectionAt(now); ok {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(lipgloss.Color(s.RGB.Hex())).Render(s.Name))
	}
	b.WriteString("\n\n")

	if err == nil && d > 0 {
		b.WriteString(m.progress.ViewAs(utils.Clamp(now/d, 0, 1)) + "\n\n")
	}

	b.WriteString(renderTimeline(tl, now, m.player.Config.View, m.width) + "\n\n")
	b.WriteString(m.renderLoop(now) + "\n")

	if m.lastCue != nil {
		b.WriteString(dimStyle.Render("last cue: "+m.lastCue.String()) + "\n")
	}
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status) + "\n")
	}

	b.WriteString(helpStyle.Render("(space) play/pause  (←/→) seek  ([/]) section  (1-8) loop steps  (-/+) BPM  (q) quit"))
	if m.quitting {
		b.WriteString("\n")
	}
	return appStyle.Render(b.String())
}

// renderLoop draws the practice loop with the current step highlighted.
func (m model) renderLoop(now float64) string {
	p := m.player.Pattern
	snap := m.player.Metronome.GetSnapshot(now)
	current := int(snap.BarPhase * float64(p.Len()))

	var steps []string
	for i := 0; i < p.Len(); i++ {
		s := dimStyle.Render("○")
		if p.IsSet(i) {
			s = stepOnStyle.Render("●")
		}
		if i == current {
			s = stepNowStyle.Render(s)
		}
		steps = append(steps, s)
	}
	return fmt.Sprintf("loop %s  ♩=%.0f  %s", strings.Join(steps, " "), snap.Tempo, snap.GetMarker())
}
