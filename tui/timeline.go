package tui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/robmorgan/choreo/choreo"
	"github.com/robmorgan/choreo/config"
	"github.com/robmorgan/choreo/utils"
)

const (
	beatTickEvery  = 8
	beatLabelEvery = 32
	timeLabelEvery = 10.0
)

// cell is one column of the timeline strip.
type cell struct {
	section  int // -1 outside of any section
	tick     bool
	playhead bool
	start    float64
	end      float64
}

type label struct {
	pos  int
	text string
}

// timelineCells divides the view window around now into width columns.
func timelineCells(tl *choreo.Timeline, now float64, view config.ViewConfig, width int) []cell {
	if width <= 0 {
		return nil
	}
	start := now - view.Before
	per := (view.Before + view.After) / float64(width)

	cells := make([]cell, width)
	for i := range cells {
		t0 := start + float64(i)*per
		t1 := t0 + per
		_, tick := multipleIn(tl.BeatAt(t0), tl.BeatAt(t1), beatTickEvery)
		cells[i] = cell{
			section: tl.SectionIndexAt(t0 + per/2),
			tick:    tick,
			start:   t0,
			end:     t1,
		}
	}
	if p := int(view.Before / per); p >= 0 && p < width {
		cells[p].playhead = true
	}
	return cells
}

// multipleIn returns the first multiple of n in [from, to).
func multipleIn(from, to float64, n float64) (float64, bool) {
	k := math.Ceil(from/n) * n
	return k, k < to
}

func beatLabels(tl *choreo.Timeline, cells []cell) []label {
	var labels []label
	for i, c := range cells {
		if b, ok := multipleIn(tl.BeatAt(c.start), tl.BeatAt(c.end), beatLabelEvery); ok {
			labels = append(labels, label{pos: i, text: strconv.Itoa(int(b))})
		}
	}
	return labels
}

func timeLabels(cells []cell) []label {
	var labels []label
	for i, c := range cells {
		if t, ok := multipleIn(c.start, c.end, timeLabelEvery); ok && t >= 0 {
			labels = append(labels, label{pos: i, text: utils.FormatClock(t)})
		}
	}
	return labels
}

// placeLabels writes labels into a line of the given width. A label that would overlap the previous
// one or run off the end is left out.
func placeLabels(width int, labels []label) string {
	line := []rune(strings.Repeat(" ", width))
	next := 0
	for _, l := range labels {
		text := []rune(l.text)
		if l.pos < next || l.pos+len(text) > width {
			continue
		}
		copy(line[l.pos:], text)
		next = l.pos + len(text) + 1
	}
	return string(line)
}

func renderTimeline(tl *choreo.Timeline, now float64, view config.ViewConfig, width int) string {
	cells := timelineCells(tl, now, view, width)

	var bar strings.Builder
	for _, c := range cells {
		ch := " "
		switch {
		case c.playhead:
			ch = "┃"
		case c.tick:
			ch = "┊"
		case c.section < 0:
			ch = "·"
		}

		style := outsideStyle
		if c.section >= 0 {
			style = lipgloss.NewStyle().
				Background(lipgloss.Color(tl.Sections[c.section].RGB.Hex())).
				Foreground(lipgloss.Color("0"))
		}
		if c.playhead {
			style = style.Copy().Foreground(lipgloss.Color("196")).Bold(true)
		}
		bar.WriteString(style.Render(ch))
	}

	return strings.Join([]string{
		dimStyle.Render(placeLabels(width, beatLabels(tl, cells))),
		bar.String(),
		dimStyle.Render(placeLabels(width, timeLabels(cells))),
	}, "\n")
}
