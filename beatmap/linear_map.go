// Package beatmap converts between choreography beats and playback seconds.
package beatmap

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/slices"
)

// Breakpoint is one sampled (domain, range) pair of the map, e.g. (beat, seconds).
type Breakpoint struct {
	Domain float64
	Range  float64
}

// LinearMap is a monotonic piecewise-linear function between two axes. It is immutable once built and
// extrapolates past both ends using the outermost segments.
type LinearMap struct {
	points []Breakpoint
}

// ConstructionError is returned when a set of breakpoints cannot form an invertible map.
type ConstructionError struct {
	Reason string
	Index  int
}

func (e *ConstructionError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("beatmap: %s", e.Reason)
	}
	return fmt.Sprintf("beatmap: %s (breakpoint %d)", e.Reason, e.Index)
}

// New builds a map from at least two breakpoints. The points are sorted by domain; the range values
// must then be non-decreasing and no two points may share a domain value.
func New(points []Breakpoint) (*LinearMap, error) {
	if len(points) < 2 {
		return nil, &ConstructionError{Reason: fmt.Sprintf("at least 2 points required, got %d", len(points)), Index: -1}
	}

	sorted := make([]Breakpoint, len(points))
	copy(sorted, points)
	slices.SortStableFunc(sorted, func(a, b Breakpoint) bool {
		return a.Domain < b.Domain
	})

	for i, p := range sorted {
		if math.IsNaN(p.Domain) || math.IsNaN(p.Range) || math.IsInf(p.Domain, 0) || math.IsInf(p.Range, 0) {
			return nil, &ConstructionError{Reason: "non-finite coordinate", Index: i}
		}
		if i == 0 {
			continue
		}
		prev := sorted[i-1]
		if p.Domain == prev.Domain {
			return nil, &ConstructionError{Reason: fmt.Sprintf("duplicate domain value %v", p.Domain), Index: i}
		}
		if p.Range < prev.Range {
			return nil, &ConstructionError{Reason: "not invertible: range decreases", Index: i}
		}
	}

	return &LinearMap{points: sorted}, nil
}

// FromPairs builds a map from [domain, range] pairs as they appear in a choreography file.
func FromPairs(pairs [][2]float64) (*LinearMap, error) {
	points := make([]Breakpoint, len(pairs))
	for i, p := range pairs {
		points[i] = Breakpoint{Domain: p[0], Range: p[1]}
	}
	return New(points)
}

// Forward maps a domain value to the range axis.
func (m *LinearMap) Forward(x float64) float64 {
	// first point strictly after x
	i := sort.Search(len(m.points), func(i int) bool {
		return m.points[i].Domain > x
	})
	prev, next := m.bracket(i)
	p0, p1 := m.points[prev], m.points[next]
	return interpolate(p0.Domain, p0.Range, p1.Domain, p1.Range, x)
}

// Inverse maps a range value back to the domain axis. On a flat outer segment, where the inverse is not
// defined, the domain value of the outermost breakpoint is returned.
func (m *LinearMap) Inverse(y float64) float64 {
	i := sort.Search(len(m.points), func(i int) bool {
		return m.points[i].Range > y
	})
	prev, next := m.bracket(i)
	p0, p1 := m.points[prev], m.points[next]
	if p0.Range == p1.Range {
		if i == 0 {
			return p0.Domain
		}
		return p1.Domain
	}
	return interpolate(p0.Range, p0.Domain, p1.Range, p1.Domain, y)
}

// Breakpoints returns a copy of the sorted breakpoints.
func (m *LinearMap) Breakpoints() []Breakpoint {
	out := make([]Breakpoint, len(m.points))
	copy(out, m.points)
	return out
}

// First returns the breakpoint with the smallest domain value.
func (m *LinearMap) First() Breakpoint {
	return m.points[0]
}

// Last returns the breakpoint with the largest domain value.
func (m *LinearMap) Last() Breakpoint {
	return m.points[len(m.points)-1]
}

func (m *LinearMap) bracket(i int) (int, int) {
	switch i {
	case 0:
		return 0, 1
	case len(m.points):
		return i - 2, i - 1
	default:
		return i - 1, i
	}
}

func interpolate(x0, y0, x1, y1, x float64) float64 {
	return (y0*(x1-x) + y1*(x-x0)) / (x1 - x0)
}
