package choreo

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/robmorgan/choreo/logger"
	"github.com/robmorgan/choreo/utils"
)

// Section is a resolved, named span of the choreography. Start and End are beats.
type Section struct {
	Start float64
	End   float64
	Name  string

	// Color is the colour as written in the file, RGB the parsed value (white when absent).
	Color string
	RGB   colorful.Color
}

// Contains reports whether the beat lies in the section, start inclusive and end exclusive.
func (s Section) Contains(beat float64) bool {
	return s.Start <= beat && beat < s.End
}

// Length returns the section length in beats.
func (s Section) Length() float64 {
	return s.End - s.Start
}

// SectionResolutionError is returned when a structure entry has neither an end nor a duration.
type SectionResolutionError struct {
	Index int
	Name  string
}

func (e *SectionResolutionError) Error() string {
	return fmt.Sprintf("structure entry %d (%q) has neither end nor duration", e.Index, e.Name)
}

// ResolveSections turns structure entries into sections. An entry without a start continues from the end
// of the previous entry (or beat 0 for the first); an entry without an end lasts for its duration.
func ResolveSections(specs []SectionSpec) ([]Section, error) {
	sections := make([]Section, 0, len(specs))

	current := 0.0
	for i, spec := range specs {
		start := current
		if spec.Start != nil {
			start = *spec.Start
		}

		var end float64
		switch {
		case spec.End != nil:
			end = *spec.End
		case spec.Duration != nil:
			end = start + *spec.Duration
		default:
			return nil, &SectionResolutionError{Index: i, Name: spec.Name}
		}
		current = end

		rgb := utils.DefaultColor
		if spec.Color != "" {
			c, err := utils.ParseColor(spec.Color)
			if err != nil {
				logger.GetProjectLogger().WithField("section", spec.Name).Warnf("invalid section colour %q, using white", spec.Color)
			} else {
				rgb = c
			}
		}

		sections = append(sections, Section{
			Start: start,
			End:   end,
			Name:  spec.Name,
			Color: spec.Color,
			RGB:   rgb,
		})
	}

	return sections, nil
}
