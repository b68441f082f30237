// Package choreo holds the choreography a dancer practises against: the beat map and the named sections.
package choreo

import (
	"fmt"
	"os"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/choreo/beatmap"
	"gopkg.in/yaml.v3"
)

// Choreography is the raw content of a choreography file. JSON files load as well as YAML ones.
type Choreography struct {
	Title     string `yaml:"title"`
	YoutubeID string `yaml:"youtubeId"`

	// Audio is the media file to play, relative to the choreography file or absolute.
	Audio string `yaml:"audio"`

	// Beats are [beat, seconds] pairs sampled from the media.
	Beats [][2]float64 `yaml:"beats"`

	Structure []SectionSpec `yaml:"structure"`
}

// SectionSpec is a structure entry as written in the file. Any of the numeric fields may be omitted.
type SectionSpec struct {
	Start    *float64 `yaml:"start"`
	End      *float64 `yaml:"end"`
	Duration *float64 `yaml:"duration"`
	Color    string   `yaml:"color"`
	Name     string   `yaml:"name"`
}

// Load reads and parses a choreography file.
func Load(path string) (*Choreography, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a choreography document.
func Parse(data []byte) (*Choreography, error) {
	c := &Choreography{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.WithStackTrace(err)
	}
	return c, nil
}

// BeatMap builds the beat to seconds map.
func (c *Choreography) BeatMap() (*beatmap.LinearMap, error) {
	return beatmap.FromPairs(c.Beats)
}
