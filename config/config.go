package config

import (
	"fmt"
	"os"
	"time"

	"github.com/gruntwork-io/go-commons/errors"
	"gopkg.in/yaml.v3"
)

// ChoreoConfig represents options that configure the global behavior of the program
type ChoreoConfig struct {
	// TickInterval is how often the player reconciles the clocks and scans for cues.
	TickInterval time.Duration `yaml:"tickInterval"`

	LogLevel string `yaml:"logLevel"`

	// LogFile receives the log while the terminal UI owns the screen.
	LogFile string `yaml:"logFile"`

	// Audio is played instead of the simulated media clock when set.
	Audio string `yaml:"audio"`

	// SeekStep is how far the arrow keys move the playhead, in beats.
	SeekStep float64 `yaml:"seekStepBeats"`

	Cues      CueConfig       `yaml:"cues"`
	View      ViewConfig      `yaml:"view"`
	Metronome MetronomeConfig `yaml:"metronome"`
	OSC       OSCConfig       `yaml:"osc"`
	DMX       DMXConfig       `yaml:"dmx"`
	Pulse     PulseConfig     `yaml:"pulse"`

	// PatchedFixtures stores all of the patched fixtures
	PatchedFixtures []PatchedFixture `yaml:"fixtures"`
}

// CueConfig places the periodic beat cue: it fires on every beat where beat % Every == Offset.
type CueConfig struct {
	Every  int `yaml:"every"`
	Offset int `yaml:"offset"`
}

// ViewConfig is the span of the timeline shown around the playhead, in seconds.
type ViewConfig struct {
	Before float64 `yaml:"before"`
	After  float64 `yaml:"after"`
}

type MetronomeConfig struct {
	Tempo       float64 `yaml:"tempo"`
	BeatsPerBar int     `yaml:"beatsPerBar"`
}

// OSCConfig holds the target cues are sent to and the address transport commands are received on.
// Either may be empty to disable it.
type OSCConfig struct {
	Target string `yaml:"target"`
	Listen string `yaml:"listen"`
}

// DMXConfig configures output through OLA. An empty address disables DMX.
type DMXConfig struct {
	Address  string        `yaml:"address"`
	Universe int           `yaml:"universe"`
	Tick     time.Duration `yaml:"tick"`
}

// PulseConfig shapes the beat flash.
type PulseConfig struct {
	Easing string  `yaml:"easing"`
	Decay  float64 `yaml:"decay"`
	Floor  float64 `yaml:"floor"`
}

// Create a new ChoreoConfig object with reasonable defaults for real usage
func NewChoreoConfig() ChoreoConfig {
	return ChoreoConfig{
		TickInterval: 25 * time.Millisecond,
		LogLevel:     "info",
		LogFile:      "choreo.log",
		SeekStep:     4,
		Cues: CueConfig{
			Every:  8,
			Offset: 7,
		},
		View: ViewConfig{
			Before: 10,
			After:  30,
		},
		Metronome: MetronomeConfig{
			Tempo:       120,
			BeatsPerBar: 4,
		},
		DMX: DMXConfig{
			Universe: 1,
			Tick:     40 * time.Millisecond,
		},
		Pulse: PulseConfig{
			Easing: "out-cubic",
			Decay:  0.25,
			Floor:  0.35,
		},
		PatchedFixtures: PatchFixtures(),
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (ChoreoConfig, error) {
	cfg := NewChoreoConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.WithStackTrace(err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, errors.WithStackTrace(err))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that would otherwise stop the player from working.
func (c ChoreoConfig) Validate() error {
	switch {
	case c.TickInterval <= 0:
		return fmt.Errorf("tickInterval must be positive, got %s", c.TickInterval)
	case c.Cues.Every < 0:
		return fmt.Errorf("cues.every must not be negative, got %d", c.Cues.Every)
	case c.View.Before < 0 || c.View.After <= 0:
		return fmt.Errorf("view window must be positive, got %g before and %g after", c.View.Before, c.View.After)
	case c.SeekStep <= 0:
		return fmt.Errorf("seekStepBeats must be positive, got %g", c.SeekStep)
	case c.Metronome.Tempo <= 0 || c.Metronome.BeatsPerBar <= 0:
		return fmt.Errorf("metronome needs a positive tempo and beats per bar")
	case c.DMX.Tick <= 0:
		return fmt.Errorf("dmx.tick must be positive, got %s", c.DMX.Tick)
	}
	for _, f := range c.PatchedFixtures {
		if f.Address < 1 || f.Address > 512 {
			return fmt.Errorf("fixture %s: address %d out of range", f.Name, f.Address)
		}
	}
	return nil
}
