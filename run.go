package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/nickysemenza/gola"
	"github.com/robmorgan/choreo/choreo"
	"github.com/robmorgan/choreo/config"
	"github.com/robmorgan/choreo/cuelist"
	"github.com/robmorgan/choreo/effect"
	"github.com/robmorgan/choreo/fixture"
	"github.com/robmorgan/choreo/logger"
	"github.com/robmorgan/choreo/media"
	"github.com/robmorgan/choreo/osctrigger"
	"github.com/robmorgan/choreo/playback"
	"github.com/robmorgan/choreo/rhythm"
	"github.com/robmorgan/choreo/tui"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// Run loads a choreography and plays it until the player quits.
func Run(ctx context.Context, cfg config.ChoreoConfig, path string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// initialize the logger
	logger := logger.GetProjectLogger()
	if err := setupLogging(cfg); err != nil {
		return err
	}

	wg := sync.WaitGroup{}

	logger.Infof("Loading choreography %s...", path)
	c, err := choreo.Load(path)
	if err != nil {
		return err
	}
	tl, err := choreo.NewTimeline(c)
	if err != nil {
		return err
	}

	m, closeMedia, err := openMedia(cfg, c, tl, path)
	if err != nil {
		return err
	}
	defer closeMedia()

	wall := clock.RealClock{}
	r := playback.NewReconciler(rhythm.NewVirtualClock(wall), m)

	// init cue master
	logger.Info("Initializing cue list master...")
	master := newMaster(cfg, tl)
	metronome := rhythm.NewMetronome()
	metronome.SetBeatsPerBar(cfg.Metronome.BeatsPerBar)
	metronome.SetTempo(cfg.Metronome.Tempo, 0)
	pattern := rhythm.NewPattern(metronome)
	master.AddSource(cuelist.NewPatternSource("loop", pattern))

	if cfg.OSC.Target != "" {
		sender, err := osctrigger.NewSender(cfg.OSC.Target)
		if err != nil {
			return err
		}
		master.AddHandler(sender)
	}

	var remote <-chan osctrigger.Command
	if cfg.OSC.Listen != "" {
		rem := osctrigger.NewRemote(16)
		go func() {
			if err := rem.ListenAndServe(cfg.OSC.Listen); err != nil {
				logger.Errorf("OSC listener stopped: %v", err)
			}
		}()
		remote = rem.Commands()
	}

	// configure OLA for DMX output
	var rig *fixture.Rig
	if cfg.DMX.Address != "" {
		rig, err = startDMX(ctx, cfg, tl, wall, &wg)
		if err != nil {
			return err
		}
	}

	p := tea.NewProgram(tui.NewModel(tui.Player{
		Reconciler: r,
		Timeline:   tl,
		Master:     master,
		Metronome:  metronome,
		Pattern:    pattern,
		Rig:        rig,
		Remote:     remote,
		Config:     cfg,
	}), tea.WithAltScreen())

	_, err = p.Run()
	logger.Println("shutting down choreo")
	cancel()
	wg.Wait()
	return err
}

func setupLogging(cfg config.ChoreoConfig) error {
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.LogFile == "" {
		logger.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.WithStackTrace(err)
	}
	logger.SetOutput(f)
	return nil
}

// openMedia opens the audio file when there is one and falls back to a simulated media clock that
// runs to the last beat.
func openMedia(cfg config.ChoreoConfig, c *choreo.Choreography, tl *choreo.Timeline, path string) (media.Clock, func(), error) {
	audio := cfg.Audio
	if audio == "" && c.Audio != "" {
		audio = c.Audio
		if !filepath.IsAbs(audio) {
			audio = filepath.Join(filepath.Dir(path), audio)
		}
	}

	if audio == "" {
		logger.GetProjectLogger().Info("No audio, simulating the media clock")
		sim := media.NewSimulator(clock.RealClock{}, tl.BeatMap.Last().Range, simulatedLatencyMillis*time.Millisecond)
		return sim, func() {}, nil
	}

	player, err := media.OpenAudio(audio)
	if err != nil {
		return nil, nil, err
	}
	return player, func() {
		if err := player.Close(); err != nil {
			logger.GetProjectLogger().Warnf("closing audio: %v", err)
		}
	}, nil
}

func newMaster(cfg config.ChoreoConfig, tl *choreo.Timeline) *cuelist.Master {
	master := cuelist.InitializeMaster()
	if cfg.Cues.Every > 0 {
		master.AddCueList(cuelist.EveryNBeats(tl, cfg.Cues.Every, cfg.Cues.Offset))
	}
	master.AddCueList(cuelist.SectionStarts(tl))
	master.AddHandler(cuelist.HandlerFunc(func(c *cuelist.Cue) error {
		logger.GetProjectLogger().WithFields(logrus.Fields{"cue_id": c.ID, "kind": c.Kind}).Info(c.String())
		return nil
	}))
	return master
}

func startDMX(ctx context.Context, cfg config.ChoreoConfig, tl *choreo.Timeline, c clock.Clock, wg *sync.WaitGroup) (*fixture.Rig, error) {
	logger := logger.GetProjectLogger()

	group, err := fixture.NewGroupFromPatch(cfg.PatchedFixtures)
	if err != nil {
		return nil, err
	}
	e, err := effect.NewEffect(cfg.Pulse.Easing, cfg.Pulse.Decay)
	if err != nil {
		return nil, err
	}

	logger.Info("Connecting to OLA...")
	client, err := gola.New(cfg.DMX.Address)
	if err != nil {
		logger.Errorf("could not connect to OLA: %v", err)
		return nil, nil
	}

	state := fixture.NewDMXState()
	wg.Add(1)
	go fixture.SendDMXWorker(ctx, client, c, cfg.DMX.Tick, state, wg)

	return fixture.NewRig(tl, group, effect.NewPulse(e, cfg.Pulse.Floor), state, cfg.DMX.Universe), nil
}
