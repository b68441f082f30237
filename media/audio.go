package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/choreo/logger"
	"github.com/sirupsen/logrus"
)

// AudioPlayer plays an mp3 or wav file through the speaker and exposes it as a media clock. Commands
// settle when the speaker pulls its next buffer with the new state in place.
type AudioPlayer struct {
	path     string
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl

	// guarded by speaker.Lock
	state       State
	pendingPlay []*Future
	pendingSeek []*Future
}

// OpenAudio decodes the file and starts it on the speaker, paused.
func OpenAudio(path string) (*AudioPlayer, error) {
	streamer, format, err := decodeAudio(path)
	if err != nil {
		return nil, err
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		streamer.Close()
		return nil, errors.WithStackTrace(err)
	}

	p := &AudioPlayer{
		path:     path,
		streamer: streamer,
		format:   format,
		ctrl:     &beep.Ctrl{Streamer: streamer, Paused: true},
		state:    StateCued,
	}
	speaker.Play(&settlingStreamer{player: p})

	logger.GetProjectLogger().WithFields(logrus.Fields{
		"file":        path,
		"sample_rate": format.SampleRate,
		"duration":    format.SampleRate.D(streamer.Len()),
	}).Info("Audio loaded")

	return p, nil
}

// decodeAudio opens and decodes an mp3 or wav file.
func decodeAudio(path string) (beep.StreamSeekCloser, beep.Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, errors.WithStackTrace(err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		stream, format, err = mp3.Decode(file)
	case ".wav":
		stream, format, err = wav.Decode(file)
	default:
		file.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported audio format %q", ext)
	}
	if err != nil {
		file.Close()
		return nil, beep.Format{}, errors.WithStackTrace(err)
	}
	return stream, format, nil
}

// Duration returns the length of the decoded stream.
func (p *AudioPlayer) Duration() (float64, bool) {
	speaker.Lock()
	defer speaker.Unlock()

	n := p.streamer.Len()
	if n <= 0 {
		return 0, false
	}
	return p.format.SampleRate.D(n).Seconds(), true
}

// CurrentTime returns the playhead position.
func (p *AudioPlayer) CurrentTime() float64 {
	speaker.Lock()
	defer speaker.Unlock()
	return p.format.SampleRate.D(p.streamer.Position()).Seconds()
}

// SetCurrentTime moves the playhead without waiting for the speaker.
func (p *AudioPlayer) SetCurrentTime(t float64) {
	speaker.Lock()
	defer speaker.Unlock()
	if err := p.seekLocked(t); err != nil {
		logger.GetProjectLogger().WithField("position", t).Warnf("could not set audio position: %v", err)
	}
}

// Play unpauses the stream.
func (p *AudioPlayer) Play() *Future {
	speaker.Lock()
	defer speaker.Unlock()

	if p.state == StateEnded {
		if err := p.seekLocked(0); err != nil {
			return Resolved(err)
		}
	}

	f := NewFuture()
	p.ctrl.Paused = false
	p.state = StateBuffering
	p.pendingPlay = append(p.pendingPlay, f)
	return f
}

// Pause pauses the stream immediately.
func (p *AudioPlayer) Pause() {
	speaker.Lock()
	defer speaker.Unlock()

	p.ctrl.Paused = true
	for _, f := range p.pendingPlay {
		f.Resolve(nil)
	}
	p.pendingPlay = nil
	if p.state != StateEnded {
		p.state = StatePaused
	}
}

// Seek moves the playhead and resolves once the speaker has streamed from the new position.
func (p *AudioPlayer) Seek(t float64) *Future {
	speaker.Lock()
	defer speaker.Unlock()

	if err := p.seekLocked(t); err != nil {
		return Resolved(err)
	}
	if p.ctrl.Paused {
		return Resolved(nil)
	}

	f := NewFuture()
	p.state = StateBuffering
	p.pendingSeek = append(p.pendingSeek, f)
	return f
}

// State returns the playback state.
func (p *AudioPlayer) State() State {
	speaker.Lock()
	defer speaker.Unlock()
	return p.state
}

// Close stops playback and releases the decoder.
func (p *AudioPlayer) Close() error {
	speaker.Clear()
	return p.streamer.Close()
}

func (p *AudioPlayer) seekLocked(t float64) error {
	n := p.format.SampleRate.N(time.Duration(t * float64(time.Second)))
	if n < 0 {
		n = 0
	}
	if l := p.streamer.Len(); n >= l {
		n = l - 1
	}
	if err := p.streamer.Seek(n); err != nil {
		return err
	}
	if p.state == StateEnded {
		p.state = StatePaused
		if !p.ctrl.Paused {
			p.state = StateBuffering
		}
	}
	return nil
}

// settlingStreamer sits between the speaker and the player's Ctrl. The speaker calls Stream with its lock
// held, so the player's guarded fields can be touched here.
type settlingStreamer struct {
	player *AudioPlayer
}

func (s *settlingStreamer) Stream(samples [][2]float64) (int, bool) {
	p := s.player

	if !p.ctrl.Paused {
		for _, f := range p.pendingPlay {
			f.Resolve(nil)
		}
		for _, f := range p.pendingSeek {
			f.Resolve(nil)
		}
		p.pendingPlay, p.pendingSeek = nil, nil
		if p.state == StateBuffering || p.state == StateCued {
			p.state = StatePlaying
		}
	}

	n, ok := p.ctrl.Stream(samples)
	if !ok || (n < len(samples) && !p.ctrl.Paused) {
		// keep the streamer on the mixer after the media ends so it can be replayed
		for i := n; i < len(samples); i++ {
			samples[i] = [2]float64{}
		}
		if p.state == StatePlaying {
			p.state = StateEnded
			p.ctrl.Paused = true
		}
	}
	return len(samples), true
}

func (s *settlingStreamer) Err() error {
	return s.player.streamer.Err()
}
