package fixture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robmorgan/choreo/logger"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// UniverseSize is the number of channels in a DMX512 universe.
const UniverseSize = 512

// DMXState holds the DMX512 values for each channel
type DMXState struct {
	universes map[int][]byte
	lock      sync.Mutex
}

func NewDMXState() *DMXState {
	return &DMXState{universes: make(map[int][]byte)}
}

type dmxOperation struct {
	universe, channel, value int
}

// GetValue returns the value of a channel (1 to 512). Unset channels read as 0.
func (s *DMXState) GetValue(universe, channel int) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	if channel < 1 || channel > UniverseSize || s.universes[universe] == nil {
		return 0
	}
	return int(s.universes[universe][channel-1])
}

func (s *DMXState) set(ops ...dmxOperation) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	for _, op := range ops {
		if op.channel < 1 || op.channel > UniverseSize {
			return fmt.Errorf("dmx channel (%d) not in range, op=%v", op.channel, op)
		}
		if op.value < 0 || op.value > 255 {
			return fmt.Errorf("dmx value (%d) not in range, op=%v", op.value, op)
		}

		s.initializeUniverse(op.universe)
		s.universes[op.universe][op.channel-1] = byte(op.value)
	}

	return nil
}

// Set writes a single channel value.
func (s *DMXState) Set(universe, channel, value int) error {
	return s.set(dmxOperation{universe: universe, channel: channel, value: value})
}

func (s *DMXState) initializeUniverse(universe int) {
	if s.universes[universe] == nil {
		s.universes[universe] = make([]byte, UniverseSize)
	}
}

// snapshot copies every universe so it can be sent without holding the lock.
func (s *DMXState) snapshot() map[int][]byte {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make(map[int][]byte, len(s.universes))
	for k, v := range s.universes {
		out[k] = append([]byte(nil), v...)
	}
	return out
}

// OLAClient is the interface for communicating with OLA
type OLAClient interface {
	SendDmx(universe int, values []byte) (status bool, err error)
	Close()
}

// SendDMXWorker sends OLA the current dmxState across all universes every tick until the context
// is cancelled.
func SendDMXWorker(ctx context.Context, client OLAClient, c clock.Clock, tick time.Duration, state *DMXState, wg *sync.WaitGroup) error {
	defer wg.Done()
	defer client.Close()

	logger := logger.GetProjectLogger()

	t := c.NewTimer(tick)
	defer t.Stop()
	logger.Debugf("SendDMXWorker started at %v", c.Now())

	for {
		select {
		case <-ctx.Done():
			logger.Info("SendDMXWorker shutdown")
			return ctx.Err()
		case <-t.C():
			for k, v := range state.snapshot() {
				if _, err := client.SendDmx(k, v); err != nil {
					logger.WithFields(logrus.Fields{"universe": k}).Warnf("could not send DMX: %v", err)
				}
			}
			t.Reset(tick)
		}
	}
}
