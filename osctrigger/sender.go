// Package osctrigger forwards fired cues as OSC messages and accepts transport commands over OSC.
package osctrigger

import (
	"fmt"
	"net"
	"strconv"

	"github.com/hypebeast/go-osc/osc"
	"github.com/robmorgan/choreo/cuelist"
	"github.com/robmorgan/choreo/logger"
)

const (
	CueAddress     = "/choreo/cue"
	SectionAddress = "/choreo/section"
	StepAddress    = "/choreo/step"
)

// Client sends OSC packets. *osc.Client satisfies it.
type Client interface {
	Send(packet osc.Packet) error
}

// Sender is a cue handler that mirrors cues to an OSC target.
type Sender struct {
	client Client
}

// NewSender creates a sender for a "host:port" target.
func NewSender(target string) (*Sender, error) {
	host, portStr, err := net.SplitHostPort(target)
	if err != nil {
		return nil, fmt.Errorf("invalid OSC target %q: %w", target, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid OSC port %q: %w", portStr, err)
	}
	return NewSenderWithClient(osc.NewClient(host, port)), nil
}

func NewSenderWithClient(client Client) *Sender {
	return &Sender{client: client}
}

// HandleCue sends `/choreo/cue <beat> <seconds>` for beat cues, `/choreo/section <name>` for section
// starts and `/choreo/step <step>` for loop steps.
func (s *Sender) HandleCue(c *cuelist.Cue) error {
	var msg *osc.Message
	switch c.Kind {
	case cuelist.KindBeat:
		msg = osc.NewMessage(CueAddress, int32(c.Beat), float32(c.Time))
	case cuelist.KindSection:
		msg = osc.NewMessage(SectionAddress, c.Name)
	case cuelist.KindStep:
		msg = osc.NewMessage(StepAddress, int32(c.Beat)+1)
	default:
		return nil
	}

	logger.GetProjectLogger().Debugf("-- OSC Message: %s", msg)
	if err := s.client.Send(msg); err != nil {
		return fmt.Errorf("sending %s: %w", msg.Address, err)
	}
	return nil
}
