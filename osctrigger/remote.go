package osctrigger

import (
	"fmt"

	"github.com/hypebeast/go-osc/osc"
	"github.com/robmorgan/choreo/logger"
	"github.com/sirupsen/logrus"
)

const (
	PlayAddress   = "/choreo/play"
	PauseAddress  = "/choreo/pause"
	ToggleAddress = "/choreo/toggle"
	SeekAddress   = "/choreo/seek"
)

// CommandKind is a transport command received over OSC.
type CommandKind int

const (
	CommandPlay CommandKind = iota
	CommandPause
	CommandToggle
	CommandSeek
)

// Command is a decoded transport message. Seconds is only set for seeks.
type Command struct {
	Kind    CommandKind
	Seconds float64
}

// Remote is an osc.Dispatcher that turns incoming messages into transport commands. Commands that
// arrive while the previous ones have not been consumed are dropped.
type Remote struct {
	commands chan Command
}

func NewRemote(buffer int) *Remote {
	return &Remote{commands: make(chan Command, buffer)}
}

// Commands returns the channel the decoded commands are delivered on.
func (r *Remote) Commands() <-chan Command {
	return r.commands
}

// Dispatch implements osc.Dispatcher.
func (r *Remote) Dispatch(packet osc.Packet) {
	logger := logger.GetProjectLogger()

	switch packet := packet.(type) {
	case *osc.Message:
		cmd, err := decode(packet)
		if err != nil {
			logger.WithFields(logrus.Fields{"address": packet.Address}).Warnf("ignoring OSC message: %v", err)
			return
		}
		select {
		case r.commands <- cmd:
		default:
			logger.WithFields(logrus.Fields{"address": packet.Address}).Warn("dropping OSC command, queue full")
		}
	case *osc.Bundle:
		for _, m := range packet.Messages {
			r.Dispatch(m)
		}
		for _, b := range packet.Bundles {
			r.Dispatch(b)
		}
	}
}

func decode(msg *osc.Message) (Command, error) {
	switch msg.Address {
	case PlayAddress:
		return Command{Kind: CommandPlay}, nil
	case PauseAddress:
		return Command{Kind: CommandPause}, nil
	case ToggleAddress:
		return Command{Kind: CommandToggle}, nil
	case SeekAddress:
		if len(msg.Arguments) != 1 {
			return Command{}, fmt.Errorf("seek takes one argument, got %d", len(msg.Arguments))
		}
		switch v := msg.Arguments[0].(type) {
		case float32:
			return Command{Kind: CommandSeek, Seconds: float64(v)}, nil
		case float64:
			return Command{Kind: CommandSeek, Seconds: v}, nil
		case int32:
			return Command{Kind: CommandSeek, Seconds: float64(v)}, nil
		case int64:
			return Command{Kind: CommandSeek, Seconds: float64(v)}, nil
		}
		return Command{}, fmt.Errorf("seek argument must be a number, got %T", msg.Arguments[0])
	}
	return Command{}, fmt.Errorf("unknown address")
}

// ListenAndServe receives commands on a UDP address until the server fails.
func (r *Remote) ListenAndServe(addr string) error {
	server := &osc.Server{Addr: addr, Dispatcher: r}
	logger.GetProjectLogger().Infof("Listening for OSC commands via UDP on %s", addr)
	return server.ListenAndServe()
}
