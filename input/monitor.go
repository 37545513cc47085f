package input

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-compositor/actor"
	"github.com/lixenwraith/vi-compositor/message"
	"github.com/lixenwraith/vi-compositor/terminal"
)

// MonitorState is the Input Monitor lifecycle state
type MonitorState uint8

const (
	MonitorUninitialized MonitorState = iota // Awaiting Started
	MonitorPolling                           // Scanning the console every tick
	MonitorStopped                           // Scan timer disarmed
)

func (s MonitorState) String() string {
	switch s {
	case MonitorUninitialized:
		return "uninitialized"
	case MonitorPolling:
		return "polling"
	case MonitorStopped:
		return "stopped"
	}
	return "unknown"
}

// Monitor is the Input Monitor actor: once the console is up it polls for
// one key per tick and forwards it to the Key Dispatcher
type Monitor struct {
	keys       terminal.KeySource
	dispatcher actor.ID
	state      MonitorState
	scan       *actor.Timer
}

// NewMonitor creates a monitor reading keys and posting them to dispatcher
func NewMonitor(keys terminal.KeySource, dispatcher actor.ID) *Monitor {
	return &Monitor{keys: keys, dispatcher: dispatcher}
}

// State returns the current lifecycle state
func (m *Monitor) State() MonitorState { return m.state }

func (m *Monitor) Init(ctx *actor.Context) {
	ctx.Subscribe(message.Started, message.Stop)
	m.scan = ctx.NewTimer(message.KeyScan)
}

func (m *Monitor) Handle(ctx *actor.Context, msg message.Message) {
	switch m.state {
	case MonitorUninitialized:
		if msg.Signal == message.Started {
			m.scan.Arm(1, 1)
			m.state = MonitorPolling
		}

	case MonitorPolling:
		switch msg.Signal {
		case message.KeyScan:
			key, ok := m.keys.PollKey()
			if !ok {
				return
			}
			if !ctx.Post(m.dispatcher, message.NewKey(message.Key, key)) {
				ctx.Logger().Debug("key dropped", zap.Int("key", key))
			}
		case message.Stop:
			m.scan.Disarm()
			m.state = MonitorStopped
		}
	}
}
