package engine

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-compositor/actor"
	"github.com/lixenwraith/vi-compositor/config"
	"github.com/lixenwraith/vi-compositor/core"
	"github.com/lixenwraith/vi-compositor/message"
	"github.com/lixenwraith/vi-compositor/terminal"
)

// Phase is the Engine lifecycle phase
type Phase uint8

const (
	PhaseStarting Phase = iota // Console set up, Started announced
	PhaseRunning               // Layout requested, awaiting stop
	PhaseStopping              // Stop announced, awaiting teardown
	PhaseHalted                // Console restored, run loop halted
)

func (p Phase) String() string {
	switch p {
	case PhaseStarting:
		return "starting"
	case PhaseRunning:
		return "running"
	case PhaseStopping:
		return "stopping"
	case PhaseHalted:
		return "halted"
	}
	return "unknown"
}

// Options configures the Engine actor
type Options struct {
	// Render receives the startup CreateSection requests
	Render actor.ID
	// RunTicks arms the stop timer; zero runs until the quit key
	RunTicks int
	// QuitKey publishes Stop when detected; negative disables it
	QuitKey int
	// Layout is created in order once Started is observed
	Layout []config.LayoutEntry
}

// Engine owns console setup and teardown, the initial layout and the stop
// policy
type Engine struct {
	opts    Options
	console terminal.Lifecycle
	phase   Phase
	stop    *actor.Timer
}

// New creates an Engine driving console
func New(console terminal.Lifecycle, opts Options) *Engine {
	return &Engine{opts: opts, console: console}
}

// Phase returns the current lifecycle phase
func (e *Engine) Phase() Phase { return e.phase }

func (e *Engine) Init(ctx *actor.Context) {
	ctx.Subscribe(message.Started, message.Stop, message.KeyDetect)

	e.stop = ctx.NewTimer(message.Timeout)
	if e.opts.RunTicks > 0 {
		e.stop.Arm(e.opts.RunTicks, 0)
	}

	err := e.console.Init()
	core.Assertf(err == nil, "console setup failed: %v", err)

	e.phase = PhaseStarting
	ctx.Publish(message.New(message.Started, nil))
	ctx.Logger().Info("engine started",
		zap.Int("run_ticks", e.opts.RunTicks), zap.Int("sections", len(e.opts.Layout)))
}

func (e *Engine) Handle(ctx *actor.Context, msg message.Message) {
	switch msg.Signal {
	case message.Started:
		if e.phase != PhaseStarting {
			return
		}
		for _, entry := range e.opts.Layout {
			ctx.Post(e.opts.Render, message.NewCreateSection(entry.Layer, entry.Section()))
		}
		e.phase = PhaseRunning

	case message.Timeout:
		ctx.Logger().Info("run time elapsed")
		e.requestStop(ctx)

	case message.KeyDetect:
		p, ok := msg.Payload.(message.KeyPayload)
		if !ok || e.opts.QuitKey < 0 || p.Key != e.opts.QuitKey {
			return
		}
		ctx.Logger().Info("quit key pressed", zap.String("key", terminal.KeyName(p.Key)))
		e.requestStop(ctx)

	case message.Stop:
		if e.phase == PhaseHalted {
			return
		}
		e.stop.Disarm()
		e.console.Fini()
		e.phase = PhaseHalted
		ctx.Logger().Info("engine stopped")
		ctx.Halt()
	}
}

// requestStop announces Stop once
func (e *Engine) requestStop(ctx *actor.Context) {
	if e.phase >= PhaseStopping {
		return
	}
	e.phase = PhaseStopping
	ctx.Publish(message.New(message.Stop, nil))
}
