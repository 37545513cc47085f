package engine

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/pingcap/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-compositor/actor"
	"github.com/lixenwraith/vi-compositor/config"
	"github.com/lixenwraith/vi-compositor/constant"
	"github.com/lixenwraith/vi-compositor/core"
	"github.com/lixenwraith/vi-compositor/input"
	"github.com/lixenwraith/vi-compositor/message"
	"github.com/lixenwraith/vi-compositor/render"
	"github.com/lixenwraith/vi-compositor/screen"
	"github.com/lixenwraith/vi-compositor/status"
	"github.com/lixenwraith/vi-compositor/terminal"
)

// Deps are the collaborators of a Runtime
// Nil fields fall back to production defaults
type Deps struct {
	Clock        clock.Clock
	Logger       *zap.Logger
	Status       *status.Registry
	CrashHandler func(r any)
}

// Runtime wires the five compositor actors onto one system
type Runtime struct {
	System     *actor.System
	Engine     *Engine
	Render     *render.Engine
	Compositor *screen.Compositor
	Monitor    *input.Monitor
}

// NewRuntime builds and registers every actor
// The Engine is registered last so that the other actors' subscriptions
// exist when its Init announces Started
func NewRuntime(cfg *config.Config, console terminal.Console, deps Deps) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	glyphs, err := cfg.Glyphs()
	if err != nil {
		return nil, errors.Trace(err)
	}
	quit, err := cfg.QuitKeyCode()
	if err != nil {
		return nil, errors.Trace(err)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.CrashHandler == nil {
		deps.CrashHandler = core.HandleCrash
	}

	sys := actor.NewSystem(actor.Config{
		MailboxDepth: cfg.Messaging.MailboxDepth,
		Pools:        message.NewPools(cfg.Messaging.TinyPool, cfg.Messaging.SmallPool, cfg.Messaging.MediumPool),
		Clock:        deps.Clock,
		TickInterval: cfg.TickInterval(),
		Logger:       deps.Logger,
		Status:       deps.Status,
		CrashHandler: deps.CrashHandler,
	})

	rt := &Runtime{
		System:     sys,
		Monitor:    input.NewMonitor(console, constant.ActorKeyDispatcher),
		Compositor: screen.NewCompositor(console),
		Render: render.NewEngine(render.EngineConfig{
			Screen:      constant.ActorScreenCompositor,
			Glyphs:      glyphs,
			EchoSection: cfg.EchoSection,
		}),
		Engine: New(console, Options{
			Render:   constant.ActorRenderEngine,
			RunTicks: cfg.RunTicks(),
			QuitKey:  quit,
			Layout:   cfg.Layout,
		}),
	}

	regs := []struct {
		id    actor.ID
		name  string
		actor actor.Actor
	}{
		{constant.ActorInputMonitor, constant.NameInputMonitor, rt.Monitor},
		{constant.ActorKeyDispatcher, constant.NameKeyDispatcher, input.NewDispatcher()},
		{constant.ActorScreenCompositor, constant.NameScreenCompositor, rt.Compositor},
		{constant.ActorRenderEngine, constant.NameRenderEngine, rt.Render},
		{constant.ActorEngine, constant.NameEngine, rt.Engine},
	}
	for _, r := range regs {
		if err := sys.Register(r.id, r.name, r.actor); err != nil {
			return nil, errors.Trace(err)
		}
	}
	return rt, nil
}

// Run drives the system until the Engine halts it
// Cancelling ctx requests Stop, so teardown still goes through the Engine
func (rt *Runtime) Run(ctx context.Context) error {
	rt.System.Start()

	done := make(chan struct{})
	defer close(done)
	core.Go(func() {
		select {
		case <-ctx.Done():
			if !rt.Stop() {
				rt.System.Halt()
			}
		case <-done:
		}
	})
	return errors.Trace(rt.System.Run(context.Background()))
}

// Stop broadcasts Stop; safe from any goroutine once the system started
// Returns false when the broadcast was dropped
func (rt *Runtime) Stop() bool {
	return rt.System.Publish(message.New(message.Stop, nil)) > 0
}
