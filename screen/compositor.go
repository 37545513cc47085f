// Package screen implements the Screen Compositor actor, the only writer to
// the console drawing primitives
package screen

import (
	"strings"

	"go.uber.org/zap"

	"github.com/lixenwraith/vi-compositor/actor"
	"github.com/lixenwraith/vi-compositor/message"
	"github.com/lixenwraith/vi-compositor/parameter"
	"github.com/lixenwraith/vi-compositor/terminal"
)

// State is the compositor lifecycle state
type State uint8

const (
	StateSetup State = iota // Awaiting Started, paint requests ignored
	StateIdle               // Outline drawn, painting rows
)

func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateIdle:
		return "idle"
	}
	return "unknown"
}

// Compositor draws paint-row fragments on the console and flushes on request
type Compositor struct {
	painter terminal.Painter
	state   State
}

// NewCompositor creates a compositor drawing through p
func NewCompositor(p terminal.Painter) *Compositor {
	return &Compositor{painter: p, state: StateSetup}
}

// State returns the current lifecycle state
func (c *Compositor) State() State { return c.state }

func (c *Compositor) Init(ctx *actor.Context) {
	ctx.Subscribe(message.Started)
}

func (c *Compositor) Handle(ctx *actor.Context, msg message.Message) {
	switch c.state {
	case StateSetup:
		if msg.Signal != message.Started {
			return
		}
		c.drawOutline()
		ctx.PostSelf(message.New(message.Flush, nil))
		c.state = StateIdle
		ctx.Logger().Debug("screen outline drawn", zap.Stringer("state", c.state))

	case StateIdle:
		switch msg.Signal {
		case message.PaintRow:
			p, ok := msg.Payload.(message.PaintRowPayload)
			if !ok {
				return
			}
			c.painter.WriteAt(p.Row, p.Col, p.Text)
		case message.Flush:
			c.painter.Show()
		}
	}
}

// drawOutline frames the physical screen
func (c *Compositor) drawOutline() {
	h, w := parameter.MaxScreenHeight, parameter.MaxScreenWidth
	edge := strings.Repeat("-", w)
	c.painter.WriteAt(0, 0, edge)
	c.painter.WriteAt(h-1, 0, edge)
	for row := 1; row < h-1; row++ {
		c.painter.WriteAt(row, 0, "|")
		c.painter.WriteAt(row, w-1, "|")
	}
}
