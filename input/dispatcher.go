package input

import (
	"github.com/lixenwraith/vi-compositor/actor"
	"github.com/lixenwraith/vi-compositor/message"
)

// Dispatcher is the Key Dispatcher actor: a stateless relay turning Key
// into a KeyDetect broadcast
type Dispatcher struct{}

// NewDispatcher creates a Key Dispatcher
func NewDispatcher() *Dispatcher { return &Dispatcher{} }

func (d *Dispatcher) Init(*actor.Context) {}

func (d *Dispatcher) Handle(ctx *actor.Context, msg message.Message) {
	if msg.Signal != message.Key {
		return
	}
	p, ok := msg.Payload.(message.KeyPayload)
	if !ok {
		return
	}
	ctx.Publish(message.NewKey(message.KeyDetect, p.Key))
}
