package actor

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/vi-compositor/message"
)

// ID identifies an actor and sets its scheduling priority (lower runs first)
type ID int

// Actor is an independently scheduled unit of logic
// Handlers run on the system loop and must never block
type Actor interface {
	// Init runs once when the system starts, in registration order
	// Subscriptions, timers and entry actions belong here
	Init(ctx *Context)

	// Handle processes exactly one message; unhandled signals are ignored
	Handle(ctx *Context, msg message.Message)
}

// Context is the capability handle passed to an actor
type Context struct {
	sys  *System
	self ID
	name string
	log  *zap.Logger
}

// Self returns the ID of the owning actor
func (c *Context) Self() ID { return c.self }

// Name returns the registered name of the owning actor
func (c *Context) Name() string { return c.name }

// Logger returns the actor's named logger
func (c *Context) Logger() *zap.Logger { return c.log }

// Post sends msg to the mailbox of actor to
func (c *Context) Post(to ID, msg message.Message) bool {
	return c.sys.Post(to, msg)
}

// PostSelf sends msg to the owning actor's own mailbox
func (c *Context) PostSelf(msg message.Message) bool {
	return c.sys.Post(c.self, msg)
}

// Publish broadcasts msg to every subscriber of its topic
func (c *Context) Publish(msg message.Message) int {
	return c.sys.Publish(msg)
}

// Subscribe registers the owning actor for the given topics
func (c *Context) Subscribe(topics ...message.Signal) {
	for _, t := range topics {
		c.sys.Subscribe(c.self, t)
	}
}

// NewTimer creates a disarmed timer posting sig to the owning actor
func (c *Context) NewTimer(sig message.Signal) *Timer {
	return c.sys.newTimer(c.self, sig)
}

// Halt stops the run loop after the current message
func (c *Context) Halt() {
	c.sys.Halt()
}

// Fault wraps a panic raised inside an actor
type Fault struct {
	Actor  string
	Signal message.Signal
	Value  any
}

func (f *Fault) Error() string {
	return fmt.Sprintf("actor %s failed handling %v: %v", f.Actor, f.Signal, f.Value)
}
