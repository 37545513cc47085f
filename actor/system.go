package actor

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pingcap/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-compositor/message"
	"github.com/lixenwraith/vi-compositor/parameter"
	"github.com/lixenwraith/vi-compositor/status"
)

// Config parameterizes a System
// Zero fields fall back to reference defaults
type Config struct {
	MailboxDepth int
	Pools        *message.Pools
	Clock        clock.Clock
	TickInterval time.Duration
	Logger       *zap.Logger
	Status       *status.Registry

	// CrashHandler receives a *Fault when a handler panics
	// Nil re-panics with the fault
	CrashHandler func(r any)
}

// proc is the runtime record of a registered actor
type proc struct {
	id      ID
	name    string
	actor   Actor
	mailbox *Mailbox
	ctx     *Context

	processed *atomic.Int64
	dropped   *atomic.Int64
	depthMax  *atomic.Int64
}

// System is the actor handle table and cooperative scheduler
// Registration, subscription and Start happen before Run on a single
// goroutine; Post and Publish are safe from any goroutine
type System struct {
	procs []*proc // scan order, ascending ID
	order []*proc // registration order, used by Start
	byID  map[ID]*proc
	subs  [message.MaxTopic][]*proc

	timers []*Timer

	pools        *message.Pools
	mailboxDepth int
	clock        clock.Clock
	tickInterval time.Duration
	log          *zap.Logger
	stats        *status.Registry
	crash        func(r any)

	poolExhausted [len(message.Weights)]*atomic.Int64
	unroutable    *atomic.Int64
	ticks         *atomic.Int64

	wake    chan struct{}
	started bool
	halted  atomic.Bool
}

// NewSystem creates an empty system
func NewSystem(cfg Config) *System {
	s := &System{
		byID:         make(map[ID]*proc),
		pools:        cfg.Pools,
		mailboxDepth: cfg.MailboxDepth,
		clock:        cfg.Clock,
		tickInterval: cfg.TickInterval,
		log:          cfg.Logger,
		stats:        cfg.Status,
		crash:        cfg.CrashHandler,
		wake:         make(chan struct{}, 1),
	}
	if s.pools == nil {
		s.pools = message.DefaultPools()
	}
	if s.mailboxDepth <= 0 {
		s.mailboxDepth = parameter.MailboxDepth
	}
	if s.clock == nil {
		s.clock = clock.New()
	}
	if s.tickInterval <= 0 {
		s.tickInterval = parameter.TickInterval
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.stats == nil {
		s.stats = status.NewRegistry()
	}
	for _, w := range message.Weights {
		s.poolExhausted[w] = s.stats.Counter("pool." + w.String() + ".exhausted")
	}
	s.unroutable = s.stats.Counter("system.unroutable")
	s.ticks = s.stats.Counter("system.ticks")
	return s
}

// Register adds an actor under a unique non-zero ID
// Must be called before Start
func (s *System) Register(id ID, name string, a Actor) error {
	if s.started {
		return errors.Errorf("register %s: system already started", name)
	}
	if id <= 0 {
		return errors.Errorf("register %s: invalid id %d", name, id)
	}
	if prev, ok := s.byID[id]; ok {
		return errors.Errorf("register %s: id %d already taken by %s", name, id, prev.name)
	}

	p := &proc{
		id:        id,
		name:      name,
		actor:     a,
		mailbox:   NewMailbox(s.mailboxDepth),
		processed: s.stats.Counter("actor." + name + ".processed"),
		dropped:   s.stats.Counter("actor." + name + ".dropped"),
		depthMax:  s.stats.Counter("actor." + name + ".depth_max"),
	}
	p.ctx = &Context{sys: s, self: id, name: name, log: s.log.Named(name)}

	s.byID[id] = p
	s.order = append(s.order, p)
	s.procs = append(s.procs, p)
	sort.SliceStable(s.procs, func(i, j int) bool { return s.procs[i].id < s.procs[j].id })
	return nil
}

// Start runs Init of every actor in registration order
// Actors that must observe an announcement made by another actor's Init
// have to be registered before it
func (s *System) Start() {
	if s.started {
		return
	}
	s.started = true
	for _, p := range s.order {
		s.guard(p, 0, func() { p.actor.Init(p.ctx) })
		s.log.Debug("actor started", zap.String("actor", p.name), zap.Int("priority", int(p.id)))
	}
}

// Subscribe registers actor id for topic; registration is permanent
func (s *System) Subscribe(id ID, topic message.Signal) {
	p, ok := s.byID[id]
	if !ok || !topic.IsTopic() {
		s.log.Warn("subscription ignored", zap.Int("actor", int(id)), zap.Stringer("topic", topic))
		return
	}
	for _, sub := range s.subs[topic] {
		if sub == p {
			return
		}
	}
	s.subs[topic] = append(s.subs[topic], p)
}

// Subscribers returns the IDs subscribed to topic in subscription order
func (s *System) Subscribers(topic message.Signal) []ID {
	if !topic.IsTopic() {
		return nil
	}
	ids := make([]ID, 0, len(s.subs[topic]))
	for _, p := range s.subs[topic] {
		ids = append(ids, p.id)
	}
	return ids
}

// Post enqueues msg at the tail of actor to's mailbox
// Returns false when the message was dropped
func (s *System) Post(to ID, msg message.Message) bool {
	p, ok := s.byID[to]
	if !ok {
		s.unroutable.Add(1)
		return false
	}
	w := msg.Weight()
	if !s.pools.Acquire(w) {
		s.poolExhausted[w].Add(1)
		s.log.Debug("message storage exhausted", zap.Stringer("signal", msg.Signal), zap.Stringer("class", w))
		return false
	}
	l := &lease{weight: w}
	l.refs.Store(1)
	if !s.deliver(p, envelope{msg: msg, lease: l}) {
		s.release(l)
		return false
	}
	s.notify()
	return true
}

// Publish delivers a copy of msg to every subscriber of its topic
// All copies share one storage slot, released after the last copy is
// processed. Returns the number of mailboxes that accepted a copy
func (s *System) Publish(msg message.Message) int {
	if !msg.Signal.IsTopic() {
		s.unroutable.Add(1)
		return 0
	}
	subs := s.subs[msg.Signal]
	if len(subs) == 0 {
		return 0
	}
	w := msg.Weight()
	if !s.pools.Acquire(w) {
		s.poolExhausted[w].Add(1)
		s.log.Debug("message storage exhausted", zap.Stringer("signal", msg.Signal), zap.Stringer("class", w))
		return 0
	}
	l := &lease{weight: w}
	l.refs.Store(int32(len(subs)))

	delivered := 0
	for _, p := range subs {
		if s.deliver(p, envelope{msg: msg, lease: l}) {
			delivered++
		} else {
			s.release(l)
		}
	}
	if delivered > 0 {
		s.notify()
	}
	return delivered
}

func (s *System) deliver(p *proc, e envelope) bool {
	if !p.mailbox.push(e) {
		p.dropped.Add(1)
		s.log.Debug("mailbox full", zap.String("actor", p.name), zap.Stringer("signal", e.msg.Signal))
		return false
	}
	status.StoreMax(p.depthMax, int64(p.mailbox.Len()))
	return true
}

// release drops one reference, returning storage on the last
func (s *System) release(l *lease) {
	if l.refs.Add(-1) == 0 {
		s.pools.Release(l.weight)
	}
}

func (s *System) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Step lets the highest-priority actor with a pending message process
// exactly one. Returns false when every mailbox is empty
func (s *System) Step() bool {
	for _, p := range s.procs {
		e, ok := p.mailbox.pop()
		if !ok {
			continue
		}
		s.guard(p, e.msg.Signal, func() { p.actor.Handle(p.ctx, e.msg) })
		s.release(e.lease)
		p.processed.Add(1)
		return true
	}
	return false
}

// Drain steps until every mailbox is empty or the system halts
// Returns the number of messages processed
func (s *System) Drain() int {
	n := 0
	for !s.halted.Load() && s.Step() {
		n++
	}
	return n
}

// Tick advances every timer by one tick
func (s *System) Tick() {
	s.ticks.Add(1)
	for _, t := range s.timers {
		t.tick()
	}
}

// Halt makes Run return after the current message
func (s *System) Halt() {
	s.halted.Store(true)
	s.notify()
}

// Halted reports whether Halt was called
func (s *System) Halted() bool {
	return s.halted.Load()
}

// Pending returns the number of messages waiting in actor id's mailbox
func (s *System) Pending(id ID) int {
	p, ok := s.byID[id]
	if !ok {
		return 0
	}
	return p.mailbox.Len()
}

// Pools returns the message storage of the system
func (s *System) Pools() *message.Pools {
	return s.pools
}

// Run starts the system if needed and processes messages until halted or
// ctx is cancelled. When every mailbox is empty it sleeps until the next
// tick or a new post
func (s *System) Run(ctx context.Context) error {
	s.Start()

	ticker := s.clock.Ticker(s.tickInterval)
	defer ticker.Stop()

	for {
		s.Drain()
		if s.halted.Load() {
			s.log.Info("system halted")
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Tick()
		case <-s.wake:
		}
	}
}

func (s *System) newTimer(owner ID, sig message.Signal) *Timer {
	t := &Timer{sys: s, owner: owner, signal: sig}
	s.timers = append(s.timers, t)
	return t
}

// guard runs fn, converting a panic into a Fault for the crash handler
func (s *System) guard(p *proc, sig message.Signal, fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		fault := &Fault{Actor: p.name, Signal: sig, Value: r}
		s.log.Error("actor fault", zap.String("actor", p.name), zap.Stringer("signal", sig), zap.Any("panic", r))
		if s.crash == nil {
			panic(fault)
		}
		s.crash(fault)
	}()
	fn()
}
