package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/pingcap/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-compositor/parameter"
)

// TcellConsole implements Console on a tcell screen
// A background pump moves key events into a bounded buffer; PollKey reads
// that buffer without blocking. WriteAt and Show must be called from a
// single goroutine
type TcellConsole struct {
	screen tcell.Screen
	log    *zap.Logger

	keys   chan int
	stopCh chan struct{}
	doneCh chan struct{}

	mu      sync.Mutex
	running bool
	closed  bool

	// OnPumpPanic receives a panic raised inside the event pump
	// Defaults to re-panicking on the pump goroutine
	OnPumpPanic func(r any)
}

var _ Console = (*TcellConsole)(nil)

// NewConsole creates a console on the process terminal
func NewConsole(log *zap.Logger) (*TcellConsole, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Annotate(err, "create screen")
	}
	return NewTcellConsole(screen, log), nil
}

// NewTcellConsole wraps an uninitialized screen
func NewTcellConsole(screen tcell.Screen, log *zap.Logger) *TcellConsole {
	if log == nil {
		log = zap.NewNop()
	}
	return &TcellConsole{
		screen: screen,
		log:    log,
		keys:   make(chan int, parameter.KeyBufferSize),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Screen returns the wrapped screen
func (c *TcellConsole) Screen() tcell.Screen { return c.screen }

// Init enters raw mode, hides the cursor, clears the display and starts the
// key pump
func (c *TcellConsole) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return nil
	}
	if c.closed {
		return errors.New("console already finalized")
	}
	if err := c.screen.Init(); err != nil {
		return errors.Annotate(err, "init screen")
	}
	c.screen.DisableMouse()
	c.screen.HideCursor()
	c.screen.SetStyle(tcell.StyleDefault)
	c.screen.Clear()
	c.running = true

	go c.pump()
	c.log.Info("console initialized")
	return nil
}

// Fini stops the key pump and restores the terminal
func (c *TcellConsole) Fini() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running || c.closed {
		c.closed = true
		return
	}
	c.running = false
	c.closed = true

	close(c.stopCh)
	// Interrupt unblocks PollEvent
	c.screen.PostEvent(tcell.NewEventInterrupt(nil))
	<-c.doneCh

	c.screen.Fini()
	c.log.Info("console finalized")
}

// WriteAt writes text starting at (row, col), one rune per cell
func (c *TcellConsole) WriteAt(row, col int, text string) {
	w, h := c.screen.Size()
	if row < 0 || row >= h {
		return
	}
	x := col
	for _, r := range text {
		if x >= w {
			return
		}
		if x >= 0 {
			c.screen.SetContent(x, row, r, nil, tcell.StyleDefault)
		}
		x++
	}
}

// Show flushes pending writes to the display
func (c *TcellConsole) Show() {
	c.screen.Show()
}

// PollKey returns the next buffered key code without blocking
func (c *TcellConsole) PollKey() (int, bool) {
	select {
	case k := <-c.keys:
		return k, true
	default:
		return 0, false
	}
}

// pump reads screen events until stopped
func (c *TcellConsole) pump() {
	// doneCh closes before the panic hook runs; the hook may call Fini
	defer func() {
		r := recover()
		close(c.doneCh)
		if r == nil {
			return
		}
		if c.OnPumpPanic == nil {
			panic(r)
		}
		c.OnPumpPanic(r)
	}()

	for {
		select {
		case <-c.stopCh:
			return
		default:
		}

		ev := c.screen.PollEvent()
		if ev == nil {
			return
		}

		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		code := KeyCode(key)
		select {
		case c.keys <- code:
		default:
			c.log.Debug("key buffer full", zap.Int("key", code))
		}
	}
}
