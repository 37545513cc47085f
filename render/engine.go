package render

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/lixenwraith/vi-compositor/actor"
	"github.com/lixenwraith/vi-compositor/message"
	"github.com/lixenwraith/vi-compositor/parameter"
)

// EngineConfig configures the Render Engine actor
type EngineConfig struct {
	// Screen receives PaintRow and Flush
	Screen actor.ID
	// Glyphs is the border set of every layer
	Glyphs Glyphs
	// EchoLayer and EchoSection name the section receiving key echoes
	// An empty EchoSection disables echoing
	EchoLayer   int
	EchoSection string
}

// Engine is the Render Engine actor: it owns the canvas and turns section
// requests into row repaints for the Screen Compositor
type Engine struct {
	cfg    EngineConfig
	canvas *Canvas
}

// NewEngine creates a Render Engine with a blank canvas
func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{
		cfg:    cfg,
		canvas: NewCanvas(cfg.Glyphs),
	}
}

// Canvas exposes the canvas for inspection
func (e *Engine) Canvas() *Canvas { return e.canvas }

func (e *Engine) Init(ctx *actor.Context) {
	ctx.Subscribe(message.KeyDetect)
}

func (e *Engine) Handle(ctx *actor.Context, msg message.Message) {
	switch msg.Signal {
	case message.CreateSection:
		p, ok := msg.Payload.(message.SectionPayload)
		if !ok {
			return
		}
		e.createSection(ctx, p)

	case message.DeleteSection:
		p, ok := msg.Payload.(message.DeletePayload)
		if !ok {
			return
		}
		e.deleteSection(ctx, p)

	case message.PaintLine:
		p, ok := msg.Payload.(message.PaintLinePayload)
		if !ok {
			return
		}
		e.paintLine(ctx, p.Layer, p.Key, p.RowOffset, p.ColOffset, p.Text)

	case message.KeyDetect:
		p, ok := msg.Payload.(message.KeyPayload)
		if !ok || e.cfg.EchoSection == "" {
			return
		}
		s, ok := e.section(e.cfg.EchoLayer, e.cfg.EchoSection)
		if !ok {
			return
		}
		text := fmt.Sprintf("%-*s", s.Width, strconv.Itoa(p.Key))
		e.paintLine(ctx, e.cfg.EchoLayer, e.cfg.EchoSection, 0, 0, text)
	}
}

func (e *Engine) createSection(ctx *actor.Context, p message.SectionPayload) {
	rows, ok := e.canvas.CreateSection(p.Layer, p.Section)
	if !ok {
		ctx.Logger().Debug("section rejected",
			zap.Int("layer", p.Layer), zap.String("key", p.Section.Key),
			zap.Int("row", p.Section.Row), zap.Int("col", p.Section.Col),
			zap.Int("height", p.Section.Height), zap.Int("width", p.Section.Width))
		return
	}
	l := e.canvas.Layer(p.Layer)
	for _, row := range rows {
		from := l.Dirty(row)
		ctx.Post(e.cfg.Screen, message.NewPaintRow(row, from, l.RowText(row, from)))
	}
	ctx.Post(e.cfg.Screen, message.New(message.Flush, nil))
}

func (e *Engine) paintLine(ctx *actor.Context, layer int, key string, rowOffset, colOffset int, text string) {
	row, ok := e.canvas.PaintLine(layer, key, rowOffset, colOffset, text)
	if !ok {
		ctx.Logger().Debug("paint ignored", zap.Int("layer", layer), zap.String("key", key),
			zap.Int("row_offset", rowOffset), zap.Int("col_offset", colOffset))
		return
	}
	l := e.canvas.Layer(layer)
	from := l.Dirty(row)
	ctx.Post(e.cfg.Screen, message.NewPaintRow(row, from, l.RowText(row, from)))
	ctx.Post(e.cfg.Screen, message.New(message.Flush, nil))
}

func (e *Engine) deleteSection(ctx *actor.Context, p message.DeletePayload) {
	s, ok := e.canvas.DeleteSection(p.Layer, p.Key)
	if !ok {
		ctx.Logger().Debug("delete ignored", zap.Int("layer", p.Layer), zap.String("key", p.Key))
		return
	}
	l := e.canvas.Layer(p.Layer)
	for _, row := range spannedRows(s) {
		from := s.Left()
		if d := l.Dirty(row); d != parameter.DirtyNone && d < from {
			from = d
		}
		// Paint through the erased right edge so stale cells are blanked
		to := s.Right()
		if last := l.lastCell(row); last > to {
			to = last
		}
		ctx.Post(e.cfg.Screen, message.NewPaintRow(row, from, l.Span(row, from, to)))
	}
	ctx.Post(e.cfg.Screen, message.New(message.Flush, nil))
}

func (e *Engine) section(layer int, key string) (message.Section, bool) {
	l := e.canvas.Layer(layer)
	if l == nil {
		return message.Section{}, false
	}
	return l.Section(message.ClampKey(key))
}
