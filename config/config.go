// Package config loads the compositor configuration from TOML
package config

import (
	"bytes"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/vi-compositor/message"
	"github.com/lixenwraith/vi-compositor/parameter"
	"github.com/lixenwraith/vi-compositor/render"
	"github.com/lixenwraith/vi-compositor/terminal"
)

const (
	defaultQuitKey     = "q"
	defaultEchoSection = "topLeft"
	defaultBorder      = "ascii"
	defaultLogFile     = "vi-compositor.log"
	defaultLogLevel    = "info"
)

// Duration decodes TOML strings such as "5s" into a time.Duration
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Annotatef(err, "invalid duration %q", text)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Messaging sizes the actor substrate
type Messaging struct {
	MailboxDepth int `toml:"mailbox_depth"`
	TinyPool     int `toml:"tiny_pool"`
	SmallPool    int `toml:"small_pool"`
	MediumPool   int `toml:"medium_pool"`
}

// LayoutEntry is one section created at startup
type LayoutEntry struct {
	Layer  int    `toml:"layer"`
	Key    string `toml:"key"`
	Row    int    `toml:"row"`
	Col    int    `toml:"col"`
	Height int    `toml:"height"`
	Width  int    `toml:"width"`
}

// Section returns the descriptor of the entry
func (e LayoutEntry) Section() message.Section {
	return message.Section{Key: e.Key, Row: e.Row, Col: e.Col, Height: e.Height, Width: e.Width}
}

// Config is the full compositor configuration
type Config struct {
	TicksPerSecond int      `toml:"ticks_per_second"`
	RunFor         Duration `toml:"run_for"`
	QuitKey        string   `toml:"quit_key"`
	EchoSection    string   `toml:"echo_section"`
	Border         string   `toml:"border"`
	LogFile        string   `toml:"log_file"`
	LogLevel       string   `toml:"log_level"`
	MetricsAddr    string   `toml:"metrics_addr"`

	Messaging Messaging     `toml:"messaging"`
	Layout    []LayoutEntry `toml:"layout"`
}

// Default returns the reference configuration
func Default() *Config {
	return &Config{
		TicksPerSecond: parameter.TicksPerSecond,
		RunFor:         Duration{parameter.DefaultRunFor},
		QuitKey:        defaultQuitKey,
		EchoSection:    defaultEchoSection,
		Border:         defaultBorder,
		LogFile:        defaultLogFile,
		LogLevel:       defaultLogLevel,
		Messaging: Messaging{
			MailboxDepth: parameter.MailboxDepth,
			TinyPool:     parameter.TinyPoolSize,
			SmallPool:    parameter.SmallPoolSize,
			MediumPool:   parameter.MediumPoolSize,
		},
		Layout: DefaultLayout(),
	}
}

// DefaultLayout returns the startup sections of the reference flow
func DefaultLayout() []LayoutEntry {
	return []LayoutEntry{
		{Layer: 0, Key: defaultEchoSection, Row: 1, Col: 1, Height: 4, Width: 9},
		{Layer: 0, Key: "topRight", Row: 1, Col: 11, Height: 7, Width: 6},
	}
}

// Load reads path over the defaults and validates the result
// An empty path returns the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	// A file that declares [[layout]] replaces the default layout
	cfg.Layout = nil
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Annotatef(err, "decode config %s", path)
	}
	if !meta.IsDefined("layout") {
		cfg.Layout = DefaultLayout()
	}
	if err := checkUndecodedItems(meta); err != nil {
		return nil, errors.Annotatef(err, "config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Annotatef(err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks ranges and names
func (c *Config) Validate() error {
	if c.TicksPerSecond < 1 || c.TicksPerSecond > 1000 {
		return errors.Errorf("ticks_per_second %d out of range [1, 1000]", c.TicksPerSecond)
	}
	if c.RunFor.Duration < 0 {
		return errors.Errorf("run_for %s is negative", c.RunFor.Duration)
	}
	if _, err := c.QuitKeyCode(); err != nil {
		return err
	}
	if _, err := c.Glyphs(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Messaging.MailboxDepth < 1 {
		return errors.Errorf("mailbox_depth %d must be positive", c.Messaging.MailboxDepth)
	}
	if c.Messaging.TinyPool < 0 || c.Messaging.SmallPool < 0 || c.Messaging.MediumPool < 0 {
		return errors.New("pool sizes must not be negative")
	}
	for i, e := range c.Layout {
		if e.Layer < 0 || e.Layer >= parameter.NumLayers {
			return errors.Errorf("layout[%d]: layer %d out of range [0, %d)", i, e.Layer, parameter.NumLayers)
		}
		if e.Key == "" {
			return errors.Errorf("layout[%d]: empty key", i)
		}
		if !e.Section().InGrid() {
			return errors.Errorf("layout[%d]: section %q at (%d,%d) %dx%d does not fit the %dx%d screen",
				i, e.Key, e.Row, e.Col, e.Height, e.Width, parameter.MaxScreenHeight, parameter.MaxScreenWidth)
		}
	}
	return nil
}

// QuitKeyCode resolves quit_key; -1 means disabled
func (c *Config) QuitKeyCode() (int, error) {
	if c.QuitKey == "" {
		return -1, nil
	}
	code, ok := terminal.KeyByName(c.QuitKey)
	if !ok {
		return 0, errors.Errorf("unknown quit_key %q", c.QuitKey)
	}
	return code, nil
}

// Glyphs resolves the border preset
func (c *Config) Glyphs() (render.Glyphs, error) {
	g, ok := render.GlyphsByName(c.Border)
	if !ok {
		return render.Glyphs{}, errors.Errorf("unknown border %q, want one of %s",
			c.Border, strings.Join(render.GlyphNames(), ", "))
	}
	return g, nil
}

// Level parses log_level
func (c *Config) Level() (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, errors.Errorf("unknown log_level %q", c.LogLevel)
	}
	return lvl, nil
}

// RunTicks returns run_for in ticks, zero when the run is unbounded
func (c *Config) RunTicks() int {
	if c.RunFor.Duration <= 0 {
		return 0
	}
	per := time.Second / time.Duration(c.TicksPerSecond)
	ticks := int((c.RunFor.Duration + per - 1) / per)
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

// TickInterval returns the period of one tick
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TicksPerSecond)
}

// Toml renders the configuration as TOML
func (c *Config) Toml() (string, error) {
	var b bytes.Buffer
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", errors.Trace(err)
	}
	return b.String(), nil
}

func checkUndecodedItems(meta toml.MetaData) error {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	items := make([]string, 0, len(undecoded))
	for _, k := range undecoded {
		items = append(items, k.String())
	}
	return errors.Errorf("unknown config items: %s", strings.Join(items, ","))
}
