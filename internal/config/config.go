package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/rgbshades/internal/layout"
	"github.com/coreman2200/rgbshades/internal/render"
	"github.com/coreman2200/rgbshades/internal/sequence"
)

var ErrUnknownLayout = errors.New("unknown layout kind")

type PowerCfg struct {
	WhiteCap int     `yaml:"white_cap"` // sum of channels per LED, 765 = off
	ChanMA   float64 `yaml:"chan_ma"`
	BudgetMA float64 `yaml:"budget_ma"` // 0 = no budget
}

type LayoutCfg struct {
	Kind         string `yaml:"kind"` // shades | serpentine
	X            int    `yaml:"x"`
	Y            int    `yaml:"y"`
	FlipEveryRow bool   `yaml:"flip_every_row"`
}

type SPI struct {
	Port       string `yaml:"port"` // e.g. /dev/spidev0.0, "" = first
	SpeedHz    int    `yaml:"speed_hz"`
	ColorOrder string `yaml:"color_order"` // permutation applied before the strip's GRB encoding
}

type OPC struct {
	Addr    string `yaml:"addr"`
	Channel int    `yaml:"channel"`
}

type Clip struct {
	Effect string  `yaml:"effect"`
	DwellS float64 `yaml:"dwell_s"`
}

type Config struct {
	Driver   string `yaml:"driver"` // sim | spi | opc | term, comma separated
	LogLevel string `yaml:"log_level"`
	Addr     string `yaml:"addr"`

	Brightness       int    `yaml:"brightness"`
	BrightnessLevels []int  `yaml:"brightness_levels,omitempty"`
	AutoCycle        *bool  `yaml:"auto_cycle,omitempty"`
	StartEffect      string `yaml:"start_effect"`

	TickMs           int     `yaml:"tick_ms"`
	DwellS           float64 `yaml:"dwell_s"`
	HueMs            int     `yaml:"hue_ms"`
	HueFollowsRender bool    `yaml:"hue_follows_render"`
	BlendMs          int     `yaml:"blend_ms"`
	BlendStep        int     `yaml:"blend_step"`
	MinDelayMs       int     `yaml:"min_delay_ms"`
	Seed             int64   `yaml:"seed"`

	Layout   LayoutCfg `yaml:"layout"`
	SPI      SPI       `yaml:"spi,omitempty"`
	OPC      OPC       `yaml:"opc,omitempty"`
	Power    PowerCfg  `yaml:"power"`
	Playlist []Clip    `yaml:"playlist,omitempty"`
	Messages []string  `yaml:"messages,omitempty"`
}

// Default is the stock glasses setup: simulated output, the shades layout
// and the stock glasses timings.
func Default() *Config {
	auto := true
	return &Config{
		Driver:           "sim",
		LogLevel:         "info",
		Addr:             ":8080",
		Brightness:       255,
		BrightnessLevels: []int{255, 192, 128, 64, 32},
		AutoCycle:        &auto,
		TickMs:           1,
		DwellS:           10,
		HueMs:            15,
		BlendMs:          40,
		BlendStep:        8,
		Layout:           LayoutCfg{Kind: "shades"},
		SPI:              SPI{SpeedHz: 2500000, ColorOrder: "RGB"},
		OPC:              OPC{Addr: "127.0.0.1:7890"},
		Power:            PowerCfg{WhiteCap: 765, ChanMA: 20},
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Merge copies the non-zero values of o over c.
func (c *Config) Merge(o *Config) {
	if o == nil {
		return
	}
	setStr(&c.Driver, o.Driver)
	setStr(&c.LogLevel, o.LogLevel)
	setStr(&c.Addr, o.Addr)
	setStr(&c.StartEffect, o.StartEffect)
	setInt(&c.Brightness, o.Brightness)
	setInt(&c.TickMs, o.TickMs)
	setInt(&c.HueMs, o.HueMs)
	setInt(&c.BlendMs, o.BlendMs)
	setInt(&c.BlendStep, o.BlendStep)
	setInt(&c.MinDelayMs, o.MinDelayMs)
	if o.DwellS != 0 {
		c.DwellS = o.DwellS
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.AutoCycle != nil {
		v := *o.AutoCycle
		c.AutoCycle = &v
	}
	if o.HueFollowsRender {
		c.HueFollowsRender = true
	}
	if len(o.BrightnessLevels) > 0 {
		c.BrightnessLevels = append([]int(nil), o.BrightnessLevels...)
	}
	setStr(&c.Layout.Kind, o.Layout.Kind)
	setInt(&c.Layout.X, o.Layout.X)
	setInt(&c.Layout.Y, o.Layout.Y)
	if o.Layout.FlipEveryRow {
		c.Layout.FlipEveryRow = true
	}
	setStr(&c.SPI.Port, o.SPI.Port)
	setInt(&c.SPI.SpeedHz, o.SPI.SpeedHz)
	setStr(&c.SPI.ColorOrder, o.SPI.ColorOrder)
	setStr(&c.OPC.Addr, o.OPC.Addr)
	setInt(&c.OPC.Channel, o.OPC.Channel)
	setInt(&c.Power.WhiteCap, o.Power.WhiteCap)
	if o.Power.ChanMA != 0 {
		c.Power.ChanMA = o.Power.ChanMA
	}
	if o.Power.BudgetMA != 0 {
		c.Power.BudgetMA = o.Power.BudgetMA
	}
	if len(o.Playlist) > 0 {
		c.Playlist = append([]Clip(nil), o.Playlist...)
	}
	if len(o.Messages) > 0 {
		c.Messages = append([]string(nil), o.Messages...)
	}
}

func setStr(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

// Validate checks ranges that would otherwise wrap silently.
func (c *Config) Validate() error {
	if c.Brightness < 0 || c.Brightness > 255 {
		return fmt.Errorf("brightness %d out of range 0..255", c.Brightness)
	}
	for _, b := range c.BrightnessLevels {
		if b < 1 || b > 255 {
			return fmt.Errorf("brightness level %d out of range 1..255", b)
		}
	}
	if c.BlendStep < 0 || c.BlendStep > 255 {
		return fmt.Errorf("blend_step %d out of range 0..255", c.BlendStep)
	}
	if c.OPC.Channel < 0 || c.OPC.Channel > 255 {
		return fmt.Errorf("opc channel %d out of range 0..255", c.OPC.Channel)
	}
	for i, clip := range c.Playlist {
		if clip.Effect == "" {
			return fmt.Errorf("playlist[%d]: missing effect", i)
		}
		if clip.DwellS < 0 {
			return fmt.Errorf("playlist[%d]: negative dwell", i)
		}
	}
	if _, err := c.BuildLayout(); err != nil {
		return err
	}
	return nil
}

// BuildLayout returns the layout named by Layout.Kind.
func (c *Config) BuildLayout() (layout.Layout, error) {
	switch strings.ToLower(c.Layout.Kind) {
	case "", "shades":
		return layout.Shades(), nil
	case "serpentine":
		if c.Layout.X <= 0 || c.Layout.Y <= 0 {
			return layout.Layout{}, fmt.Errorf("serpentine layout needs x and y, got %dx%d", c.Layout.X, c.Layout.Y)
		}
		return layout.Serpentine(c.Layout.X, c.Layout.Y, c.Layout.FlipEveryRow), nil
	default:
		return layout.Layout{}, fmt.Errorf("%w: %q", ErrUnknownLayout, c.Layout.Kind)
	}
}

// Drivers splits Driver into its sink names.
func (c *Config) Drivers() []string {
	var out []string
	for _, d := range strings.Split(c.Driver, ",") {
		if d = strings.TrimSpace(strings.ToLower(d)); d != "" {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		out = []string{"sim"}
	}
	return out
}

// MessageSet returns the three scroller messages, padding with the stock ones.
func (c *Config) MessageSet(fallback [3]string) [3]string {
	out := fallback
	for i := 0; i < len(out) && i < len(c.Messages); i++ {
		if c.Messages[i] != "" {
			out[i] = c.Messages[i]
		}
	}
	return out
}

// EngineOptions starts from the engine defaults and overrides every
// non-zero setting.
func (c *Config) EngineOptions() render.Options {
	o := render.DefaultOptions()
	if c.TickMs > 0 {
		o.Tick = ms(c.TickMs)
	}
	if c.DwellS > 0 {
		o.Dwell = seconds(c.DwellS)
	}
	if c.AutoCycle != nil {
		o.AutoCycle = *c.AutoCycle
	}
	if c.HueMs > 0 {
		o.HueInterval = ms(c.HueMs)
	}
	o.HueFollowsRender = c.HueFollowsRender
	if c.BlendMs > 0 {
		o.BlendInterval = ms(c.BlendMs)
	}
	if c.BlendStep > 0 {
		o.BlendStep = uint8(c.BlendStep)
	}
	if c.MinDelayMs > 0 {
		o.MinDelay = ms(c.MinDelayMs)
	}
	o.StartEffect = c.StartEffect
	o.Seed = c.Seed

	if c.Brightness > 0 {
		o.Post.Brightness = uint8(c.Brightness)
	}
	if c.Power.WhiteCap > 0 {
		o.Post.WhiteCap = c.Power.WhiteCap
	}
	if c.Power.ChanMA > 0 {
		o.Post.ChanMilliamps = c.Power.ChanMA
	}
	o.Post.BudgetMilliamps = c.Power.BudgetMA

	if len(c.BrightnessLevels) > 0 {
		o.BrightnessLevels = o.BrightnessLevels[:0:0]
		for _, b := range c.BrightnessLevels {
			o.BrightnessLevels = append(o.BrightnessLevels, uint8(b))
		}
	}
	for _, clip := range c.Playlist {
		d := o.Dwell
		if clip.DwellS > 0 {
			d = seconds(clip.DwellS)
		}
		o.Playlist = append(o.Playlist, sequence.Clip{Effect: clip.Effect, Dwell: d})
	}
	return o
}

// Remember stores the settings a control change produced so Save persists
// them.
func (c *Config) Remember(s render.Settings) {
	c.StartEffect = s.Effect
	c.Brightness = int(s.Brightness)
	auto := s.AutoCycle
	c.AutoCycle = &auto
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func seconds(s float64) time.Duration { return time.Duration(s * float64(time.Second)) }
