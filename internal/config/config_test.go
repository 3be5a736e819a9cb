package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/rgbshades/internal/layout"
	"github.com/coreman2200/rgbshades/internal/render"
)

const sample = `
driver: spi, term
brightness: 128
auto_cycle: false
dwell_s: 2.5
hue_ms: 20
layout:
  kind: serpentine
  x: 8
  y: 4
  flip_every_row: true
power:
  budget_ma: 1500
playlist:
  - effect: plasma
    dwell_s: 1
  - effect: confetti
messages: ["HI  "]
`

func TestLoadMergeOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	file, err := Load(path)
	require.NoError(t, err)
	c := Default()
	c.Merge(file)
	require.NoError(t, c.Validate())

	assert.Equal(t, []string{"spi", "term"}, c.Drivers())
	assert.Equal(t, ":8080", c.Addr)

	l, err := c.BuildLayout()
	require.NoError(t, err)
	assert.Equal(t, layout.Dim{X: 8, Y: 4}, l.Dim)

	o := c.EngineOptions()
	assert.EqualValues(t, 128, o.Post.Brightness)
	assert.False(t, o.AutoCycle)
	assert.Equal(t, 2500*time.Millisecond, o.Dwell)
	assert.Equal(t, 20*time.Millisecond, o.HueInterval)
	assert.Equal(t, 40*time.Millisecond, o.BlendInterval)
	assert.EqualValues(t, 1500, o.Post.BudgetMilliamps)
	require.Len(t, o.Playlist, 2)
	assert.Equal(t, time.Second, o.Playlist[0].Dwell)
	assert.Equal(t, 2500*time.Millisecond, o.Playlist[1].Dwell)

	msgs := c.MessageSet([3]string{"a", "b", "c"})
	assert.Equal(t, [3]string{"HI  ", "b", "c"}, msgs)
}

func TestRememberRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := Default()
	c.Remember(render.Settings{Effect: "pacman", Brightness: 64, AutoCycle: false})
	require.NoError(t, Save(path, c))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pacman", back.StartEffect)
	assert.Equal(t, 64, back.Brightness)
	require.NotNil(t, back.AutoCycle)
	assert.False(t, *back.AutoCycle)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(c *Config){
		"brightness": func(c *Config) { c.Brightness = 300 },
		"level":      func(c *Config) { c.BrightnessLevels = []int{0} },
		"layout":     func(c *Config) { c.Layout.Kind = "cube" },
		"serpentine": func(c *Config) { c.Layout = LayoutCfg{Kind: "serpentine"} },
		"playlist":   func(c *Config) { c.Playlist = []Clip{{DwellS: 1}} },
		"opc":        func(c *Config) { c.OPC.Channel = 256 },
	}
	for name, mutate := range cases {
		c := Default()
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	c := Default()
	c.Layout.Kind = "cube"
	_, err := c.BuildLayout()
	assert.ErrorIs(t, err, ErrUnknownLayout)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, os.IsNotExist(err))
}
