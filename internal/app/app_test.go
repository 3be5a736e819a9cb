package app

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/rgbshades/internal/config"
	"github.com/coreman2200/rgbshades/internal/render"
	"github.com/coreman2200/rgbshades/internal/render/scenes/text"
)

func TestCatalogNamesAreUnique(t *testing.T) {
	reg, err := NewRegistry(text.DefaultMessages, true)
	require.NoError(t, err)
	assert.Equal(t, 25, reg.Len())
	assert.Equal(t, "three-sine", reg.List()[0])

	plain, err := NewRegistry(text.DefaultMessages, false)
	require.NoError(t, err)
	assert.Equal(t, 22, plain.Len())
	_, ok := plain.IndexOf("index-sweep")
	assert.False(t, ok)
}

func TestOpenSinksFallsBack(t *testing.T) {
	cfg := config.Default()
	cfg.Driver = "sim, opc, bogus, term"
	l, err := cfg.BuildLayout()
	require.NoError(t, err)

	sinks, names := OpenSinks(cfg, l, nil, zerolog.Nop())
	assert.Equal(t, []string{"sim", "opc", "sim"}, names)
	assert.Len(t, sinks, 3)
	require.NoError(t, sinks.Close())
}

func TestBuildPersistsControlChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.Default()
	cfg.Driver = "term"
	cfg.Seed = 3

	var term bytes.Buffer
	core, err := Build(cfg, Options{ConfigPath: path, Term: &term, Log: zerolog.Nop()})
	require.NoError(t, err)
	defer core.Close()

	assert.Equal(t, []string{"term"}, core.Names)
	assert.Equal(t, "term", core.Web.Driver)

	require.NoError(t, core.Eng.Submit(render.Command{Kind: render.CmdSelect, Name: "pacman"}))
	require.NoError(t, core.Eng.Submit(render.Command{Kind: render.CmdAuto, On: false}))
	for i := 0; i < 5; i++ {
		require.NoError(t, core.Eng.Tick())
	}
	assert.Equal(t, "pacman", core.Eng.Status().Effect)
	assert.NotZero(t, term.Len())

	saved, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pacman", saved.StartEffect)
	require.NotNil(t, saved.AutoCycle)
	assert.False(t, *saved.AutoCycle)
}

func TestBuildRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Layout.Kind = "dome"
	_, err := Build(cfg, Options{Log: zerolog.Nop()})
	assert.ErrorIs(t, err, config.ErrUnknownLayout)
}
