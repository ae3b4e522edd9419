package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifetorus/src/engine"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(name, []byte(content), 0o600))
	return name
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, uint32(engine.DefWidth), c.Width)
	assert.Equal(t, uint32(engine.DefHeight), c.Height)
	assert.Equal(t, "testSample1", c.Template)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	c, err := Load(writeFile(t, `{"width": 12, "max_steps": 7, "interval": "5ms", "random": true}`))
	require.NoError(t, err)
	assert.Equal(t, uint32(12), c.Width)
	assert.Equal(t, uint32(engine.DefHeight), c.Height)
	assert.Equal(t, 7, c.MaxSteps)
	assert.Equal(t, 5*time.Millisecond, c.Interval)
	assert.True(t, c.Random)
	assert.Equal(t, 0.3, c.Density)
}

func TestLoadInterval(t *testing.T) {
	for content, want := range map[string]time.Duration{
		`{"interval": "1m30s"}`: 90 * time.Second,
		`{"interval": 150}`:     150 * time.Millisecond,
		`{"interval": null}`:    engine.DefSimulationInterval,
		`{"width": 3}`:          engine.DefSimulationInterval,
	} {
		c, err := Load(writeFile(t, content))
		require.NoError(t, err, content)
		assert.Equal(t, want, c.Interval, content)
	}

	for _, content := range []string{`{"interval": "fast"}`, `{"interval": true}`} {
		_, err := Load(writeFile(t, content))
		require.Error(t, err, content)
		assert.Contains(t, err.Error(), "interval", content)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "missing.json")

	name := writeFile(t, `{"width": `)
	c, err := Load(name)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
	assert.Equal(t, Default(), c)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(c *Config){
		"zero width":        func(c *Config) { c.Width = 0 },
		"zero height":       func(c *Config) { c.Height = 0 },
		"negative steps":    func(c *Config) { c.MaxSteps = -1 },
		"negative interval": func(c *Config) { c.Interval = -time.Second },
		"density too high":  func(c *Config) { c.Density = 1.5 },
		"negative batch":    func(c *Config) { c.Batch = -2 },
		"unlimited batch":   func(c *Config) { c.Batch, c.MaxSteps = 2, 0 },
	} {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(&c)
			require.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}

	//the unlimited run is fine for the single universe
	c := Default()
	c.MaxSteps = 0
	require.NoError(t, c.Validate())
}

func TestEngineOptions(t *testing.T) {
	c := Default()
	c.Seed = 3
	o := c.EngineOptions()
	assert.Equal(t, engine.Options{
		Width:           engine.DefWidth,
		Height:          engine.DefHeight,
		Interval:        engine.DefSimulationInterval,
		MaxSteps:        engine.DefMaxSteps,
		MaxSkippedTicks: engine.DefMaxSkippedTicks,
		Seed:            3,
	}, *o)
}
