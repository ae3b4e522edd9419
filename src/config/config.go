package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"lifetorus/src/engine"
)

//ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("config: invalid configuration")

//Config holds the configuration for the simulation
type Config struct {
	Width           uint32        `json:"width"`
	Height          uint32        `json:"height"`
	Interval        time.Duration `json:"interval"`
	MaxSteps        int           `json:"max_steps"`
	MaxSkippedTicks int           `json:"max_skipped_ticks"`
	Interactive     bool          `json:"interactive"`
	Random          bool          `json:"random"`
	Density         float64       `json:"density"`
	Template        string        `json:"template"`
	Batch           int           `json:"batch"`
	Seed            int64         `json:"seed"`
}

//Default returns sensible defaults
func Default() Config {
	return Config{
		Width:           engine.DefWidth,
		Height:          engine.DefHeight,
		Interval:        engine.DefSimulationInterval,
		MaxSteps:        engine.DefMaxSteps,
		MaxSkippedTicks: engine.DefMaxSkippedTicks,
		Density:         0.3,
		Template:        "testSample1",
	}
}

//Load loads configuration from JSON file, missing fields keep their defaults
func Load(filename string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[config.Load] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[config.Load] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

//UnmarshalJSON reads the interval as the duration string, for example "150ms", a bare number means milliseconds
func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	aux := struct {
		*plain
		Interval json.RawMessage `json:"interval"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Interval) == 0 || string(aux.Interval) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(aux.Interval, &s); err == nil {
		d, err := time.ParseDuration(s)
		if err != nil {
			return errors.Wrapf(err, "interval %q", s)
		}
		c.Interval = d
		return nil
	}
	var ms int64
	if err := json.Unmarshal(aux.Interval, &ms); err != nil {
		return errors.Wrapf(err, "interval %s", aux.Interval)
	}
	c.Interval = time.Duration(ms) * time.Millisecond
	return nil
}

//Validate checks the values which cannot be simulated
func (c Config) Validate() error {
	switch {
	case c.Width == 0 || c.Height == 0:
		return errors.Wrapf(ErrInvalidConfig, "dimension %vx%v", c.Width, c.Height)
	case c.MaxSteps < 0:
		return errors.Wrapf(ErrInvalidConfig, "max steps %v", c.MaxSteps)
	case c.Interval < 0:
		return errors.Wrapf(ErrInvalidConfig, "interval %v", c.Interval)
	case c.Density < 0 || c.Density > 1:
		return errors.Wrapf(ErrInvalidConfig, "density %v is not in [0, 1]", c.Density)
	case c.Batch < 0:
		return errors.Wrapf(ErrInvalidConfig, "batch %v", c.Batch)
	case c.Batch > 0 && c.MaxSteps == 0:
		//the batch universes are simulated to the end, the unlimited run never returns
		return errors.Wrapf(ErrInvalidConfig, "batch mode needs max steps")
	}
	return nil
}

//EngineOptions converts the configuration to the engine options
func (c Config) EngineOptions() *engine.Options {
	return &engine.Options{
		Width:           c.Width,
		Height:          c.Height,
		Interval:        c.Interval,
		MaxSteps:        c.MaxSteps,
		MaxSkippedTicks: c.MaxSkippedTicks,
		Seed:            c.Seed,
	}
}
