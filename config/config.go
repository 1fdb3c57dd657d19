package config

import (
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/hjson/hjson-go"
	"github.com/pkg/errors"

	"github.com/corexyd/limitd/physics"
	"github.com/corexyd/limitd/vec"
)

// Config is the daemon config, loaded once at startup. Acceleration
// values are mm/s², velocities mm/s.
type Config struct {
	MaxVelocity  float64 `json:"max-velocity"`
	MaxAccel     float64 `json:"max-accel"`
	MaxZVelocity float64 `json:"max-z-velocity"`
	MaxZAccel    float64 `json:"max-z-accel"`

	// Per-motor ceilings; zero defaults to max-accel.
	MaxXAccel    float64 `json:"max-x-accel"`
	MaxYAccel    float64 `json:"max-y-accel"`
	ScaleXYAccel bool    `json:"scale-xy-accel"`

	PositionMin vec.Vec4 `json:"position-min"`
	PositionMax vec.Vec4 `json:"position-max"`
}

// LoadConfig reads and validates an hjson config file.
func LoadConfig(path string) (conf Config, err error) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	bytes, err := ioutil.ReadAll(f)
	if err != nil {
		return
	}
	var mdat map[string]interface{}
	if err = hjson.Unmarshal(bytes, &mdat); err != nil {
		err = errors.Wrapf(err, "failed to parse %v", path)
		return
	}
	if bytes, err = json.Marshal(mdat); err != nil {
		return
	}
	if err = json.Unmarshal(bytes, &conf); err != nil {
		return
	}
	err = conf.validate()
	return
}

func (c *Config) validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"max-velocity", c.MaxVelocity},
		{"max-accel", c.MaxAccel},
		{"max-z-velocity", c.MaxZVelocity},
		{"max-z-accel", c.MaxZAccel},
	}
	for _, nv := range checks {
		if nv.v <= 0 {
			return errors.Errorf("config: %v must be above 0, got %v", nv.name, nv.v)
		}
	}
	if c.MaxXAccel == 0 {
		c.MaxXAccel = c.MaxAccel
	}
	if c.MaxYAccel == 0 {
		c.MaxYAccel = c.MaxAccel
	}
	return nil
}

// ToolheadLimits returns the initial toolhead velocity and
// acceleration requests for this config.
func (c Config) ToolheadLimits() physics.Limits {
	return physics.Limits{
		MaxVelocity:  c.MaxVelocity,
		MaxAccel:     c.MaxAccel,
		MaxZVelocity: c.MaxZVelocity,
		MaxZAccel:    c.MaxZAccel,
	}
}
