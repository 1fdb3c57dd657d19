package config

import (
	"testing"
)

func TestConfig(t *testing.T) {
	conf, err := LoadConfig("../config.hjson")

	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if conf.MaxAccel == 0 || conf.MaxVelocity == 0 {
		t.Fatalf("Missing toolhead limits: %+v", conf)
	}

	if conf.MaxYAccel != 4000 {
		t.Fatalf("Missing y accel ceiling: %+v", conf)
	}

	if conf.PositionMax.X() == 0 {
		t.Fatalf("Missing position bounds: %+v", conf)
	}
}

func TestConfigDefaults(t *testing.T) {
	c := Config{MaxVelocity: 300, MaxAccel: 5000, MaxZVelocity: 10, MaxZAccel: 100}
	if err := c.validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	if c.MaxXAccel != 5000 || c.MaxYAccel != 5000 {
		t.Fatalf("per-motor ceilings should default to max-accel: %+v", c)
	}
}

func TestConfigRejectsMissing(t *testing.T) {
	c := Config{MaxVelocity: 300}
	if err := c.validate(); err == nil {
		t.Fatalf("config without max-accel should fail")
	}
}
