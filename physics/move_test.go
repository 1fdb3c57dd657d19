package physics

import (
	"testing"

	"github.com/corexyd/limitd/vec"
)

var testLimits = Limits{
	MaxVelocity:  300,
	MaxAccel:     5000,
	MaxZVelocity: 10,
	MaxZAccel:    100,
}

func TestNewMove(t *testing.T) {
	m := NewMove(vec.NewVec4(0, 0, 0, 0), vec.NewVec4(30, 0, 40, 0), 500, testLimits)

	if !m.IsKinematic() || m.MoveD() != 50 {
		t.Fatalf("bad move distance: %v", m.MoveD())
	}

	// feed rate above the toolhead ceiling clamps to it
	if m.MaxV() != 300 || m.MaxA() != 5000 || m.MaxPA() != 5000 {
		t.Fatalf("bad initial caps: %v %v %v", m.MaxV(), m.MaxA(), m.MaxPA())
	}
}

func TestExtrudeOnlyMove(t *testing.T) {
	m := NewMove(vec.NewVec4(0, 0, 0, 1), vec.NewVec4(0, 0, 0, 3.5), 40, testLimits)

	if m.IsKinematic() {
		t.Fatalf("extrude-only move should not be kinematic")
	}
	if m.MoveD() != 2.5 {
		t.Fatalf("extrude-only distance should be extruded length, got %v", m.MoveD())
	}
}

func TestLimitSpeed(t *testing.T) {
	m := NewMove(vec.NewVec4(0, 0, 0, 0), vec.NewVec4(100, 0, 0, 0), 100, testLimits)

	m.LimitSpeed(50, 9000, 1000)
	if m.MaxV() != 50 || m.MaxA() != 5000 || m.MaxPA() != 1000 {
		t.Fatalf("LimitSpeed should only ever tighten: %v %v %v", m.MaxV(), m.MaxA(), m.MaxPA())
	}

	m.LimitSpeed(80, 4000, 2000)
	if m.MaxV() != 50 || m.MaxA() != 4000 || m.MaxPA() != 1000 {
		t.Fatalf("LimitSpeed should only ever tighten: %v %v %v", m.MaxV(), m.MaxA(), m.MaxPA())
	}
}
