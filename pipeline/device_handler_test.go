package pipeline

import (
	"strings"
	"testing"

	"github.com/corexyd/limitd/io"
	"github.com/corexyd/limitd/physics"
	"github.com/corexyd/limitd/vec"
)

func TestDeviceHandler(t *testing.T) {
	head := io.NewConn(16, 16)
	tail := io.NewConn(16, 16)
	go DeviceHandler(head.Flip(), tail.Flip())

	head.Write(testConfig())
	if s := (<-tail.Rc()).(string); s != "G90" {
		t.Fatalf("device should be forced absolute, got %v", s)
	}

	lim := physics.Limits{MaxVelocity: 100, MaxAccel: 5000, MaxZVelocity: 10, MaxZAccel: 100}
	m := physics.NewMove(vec.Vec4{}, vec.NewVec4(10, 20, 0, 0.5), 50, lim)
	head.Write(m)

	if s := (<-tail.Rc()).(string); s != "M204 S5000" {
		t.Fatalf("bad accel update: %v", s)
	}
	line := (<-tail.Rc()).(string)
	if !strings.HasPrefix(line, "G1 X10.000 Y20.000 Z0.000 E0.5000 F3000.0") {
		t.Fatalf("bad move line: %v", line)
	}

	// same accel cap does not repeat M204
	m2 := physics.NewMove(m.To(), vec.NewVec4(20, 20, 0, 0.5), 50, lim)
	head.Write(m2)
	if s := (<-tail.Rc()).(string); !strings.HasPrefix(s, "G1 ") {
		t.Fatalf("unexpected line: %v", s)
	}

	// responses pass back up
	tail.Write("ok")
	if s := (<-head.Rc()).(string); s != "ok" {
		t.Fatalf("bad passthrough: %v", s)
	}
}
