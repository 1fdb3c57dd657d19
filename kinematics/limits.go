package kinematics

import (
	"fmt"
	"math"
	"sync"

	"github.com/pkg/errors"
)

// ErrConfig is returned when a config-time limit value is invalid.
// Construction fails; values are never silently clamped.
var ErrConfig = errors.New("invalid kinematics config value")

// RangeError rejects a runtime limit update. The whole update is
// discarded, no field of the store changes.
type RangeError struct {
	Param      string
	Value, Max float64
}

func (e RangeError) Error() string {
	return fmt.Sprintf("%v out of range: got %v, max %v", e.Param, e.Value, e.Max)
}

// Snapshot is a consistent view of the per-motor acceleration limits.
// Evaluations work from a snapshot so a concurrent update can never be
// observed half applied.
type Snapshot struct {
	ConfigMaxAccel float64
	MaxXAccel      float64
	MaxYAccel      float64
	MaxZAccel      float64
	ScalePerAxis   bool
}

// DiagonalMinAccel returns the lowest XY acceleration the per-motor
// limits permit and the direction (degrees from the Y axis) at which
// it occurs. The minimum is reached on the diagonal where both motors
// are equally loaded.
func (s Snapshot) DiagonalMinAccel() (accel, angle float64) {
	accel = 1 / math.Sqrt(1/(s.MaxXAccel*s.MaxXAccel)+1/(s.MaxYAccel*s.MaxYAccel))
	angle = 180 * math.Atan2(s.MaxXAccel, s.MaxYAccel) / math.Pi
	return
}

// Update is a partial limits update; nil fields keep their current
// value. Scale takes 0 or 1.
type Update struct {
	XAccel, YAccel, ZAccel *float64
	Scale                  *int
}

// AxisLimits holds the mutable per-motor acceleration ceilings and the
// scale policy flag. ConfigMaxAccel is fixed at construction and bounds
// every later update.
type AxisLimits struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewAxisLimits validates and creates the limits store. All
// acceleration values must be above zero.
func NewAxisLimits(configMaxAccel, xAccel, yAccel, zAccel float64, scale bool) (*AxisLimits, error) {
	vals := []struct {
		name string
		v    float64
	}{
		{"max_accel", configMaxAccel},
		{"max_x_accel", xAccel},
		{"max_y_accel", yAccel},
		{"max_z_accel", zAccel},
	}
	for _, nv := range vals {
		if nv.v <= 0 {
			return nil, errors.Wrapf(ErrConfig, "%v must be above 0, got %v", nv.name, nv.v)
		}
	}

	return &AxisLimits{snap: Snapshot{
		ConfigMaxAccel: configMaxAccel,
		MaxXAccel:      xAccel,
		MaxYAccel:      yAccel,
		MaxZAccel:      zAccel,
		ScalePerAxis:   scale,
	}}, nil
}

// Snapshot returns a consistent copy of the current limits.
func (l *AxisLimits) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}

// Apply validates the whole update before mutating anything, so a
// failed update leaves the store untouched. Accelerations must be
// above 0 and at most ConfigMaxAccel. Returns the resulting snapshot.
func (l *AxisLimits) Apply(u Update) (Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	checks := []struct {
		name string
		v    *float64
	}{
		{"X_ACCEL", u.XAccel},
		{"Y_ACCEL", u.YAccel},
		{"Z_ACCEL", u.ZAccel},
	}
	for _, nv := range checks {
		if nv.v != nil && (*nv.v <= 0 || *nv.v > l.snap.ConfigMaxAccel) {
			return l.snap, RangeError{nv.name, *nv.v, l.snap.ConfigMaxAccel}
		}
	}
	if u.Scale != nil && (*u.Scale < 0 || *u.Scale > 1) {
		return l.snap, RangeError{"SCALE", float64(*u.Scale), 1}
	}

	if u.XAccel != nil {
		l.snap.MaxXAccel = *u.XAccel
	}
	if u.YAccel != nil {
		l.snap.MaxYAccel = *u.YAccel
	}
	if u.ZAccel != nil {
		l.snap.MaxZAccel = *u.ZAccel
	}
	if u.Scale != nil {
		l.snap.ScalePerAxis = *u.Scale == 1
	}
	return l.snap, nil
}
