package kinematics

import (
	"math"

	"github.com/pkg/errors"

	"github.com/corexyd/limitd/physics"
	"github.com/corexyd/limitd/vec"
)

// EndstopChecker validates that a move stays inside the homed envelope.
// It runs for every move, kinematic or not.
type EndstopChecker interface {
	CheckEndstops(m *physics.Move) error
}

// LimitedCoreXY wraps the base CoreXY transform with per-motor
// acceleration ceilings. The base transform is held by composition and
// stays usable as-is; this type only adds the limiting pass.
type LimitedCoreXY struct {
	CoreXY

	limits   *AxisLimits
	endstops EndstopChecker
}

func NewLimitedCoreXY(base CoreXY, limits *AxisLimits, endstops EndstopChecker) *LimitedCoreXY {
	return &LimitedCoreXY{CoreXY: base, limits: limits, endstops: endstops}
}

func (k *LimitedCoreXY) Limits() *AxisLimits {
	return k.limits
}

// CheckMove runs the endstop check, then tightens the move's caps so
// neither motor exceeds its own velocity or acceleration limit.
func (k *LimitedCoreXY) CheckMove(m *physics.Move, lim physics.Limits) error {
	if err := k.endstops.CheckEndstops(m); err != nil {
		return err
	}
	if !m.IsKinematic() {
		return nil
	}
	m.LimitSpeed(k.EvaluateLimits(m.Delta(), m.MoveD(), k.limits.Snapshot(), lim))
	return nil
}

// EvaluateLimits computes the velocity and acceleration caps that keep
// each motor within its per-axis limit for a straight-line move with
// Cartesian displacement delta and travel distance moveD. maxPA is the
// cross-weighted acceleration cap (X weighted by the Y motor limit and
// vice versa) consumed by corner blending between segments.
//
// With the scale policy off, maxA is derived from the per-axis limits
// alone; the requested acceleration still applies as a separate
// direction-independent ceiling when the caller takes the minimum.
// With it on, the per-axis ceilings scale by the ratio of the
// requested acceleration to the configured maximum, so the combined
// cap always depends on direction.
//
// The Z acceleration ceiling comes from the snapshot, so runtime
// Z_ACCEL updates govern later moves; the Z velocity ceiling stays on
// the toolhead.
func (c CoreXY) EvaluateLimits(delta vec.Vec4, moveD float64, s Snapshot, lim physics.Limits) (maxV, maxA, maxPA float64) {
	maxV = lim.MaxVelocity
	maxA = lim.MaxAccel
	maxPA = lim.MaxAccel

	x, y, z, _ := delta.Get()
	abLinf := c.BeltLinf(delta)
	if abLinf > 0 {
		maxV *= moveD / abLinf

		if s.ScalePerAxis {
			maxA *= moveD / s.ConfigMaxAccel
		} else {
			maxA = moveD
		}
		// abLinf > 0 means x or y is nonzero, so both belt
		// projections below are strictly positive.
		maxPA = maxA / c.BeltLinf(vec.NewVec4(x/s.MaxYAccel, y/s.MaxXAccel))
		maxA /= c.BeltLinf(vec.NewVec4(x/s.MaxXAccel, y/s.MaxYAccel))
	}
	if z != 0 {
		zRatio := moveD / math.Abs(z)
		maxV = math.Min(maxV, lim.MaxZVelocity*zRatio)
		maxA = math.Min(maxA, s.MaxZAccel*zRatio)
	}
	return
}

// SoftLimits is the default EndstopChecker: it rejects moves that end
// outside the homed axis ranges, and any motion on an unhomed axis.
type SoftLimits struct {
	Min, Max [3]float64
	homed    [3]bool
}

var axisNames = [3]string{"X", "Y", "Z"}

// SetHomed marks the given axes (0..2) as homed; no axes marks all.
func (s *SoftLimits) SetHomed(axes ...int) {
	if len(axes) == 0 {
		axes = []int{0, 1, 2}
	}
	for _, a := range axes {
		s.homed[a] = true
	}
}

// ClearHomed forgets all homing state (motors off).
func (s *SoftLimits) ClearHomed() {
	s.homed = [3]bool{}
}

func (s *SoftLimits) CheckEndstops(m *physics.Move) error {
	end := m.To()
	for i := 0; i < 3; i++ {
		if m.Delta().GetAt(i) == 0 {
			continue
		}
		if !s.homed[i] {
			return errors.Errorf("must home %v axis first", axisNames[i])
		}
		if end.GetAt(i) < s.Min[i] || end.GetAt(i) > s.Max[i] {
			return errors.Errorf("move out of range on %v axis: %v", axisNames[i], end.GetAt(i))
		}
	}
	return nil
}
