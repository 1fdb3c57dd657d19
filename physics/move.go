package physics

import (
	"math"

	"github.com/corexyd/limitd/vec"
)

// Eps is the distance below which a move has no Cartesian travel.
const Eps = 1e-9

// Limits is the toolhead's currently requested velocity and
// acceleration ceilings. MaxVelocity and MaxAccel can be changed at
// runtime (M204, SET_VELOCITY_LIMIT). MaxZAccel is the config default
// that seeds the kinematics store, which owns the runtime value.
type Limits struct {
	MaxVelocity  float64
	MaxAccel     float64
	MaxZVelocity float64
	MaxZAccel    float64
}

// Move is a planned straight-line move. Speed and acceleration caps
// start at the toolhead request and are only ever tightened, via
// LimitSpeed, as the kinematics inspect the move.
type Move struct {
	from, to vec.Vec4
	delta    vec.Vec4
	moveD    float64

	kinematic bool

	maxV, maxA, maxPA float64
}

// NewMove creates a move from one position to another at feed rate fr
// (mm/s), capped by the given toolhead limits. A move with no X/Y/Z
// travel (extrude-only) is not a kinematic move and its distance is
// the extruded length.
func NewMove(from, to vec.Vec4, fr float64, lim Limits) (m Move) {
	m.from = from
	m.to = to
	m.delta = to.Sub(from)
	m.moveD = m.delta.DistXYZ()
	m.kinematic = m.moveD >= Eps
	if !m.kinematic {
		m.moveD = math.Abs(m.delta.E())
	}
	m.maxV = math.Min(fr, lim.MaxVelocity)
	m.maxA = lim.MaxAccel
	m.maxPA = lim.MaxAccel
	return
}

// LimitSpeed tightens the move's velocity and acceleration caps.
// maxPA is the cross-weighted acceleration cap used downstream for
// corner blending between segments.
func (m *Move) LimitSpeed(maxV, maxA, maxPA float64) {
	m.maxV = math.Min(m.maxV, maxV)
	m.maxA = math.Min(m.maxA, maxA)
	m.maxPA = math.Min(m.maxPA, maxPA)
}

func (m *Move) From() vec.Vec4 {
	return m.from
}

func (m *Move) To() vec.Vec4 {
	return m.to
}

func (m *Move) Delta() vec.Vec4 {
	return m.delta
}

// MoveD is the Euclidean travel distance of the move.
func (m *Move) MoveD() float64 {
	return m.moveD
}

// IsKinematic is false for moves with no Cartesian travel; such moves
// carry no acceleration semantics and bypass kinematic limiting.
func (m *Move) IsKinematic() bool {
	return m.kinematic
}

func (m *Move) MaxV() float64 {
	return m.maxV
}

func (m *Move) MaxA() float64 {
	return m.maxA
}

func (m *Move) MaxPA() float64 {
	return m.maxPA
}

func (m *Move) IsValid() bool {
	return m.moveD > 0
}
