package kinematics

import (
	"math"

	"github.com/colinrgodsey/cartesius/f64"

	"github.com/corexyd/limitd/vec"
)

// CoreXY is the base belt transform for a dual-belt stage: both motors
// contribute to X and Y travel, with A = x + y and B = x - y.
type CoreXY struct{}

// ToMotor maps a Cartesian position or displacement into A/B belt space.
func (CoreXY) ToMotor(pos vec.Vec4) f64.Vec2 {
	return f64.Vec2{pos.X() + pos.Y(), pos.X() - pos.Y()}
}

// ToCartesian maps A/B belt coordinates and a Z carriage position back
// into Cartesian space.
func (CoreXY) ToCartesian(ab f64.Vec2, z float64) vec.Vec4 {
	return vec.NewVec4(0.5*(ab[0]+ab[1]), 0.5*(ab[0]-ab[1]), z)
}

// BeltLinf is the travel magnitude seen by the more loaded of the two
// motors for a given Cartesian displacement, max(|x+y|, |x-y|). Zero
// only when the displacement has no X/Y component.
func (c CoreXY) BeltLinf(delta vec.Vec4) float64 {
	ab := c.ToMotor(delta)
	return math.Max(math.Abs(ab[0]), math.Abs(ab[1]))
}
