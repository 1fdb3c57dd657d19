package vec

import (
	"encoding/json"
	"fmt"
	"math"
)

// Vec4 is a 4-dimentional float64 vector over the X, Y, Z and E axes.
type Vec4 struct {
	v [4]float64
}

/* Constructors */

// NewVec4 creates a new Vec4 from provided values
func NewVec4(vs ...float64) (v Vec4) {
	for i := range vs {
		v.v[i] = vs[i]
	}
	return
}

/* Methods */

// Add o to v
func (v Vec4) Add(o Vec4) (res Vec4) {
	for i := range v.v {
		res.v[i] = v.v[i] + o.v[i]
	}
	return
}

// Sub o from v
func (v Vec4) Sub(o Vec4) Vec4 {
	return v.Add(o.Neg())
}

// Mul scales v by s
func (v Vec4) Mul(s float64) (res Vec4) {
	for i := range v.v {
		res.v[i] = v.v[i] * s
	}
	return
}

// Div scales v by the multiplicative inverse of s
func (v Vec4) Div(s float64) Vec4 {
	return v.Mul(1.0 / s)
}

// Neg returns the negative vector of v (-v)
func (v Vec4) Neg() Vec4 {
	return v.Mul(-1.0)
}

// Abs returns the absolute value per dim
func (v Vec4) Abs() (res Vec4) {
	for i := range v.v {
		res.v[i] = math.Abs(v.v[i])
	}
	return
}

// Dot returns the dot product of v and o (v⋅o)
func (v Vec4) Dot(o Vec4) (d float64) {
	for i := range v.v {
		d += v.v[i] * o.v[i]
	}
	return
}

// Dist returns the L2 norm of v
func (v Vec4) Dist() float64 {
	return math.Sqrt(v.Dot(v))
}

// DistXYZ returns the L2 norm of the Cartesian (X, Y, Z) part of v.
// This is the travel distance of a move, ignoring extrusion.
func (v Vec4) DistXYZ() float64 {
	return math.Sqrt(v.v[0]*v.v[0] + v.v[1]*v.v[1] + v.v[2]*v.v[2])
}

// Norm returns the unit vector of v
func (v Vec4) Norm() Vec4 {
	d := v.Dist()
	if d == 0 {
		return Vec4{}
	}
	return v.Div(d)
}

// Eq returns true if v and o are equal
func (v Vec4) Eq(o Vec4) bool {
	return v.v == o.v
}

/* Getters */

// X value of v
func (v Vec4) X() float64 {
	return v.v[0]
}

// Y value of v
func (v Vec4) Y() float64 {
	return v.v[1]
}

// Z value of v
func (v Vec4) Z() float64 {
	return v.v[2]
}

// E value of v
func (v Vec4) E() float64 {
	return v.v[3]
}

// Get all values from v
func (v Vec4) Get() (x, y, z, e float64) {
	return v.v[0], v.v[1], v.v[2], v.v[3]
}

// GetAt returns the value at a given dimension.
func (v Vec4) GetAt(d int) float64 {
	return v.v[d]
}

/* Marshalling */

func (v *Vec4) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &v.v)
}

func (v Vec4) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.v)
}

func (v Vec4) String() string {
	return fmt.Sprint(v.v)
}
