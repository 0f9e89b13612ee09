package vec

import (
	"math"
	"strconv"
	"strings"
)

// Vec3 is a 3-component double-precision point/vector.
//
// It is a plain value type: copied by value, compared component-wise, and
// never shared by reference across ownership boundaries. Any finite triple is
// a valid value. Component indexing uses the native array domain {0,1,2}.
type Vec3 [3]float64

// New returns the vector with the given components.
func New(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Splat returns the vector with all three components set to s.
func Splat(s float64) Vec3 {
	return Vec3{s, s, s}
}

// FromSlice returns a vector from the first three elements of v.
// The caller guarantees len(v) >= 3.
func FromSlice(v []float64) Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// FromSlice32 returns a vector from the first three elements of v.
// The caller guarantees len(v) >= 3.
func FromSlice32(v []float32) Vec3 {
	return Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

// Add returns the component-wise sum v + u.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

// Sub returns the component-wise difference v - u.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

// Mul returns the component-wise product v * u.
func (v Vec3) Mul(u Vec3) Vec3 {
	return Vec3{v[0] * u[0], v[1] * u[1], v[2] * u[2]}
}

// Div returns the component-wise quotient v / u.
func (v Vec3) Div(u Vec3) Vec3 {
	return Vec3{v[0] / u[0], v[1] / u[1], v[2] / u[2]}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Shrink returns v divided by s.
func (v Vec3) Shrink(s float64) Vec3 {
	return v.Scale(1 / s)
}

// Neg returns the negation of v as a new vector.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// AddSelf adds u to v in place and returns v for chaining.
func (v *Vec3) AddSelf(u Vec3) *Vec3 {
	v[0] += u[0]
	v[1] += u[1]
	v[2] += u[2]

	return v
}

// SubSelf subtracts u from v in place and returns v for chaining.
func (v *Vec3) SubSelf(u Vec3) *Vec3 {
	v[0] -= u[0]
	v[1] -= u[1]
	v[2] -= u[2]

	return v
}

// ScaleSelf scales v by s in place and returns v for chaining.
func (v *Vec3) ScaleSelf(s float64) *Vec3 {
	v[0] *= s
	v[1] *= s
	v[2] *= s

	return v
}

// ShrinkSelf divides v by s in place and returns v for chaining.
func (v *Vec3) ShrinkSelf(s float64) *Vec3 {
	return v.ScaleSelf(1 / s)
}

// Negate negates v in place.
func (v *Vec3) Negate() {
	v[0] *= -1
	v[1] *= -1
	v[2] *= -1
}

// Dot returns the inner product of v and u.
func (v Vec3) Dot(u Vec3) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

// Cross returns the right-handed cross product of v and u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		v[1]*u[2] - v[2]*u[1],
		v[2]*u[0] - v[0]*u[2],
		v[0]*u[1] - v[1]*u[0],
	}
}

// Length returns the Euclidean norm of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Normalized returns v scaled to unit length.
// The zero vector normalizes to the zero vector.
func (v Vec3) Normalized() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{}
	}

	return v.Shrink(length)
}

// Normalize scales v to unit length in place.
// The zero vector is left unchanged.
func (v *Vec3) Normalize() {
	length := v.Length()
	if length != 0 {
		v.ShrinkSelf(length)
	}
}

// Orthogonal returns a vector orthogonal to v.
// The result is (y+z, z-x, -x-y); it is not unit length, and it is only
// guaranteed orthogonal for nonzero input.
func (v Vec3) Orthogonal() Vec3 {
	return Vec3{v[1] + v[2], v[2] - v[0], -v[0] - v[1]}
}

// Angle returns the unsigned angle in radians between v and u.
// If either vector has zero length the angle is 0.
func (v Vec3) Angle(u Vec3) float64 {
	length := v.Length() * u.Length()
	if length == 0 {
		return 0
	}

	return math.Acos(v.Dot(u) / length)
}

// RotateBy returns v rotated by angle radians about axis.
// The axis must be unit length; it is not normalized here, and a non-unit
// axis silently produces an incorrect result.
func (v Vec3) RotateBy(axis Vec3, angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)

	return v.Scale(c).
		Add(axis.Scale((1 - c) * v.Dot(axis))).
		Sub(v.Cross(axis).Scale(s))
}

// String renders v as "(x,y,z)".
func (v Vec3) String() string {
	var b strings.Builder

	b.WriteByte('(')
	b.WriteString(strconv.FormatFloat(v[0], 'g', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(v[1], 'g', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(v[2], 'g', -1, 64))
	b.WriteByte(')')

	return b.String()
}
