// Package spatial provides the 3-component vector value type used wherever
// the setup documents describe geometry.
package spatial

import "math"

// Vector is a 3-component spatial vector. It serializes to the engine's
// {"x": ..., "y": ..., "z": ...} form with every component present.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// New creates a vector from its components.
func New(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// FromSlice creates a vector from a 3-element slice.
func FromSlice(v []float64) Vector {
	return Vector{X: v[0], Y: v[1], Z: v[2]}
}

// AsSlice returns the components as a slice.
func (v Vector) AsSlice() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// Add returns the component-wise sum of v and rhs.
func (v Vector) Add(rhs Vector) Vector {
	return Vector{X: v.X + rhs.X, Y: v.Y + rhs.Y, Z: v.Z + rhs.Z}
}

// Scale returns v scaled by the given factor.
func (v Vector) Scale(factor float64) Vector {
	return Vector{X: v.X * factor, Y: v.Y * factor, Z: v.Z * factor}
}

// Dot returns the dot product of v and rhs.
func (v Vector) Dot(rhs Vector) float64 {
	return v.X*rhs.X + v.Y*rhs.Y + v.Z*rhs.Z
}

// Cross returns the cross product of v and rhs.
func (v Vector) Cross(rhs Vector) Vector {
	return Vector{
		X: v.Y*rhs.Z - v.Z*rhs.Y,
		Y: v.Z*rhs.X - v.X*rhs.Z,
		Z: v.X*rhs.Y - v.Y*rhs.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vector) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// LengthSquared returns the squared Euclidean length of v.
func (v Vector) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalized returns v scaled to unit length.
func (v Vector) Normalized() Vector {
	return v.Scale(1.0 / v.Length())
}

// AbsoluteAngleBetween returns the unsigned angle between v and rhs in
// radians. A zero-length operand gives a zero angle.
func (v Vector) AbsoluteAngleBetween(rhs Vector) float64 {
	vLenSq := v.LengthSquared()
	rhsLenSq := rhs.LengthSquared()
	if vLenSq == 0.0 || rhsLenSq == 0.0 {
		return 0.0
	}

	cosine := v.Dot(rhs) / math.Sqrt(vLenSq*rhsLenSq)
	cosine = math.Min(math.Max(cosine, -1.0), 1.0)

	return math.Acos(cosine)
}

// SignedAngleBetween returns the angle between v and rhs in radians, signed
// by the orientation of the given axis.
func (v Vector) SignedAngleBetween(rhs, axis Vector) float64 {
	angle := v.AbsoluteAngleBetween(rhs)
	if v.Dot(rhs.Cross(axis)) > 0.0 {
		return angle
	}
	return -angle
}

// RotateAroundAxis rotates v by the given angle in radians around the axis,
// using the Rodrigues rotation formula.
func (v Vector) RotateAroundAxis(angle float64, axis Vector) Vector {
	n := axis.Normalized()

	cos := math.Cos(angle)
	sin := math.Sin(angle)

	term1 := v.Scale(cos)
	term2 := n.Cross(v).Scale(sin)
	term3 := n.Scale(n.Dot(v) * (1.0 - cos))

	return term1.Add(term2).Add(term3)
}
