package geometry

import (
	"fmt"
	"math"
)

// Vector is a 2D or 3D translation vector. 2D vectors carry a zero Z
// component and remember their dimensionality so that conversions stay
// explicit.
type Vector struct {
	X float64
	Y float64
	Z float64

	threeD bool
}

func New2D(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

func New3D(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z, threeD: true}
}

func (v Vector) Is3D() bool {
	return v.threeD
}

// To2D drops the Z component.
func (v Vector) To2D() Vector {
	return New2D(v.X, v.Y)
}

// To3D adds a Z component to a 2D vector. 3D vectors are returned unchanged.
func (v Vector) To3D(z float64) Vector {
	if v.threeD {
		return v
	}
	return New3D(v.X, v.Y, z)
}

func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns the unit vector pointing in the same direction. Zero
// vectors cannot be normalized.
func (v Vector) Normalize() (Vector, error) {
	mag := v.Magnitude()
	if mag == 0 {
		return Vector{}, fmt.Errorf("cannot normalize zero vector")
	}

	return Vector{X: v.X / mag, Y: v.Y / mag, Z: v.Z / mag, threeD: v.threeD}, nil
}

func (v Vector) Add(other Vector) Vector {
	return Vector{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z, threeD: v.threeD || other.threeD}
}

func (v Vector) Sub(other Vector) Vector {
	return Vector{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z, threeD: v.threeD || other.threeD}
}

func (v Vector) Scale(factor float64) Vector {
	return Vector{X: v.X * factor, Y: v.Y * factor, Z: v.Z * factor, threeD: v.threeD}
}

func (v Vector) Dot(other Vector) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product. The result is always a 3D vector.
func (v Vector) Cross(other Vector) Vector {
	return New3D(
		v.Y*other.Z-v.Z*other.Y,
		v.Z*other.X-v.X*other.Z,
		v.X*other.Y-v.Y*other.X,
	)
}

func (v Vector) DistanceTo(other Vector) float64 {
	return v.Sub(other).Magnitude()
}

// AngleTo returns the angle between the two vectors in radians.
func (v Vector) AngleTo(other Vector) (float64, error) {
	magnitudes := v.Magnitude() * other.Magnitude()
	if magnitudes == 0 {
		return 0, fmt.Errorf("cannot calculate angle with zero vector")
	}

	// clamp to counter floating point drift
	cos := v.Dot(other) / magnitudes
	cos = math.Max(-1, math.Min(1, cos))

	return math.Acos(cos), nil
}

func (v Vector) String() string {
	if v.threeD {
		return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
	}
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
