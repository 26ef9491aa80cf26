package geometry

import (
	"fmt"
	"math"
)

// Centroid calculates the area weighted center of mass of a polygon using
// the shoelace formula. The polygon is closed automatically when the last
// vertex does not coincide with the first. For the plain average of the
// vertices use GeometricCenter.
func Centroid(vertices []Vector) (Vector, error) {
	if len(vertices) < 3 {
		return Vector{}, fmt.Errorf("polygon must have at least 3 vertices")
	}

	coords := make([]Vector, 0, len(vertices)+1)
	for _, v := range vertices {
		coords = append(coords, v.To2D())
	}

	first := coords[0]
	last := coords[len(coords)-1]
	if math.Abs(first.X-last.X) > 1e-9 || math.Abs(first.Y-last.Y) > 1e-9 {
		coords = append(coords, first)
	}

	var area, cx, cy float64

	for i := 0; i < len(coords)-1; i++ {
		cross := coords[i].X*coords[i+1].Y - coords[i+1].X*coords[i].Y
		area += cross
		cx += (coords[i].X + coords[i+1].X) * cross
		cy += (coords[i].Y + coords[i+1].Y) * cross
	}

	area /= 2.0

	if math.Abs(area) < 1e-10 {
		return Vector{}, fmt.Errorf("polygon has zero area")
	}

	cx /= 6.0 * area
	cy /= 6.0 * area

	if z, ok := averageZ(vertices); ok {
		return New3D(cx, cy, z), nil
	}

	return New2D(cx, cy), nil
}

// GeometricCenter calculates the plain average position of the vertices.
func GeometricCenter(vertices []Vector) (Vector, error) {
	if len(vertices) == 0 {
		return Vector{}, fmt.Errorf("at least one vertex is required")
	}

	var x, y float64
	for _, v := range vertices {
		x += v.X
		y += v.Y
	}

	x /= float64(len(vertices))
	y /= float64(len(vertices))

	if z, ok := averageZ(vertices); ok {
		return New3D(x, y, z), nil
	}

	return New2D(x, y), nil
}

func averageZ(vertices []Vector) (float64, bool) {
	any3D := false
	var z float64

	for _, v := range vertices {
		any3D = any3D || v.Is3D()
		z += v.Z
	}

	if !any3D {
		return 0, false
	}

	return z / float64(len(vertices)), true
}
