package geometry

import (
	"math"
	"testing"

	"github.com/matryer/is"
)

func TestCentroidOfSquare(t *testing.T) {
	is := is.New(t)

	square := []Vector{New2D(0, 0), New2D(2, 0), New2D(2, 2), New2D(0, 2)}

	c, err := Centroid(square)

	is.NoErr(err)
	is.True(math.Abs(c.X-1) < 1e-9)
	is.True(math.Abs(c.Y-1) < 1e-9)
}

func TestCentroidOfLShape(t *testing.T) {
	is := is.New(t)

	// area weighted center differs from the vertex average here
	l := []Vector{New2D(0, 0), New2D(4, 0), New2D(4, 1), New2D(1, 1), New2D(1, 4), New2D(0, 4)}

	c, err := Centroid(l)
	is.NoErr(err)

	g, err := GeometricCenter(l)
	is.NoErr(err)

	is.True(math.Abs(c.X-g.X) > 1e-3)
}

func TestCentroidRejectsDegenerateInput(t *testing.T) {
	is := is.New(t)

	_, err := Centroid([]Vector{New2D(0, 0), New2D(1, 1)})
	is.True(err != nil)

	_, err = Centroid([]Vector{New2D(0, 0), New2D(1, 1), New2D(2, 2)})
	is.True(err != nil) // collinear, zero area
}

func TestGeometricCenter(t *testing.T) {
	is := is.New(t)

	g, err := GeometricCenter([]Vector{New2D(0, 0), New2D(2, 0), New2D(2, 2), New2D(0, 2)})
	is.NoErr(err)
	is.Equal(g, New2D(1, 1))

	g, err = GeometricCenter([]Vector{New3D(0, 0, 0), New3D(2, 0, 4)})
	is.NoErr(err)
	is.True(g.Is3D())
	is.Equal(g.Z, 2.0)

	_, err = GeometricCenter(nil)
	is.True(err != nil)
}
