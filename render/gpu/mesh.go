package gpu

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MeshVertex matches the WGSL VertexInput of the level shader.
type MeshVertex struct {
	Pos    [3]float32
	Normal [3]float32
}

// cubeFaces lists (normal, u) per face; v = normal x u, so u x v = normal.
var cubeFaces = [6][2]mgl32.Vec3{
	{{1, 0, 0}, {0, 0, -1}},
	{{-1, 0, 0}, {0, 0, 1}},
	{{0, 1, 0}, {1, 0, 0}},
	{{0, -1, 0}, {1, 0, 0}},
	{{0, 0, 1}, {1, 0, 0}},
	{{0, 0, -1}, {-1, 0, 0}},
}

// CubeMesh is a unit cube (-0.5..0.5), 36 vertices, counter-clockwise from outside.
func CubeMesh() []MeshVertex {
	vertices := make([]MeshVertex, 0, 36)
	for _, face := range cubeFaces {
		n, u := face[0], face[1]
		v := n.Cross(u)
		corner := func(su, sv float32) MeshVertex {
			p := n.Add(u.Mul(su)).Add(v.Mul(sv)).Mul(0.5)
			return MeshVertex{Pos: p, Normal: n}
		}
		vertices = append(vertices,
			corner(-1, -1), corner(1, -1), corner(1, 1),
			corner(-1, -1), corner(1, 1), corner(-1, 1),
		)
	}
	return vertices
}

// SphereMesh is a unit-radius UV sphere as a triangle list.
func SphereMesh(stacks, slices int) []MeshVertex {
	if stacks < 2 {
		stacks = 2
	}
	if slices < 3 {
		slices = 3
	}

	point := func(i, j int) MeshVertex {
		phi := math.Pi * float64(i) / float64(stacks)
		theta := 2 * math.Pi * float64(j) / float64(slices)
		p := [3]float32{
			float32(math.Sin(phi) * math.Cos(theta)),
			float32(math.Cos(phi)),
			float32(math.Sin(phi) * math.Sin(theta)),
		}
		return MeshVertex{Pos: p, Normal: p}
	}

	vertices := make([]MeshVertex, 0, stacks*slices*6)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			p00, p01 := point(i, j), point(i, j+1)
			p10, p11 := point(i+1, j), point(i+1, j+1)
			vertices = append(vertices,
				p00, p01, p11,
				p00, p11, p10,
			)
		}
	}
	return vertices
}
