package gungale

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaLevel(t *testing.T) {
	lvl := ArenaLevel()

	require.Len(t, lvl.Boxes, 1250+4)
	require.Len(t, lvl.Spheres, 1)

	light, gray := 0, 0
	for _, b := range lvl.Boxes[:1250] {
		assert.Equal(t, float32(0.001), b.Size.Y())
		switch b.Color {
		case tileColorLight:
			light++
		case tileColorGray:
			gray++
		}
	}
	assert.Equal(t, 625, light)
	assert.Equal(t, 625, gray)

	// (-25,-25) is an odd/odd tile at the far corner.
	assert.Equal(t, mgl32.Vec3{-125, 0, -125}, lvl.Boxes[0].Center)
	assert.Equal(t, tileColorLight, lvl.Boxes[0].Color)

	towers := lvl.Boxes[1250:]
	assert.Equal(t, mgl32.Vec3{16, 16, 16}, towers[0].Center)
	assert.Equal(t, mgl32.Vec3{-16, 16, 16}, towers[1].Center)
	assert.Equal(t, mgl32.Vec3{16, 16, -16}, towers[2].Center)
	assert.Equal(t, towers[1].Center, towers[3].Center)
	assert.Equal(t, mgl32.Vec3{16, 32, 16}, towers[0].Size)

	sun := lvl.Spheres[0]
	assert.Equal(t, lvl.LightPos, sun.Center)
	assert.Equal(t, float32(100), sun.Radius)
}

func TestMazeLevel(t *testing.T) {
	lvl := MazeLevel()

	require.Len(t, lvl.Boxes, 1+47)
	floor := lvl.Boxes[0]
	assert.Equal(t, mgl32.Vec3{12.5, 0, 12.5}, floor.Center)
	assert.Equal(t, float32(25), floor.Size.X())

	for _, wall := range lvl.Boxes[1:] {
		assert.Equal(t, float32(1.25), wall.Center.Y())
		assert.Equal(t, mgl32.Vec3{2.5, 2.5, 2.5}, wall.Size)
	}
	assert.Empty(t, lvl.Spheres)
}

func TestLevelByName(t *testing.T) {
	for _, name := range append([]string{""}, LevelNames...) {
		lvl, err := LevelByName(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, lvl.Boxes)
	}

	_, err := LevelByName("moon")
	assert.ErrorContains(t, err, "unknown level")
}

func TestBoxModel(t *testing.T) {
	b := Box{Center: mgl32.Vec3{1, 2, 3}, Size: mgl32.Vec3{2, 4, 6}}
	corner := b.Model().Mul4x1(mgl32.Vec4{0.5, 0.5, 0.5, 1})
	assert.Equal(t, mgl32.Vec4{2, 4, 6, 1}, corner)

	s := Sphere{Center: mgl32.Vec3{0, 10, 0}, Radius: 3}
	top := s.Model().Mul4x1(mgl32.Vec4{0, 1, 0, 1})
	assert.Equal(t, mgl32.Vec4{0, 13, 0, 1}, top)
}
