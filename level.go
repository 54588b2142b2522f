package gungale

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Box is an axis-aligned cube scaled per axis around its centre.
type Box struct {
	Center mgl32.Vec3
	Size   mgl32.Vec3
	Color  mgl32.Vec4
}

type Sphere struct {
	Center mgl32.Vec3
	Radius float32
	Color  mgl32.Vec4
}

// Level is static scenery. Nothing in it collides with the player; the
// only collision surface is the y=0 floor plane.
type Level struct {
	Name       string
	Boxes      []Box
	Spheres    []Sphere
	LightPos   mgl32.Vec3
	ClearColor mgl32.Vec4
	Greeting   string
}

const (
	LevelArena = "arena"
	LevelMaze  = "maze"
)

// LevelNames lists the built-in levels.
var LevelNames = []string{LevelArena, LevelMaze}

func LevelByName(name string) (*Level, error) {
	switch name {
	case "", LevelArena:
		return ArenaLevel(), nil
	case LevelMaze:
		return MazeLevel(), nil
	}
	return nil, fmt.Errorf("unknown level %q (want one of %v)", name, LevelNames)
}

var (
	tileColorLight = mgl32.Vec4{150.0 / 255.0, 200.0 / 255.0, 200.0 / 255.0, 1}
	tileColorGray  = mgl32.Vec4{0.827, 0.827, 0.827, 1}
	sunColor       = mgl32.Vec4{1, 0, 0, 1}
)

const (
	arenaExtent   = 25
	arenaTileSize = 5.0
	floorThinness = 0.001
)

// ArenaLevel is the checkered floor with four towers and a red sun.
//
// Each tower mirrors the base position independently and the fourth mirrors x
// again, so it lands on the second one's spot and the (-x,-z) corner stays empty.
func ArenaLevel() *Level {
	lvl := &Level{
		Name:       LevelArena,
		LightPos:   mgl32.Vec3{300, 300, 0},
		ClearColor: mgl32.Vec4{0.94, 0.94, 0.94, 1},
		Greeting:   "Welcome to Gungale",
	}

	for y := -arenaExtent; y < arenaExtent; y++ {
		for x := -arenaExtent; x < arenaExtent; x++ {
			var color mgl32.Vec4
			switch {
			case y&1 == 1 && x&1 == 1:
				color = tileColorLight
			case y&1 == 0 && x&1 == 0:
				color = tileColorGray
			default:
				continue
			}
			lvl.Boxes = append(lvl.Boxes, Box{
				Center: mgl32.Vec3{float32(x) * arenaTileSize, 0, float32(y) * arenaTileSize},
				Size:   mgl32.Vec3{arenaTileSize, floorThinness, arenaTileSize},
				Color:  color,
			})
		}
	}

	towerPos := mgl32.Vec3{16, 16, 16}
	towerSize := mgl32.Vec3{16, 32, 16}
	for i := 0; i < 4; i++ {
		pos := towerPos
		switch i {
		case 1, 3:
			pos[0] = -pos[0]
		case 2:
			pos[2] = -pos[2]
		}
		lvl.Boxes = append(lvl.Boxes, Box{Center: pos, Size: towerSize, Color: tileColorLight})
	}

	lvl.Spheres = append(lvl.Spheres, Sphere{Center: lvl.LightPos, Radius: 100, Color: sunColor})
	return lvl
}

const (
	mazeCells    = 10
	mazeCellSize = 2.5
)

// mazeWalls marks wall cells, indexed [z][x].
var mazeWalls = [mazeCells][mazeCells]uint8{
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 1, 0, 1, 0, 1, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 1, 0, 0, 1},
	{1, 0, 1, 1, 1, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 1, 1, 0, 1},
	{1, 0, 0, 1, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 1, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
}

// MazeLevel is a walled grid on a green floor. The walls are visual only.
func MazeLevel() *Level {
	lvl := &Level{
		Name:       LevelMaze,
		LightPos:   mgl32.Vec3{300, 300, 0},
		ClearColor: mgl32.Vec4{0.94, 0.94, 0.94, 1},
		Greeting:   "Welcome to Gungale",
	}

	extent := float32(mazeCells) * mazeCellSize
	lvl.Boxes = append(lvl.Boxes, Box{
		Center: mgl32.Vec3{extent / 2, 0, extent / 2},
		Size:   mgl32.Vec3{extent, floorThinness, extent},
		Color:  mgl32.Vec4{120.0 / 255.0, 170.0 / 255.0, 120.0 / 255.0, 1},
	})

	wall := mgl32.Vec4{130.0 / 255.0, 130.0 / 255.0, 130.0 / 255.0, 1}
	for z := 0; z < mazeCells; z++ {
		for x := 0; x < mazeCells; x++ {
			if mazeWalls[z][x] == 0 {
				continue
			}
			lvl.Boxes = append(lvl.Boxes, Box{
				Center: mgl32.Vec3{float32(x) * mazeCellSize, mazeCellSize / 2, float32(z) * mazeCellSize},
				Size:   mgl32.Vec3{mazeCellSize, mazeCellSize, mazeCellSize},
				Color:  wall,
			})
		}
	}
	return lvl
}

// Model is the instance transform for a box.
func (b Box) Model() mgl32.Mat4 {
	return mgl32.Translate3D(b.Center.X(), b.Center.Y(), b.Center.Z()).
		Mul4(mgl32.Scale3D(b.Size.X(), b.Size.Y(), b.Size.Z()))
}

// Model is the instance transform for a unit sphere mesh.
func (s Sphere) Model() mgl32.Mat4 {
	return mgl32.Translate3D(s.Center.X(), s.Center.Y(), s.Center.Z()).
		Mul4(mgl32.Scale3D(s.Radius, s.Radius, s.Radius))
}
