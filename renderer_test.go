package gungale

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRenderer struct {
	calls  int
	closed bool
}

func (r *failingRenderer) Draw(RenderFrame) error {
	r.calls++
	return errors.New("surface lost")
}

func (r *failingRenderer) Close() { r.closed = true }

func TestRenderModuleDefaults(t *testing.T) {
	app := NewAppBuilder().
		UseModule(PlayerModule{Movement: DefaultMovementTuning(), Camera: DefaultCameraTuning()}).
		UseModule(RenderModule{}).
		Build()

	scene := Resource[Scene](app)
	require.NotNil(t, scene)
	assert.IsType(t, &NopRenderer{}, scene.Renderer)
	assert.Equal(t, LevelArena, scene.Level.Name)
	assert.False(t, Resource[Hud](app).Enabled)
}

func TestRenderSystemKeepsRunningOnErrors(t *testing.T) {
	renderer := &failingRenderer{}
	app := NewAppBuilder().
		UseModule(PlayerModule{Movement: DefaultMovementTuning(), Camera: DefaultCameraTuning()}).
		UseModule(RenderModule{Renderer: renderer, Level: MazeLevel()}).
		Build()

	session := Resource[Session](app)
	hud := Resource[Hud](app)
	scene := Resource[Scene](app)
	for i := 0; i < 3; i++ {
		renderSystem(scene, session, hud, app.Commands())
	}

	assert.Equal(t, 3, renderer.calls)
	assert.Equal(t, 3, scene.Failures)
}

func TestHudSystem(t *testing.T) {
	session := NewSession(DefaultMovementTuning(), DefaultCameraTuning())
	scene := &Scene{Level: MazeLevel()}
	hud := &Hud{Enabled: true}
	input := &Input{}

	hudSystem(input, hud, scene, session)
	require.Len(t, hud.Lines, 3)
	assert.Equal(t, "Welcome to Gungale", hud.Lines[0].Text)
	assert.Equal(t, "speed 00.000", hud.Lines[1].Text)
	assert.Equal(t, "pos 0.00 0.00 0.00", hud.Lines[2].Text)

	input.JustPressed[KeyF1] = true
	hudSystem(input, hud, scene, session)
	assert.False(t, hud.Enabled)
	assert.Empty(t, hud.Lines)

	hudSystem(input, hud, scene, session)
	assert.True(t, hud.Enabled)
	assert.Len(t, hud.Lines, 3)
}

func TestLevelInstances(t *testing.T) {
	lvl := ArenaLevel()
	cubes, spheres := levelInstances(lvl)

	require.Len(t, cubes, len(lvl.Boxes))
	require.Len(t, spheres, 1)
	assert.Equal(t, lvl.Boxes[7].Model(), cubes[7].ModelMat)
	assert.Equal(t, [4]float32(lvl.Boxes[7].Color), cubes[7].Color)
	assert.Equal(t, float32(0), cubes[7].Params[0])
	assert.Equal(t, float32(1), spheres[0].Params[0], "the sun is drawn unlit")
}

func TestHudItems(t *testing.T) {
	items := hudItems([]HudLine{{Text: "hi", X: 4, Y: 8, Scale: 2, Color: [4]float32{1, 0, 0, 1}}})
	require.Len(t, items, 1)
	assert.Equal(t, "hi", items[0].Text)
	assert.Equal(t, [2]float32{4, 8}, items[0].Position)
	assert.Equal(t, float32(2), items[0].Scale)
}
