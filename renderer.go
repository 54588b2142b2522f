package gungale

import (
	"fmt"
)

// RenderFrame is everything a Renderer needs to draw one frame.
type RenderFrame struct {
	View  CameraView
	Level *Level
	Hud   []HudLine
}

// Renderer draws frames. Draw errors are logged and do not stop the loop.
type Renderer interface {
	Draw(frame RenderFrame) error
	Close()
}

// NopRenderer records how many frames it was asked to draw.
type NopRenderer struct {
	Frames int
	Last   RenderFrame
}

func (r *NopRenderer) Draw(frame RenderFrame) error {
	r.Frames++
	r.Last = frame
	return nil
}

func (r *NopRenderer) Close() {}

// HudLine is one line of screen-space text. X and Y are pixels from the top-left.
type HudLine struct {
	Text  string
	X, Y  float32
	Scale float32
	Color [4]float32
}

type Hud struct {
	Enabled bool
	Lines   []HudLine
}

// Scene holds the active level and renderer.
type Scene struct {
	Level    *Level
	Renderer Renderer
	Failures int
}

type RenderModule struct {
	Renderer Renderer
	Level    *Level
	Hud      bool
}

func (mod RenderModule) Install(app *App, cmd *Commands) {
	if mod.Renderer == nil {
		mod.Renderer = &NopRenderer{}
	}
	if mod.Level == nil {
		mod.Level = ArenaLevel()
	}
	cmd.AddResources(
		&Scene{Level: mod.Level, Renderer: mod.Renderer},
		&Hud{Enabled: mod.Hud},
	)
	app.Logger().Infof("Level %q: %d boxes, %d spheres", mod.Level.Name, len(mod.Level.Boxes), len(mod.Level.Spheres))

	app.UseSystem(
		System(hudSystem).
			InStage(PostUpdate),
	)
	app.UseSystem(
		System(renderSystem).
			InStage(Render),
	)
}

var hudTextColor = [4]float32{0.1, 0.1, 0.1, 1}

// hudSystem rebuilds the overlay lines. F1 toggles the overlay.
func hudSystem(input *Input, hud *Hud, scene *Scene, session *Session) {
	if input.JustPressed[KeyF1] {
		hud.Enabled = !hud.Enabled
	}
	if !hud.Enabled {
		hud.Lines = hud.Lines[:0]
		return
	}
	pos := session.Body.Position
	hud.Lines = append(hud.Lines[:0],
		HudLine{Text: scene.Level.Greeting, X: 190, Y: 200, Scale: 2, Color: hudTextColor},
		HudLine{Text: fmt.Sprintf("speed %06.3f", session.Speed()), X: 10, Y: 10, Scale: 1, Color: hudTextColor},
		HudLine{Text: fmt.Sprintf("pos %.2f %.2f %.2f", pos.X(), pos.Y(), pos.Z()), X: 10, Y: 26, Scale: 1, Color: hudTextColor},
	)
}

func renderSystem(scene *Scene, session *Session, hud *Hud, cmd *Commands) {
	err := scene.Renderer.Draw(RenderFrame{
		View:  session.View,
		Level: scene.Level,
		Hud:   hud.Lines,
	})
	if err != nil {
		scene.Failures++
		cmd.Logger().Warnf("render: %v", err)
	}
}
