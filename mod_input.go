package gungale

import (
	"github.com/go-gl/mathgl/mgl32"
)

type InputModule struct{}

type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	MouseCaptured            bool

	// The first observed pointer position is the reference; no delta is reported for it.
	mouseSeen bool
}

type cursorCapturer interface {
	SetCursorCaptured(captured bool)
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{MouseCaptured: true})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

func inputSystem(platform *Platform, input *Input) {
	host := platform.Host
	host.PollEvents()

	for key := Key(0); key < keyCount; key++ {
		down := host.KeyDown(key)

		input.JustPressed[key] = down && !input.Pressed[key]
		input.JustReleased[key] = !down && input.Pressed[key]
		input.Pressed[key] = down
	}

	if input.JustPressed[KeyTab] {
		input.MouseCaptured = !input.MouseCaptured
		if c, ok := host.(cursorCapturer); ok {
			c.SetCursorCaptured(input.MouseCaptured)
		}
	}

	mx, my := host.CursorPos()
	if !input.mouseSeen {
		input.MouseX, input.MouseY = mx, my
		input.mouseSeen = true
	}
	if input.MouseCaptured {
		input.MouseDeltaX = mx - input.MouseX
		input.MouseDeltaY = my - input.MouseY
	} else {
		input.MouseDeltaX = 0
		input.MouseDeltaY = 0
	}
	input.MouseX = mx
	input.MouseY = my
}

// Axis returns +1, -1 or 0 from a positive/negative key pair.
func (input *Input) Axis(positive, negative Key) int8 {
	var v int8
	if input.Pressed[positive] {
		v++
	}
	if input.Pressed[negative] {
		v--
	}
	return v
}

// PointerDelta is the pointer motion since the previous frame.
func (input *Input) PointerDelta() mgl32.Vec2 {
	return mgl32.Vec2{float32(input.MouseDeltaX), float32(input.MouseDeltaY)}
}
