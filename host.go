package gungale

// Key identifies a keyboard key independent of the windowing backend.
type Key int

const (
	KeyA Key = iota
	KeyD
	KeyS
	KeyW
	KeySpace
	KeyEscape
	KeyTab
	KeyControl
	KeyF1

	keyCount
)

// Host is the capability surface the frame loop polls: clock, pointer and keys.
// WindowHost backs it with a glfw window, ScriptedHost with a fixed input script.
type Host interface {
	Now() float64
	CursorPos() (x, y float64)
	KeyDown(k Key) bool
	PollEvents()
	ShouldClose() bool
	FramebufferSize() (width, height int)
}

// Platform carries the Host into systems.
type Platform struct {
	Host Host
}

type PlatformModule struct {
	Host Host
}

func (m PlatformModule) Install(app *App, cmd *Commands) {
	if m.Host == nil {
		panic("PlatformModule: Host is nil")
	}
	cmd.AddResources(&Platform{Host: m.Host})
	app.UseSystem(
		System(exitSystem).
			InStage(Finale),
	)
}

func exitSystem(platform *Platform, input *Input, cmd *Commands) {
	if platform.Host.ShouldClose() || input.JustPressed[KeyEscape] {
		cmd.Exit()
	}
}
