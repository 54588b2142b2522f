package gungale

import (
	"io"
)

// GameOptions selects the collaborators for one run.
type GameOptions struct {
	Config   Config
	Host     Host
	Renderer Renderer  // NopRenderer when nil
	LogOut   io.Writer // stdout console when nil
}

// NewGame wires the modules in frame order and returns the built App.
func NewGame(opts GameOptions) (*App, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	level, err := LevelByName(opts.Config.Level)
	if err != nil {
		return nil, err
	}

	app := NewAppBuilder().
		UseModule(LoggingModule{Prefix: "gungale", Debug: opts.Config.Debug, Out: opts.LogOut}).
		UseModule(PlatformModule{Host: opts.Host}).
		UseModule(TimeModule{}).
		UseModule(InputModule{}).
		UseModule(NewPlayerModule(opts.Config)).
		UseModule(RenderModule{Renderer: opts.Renderer, Level: level, Hud: opts.Config.HUD}).
		Build()
	return app, nil
}
