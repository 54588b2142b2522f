package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gekko3d/gungale"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Debug   bool     `help:"Whether to enable debug logging."`
	Configs []string `name:"config" short:"c" help:"Configuration files (.toml, .yaml), applied in order." type:"existingfile"`

	Run struct {
		Level string `help:"Level to load (arena, maze). Overrides the config file."`
	} `cmd:"" default:"1" help:"Open the window and play."`

	Replay struct {
		Script string `arg:"" name:"script" help:"YAML input script to replay headlessly." type:"existingfile"`
	} `cmd:"" help:"Replay an input script without a window and print the final state."`

	Config struct {
	} `cmd:"" help:"Write the default configuration to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("gungale"),
		kong.Description("a first-person movement demo"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}

	var err error
	switch ctx.Command() {
	case "run":
		err = runCommand()
	case "replay <script>":
		err = replayCommand(CLI.Replay.Script)
	case "config":
		err = gungale.WriteDefaultConfig(os.Stdout)
	}
	if err != nil {
		writeError(err)
	}
}

func loadConfig() (gungale.Config, error) {
	cfg, err := gungale.LoadConfig(CLI.Configs...)
	if err != nil {
		return cfg, err
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	return cfg, nil
}

func runCommand() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if CLI.Run.Level != "" {
		cfg.Level = CLI.Run.Level
	}

	host, err := gungale.NewWindowHost(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	if err != nil {
		return err
	}
	defer host.Close()

	renderer, err := gungale.NewWgpuRenderer(host, cfg.FontPath)
	if err != nil {
		return err
	}
	defer renderer.Close()

	app, err := gungale.NewGame(gungale.GameOptions{
		Config:   cfg,
		Host:     host,
		Renderer: renderer,
	})
	if err != nil {
		return err
	}
	app.Run()
	return nil
}

func replayCommand(path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	script, err := gungale.LoadInputScript(path)
	if err != nil {
		return err
	}

	app, err := gungale.NewGame(gungale.GameOptions{
		Config: cfg,
		Host:   gungale.NewScriptedHost(script),
	})
	if err != nil {
		return err
	}
	app.Run()

	session := gungale.Resource[gungale.Session](app)
	body := session.Body
	view := session.View
	log.Info().
		Str("session", session.ID.String()).
		Uint64("frames", session.Frame).
		Msg("replay finished")
	fmt.Printf("position  %8.3f %8.3f %8.3f\n", body.Position.X(), body.Position.Y(), body.Position.Z())
	fmt.Printf("velocity  %8.3f %8.3f %8.3f\n", body.Velocity.X(), body.Velocity.Y(), body.Velocity.Z())
	fmt.Printf("grounded  %t\n", body.IsGrounded)
	fmt.Printf("speed     %8.3f\n", session.Speed())
	fmt.Printf("eye       %8.3f %8.3f %8.3f\n", view.Position.X(), view.Position.Y(), view.Position.Z())
	fmt.Printf("target    %8.3f %8.3f %8.3f\n", view.Target.X(), view.Target.Y(), view.Target.Z())
	fmt.Printf("fovy      %8.3f\n", view.Fovy)
	return nil
}
