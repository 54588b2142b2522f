package gungale

// PlayerModule installs the Session and drives it once per frame from Input.
type PlayerModule struct {
	Movement MovementTuning
	Camera   CameraTuning
}

func NewPlayerModule(cfg Config) PlayerModule {
	return PlayerModule{Movement: cfg.Movement, Camera: cfg.Camera}
}

func (m PlayerModule) Install(app *App, cmd *Commands) {
	session := NewSession(m.Movement, m.Camera)
	cmd.AddResources(session, &Telemetry{Interval: 1.0})
	app.Logger().Infof("Session %s started", session.ID)

	app.UseSystem(
		System(playerSystem).
			InStage(Update),
	)
	app.UseSystem(
		System(telemetrySystem).
			InStage(PostUpdate),
	)
}

// ReadFrameInput maps the bound keys and pointer motion to a FrameInput.
func ReadFrameInput(input *Input, delta float32) FrameInput {
	return FrameInput{
		Delta:        delta,
		Strafe:       input.Axis(KeyD, KeyA),
		Forward:      input.Axis(KeyW, KeyS),
		Jump:         input.JustPressed[KeySpace],
		Crouch:       input.Pressed[KeyControl],
		PointerDelta: input.PointerDelta(),
	}
}

func playerSystem(time *Time, input *Input, session *Session) {
	session.Step(ReadFrameInput(input, time.Delta()))
}

// Telemetry reports the horizontal speed at a fixed wall-clock interval.
type Telemetry struct {
	Interval float64
	Reports  int

	elapsed float64
}

func telemetrySystem(time *Time, session *Session, telemetry *Telemetry, cmd *Commands) {
	telemetry.elapsed += float64(time.Delta())
	if telemetry.elapsed <= telemetry.Interval {
		return
	}
	telemetry.elapsed = 0
	telemetry.Reports++

	logger := cmd.Logger()
	logger.Infof("Velocity Len: %06.3f", session.Speed())
	logger.Debugf("frame=%d pos=%v grounded=%t yaw=%.3f pitch=%.3f",
		session.Frame, session.Body.Position, session.Body.IsGrounded,
		session.Look.Rotation.X(), session.Look.Rotation.Y())
}
