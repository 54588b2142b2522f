package gungale

// Time is the frame clock, in seconds from the host.
type Time struct {
	Now   float64
	Dt    float64
	Frame uint64

	started bool
}

// Delta is Dt as float32, substituting FallbackDelta for a stalled or backward clock.
func (t *Time) Delta() float32 {
	if t.Dt <= 0 {
		return FallbackDelta
	}
	return float32(t.Dt)
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude),
	)
}

// fixedStepHost is a Host that advances its clock by a constant step per frame.
type fixedStepHost interface {
	FixedDelta() float64
}

func timeSystem(platform *Platform, timeResource *Time) {
	now := platform.Host.Now()
	if !timeResource.started {
		timeResource.Now = now
		if fixed, ok := platform.Host.(fixedStepHost); ok {
			// The first frame of a fixed-step host is one full step long.
			timeResource.Now = now - fixed.FixedDelta()
		}
		timeResource.started = true
	}

	timeResource.Dt = now - timeResource.Now
	timeResource.Now = now
	timeResource.Frame++
}
