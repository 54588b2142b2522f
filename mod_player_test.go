package gungale

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerSystemStepsSession(t *testing.T) {
	session := NewSession(DefaultMovementTuning(), DefaultCameraTuning())
	input := &Input{}
	input.Pressed[KeyW] = true
	input.JustPressed[KeySpace] = true

	playerSystem(&Time{Dt: 0.02}, input, session)

	assert.Equal(t, uint64(1), session.Frame)
	assert.False(t, session.Body.IsGrounded)
	assert.Less(t, session.Body.Velocity.Z(), float32(0))
}

func TestTelemetryReportsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	app := NewAppBuilder().
		UseModule(LoggingModule{Out: &buf}).
		UseModule(PlayerModule{Movement: DefaultMovementTuning(), Camera: DefaultCameraTuning()}).
		Build()

	session := Resource[Session](app)
	telemetry := Resource[Telemetry](app)
	require.NotNil(t, telemetry)

	tm := &Time{Dt: 0.25}
	for i := 0; i < 10; i++ {
		telemetrySystem(tm, session, telemetry, app.Commands())
	}

	// Reports fire once the accumulated time exceeds the interval: after 5 and 10 frames.
	assert.Equal(t, 2, telemetry.Reports)
	assert.Equal(t, 2, strings.Count(buf.String(), "Velocity Len: 00.000"))
}
