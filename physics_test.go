package gungale

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = float32(1.0 / 60.0)

func stepBody(body *Body, tuning *MovementTuning, in BodyInput, frames int) {
	for i := 0; i < frames; i++ {
		UpdateBody(body, tuning, in, frame)
	}
}

func TestBodyJump(t *testing.T) {
	tuning := DefaultMovementTuning()
	body := NewBody()

	UpdateBody(&body, &tuning, BodyInput{Jump: true}, frame)

	assert.False(t, body.IsGrounded)
	assert.Equal(t, tuning.JumpForce, body.Velocity.Y())
	assert.InDelta(t, tuning.JumpForce*frame, body.Position.Y(), 1e-6)
}

func TestBodyJumpIgnoredInAir(t *testing.T) {
	tuning := DefaultMovementTuning()
	body := Body{Position: mgl32.Vec3{0, 3, 0}, Velocity: mgl32.Vec3{0, 5, 0}}

	UpdateBody(&body, &tuning, BodyInput{Jump: true}, frame)

	assert.False(t, body.IsGrounded)
	assert.InDelta(t, 5-tuning.Gravity*frame, body.Velocity.Y(), 1e-5)
	assert.False(t, body.Jump(tuning.JumpForce))
}

func TestBodyLanding(t *testing.T) {
	tuning := DefaultMovementTuning()
	body := Body{Position: mgl32.Vec3{0, 0.05, 0}, Velocity: mgl32.Vec3{0, -6, 0}}

	UpdateBody(&body, &tuning, BodyInput{}, frame)

	assert.True(t, body.IsGrounded)
	assert.Equal(t, float32(0), body.Position.Y())
	assert.Equal(t, float32(0), body.Velocity.Y())
}

func TestBodyFallsAndLands(t *testing.T) {
	tuning := DefaultMovementTuning()
	body := Body{Position: mgl32.Vec3{0, 2, 0}}

	landed := -1
	for i := 0; i < 120; i++ {
		prevY := body.Position.Y()
		UpdateBody(&body, &tuning, BodyInput{}, frame)
		if body.IsGrounded {
			landed = i
			break
		}
		require.Less(t, body.Position.Y(), prevY, "frame %d", i)
		require.Greater(t, body.Position.Y(), float32(0), "frame %d", i)
		require.Less(t, body.Velocity.Y(), float32(0), "frame %d", i)
	}

	// y(n) = 2 - g*dt^2*n(n+1)/2 first reaches the floor on the 21st update.
	assert.Equal(t, 20, landed)
	assert.Equal(t, float32(0), body.Position.Y())
	assert.Equal(t, float32(0), body.Velocity.Y())
}

func TestBodyNeverBelowFloor(t *testing.T) {
	tuning := DefaultMovementTuning()
	body := NewBody()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 5000; i++ {
		in := BodyInput{
			Yaw:     rng.Float32() * 2 * math.Pi,
			Strafe:  int8(rng.Intn(3) - 1),
			Forward: int8(rng.Intn(3) - 1),
			Jump:    rng.Intn(20) == 0,
			Crouch:  rng.Intn(4) == 0,
		}
		delta := frame
		if rng.Intn(10) == 0 {
			delta = rng.Float32() * 0.1
		}
		UpdateBody(&body, &tuning, in, delta)

		require.GreaterOrEqual(t, body.Position.Y(), float32(0), "frame %d", i)
		if body.IsGrounded {
			require.Equal(t, float32(0), body.Position.Y(), "frame %d", i)
			require.Equal(t, float32(0), body.Velocity.Y(), "frame %d", i)
		}
	}
}

func TestBodyStopsExactly(t *testing.T) {
	tuning := DefaultMovementTuning()
	body := NewBody()
	stepBody(&body, &tuning, BodyInput{Forward: 1, Strafe: 1}, 120)
	require.Greater(t, HorizontalSpeed(body.Velocity), float32(1))

	stopped := -1
	for i := 0; i < 300; i++ {
		UpdateBody(&body, &tuning, BodyInput{}, frame)
		if body.Velocity.X() == 0 && body.Velocity.Z() == 0 {
			stopped = i
			break
		}
	}

	require.NotEqual(t, -1, stopped, "horizontal velocity never reached zero")
	assert.Equal(t, mgl32.Vec3{}, body.Direction)

	pos := body.Position
	stepBody(&body, &tuning, BodyInput{}, 10)
	assert.Equal(t, pos, body.Position)
}

func TestBodyGroundSpeedBound(t *testing.T) {
	tuning := DefaultMovementTuning()
	body := NewBody()
	rng := rand.New(rand.NewSource(11))
	limit := tuning.MaxSpeed + tuning.MaxAccel*frame

	for i := 0; i < 5000; i++ {
		UpdateBody(&body, &tuning, BodyInput{
			Yaw:     rng.Float32() * 2 * math.Pi,
			Strafe:  int8(rng.Intn(3) - 1),
			Forward: int8(rng.Intn(3) - 1),
			Crouch:  rng.Intn(5) == 0,
		}, frame)
		require.LessOrEqual(t, HorizontalSpeed(body.Velocity), limit, "frame %d", i)
	}
}

func TestBodyAirSpeedBoundStraightLine(t *testing.T) {
	tuning := DefaultMovementTuning()
	body := NewBody()
	limit := tuning.MaxSpeed + tuning.MaxAccel*frame

	for i := 0; i < 600; i++ {
		UpdateBody(&body, &tuning, BodyInput{Forward: 1, Jump: i%50 == 0}, frame)
		require.LessOrEqual(t, HorizontalSpeed(body.Velocity), limit, "frame %d", i)
	}
}

func TestBodyWalkEquilibrium(t *testing.T) {
	tuning := DefaultMovementTuning()
	body := NewBody()

	stepBody(&body, &tuning, BodyInput{Forward: 1}, 600)

	// Friction removes more per frame than the acceleration cap can restore below MaxSpeed.
	equilibrium := tuning.MaxAccel * frame / (1 - tuning.Friction)
	assert.InDelta(t, equilibrium, HorizontalSpeed(body.Velocity), 1e-3)
	assert.Less(t, body.Velocity.Z(), float32(0), "forward at yaw 0 is -Z")
	assert.InDelta(t, 0, body.Velocity.X(), 1e-5)
	assert.True(t, body.IsGrounded)
}

func TestBodyCrouchSpeed(t *testing.T) {
	tuning := DefaultMovementTuning()
	body := NewBody()

	stepBody(&body, &tuning, BodyInput{Forward: 1, Crouch: true}, 600)

	assert.InDelta(t, tuning.CrouchSpeed, HorizontalSpeed(body.Velocity), 1e-4)
}

func TestBodyAirSpeedApproachesMax(t *testing.T) {
	tuning := DefaultMovementTuning()
	tuning.Gravity = 0
	body := Body{Position: mgl32.Vec3{0, 10, 0}}

	stepBody(&body, &tuning, BodyInput{Strafe: 1}, 600)

	assert.False(t, body.IsGrounded)
	assert.InDelta(t, tuning.MaxSpeed, HorizontalSpeed(body.Velocity), 1e-3)
	assert.Greater(t, body.Velocity.X(), float32(0), "strafe right at yaw 0 is +X")
}

func TestBodyFallbackDelta(t *testing.T) {
	tuning := DefaultMovementTuning()
	in := BodyInput{Forward: 1, Jump: true, Yaw: 0.3}

	a, b, c := NewBody(), NewBody(), NewBody()
	for i := 0; i < 30; i++ {
		UpdateBody(&a, &tuning, in, 0)
		UpdateBody(&b, &tuning, in, -1)
		UpdateBody(&c, &tuning, in, FallbackDelta)
	}

	assert.Equal(t, c, a)
	assert.Equal(t, c, b)
}
