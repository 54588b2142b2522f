package gungale

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() *Session {
	return NewSession(DefaultMovementTuning(), DefaultCameraTuning())
}

func TestNewSession(t *testing.T) {
	s := newTestSession()

	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.True(t, s.Body.IsGrounded)
	assert.Equal(t, mgl32.Vec3{0, 1.5, 0}, s.View.Position)
	assert.Equal(t, mgl32.Vec3{0, 1.5, -1}, s.View.Target)
	assert.Equal(t, float32(60), s.View.Fovy)
	assert.NotEqual(t, newTestSession().ID, s.ID)
}

func TestSessionStepCountsFrames(t *testing.T) {
	s := newTestSession()
	for i := 0; i < 5; i++ {
		s.Step(FrameInput{Delta: frame})
	}
	assert.Equal(t, uint64(5), s.Frame)
}

func TestSessionMovesWhereItLooks(t *testing.T) {
	s := newTestSession()

	s.Step(FrameInput{Delta: frame, PointerDelta: mgl32.Vec2{-400, 0}})
	for i := 0; i < 120; i++ {
		s.Step(FrameInput{Delta: frame, Forward: 1})
	}

	look := horizontal(s.View.LookDirection()).Normalize()
	move := horizontal(s.Body.Velocity).Normalize()
	assert.InDelta(t, 1, look.Dot(move), 1e-4)
	assert.Less(t, s.View.Fovy, float32(60))
}

func TestSessionPointerAppliedBeforeMovement(t *testing.T) {
	s := newTestSession()

	// A quarter turn left and forward in the same frame moves along -X.
	view := s.Step(FrameInput{
		Delta:        frame,
		Forward:      1,
		PointerDelta: mgl32.Vec2{-1570.7963, 0},
	})

	require.Greater(t, HorizontalSpeed(s.Body.Velocity), float32(0))
	assert.Less(t, s.Body.Direction.X(), float32(0))
	assert.InDelta(t, 0, s.Body.Direction.Z(), 1e-4)
	assert.Equal(t, s.View, view)
}

func TestSessionZeroDeltaUsesFallback(t *testing.T) {
	a, b := newTestSession(), newTestSession()
	for i := 0; i < 30; i++ {
		a.Step(FrameInput{Forward: 1, Strafe: -1})
		b.Step(FrameInput{Delta: FallbackDelta, Forward: 1, Strafe: -1})
	}
	assert.Equal(t, b.Body, a.Body)
	assert.Equal(t, b.Look, a.Look)
}

func TestSessionCrouchAndJump(t *testing.T) {
	s := newTestSession()

	for i := 0; i < 120; i++ {
		s.Step(FrameInput{Delta: frame, Crouch: true})
	}
	assert.InDelta(t, 0.5, s.View.Position.Y(), 1e-3)

	s.Step(FrameInput{Delta: frame, Jump: true})
	assert.False(t, s.Body.IsGrounded)

	for i := 0; i < 120; i++ {
		s.Step(FrameInput{Delta: frame})
	}
	assert.True(t, s.Body.IsGrounded)
	assert.InDelta(t, 1.5, s.View.Position.Y(), 1e-3)
}
