package gungale

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// FrameInput is everything the core reads from the host in one frame.
type FrameInput struct {
	Delta        float32 // seconds
	Strafe       int8
	Forward      int8
	Jump         bool // edge: released -> held this frame
	Crouch       bool
	PointerDelta mgl32.Vec2
}

// Session owns the player body and the look state for one run.
type Session struct {
	ID       uuid.UUID
	Frame    uint64
	Body     Body
	Look     LookState
	View     CameraView
	Movement MovementTuning
	Camera   CameraTuning
}

func NewSession(movement MovementTuning, camera CameraTuning) *Session {
	s := &Session{
		ID:       uuid.New(),
		Body:     NewBody(),
		Look:     NewLookState(&camera),
		Movement: movement,
		Camera:   camera,
	}
	anchor := s.Look.EyeAnchor(s.Body.Position, &s.Camera)
	s.View = CameraView{
		Position: anchor,
		Target:   anchor.Add(worldForward),
		Up:       worldUp,
		Fovy:     s.Look.Fov,
	}
	return s
}

// Step runs one frame: pointer look, locomotion, then the camera.
func (s *Session) Step(in FrameInput) CameraView {
	delta := in.Delta
	if delta <= 0 {
		delta = FallbackDelta
	}

	s.Look.ApplyPointer(in.PointerDelta, &s.Camera)

	UpdateBody(&s.Body, &s.Movement, BodyInput{
		Yaw:     s.Look.Rotation.X(),
		Strafe:  in.Strafe,
		Forward: in.Forward,
		Jump:    in.Jump,
		Crouch:  in.Crouch,
	}, delta)

	s.Look.Advance(&s.Camera, s.Body.IsGrounded, in.Crouch, in.Strafe, in.Forward, delta)
	s.View = s.Look.Orient(s.Look.EyeAnchor(s.Body.Position, &s.Camera), &s.Camera)
	s.Frame++
	return s.View
}

// Speed is the body's current horizontal speed.
func (s *Session) Speed() float32 {
	return HorizontalSpeed(s.Body.Velocity)
}
