package gungale

import (
	"github.com/go-gl/mathgl/mgl32"
)

// FallbackDelta replaces a zero or negative frame time.
const FallbackDelta float32 = 1.0 / 60.0

// directionSnap ends the exponential approach of Body.Direction once it is this close to the target.
const directionSnap float32 = 1e-6

// Body is the single controllable player. The floor is the plane y=0.
type Body struct {
	Position   mgl32.Vec3
	Velocity   mgl32.Vec3
	Direction  mgl32.Vec3 // smoothed intended movement direction, not unit length
	IsGrounded bool
}

func NewBody() Body {
	return Body{IsGrounded: true}
}

// Jump launches a grounded body. Returns false when airborne.
func (b *Body) Jump(force float32) bool {
	if !b.IsGrounded {
		return false
	}
	b.Velocity[1] = force
	b.IsGrounded = false
	return true
}

// MovementTuning holds the locomotion constants.
type MovementTuning struct {
	Gravity     float32 `toml:"gravity" yaml:"gravity"`
	MaxSpeed    float32 `toml:"max_speed" yaml:"max_speed"`
	CrouchSpeed float32 `toml:"crouch_speed" yaml:"crouch_speed"`
	JumpForce   float32 `toml:"jump_force" yaml:"jump_force"`
	MaxAccel    float32 `toml:"max_accel" yaml:"max_accel"`
	Friction    float32 `toml:"friction" yaml:"friction"`
	AirDrag     float32 `toml:"air_drag" yaml:"air_drag"`
	Control     float32 `toml:"control" yaml:"control"`
}

func DefaultMovementTuning() MovementTuning {
	return MovementTuning{
		Gravity:     32.0,
		MaxSpeed:    20.0,
		CrouchSpeed: 5.0,
		JumpForce:   12.0,
		MaxAccel:    150.0,
		Friction:    0.86,
		AirDrag:     0.98,
		Control:     15.0,
	}
}

// BodyInput is one frame of movement intent.
type BodyInput struct {
	Yaw     float32 // radians
	Strafe  int8    // -1 left, +1 right
	Forward int8    // -1 back, +1 forward
	Jump    bool    // pressed this frame
	Crouch  bool    // held
}

// UpdateBody advances the body by one frame.
func UpdateBody(body *Body, t *MovementTuning, in BodyInput, delta float32) {
	if delta <= 0 {
		delta = FallbackDelta
	}

	// 1. Gravity
	if !body.IsGrounded {
		body.Velocity[1] -= t.Gravity * delta
	}

	// 2. Jump
	if in.Jump {
		body.Jump(t.JumpForce)
	}

	// 3. Basis from yaw
	front := mgl32.Vec3{sin32(in.Yaw), 0, cos32(in.Yaw)}
	right := mgl32.Vec3{cos32(-in.Yaw), 0, sin32(-in.Yaw)}

	// 4. Smoothed direction. The forward axis is negated: the camera looks down -Z at yaw 0.
	side, back := float32(in.Strafe), -float32(in.Forward)
	desired := mgl32.Vec3{
		side*right.X() + back*front.X(),
		0,
		side*right.Z() + back*front.Z(),
	}
	body.Direction = lerpVec3(body.Direction, desired, smoothFactor(t.Control, delta))
	if body.Direction.Sub(desired).Len() < directionSnap {
		body.Direction = desired
	}

	// 5. Friction or drag, with creep cut-off
	decel := t.AirDrag
	if body.IsGrounded {
		decel = t.Friction
	}
	hvel := mgl32.Vec3{body.Velocity.X() * decel, 0, body.Velocity.Z() * decel}
	if hvel.Len() < t.MaxSpeed*0.01 {
		hvel = mgl32.Vec3{}
	}

	// 6. Accelerate along the direction, never past the target speed
	speed := hvel.Dot(body.Direction)
	maxSpeed := t.MaxSpeed
	if in.Crouch {
		maxSpeed = t.CrouchSpeed
	}
	accel := mgl32.Clamp(maxSpeed-speed, 0, t.MaxAccel*delta)
	hvel = hvel.Add(body.Direction.Mul(accel))

	body.Velocity[0] = hvel.X()
	body.Velocity[2] = hvel.Z()

	// 7. Integrate
	body.Position = body.Position.Add(body.Velocity.Mul(delta))

	// 8. Floor
	if body.Position.Y() <= 0 {
		body.Position[1] = 0
		body.Velocity[1] = 0
		body.IsGrounded = true
	}
}
