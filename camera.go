package gungale

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraTuning holds the head, bob, lean and field-of-view constants.
type CameraTuning struct {
	StandHeight       float32    `toml:"stand_height" yaml:"stand_height"`
	CrouchHeight      float32    `toml:"crouch_height" yaml:"crouch_height"`
	EyeBase           float32    `toml:"eye_base" yaml:"eye_base"`
	HeadRate          float32    `toml:"head_rate" yaml:"head_rate"`
	WalkRate          float32    `toml:"walk_rate" yaml:"walk_rate"`
	FovRate           float32    `toml:"fov_rate" yaml:"fov_rate"`
	WalkFov           float32    `toml:"walk_fov" yaml:"walk_fov"`
	IdleFov           float32    `toml:"idle_fov" yaml:"idle_fov"`
	HeadTimerRate     float32    `toml:"head_timer_rate" yaml:"head_timer_rate"`
	LeanRate          float32    `toml:"lean_rate" yaml:"lean_rate"`
	LeanSide          float32    `toml:"lean_side" yaml:"lean_side"`
	LeanForward       float32    `toml:"lean_forward" yaml:"lean_forward"`
	StepRotation      float32    `toml:"step_rotation" yaml:"step_rotation"`
	BobSide           float32    `toml:"bob_side" yaml:"bob_side"`
	BobUp             float32    `toml:"bob_up" yaml:"bob_up"`
	PitchMargin       float32    `toml:"pitch_margin" yaml:"pitch_margin"`
	PitchLimitEpsilon float32    `toml:"pitch_limit_epsilon" yaml:"pitch_limit_epsilon"`
	Sensitivity       [2]float32 `toml:"sensitivity" yaml:"sensitivity"`
}

func DefaultCameraTuning() CameraTuning {
	return CameraTuning{
		StandHeight:       1.0,
		CrouchHeight:      0.0,
		EyeBase:           0.5,
		HeadRate:          20.0,
		WalkRate:          10.0,
		FovRate:           5.0,
		WalkFov:           55.0,
		IdleFov:           60.0,
		HeadTimerRate:     3.0,
		LeanRate:          10.0,
		LeanSide:          0.02,
		LeanForward:       0.015,
		StepRotation:      0.01,
		BobSide:           0.1,
		BobUp:             0.15,
		PitchMargin:       0.001,
		PitchLimitEpsilon: 0.0001,
		Sensitivity:       [2]float32{0.001, 0.001},
	}
}

// LookState is the smoothed first-person view state.
type LookState struct {
	Rotation  mgl32.Vec2 // x = yaw, y = pitch, radians
	HeadTimer float32
	WalkLerp  float32
	HeadLerp  float32
	Lean      mgl32.Vec2
	Fov       float32 // degrees
}

func NewLookState(t *CameraTuning) LookState {
	return LookState{
		HeadLerp: t.StandHeight,
		Fov:      t.IdleFov,
	}
}

// CameraView is what presentation needs to build view and projection transforms.
type CameraView struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	Fovy     float32 // degrees
}

// ApplyPointer accumulates a raw pointer delta. Yaw is unbounded; pitch is clamped in Orient.
func (l *LookState) ApplyPointer(delta mgl32.Vec2, t *CameraTuning) {
	l.Rotation[0] -= delta.X() * t.Sensitivity[0]
	l.Rotation[1] += delta.Y() * t.Sensitivity[1]
}

// Advance moves the head, walk, fov and lean interpolants one frame toward their targets.
func (l *LookState) Advance(t *CameraTuning, grounded, crouch bool, strafe, forward int8, delta float32) {
	if delta <= 0 {
		delta = FallbackDelta
	}

	height := t.StandHeight
	if crouch {
		height = t.CrouchHeight
	}
	l.HeadLerp = lerp(l.HeadLerp, height, smoothFactor(t.HeadRate, delta))

	if grounded && (forward != 0 || strafe != 0) {
		l.HeadTimer += delta * t.HeadTimerRate
		l.WalkLerp = lerp(l.WalkLerp, 1, smoothFactor(t.WalkRate, delta))
		l.Fov = lerp(l.Fov, t.WalkFov, smoothFactor(t.FovRate, delta))
	} else {
		l.WalkLerp = lerp(l.WalkLerp, 0, smoothFactor(t.WalkRate, delta))
		l.Fov = lerp(l.Fov, t.IdleFov, smoothFactor(t.FovRate, delta))
	}

	l.Lean[0] = lerp(l.Lean[0], float32(strafe)*t.LeanSide, smoothFactor(t.LeanRate, delta))
	l.Lean[1] = lerp(l.Lean[1], float32(forward)*t.LeanForward, smoothFactor(t.LeanRate, delta))
}

// EyeAnchor is the un-bobbed eye position above the body's feet.
func (l *LookState) EyeAnchor(feet mgl32.Vec3, t *CameraTuning) mgl32.Vec3 {
	return mgl32.Vec3{feet.X(), feet.Y() + t.EyeBase + l.HeadLerp, feet.Z()}
}

// Orient derives the final view from the anchor. It clamps Rotation.y so the view
// never lines up with the world up axis.
func (l *LookState) Orient(anchor mgl32.Vec3, t *CameraTuning) CameraView {
	yaw := rotateAxisAngle(worldForward, worldUp, l.Rotation.X())

	maxAngleUp := vecAngle(worldUp, yaw) - t.PitchMargin
	if -l.Rotation.Y() > maxAngleUp {
		l.Rotation[1] = -maxAngleUp
	}
	maxAngleDown := -vecAngle(worldUp.Mul(-1), yaw) + t.PitchMargin
	if -l.Rotation.Y() < maxAngleDown {
		l.Rotation[1] = -maxAngleDown
	}

	right := yaw.Cross(worldUp).Normalize()

	limit := float32(math.Pi/2) - t.PitchLimitEpsilon
	pitchAngle := mgl32.Clamp(-l.Rotation.Y()-l.Lean.Y(), -limit, limit)
	look := rotateAxisAngle(yaw, right, pitchAngle)

	headSin := sin32(l.HeadTimer * math.Pi)
	headCos := cos32(l.HeadTimer * math.Pi)
	up := rotateAxisAngle(worldUp, look, headSin*t.StepRotation+l.Lean.X())

	bob := right.Mul(headSin * t.BobSide)
	bob[1] = float32(math.Abs(float64(headCos * t.BobUp)))

	eye := anchor.Add(bob.Mul(l.WalkLerp))
	return CameraView{
		Position: eye,
		Target:   eye.Add(look),
		Up:       up,
		Fovy:     l.Fov,
	}
}

// LookDirection is the unit vector from eye to target.
func (v CameraView) LookDirection() mgl32.Vec3 {
	return v.Target.Sub(v.Position).Normalize()
}

const (
	nearPlane float32 = 0.1
	farPlane  float32 = 2000.0
)

// ViewProjection builds the combined projection*view matrix for the given aspect ratio.
func ViewProjection(v CameraView, aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	proj := mgl32.Perspective(mgl32.DegToRad(v.Fovy), aspect, nearPlane, farPlane)
	view := mgl32.LookAtV(v.Position, v.Target, v.Up)
	return proj.Mul4(view)
}
