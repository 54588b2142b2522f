package gungale

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	worldUp      = mgl32.Vec3{0, 1, 0}
	worldForward = mgl32.Vec3{0, 0, -1}
)

// smoothFactor is the per-frame blend fraction of an exponential approach with the given rate.
func smoothFactor(rate, delta float32) float32 {
	return mgl32.Clamp(rate*delta, 0, 1)
}

func lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// rotateAxisAngle rotates v around axis (normalized here) by angle radians, right-handed.
func rotateAxisAngle(v, axis mgl32.Vec3, angle float32) mgl32.Vec3 {
	if axis.Len() == 0 {
		return v
	}
	return mgl32.HomogRotate3D(angle, axis.Normalize()).Mul4x1(v.Vec4(1)).Vec3()
}

// vecAngle returns the unsigned angle between a and b, 0 for degenerate input.
func vecAngle(a, b mgl32.Vec3) float32 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	d := mgl32.Clamp(a.Dot(b)/(la*lb), -1, 1)
	return float32(math.Acos(float64(d)))
}

func sin32(x float32) float32 { return float32(math.Sin(float64(x))) }
func cos32(x float32) float32 { return float32(math.Cos(float64(x))) }

func horizontal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X(), 0, v.Z()}
}

// HorizontalSpeed is the length of v projected onto the floor plane.
func HorizontalSpeed(v mgl32.Vec3) float32 {
	return horizontal(v).Len()
}
