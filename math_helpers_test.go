package gungale

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestSmoothFactorClamps(t *testing.T) {
	assert.InDelta(t, 0.25, smoothFactor(15, 1.0/60.0), 1e-7)
	assert.Equal(t, float32(1), smoothFactor(15, 1))
	assert.Equal(t, float32(0), smoothFactor(15, -1))
}

func TestRotateAxisAngle(t *testing.T) {
	v := rotateAxisAngle(worldForward, worldUp, math.Pi/2)
	assert.InDelta(t, -1, v.X(), 1e-6)
	assert.InDelta(t, 0, v.Y(), 1e-6)
	assert.InDelta(t, 0, v.Z(), 1e-6)

	assert.Equal(t, worldForward, rotateAxisAngle(worldForward, mgl32.Vec3{}, 1))
}

func TestVecAngle(t *testing.T) {
	assert.InDelta(t, math.Pi/2, vecAngle(worldUp, worldForward), 1e-6)
	assert.InDelta(t, math.Pi, vecAngle(worldUp, worldUp.Mul(-1)), 1e-6)
	assert.Equal(t, float32(0), vecAngle(worldUp, mgl32.Vec3{}))
}

func TestHorizontalSpeed(t *testing.T) {
	assert.Equal(t, float32(5), HorizontalSpeed(mgl32.Vec3{3, -40, 4}))
}
