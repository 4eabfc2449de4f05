package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera orbits a target point and builds the view and projection matrices
type Camera struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	Target   mgl32.Vec3
	Yaw      float32 // degrees around +Y
	Pitch    float32 // degrees above the horizon
	Distance float32
}

func NewCamera(width, height int) *Camera {
	c := &Camera{
		FOV:       60.0,
		NearPlane: 0.1,
		FarPlane:  1000.0,
		Yaw:       45,
		Pitch:     35,
		Distance:  60,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio. Zero sizes (minimised windows) are ignored.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

// Orbit rotates the camera by the given angles in degrees; pitch stays within
// (-89, 89) so the up vector never flips.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw = float32(math.Mod(float64(c.Yaw+dYaw), 360))
	c.Pitch = mgl32.Clamp(c.Pitch+dPitch, -89, 89)
}

// Zoom scales the orbit distance.
func (c *Camera) Zoom(factor float32) {
	c.Distance = mgl32.Clamp(c.Distance*factor, 2, c.FarPlane/2)
}

// Eye returns the camera position.
func (c *Camera) Eye() mgl32.Vec3 {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	dir := mgl32.Vec3{
		float32(math.Cos(float64(pitch)) * math.Cos(float64(yaw))),
		float32(math.Sin(float64(pitch))),
		float32(math.Cos(float64(pitch)) * math.Sin(float64(yaw))),
	}
	return c.Target.Add(dir.Mul(c.Distance))
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, mgl32.Vec3{0, 1, 0})
}
