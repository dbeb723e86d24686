// Package camera provides the free-flying viewer camera.
package camera

import (
	gomath "math"

	"github.com/skyfell/terrascape/internal/scene"
	"github.com/skyfell/terrascape/pkg/math"
)

// FlyCamera flies over the terrain with yaw/pitch angles in degrees and a
// world translation. The world is Z-up; pitch 0 looks straight down and -90
// looks at the horizon. The translation is applied after the rotations, so
// it lives in rotated world space, matching the stored scene records.
type FlyCamera struct {
	Yaw   float32 // degrees around Z
	Pitch float32 // degrees around X
	Pos   math.Vec3

	// MoveSpeed is world units per movement tick.
	MoveSpeed float32
	// DragSensitivity converts drag pixels to degrees.
	DragSensitivity float32
}

// NewFlyCamera creates a camera at the reset pose.
func NewFlyCamera() *FlyCamera {
	c := &FlyCamera{
		MoveSpeed:       15.0,
		DragSensitivity: 0.5,
	}
	c.Reset()
	return c
}

// Reset restores the default pose: level yaw, looking down at 60 degrees,
// half a height-range above the map center.
func (c *FlyCamera) Reset() {
	d := scene.Default()
	c.Yaw = d.CamYaw
	c.Pitch = d.CamPitch
	c.Pos = math.Vec3{X: d.CamPos[0], Y: d.CamPos[1], Z: d.CamPos[2]}
}

// Restore loads the pose from a scene record.
func (c *FlyCamera) Restore(r *scene.Record) {
	c.Yaw = r.CamYaw
	c.Pitch = r.CamPitch
	c.Pos = math.Vec3{X: r.CamPos[0], Y: r.CamPos[1], Z: r.CamPos[2]}
}

// Store writes the pose into a scene record.
func (c *FlyCamera) Store(r *scene.Record) {
	r.CamYaw = c.Yaw
	r.CamPitch = c.Pitch
	r.CamPos = [3]float32{c.Pos.X, c.Pos.Y, c.Pos.Z}
}

// HandleDrag turns the camera from mouse drag deltas.
func (c *FlyCamera) HandleDrag(dx, dy float32) {
	c.Yaw += dx * c.DragSensitivity
	c.Pitch += dy * c.DragSensitivity
}

// Move translates the camera: forward walks along the view direction,
// right strafes level. Inputs are -1, 0 or 1 per tick.
func (c *FlyCamera) Move(forward, right float32) {
	yaw := float64(c.Yaw) * gomath.Pi / 180
	pitch := float64(c.Pitch) * gomath.Pi / 180
	sinU, cosU := gomath.Sin(yaw), gomath.Cos(yaw)
	sinV, cosV := gomath.Sin(pitch), gomath.Cos(pitch)

	if forward != 0 {
		c.Pos.X += forward * c.MoveSpeed * float32(sinU*sinV)
		c.Pos.Y += forward * c.MoveSpeed * float32(cosU*sinV)
		c.Pos.Z += forward * c.MoveSpeed * float32(cosV)
	}
	if right != 0 {
		c.Pos.X -= right * c.MoveSpeed * float32(cosU)
		c.Pos.Y += right * c.MoveSpeed * float32(sinU)
	}
}

// Wrap folds the translation back into one map period, so flying off one
// edge of the toroidal terrain re-enters from the other and the map appears
// endless.
func (c *FlyCamera) Wrap(extent float32) {
	if extent <= 0 {
		return
	}
	for c.Pos.X > 0.5*extent {
		c.Pos.X -= extent
	}
	for c.Pos.X < -0.5*extent {
		c.Pos.X += extent
	}
	for c.Pos.Y > 0.5*extent {
		c.Pos.Y -= extent
	}
	for c.Pos.Y < -0.5*extent {
		c.Pos.Y += extent
	}
}

// ViewMatrix returns pitch and yaw rotations followed by the translation.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	rx := math.RotateX(math.Radians(c.Pitch))
	rz := math.RotateZ(math.Radians(c.Yaw))
	tr := math.Translate(c.Pos.X, c.Pos.Y, c.Pos.Z)
	return rx.Mul(rz).Mul(tr)
}
