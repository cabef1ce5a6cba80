// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
)

// Ellipse is the collision volume of a dynamic object.
type Ellipse struct {
	Position    Vec2f `json:"position"`
	HalfExtents Vec2f `json:"halfExtents"`
	Rotation    Angle `json:"rotation"` // counterclockwise
}

// Valid is false for degenerate ellipses, which never collide.
func (ellipse *Ellipse) Valid() bool {
	return ellipse.HalfExtents.X > 0 && ellipse.HalfExtents.Y > 0
}

// Bounds returns the world space AABB of the rotated ellipse.
func (ellipse *Ellipse) Bounds() AABB {
	sin, cos := math32.Sincos(float32(ellipse.Rotation))
	return AABBFromCenter(ellipse.Position, ellipseExtents(ellipse.HalfExtents, sin, cos))
}

// Support returns how far the ellipse extends from its center along direction, which must be unit length.
func (ellipse *Ellipse) Support(direction Vec2f) float32 {
	sin, cos := math32.Sincos(float32(ellipse.Rotation))
	return ellipseSupport(ellipse.HalfExtents, sin, cos, direction)
}

func ellipseExtents(halfExtents Vec2f, sin, cos float32) Vec2f {
	return Vec2f{
		X: math32.Hypot(halfExtents.X*cos, halfExtents.Y*sin),
		Y: math32.Hypot(halfExtents.X*sin, halfExtents.Y*cos),
	}
}

func ellipseSupport(halfExtents Vec2f, sin, cos float32, direction Vec2f) float32 {
	// Direction in the ellipse's unrotated frame
	u := direction.X*cos + direction.Y*sin
	v := -direction.X*sin + direction.Y*cos
	return math32.Hypot(halfExtents.X*u, halfExtents.Y*v)
}
