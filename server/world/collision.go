// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
)

// CollisionEpsilon is the smallest penetration that counts as a collision.
const CollisionEpsilon = 0.001

// Contact is one ellipse vs line contact.
type Contact struct {
	// Point is where the contact is in world space.
	Point Vec2f `json:"point"`
	// Penetration is how far the ellipse must move along ResolveDirection to separate.
	Penetration float32 `json:"penetration"`
	// ResolveDirection is unit length and points from the surface toward the ellipse.
	ResolveDirection Vec2f `json:"resolveDirection"`
	// Normal is the surface normal or, for point collisions, ResolveDirection.
	Normal           Vec2f `json:"normal"`
	IsPointCollision bool  `json:"isPointCollision"`
}

// Ray is a segment cast from Start to End.
type Ray struct {
	Start Vec2f
	End   Vec2f
}

func (ray Ray) Length() float32 {
	return ray.Start.Distance(ray.End)
}

func (ray Ray) Bounds() AABB {
	return AABBFromPoints(ray.Start, ray.End)
}

// At returns the point a fraction t of the way along the ray.
func (ray Ray) At(t float32) Vec2f {
	return ray.Start.Lerp(ray.End, t)
}

// IntersectSegments finds the crossing of segments a and b.
// ta and tb are the fractions along each segment. Parallel segments never intersect.
func IntersectSegments(a0, a1, b0, b1 Vec2f) (ta, tb float32, ok bool) {
	r := a1.Sub(a0)
	s := b1.Sub(b0)
	denominator := r.Cross(s)
	if math32.Abs(denominator) < NormEpsilon {
		return
	}

	q := b0.Sub(a0)
	ta = q.Cross(s) / denominator
	tb = q.Cross(r) / denominator
	ok = ta >= 0 && ta <= 1 && tb >= 0 && tb <= 1
	return
}

// IntersectRay returns where ray crosses line and how far along the ray that is.
func (line *Line) IntersectRay(ray Ray) (point Vec2f, distance float32, ok bool) {
	t, _, hit := IntersectSegments(ray.Start, ray.End, line.Start, line.End)
	if !hit {
		return
	}
	return ray.At(t), t * ray.Length(), true
}
