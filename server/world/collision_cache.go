// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
)

// CollisionCache maps world space into the space of one query ellipse,
// translated to the origin, unrotated and with Y scaled so the ellipse is a circle of Radius.
// It is only valid until the next Reset.
type CollisionCache struct {
	position    Vec2f
	halfExtents Vec2f
	rotation    Angle
	sin, cos    float32
	scale       float32 // rx / ry
	radius      float32
	bounds      AABB
}

// Reset recomputes the cache for a new ellipse.
// Returns false for degenerate extents, in which case the cache must not be used.
func (cache *CollisionCache) Reset(position, halfExtents Vec2f, rotation Angle) bool {
	if !(halfExtents.X > 0 && halfExtents.Y > 0) {
		*cache = CollisionCache{}
		return false
	}
	sin, cos := math32.Sincos(float32(rotation))
	*cache = CollisionCache{
		position:    position,
		halfExtents: halfExtents,
		rotation:    rotation,
		sin:         sin,
		cos:         cos,
		scale:       halfExtents.X / halfExtents.Y,
		radius:      halfExtents.X,
		bounds:      AABBFromCenter(position, ellipseExtents(halfExtents, sin, cos)),
	}
	return true
}

func (cache *CollisionCache) Position() Vec2f {
	return cache.position
}

func (cache *CollisionCache) HalfExtents() Vec2f {
	return cache.halfExtents
}

func (cache *CollisionCache) Rotation() Angle {
	return cache.rotation
}

// Radius of the ellipse in local space.
func (cache *CollisionCache) Radius() float32 {
	return cache.radius
}

// Bounds is the world space AABB of the ellipse.
// Shapes must reject on it before doing exact math.
func (cache *CollisionCache) Bounds() AABB {
	return cache.bounds
}

// Intersects is the broad phase test against a shape's bounds.
func (cache *CollisionCache) Intersects(bounds AABB) bool {
	return cache.bounds.Intersects(bounds)
}

// Support returns how far the ellipse extends from its center along a unit world direction.
func (cache *CollisionCache) Support(direction Vec2f) float32 {
	return ellipseSupport(cache.halfExtents, cache.sin, cache.cos, direction)
}

// ToLocal maps a world point into local space.
func (cache *CollisionCache) ToLocal(point Vec2f) Vec2f {
	d := point.Sub(cache.position)
	return Vec2f{
		X: d.X*cache.cos + d.Y*cache.sin,
		Y: (-d.X*cache.sin + d.Y*cache.cos) * cache.scale,
	}
}

// ToWorld maps a local point back into world space.
func (cache *CollisionCache) ToWorld(point Vec2f) Vec2f {
	return cache.vectorToWorld(point).Add(cache.position)
}

func (cache *CollisionCache) vectorToWorld(vec Vec2f) Vec2f {
	vec.Y /= cache.scale
	return vec.Rotate(cache.sin, cache.cos)
}

// FastCollide tests the ellipse against one line.
// The closest point on the line to the ellipse center decides the kind of contact:
// strictly inside the segment is planar, otherwise it's a point contact on a collideable endpoint.
func (cache *CollisionCache) FastCollide(line *Line) (contact Contact, ok bool) {
	a := cache.ToLocal(line.Start)
	b := cache.ToLocal(line.End)
	ab := b.Sub(a)
	length2 := ab.LengthSquared()
	if length2 < NormEpsilon*NormEpsilon {
		return
	}

	t := -a.Dot(ab) / length2
	if t > 0 && t < 1 {
		closest := a.AddScaled(ab, t)
		if closest.LengthSquared() >= cache.radius*cache.radius {
			return
		}

		distance := line.SignedDistance(cache.position)
		resolve := line.Normal
		if distance < 0 {
			resolve = resolve.Rot180()
			distance = -distance
		}
		penetration := cache.Support(resolve) - distance
		if penetration < CollisionEpsilon {
			return
		}

		return Contact{
			Point:            cache.ToWorld(closest),
			Penetration:      penetration,
			ResolveDirection: resolve,
			Normal:           line.Normal,
		}, true
	}

	endpoint := a
	collideable := line.StartCollideable
	if t >= 1 {
		endpoint = b
		collideable = line.EndCollideable
	}
	if !collideable {
		return
	}

	d := endpoint.Length()
	if d >= cache.radius || d < NormEpsilon {
		return
	}

	// Separation from the endpoint toward the center, mapped back to world space
	separation := cache.vectorToWorld(endpoint.Mul(-(cache.radius - d) / d))
	penetration := separation.Length()
	if penetration < CollisionEpsilon {
		return
	}

	resolve := separation.Div(penetration)
	return Contact{
		Point:            cache.ToWorld(endpoint),
		Penetration:      penetration,
		ResolveDirection: resolve,
		Normal:           resolve,
		IsPointCollision: true,
	}, true
}
