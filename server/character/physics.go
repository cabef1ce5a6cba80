// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package character

import (
	"github.com/SoftbearStudios/glide/server/world"
	"github.com/chewxy/math32"
)

// Update steps the character one frame. The order of the stages matters.
// Returns true once the character should be removed from the level.
func (c *Character) Update(level world.Level) (remove bool) {
	t := c.tuning

	c.refreshBounds()
	c.Velocity.Y -= t.Gravity
	c.scanContacts(level, t)
	c.resistSurfaces(t)
	c.applyFriction(t)
	c.platformBoost(t)

	c.Position = c.Position.Add(c.Velocity)
	c.Position = c.Position.Add(c.MoveVelocity)

	c.orient(level, t)
	c.resolve(level, t, false)
	c.resolve(level, t, true)
	c.transferAirControl(t)

	c.MoveVelocity = c.MoveVelocity.Mul(t.MoveDeceleration)
	if c.MoveVelocity.Length() <= t.MoveDeadZone {
		c.MoveVelocity = world.Vec2f{}
	}

	c.advanceSpawn()
	return c.Health <= 0
}

// scanContacts finds the flattest and steepest surfaces the character is moving into
func (c *Character) scanContacts(level world.Level, t *Tuning) {
	c.FlattestSurface = world.CollisionQueryResult{}
	c.SteepestSurface = world.CollisionQueryResult{}
	c.scannedSize = 0

	margin := world.Vec2f{X: t.ContactMargin, Y: t.ContactMargin}
	results := level.Collide(c.Position, c.HalfExtents.Add(margin), c.collisionRotation(), c)
	velocity := c.Velocity.Add(c.MoveVelocity)

	for _, result := range results {
		approach := velocity.Dot(result.Normal)
		if c.scannedSize < len(c.scanned) {
			c.scanned[c.scannedSize] = scannedContact{Contact: result.Contact, approach: approach}
			c.scannedSize++
		}
		if approach > t.MoveIntoEpsilon {
			continue
		}
		if !c.FlattestSurface.Valid || result.Normal.Y > c.FlattestSurface.Normal.Y {
			c.FlattestSurface = result
		}
		if !c.SteepestSurface.Valid || result.Normal.Y < c.SteepestSurface.Normal.Y {
			c.SteepestSurface = result
		}
	}
}

// resistSurfaces stops both velocities from pushing into scanned contacts.
// Each is handled on its own, so only the one moving inward is repelled.
func (c *Character) resistSurfaces(t *Tuning) {
	for i := 0; i < c.scannedSize; i++ {
		resolve := c.scanned[i].ResolveDirection
		c.Velocity = resist(c.Velocity, resolve, t.RepulsionVelocity)
		c.MoveVelocity = resist(c.MoveVelocity, resolve, t.RepulsionVelocity)
	}
}

// resist removes the component of velocity against resolve and adds repulsion along it.
// Velocities already moving out are returned unchanged.
func resist(velocity, resolve world.Vec2f, repulsion float32) world.Vec2f {
	d := velocity.Dot(resolve)
	if d >= 0 {
		return velocity
	}
	return velocity.AddScaled(resolve, repulsion-d)
}

func (c *Character) applyFriction(t *Tuning) {
	flattest := &c.FlattestSurface
	if !flattest.Valid || flattest.IsPointCollision || flattest.Normal.Y <= t.NearVerticalNormalY {
		return
	}

	speed := c.Velocity.Length()
	if speed == 0 {
		return
	}
	reduced := speed - t.Friction*square(c.SteepestSurface.ResolveDirection.Y)
	if reduced <= t.StopSpeed {
		c.Velocity = world.Vec2f{}
		return
	}
	c.Velocity = c.Velocity.Mul(reduced / speed)
}

// platformBoost lifts the character off upward facing surfaces it's leaving or sunk into
func (c *Character) platformBoost(t *Tuning) {
	depth := t.PlatformBoostDepth * c.HalfExtents.Y
	best := -1
	for i := 0; i < c.scannedSize; i++ {
		contact := &c.scanned[i]
		if contact.Normal.Y <= 0 {
			continue
		}
		if contact.approach <= t.MoveIntoEpsilon && contact.Penetration <= depth {
			continue
		}
		if best == -1 || contact.Normal.Y > c.scanned[best].Normal.Y {
			best = i
		}
	}
	if best == -1 {
		return
	}
	if direction, ok := c.scanned[best].ResolveDirection.Add(world.Up).NormOk(); ok {
		c.Velocity = c.Velocity.AddScaled(direction, t.Gravity*t.PlatformBoost)
	}
}

// orient blends SurfaceRotation toward the surfaces around the character
func (c *Character) orient(level world.Level, t *Tuning) {
	c.JumpSurface = world.CollisionQueryResult{}

	margin := world.Vec2f{X: t.SurfaceSearchMargin, Y: t.SurfaceSearchMargin}
	results := level.Collide(c.Position, c.HalfExtents.Add(margin), c.collisionRotation(), c)
	if len(results) == 0 {
		c.SurfaceRotation = c.SurfaceRotation.Approach(0, world.Angle(t.AirStraightenStep))
		return
	}

	var sum float32
	n := 0
	for _, result := range results {
		resolve := result.ResolveDirection
		if resolve.Y <= t.OrientMinResolveY {
			continue
		}
		angle := surfaceAngle(resolve)
		sum += float32(angle - c.SurfaceRotation)
		n++
		if !c.JumpSurface.Valid || result.Normal.Y > c.JumpSurface.Normal.Y {
			c.JumpSurface = result
		}
	}
	if n == 0 {
		return
	}

	average := world.Angle(sum / float32(n))
	smooth := world.Angle(t.SurfaceOrientSmooth)
	c.SurfaceRotation = c.SurfaceRotation*smooth + (c.SurfaceRotation+average)*(1-smooth)
}

// surfaceAngle is the clockwise rotation that stands a character up along resolve
func surfaceAngle(resolve world.Vec2f) world.Angle {
	return world.Angle(math32.Pi/2 - math32.Acos(clamp(resolve.X, -1, 1)))
}

// resolve pushes the character out of one kind of contact at a time.
// Each push is followed by a fresh query, up to ResolveIterations.
func (c *Character) resolve(level world.Level, t *Tuning, points bool) {
	for i := 0; i < t.ResolveIterations; i++ {
		results := level.Collide(c.Position, c.HalfExtents, c.collisionRotation(), c)

		pushed := false
		for _, result := range results {
			if result.IsPointCollision != points {
				continue
			}
			c.Position = c.Position.AddScaled(result.ResolveDirection, result.Penetration)
			pushed = true
			break
		}
		if !pushed {
			return
		}
	}
}

// transferAirControl hands horizontal velocity to MoveVelocity while airborne
func (c *Character) transferAirControl(t *Tuning) {
	if c.FlattestSurface.Valid {
		return
	}
	transfer := c.Velocity.X * (1 - t.AirTransference)
	c.Velocity.X -= transfer
	c.MoveVelocity.X += transfer
}
