// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package character

import (
	"github.com/SoftbearStudios/glide/server/world"
)

// ProbeGround casts a ray from the center to distance below the feet.
// The result is the nearest crossing, or invalid if the ground is further.
func (c *Character) ProbeGround(level world.Level, distance float32) world.IntersectQueryResult {
	return c.Probe(level, world.Vec2f{}, distance)
}

// Probe is ProbeGround from a point offset from the center, such as in front of the character.
func (c *Character) Probe(level world.Level, offset world.Vec2f, distance float32) world.IntersectQueryResult {
	start := c.Position.Add(offset)
	end := start.AddScaled(world.Up, -(c.HalfExtents.Y + distance))
	return nearest(level.Intersect(start, end, c))
}

// Melee damages every Damageable overlapping a box centered offset from the character.
// Returns how many were hit.
func (c *Character) Melee(level world.Level, offset, halfExtents world.Vec2f, damage float32) int {
	hits := 0
	for _, result := range level.Overlap(c.Position.Add(offset), halfExtents, c) {
		if damageable, ok := result.Object.(world.Damageable); ok {
			damageable.Damage(damage)
			hits++
		}
	}
	return hits
}

// LineOfSight is true if nothing intersectable lies between from and to.
func LineOfSight(level world.Level, from, to world.Vec2f, exclude world.Object) bool {
	return len(level.Intersect(from, to, exclude)) == 0
}

func nearest(results []world.IntersectQueryResult) world.IntersectQueryResult {
	var best world.IntersectQueryResult
	for _, result := range results {
		if !best.Valid || result.Distance < best.Distance {
			best = result
		}
	}
	return best
}
