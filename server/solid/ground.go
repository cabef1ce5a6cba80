// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package solid

import (
	"github.com/SoftbearStudios/glide/server/world"
)

// Ground is an infinite flat solid below Height.
// It has no bounds so it's visited by every query.
type Ground struct {
	Height float32
}

func (ground *Ground) CollisionQuery(cache *world.CollisionCache, results *world.CollisionResults) {
	bounds := cache.Bounds()
	if bounds.Y > ground.Height {
		return
	}

	position := cache.Position()
	if position.Y < ground.Height {
		// Below the surface so there is no nearest edge, push up out of the half space
		penetration := cache.Support(world.Up) + ground.Height - position.Y
		results.Add(world.Contact{
			Point:            world.Vec2f{X: position.X, Y: ground.Height},
			Penetration:      penetration,
			ResolveDirection: world.Up,
			Normal:           world.Up,
		})
		return
	}

	// A segment spanning the bounds can't have its endpoints touched
	line := world.Line{
		Start:     world.Vec2f{X: bounds.X - 1, Y: ground.Height},
		End:       world.Vec2f{X: bounds.X + bounds.Width + 1, Y: ground.Height},
		Normal:    world.Up,
		Direction: world.Vec2f{X: 1},
	}
	if contact, ok := cache.FastCollide(&line); ok {
		results.Add(contact)
	}
}

func (ground *Ground) OverlapQuery(box world.AABB) (world.AABB, bool) {
	top := min(box.Y+box.Height, ground.Height)
	if top <= box.Y || box.Width <= 0 {
		return world.AABB{}, false
	}
	box.Height = top - box.Y
	return box, true
}

func (ground *Ground) IntersectQuery(ray world.Ray, results *world.IntersectResults) {
	startHeight := ray.Start.Y - ground.Height
	endHeight := ray.End.Y - ground.Height
	if startHeight*endHeight > 0 || startHeight == endHeight {
		return
	}
	t := startHeight / (startHeight - endHeight)
	results.Add(ray.At(t), world.Up, t*ray.Length())
}
