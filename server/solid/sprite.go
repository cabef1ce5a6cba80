// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package solid

import (
	"fmt"
	"github.com/SoftbearStudios/glide/server/world"
)

// Sprite is a static solid made of lines in world space.
type Sprite struct {
	Name       string
	lines      []world.Line
	lineBounds []world.AABB
	bounds     world.AABB
}

// NewSprite creates a Sprite from lines that are already scaled, pruned and translated.
func NewSprite(name string, lines []world.Line) *Sprite {
	sprite := &Sprite{
		Name:       name,
		lines:      lines,
		lineBounds: make([]world.AABB, len(lines)),
	}
	for i := range lines {
		sprite.lineBounds[i] = lines[i].Bounds()
		if i == 0 {
			sprite.bounds = sprite.lineBounds[i]
		} else {
			sprite.bounds = sprite.bounds.Union(sprite.lineBounds[i])
		}
	}
	return sprite
}

// Bounds implements world.Bounded.
func (sprite *Sprite) Bounds() world.AABB {
	return sprite.bounds
}

// Lines Cannot modify the returned lines.
func (sprite *Sprite) Lines() []world.Line {
	return sprite.lines
}

func (sprite *Sprite) CollisionQuery(cache *world.CollisionCache, results *world.CollisionResults) {
	if len(sprite.lines) == 0 || !cache.Intersects(sprite.bounds) {
		return
	}
	for i := range sprite.lines {
		if !cache.Intersects(sprite.lineBounds[i]) {
			continue
		}
		if contact, ok := cache.FastCollide(&sprite.lines[i]); ok && !results.Add(contact) {
			return
		}
	}
}

func (sprite *Sprite) OverlapQuery(box world.AABB) (world.AABB, bool) {
	if len(sprite.lines) == 0 {
		return world.AABB{}, false
	}
	return sprite.bounds.Intersection(box)
}

func (sprite *Sprite) IntersectQuery(ray world.Ray, results *world.IntersectResults) {
	rayBounds := ray.Bounds()
	if len(sprite.lines) == 0 || !rayBounds.Intersects(sprite.bounds) {
		return
	}
	for i := range sprite.lines {
		line := &sprite.lines[i]
		if !rayBounds.Intersects(sprite.lineBounds[i]) {
			continue
		}
		if point, distance, ok := line.IntersectRay(ray); ok && !results.Add(point, line.Normal, distance) {
			return
		}
	}
}

func (sprite *Sprite) String() string {
	return fmt.Sprintf("sprite %q: %d lines", sprite.Name, len(sprite.lines))
}
