// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/glide/server/character"
	"github.com/SoftbearStudios/glide/server/projectile"
	"github.com/SoftbearStudios/glide/server/world"
)

var (
	characterHalfExtents  = world.Vec2f{X: 16, Y: 32}
	projectileHalfExtents = world.Vec2f{X: 6, Y: 3}
	meleeHalfExtents      = world.Vec2f{X: 12, Y: 16}
)

const (
	meleeDamage      = 0.25
	projectileDamage = 0.2
)

// Spawn adds a character at position.
func (h *Hub) Spawn(position world.Vec2f) world.ObjectID {
	return h.level.Add(character.New(position, characterHalfExtents, h.tuning, h))
}

// Fire launches a projectile from the edge of c that can't hit c.
func (h *Hub) Fire(c *character.Character, velocity world.Vec2f) world.ObjectID {
	direction, ok := velocity.NormOk()
	if !ok {
		return world.ObjectIDInvalid
	}
	position := c.Position.AddScaled(direction, c.HalfExtents.X+projectileHalfExtents.X)
	p := projectile.New(position, velocity, projectileHalfExtents, c, h)
	p.Damage = projectileDamage
	return h.level.Add(p)
}

// Attack melees in direction and returns the number hit.
func (h *Hub) Attack(c *character.Character, direction world.Vec2f) int {
	offset := direction.Mul(c.HalfExtents.X + meleeHalfExtents.X)
	return c.Melee(h.level, offset, meleeHalfExtents, meleeDamage)
}

// Character returns the live character with objectID or nil.
func (h *Hub) Character(objectID world.ObjectID) *character.Character {
	if objectID == world.ObjectIDInvalid {
		return nil
	}
	c, _ := h.level.Object(objectID).(*character.Character)
	return c
}

// spawnPoint cycles through the spawns.
func (h *Hub) spawnPoint() world.Vec2f {
	position := h.spawns[h.nextSpawn%len(h.spawns)]
	h.nextSpawn++
	return position
}
