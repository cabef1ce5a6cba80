// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/glide/server/world"
	"github.com/chewxy/math32"
)

const (
	// maxMoveSpeed is the fastest a client may walk per frame
	maxMoveSpeed = 8
	// maxFireSpeed is the fastest a client may fire per second
	maxFireSpeed = 3000
)

type (
	// Spawn asks for a character to control. Ignored while the client's character is alive.
	Spawn struct{}

	// Move sets the client's character's controlled velocity.
	Move struct {
		Velocity world.Vec2f `json:"velocity"`
	}

	// Jump jumps the client's character if it's on a surface.
	Jump struct{}

	// Fire launches a projectile from the client's character.
	Fire struct {
		Velocity world.Vec2f `json:"velocity"`
	}

	// Attack melees in front of the client's character.
	Attack struct {
		Direction world.Vec2f `json:"direction"`
	}
)

func init() {
	registerInbound(
		Spawn{},
		Move{},
		Jump{},
		Fire{},
		Attack{},
	)
}

func (data Spawn) Inbound(h *Hub, client Client) {
	if h.Character(client.Data().CharacterID) != nil {
		return
	}
	client.Data().CharacterID = h.Spawn(h.spawnPoint())
}

func (data Move) Inbound(h *Hub, client Client) {
	c := h.Character(client.Data().CharacterID)
	if c == nil || !validVec2f(data.Velocity) {
		return
	}
	c.Move(data.Velocity.Mul(min(1, maxMoveSpeed/max(data.Velocity.Length(), 1e-6))))
}

func (data Jump) Inbound(h *Hub, client Client) {
	if c := h.Character(client.Data().CharacterID); c != nil {
		c.Jump()
	}
}

func (data Fire) Inbound(h *Hub, client Client) {
	c := h.Character(client.Data().CharacterID)
	if c == nil || c.Spawning() || !validVec2f(data.Velocity) {
		return
	}
	velocity := data.Velocity.Mul(min(1, maxFireSpeed/max(data.Velocity.Length(), 1e-6)))
	h.Fire(c, velocity)
}

func (data Attack) Inbound(h *Hub, client Client) {
	c := h.Character(client.Data().CharacterID)
	if c == nil || c.Spawning() || !validVec2f(data.Direction) {
		return
	}
	direction, ok := data.Direction.NormOk()
	if !ok {
		return
	}
	h.Attack(c, direction)
}

func validVec2f(vec world.Vec2f) bool {
	return !math32.IsNaN(vec.X) && !math32.IsNaN(vec.Y) && !math32.IsInf(vec.X, 0) && !math32.IsInf(vec.Y, 0)
}
