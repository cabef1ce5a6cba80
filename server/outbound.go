// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/glide/server/world"
	"sync"
)

type (
	// Burst is a particle effect triggered during a frame.
	Burst struct {
		Position  world.Vec2f `json:"position"`
		Direction world.Vec2f `json:"direction"`
		Count     int         `json:"count"`
	}

	// CharacterView is what observers see of a character.Character.
	CharacterView struct {
		ObjectID    world.ObjectID `json:"id"`
		Position    world.Vec2f    `json:"position"`
		HalfExtents world.Vec2f    `json:"halfExtents"`
		Rotation    world.Angle    `json:"rotation"`
		Health      float32        `json:"health"`
		Alpha       float32        `json:"alpha,omitempty"`
		Grounded    bool           `json:"grounded,omitempty"`
		Spawning    world.Ticks    `json:"spawning,omitempty"`
	}

	// ProjectileView is what observers see of a projectile.Projectile.
	ProjectileView struct {
		ObjectID    world.ObjectID `json:"id"`
		Position    world.Vec2f    `json:"position"`
		HalfExtents world.Vec2f    `json:"halfExtents"`
		Rotation    world.Angle    `json:"rotation"`
	}

	// Snapshot is the state of the level after a frame.
	Snapshot struct {
		Characters  []CharacterView  `json:"characters,omitempty"`
		Projectiles []ProjectileView `json:"projectiles,omitempty"`
		Bursts      []Burst          `json:"bursts,omitempty"`

		// Put smaller fields here for packing
		Frame       uint32         `json:"frame"`
		CharacterID world.ObjectID `json:"characterID,omitempty"` // controlled by the recipient
	}
)

func init() {
	registerOutbound(
		&Snapshot{},
	)
}

const poolViewsCap = 32

var snapshotPool = sync.Pool{
	New: func() interface{} {
		return &Snapshot{
			Characters:  make([]CharacterView, 0, poolViewsCap),
			Projectiles: make([]ProjectileView, 0, poolViewsCap),
		}
	},
}

func NewSnapshot() *Snapshot {
	return snapshotPool.Get().(*Snapshot)
}

// Pool Uses pointers for reuse in pool
func (snapshot *Snapshot) Pool() {
	// Views hold no pointers so truncating is enough
	*snapshot = Snapshot{
		Characters:  snapshot.Characters[:0],
		Projectiles: snapshot.Projectiles[:0],
		Bursts:      snapshot.Bursts[:0],
	}
	snapshotPool.Put(snapshot)
}
