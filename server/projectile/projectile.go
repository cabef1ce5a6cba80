// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package projectile

import (
	"github.com/SoftbearStudios/glide/server/world"
	"github.com/chewxy/math32"
)

const (
	// MaxSubsteps caps the collision queries per Step
	MaxSubsteps = 8
	// substepFraction of the smallest half extent is the furthest a sub-step moves
	substepFraction = 0.8
	// MoveIntoEpsilon is how far from moving into a contact still counts as a hit
	MoveIntoEpsilon = 0.01
	// BurstCount is the number of particles emitted on impact
	BurstCount = 8
)

// Projectile is a small ellipse that flies in a straight line until it hits something.
type Projectile struct {
	Position    world.Vec2f   `json:"position"`
	Velocity    world.Vec2f   `json:"velocity"` // per second
	HalfExtents world.Vec2f   `json:"halfExtents"`
	Owner       world.Object  `json:"-"` // never hit
	Effects     world.Effects `json:"-"`
	Damage      float32       `json:"-"` // dealt to the first Damageable overlapped, if positive
	destroyed   bool
}

func New(position, velocity, halfExtents world.Vec2f, owner world.Object, effects world.Effects) *Projectile {
	if effects == nil {
		effects = world.NoEffects{}
	}
	return &Projectile{
		Position:    position,
		Velocity:    velocity,
		HalfExtents: halfExtents,
		Owner:       owner,
		Effects:     effects,
	}
}

// Update implements world.Updater by stepping one tick.
func (p *Projectile) Update(level world.Level) (remove bool) {
	_, destroyed := p.Step(level, world.TickSeconds)
	return destroyed
}

func (p *Projectile) Destroyed() bool {
	return p.destroyed
}

// Rotation points the ellipse along its velocity.
func (p *Projectile) Rotation() world.Angle {
	return p.Velocity.Angle()
}

// Step moves the projectile for seconds, split into sub-steps so it can't pass through
// anything thinner than itself. It stops at the first contact it's moving into and is destroyed.
func (p *Projectile) Step(level world.Level, seconds float32) (hit world.CollisionQueryResult, destroyed bool) {
	if p.destroyed {
		return hit, true
	}

	displacement := p.Velocity.Mul(seconds)
	distance := displacement.Length()
	smallest := min(p.HalfExtents.X, p.HalfExtents.Y)
	if distance == 0 || !(smallest > 0) {
		return
	}

	n := int(math32.Ceil(distance / (smallest * substepFraction)))
	n = min(max(n, 1), MaxSubsteps)
	step := displacement.Div(float32(n))
	rotation := p.Rotation()

	for i := 0; i < n; i++ {
		p.Position = p.Position.Add(step)
		for _, result := range level.Collide(p.Position, p.HalfExtents, rotation, p.Owner) {
			if p.Velocity.Dot(result.ResolveDirection) > MoveIntoEpsilon {
				continue
			}
			p.destroyed = true
			p.Effects.Burst(result.Point, result.ResolveDirection, BurstCount)
			return result, true
		}
		if p.Damage > 0 {
			if hit, destroyed = p.damage(level); destroyed {
				return
			}
		}
	}
	return
}

// damage hurts the first Damageable overlapping the projectile
func (p *Projectile) damage(level world.Level) (hit world.CollisionQueryResult, destroyed bool) {
	for _, result := range level.Overlap(p.Position, p.HalfExtents, p.Owner) {
		damageable, ok := result.Object.(world.Damageable)
		if !ok {
			continue
		}
		damageable.Damage(p.Damage)
		p.destroyed = true

		back := p.Velocity.Norm().Rot180()
		p.Effects.Burst(result.Center, back, BurstCount)
		return world.CollisionQueryResult{
			Contact: world.Contact{
				Point:            result.Center,
				ResolveDirection: back,
				Normal:           back,
			},
			Valid:    true,
			Object:   result.Object,
			ObjectID: result.ObjectID,
		}, true
	}
	return
}
