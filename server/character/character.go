// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package character

import (
	"github.com/SoftbearStudios/glide/server/world"
	"github.com/chewxy/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Character is an ellipse that walks on the surfaces of a world.Level.
// Add it to the level to have it stepped every frame.
type Character struct {
	Position     world.Vec2f `json:"position"`
	HalfExtents  world.Vec2f `json:"halfExtents"` // pose box, also the ellipse radii
	Velocity     world.Vec2f `json:"velocity"`
	MoveVelocity world.Vec2f `json:"moveVelocity"` // controlled movement, decays every frame
	// SurfaceRotation is clockwise so the collision ellipse is rotated by its negation
	SurfaceRotation world.Angle `json:"surfaceRotation"`
	BoundingBox     world.AABB  `json:"-"`
	Health          float32     `json:"health"`
	SpawnTicks      world.Ticks `json:"spawnTicks"`

	// Surfaces are copies so they outlive the level's result buffers
	FlattestSurface world.CollisionQueryResult `json:"-"`
	SteepestSurface world.CollisionQueryResult `json:"-"`
	JumpSurface     world.CollisionQueryResult `json:"-"`

	tuning  *Tuning
	effects world.Effects
	fade    *gween.Tween
	alpha   float32
	spawned bool

	// Contacts of the last contact scan
	scanned     [world.MaxCollisionResults]scannedContact
	scannedSize int
}

// scannedContact remembers how fast the character was approaching a contact
type scannedContact struct {
	world.Contact
	approach float32 // (Velocity + MoveVelocity) · Normal before resistance
}

// New creates a Character with full health.
// A nil tuning means DefaultTuning and nil effects discards them.
func New(position, halfExtents world.Vec2f, tuning *Tuning, effects world.Effects) *Character {
	if tuning == nil {
		t := DefaultTuning()
		tuning = &t
	}
	if effects == nil {
		effects = world.NoEffects{}
	}
	c := &Character{
		Position:    position,
		HalfExtents: halfExtents,
		Health:      1,
		SpawnTicks:  world.Ticks(tuning.SpawnTicks),
		tuning:      tuning,
		effects:     effects,
		alpha:       1,
	}
	if tuning.SpawnTicks > 0 {
		c.fade = gween.New(0, 1, float32(tuning.SpawnTicks), ease.OutQuad)
		c.alpha = 0
	}
	c.refreshBounds()
	return c
}

func (c *Character) Tuning() *Tuning {
	return c.tuning
}

// Ellipse is the shape the character collides as.
func (c *Character) Ellipse() world.Ellipse {
	return world.Ellipse{
		Position:    c.Position,
		HalfExtents: c.HalfExtents,
		Rotation:    c.collisionRotation(),
	}
}

func (c *Character) collisionRotation() world.Angle {
	return -c.SurfaceRotation
}

// Move sets the controlled velocity, which decays unless set again.
func (c *Character) Move(velocity world.Vec2f) {
	c.MoveVelocity = velocity
}

// Jump launches the character off the surface found by the last orientation scan.
// Returns false if there wasn't one.
func (c *Character) Jump() bool {
	if !c.JumpSurface.Valid || c.tuning.JumpSpeed <= 0 {
		return false
	}
	c.Velocity = c.Velocity.AddScaled(c.JumpSurface.ResolveDirection, c.tuning.JumpSpeed)
	c.JumpSurface = world.CollisionQueryResult{}
	return true
}

func (c *Character) Damage(amount float32) {
	c.Health -= amount
}

func (c *Character) Alive() bool {
	return c.Health > 0
}

func (c *Character) Spawning() bool {
	return c.SpawnTicks > 0
}

// Alpha is the opacity of the spawn fade, from 0 to 1.
func (c *Character) Alpha() float32 {
	return c.alpha
}

// OverlapQuery makes characters visible to Level.Overlap.
func (c *Character) OverlapQuery(box world.AABB) (world.AABB, bool) {
	return c.BoundingBox.Intersection(box)
}

// refreshBounds fits an axis aligned box around the rotated pose box
func (c *Character) refreshBounds() {
	sin, cos := math32.Sincos(float32(c.SurfaceRotation))
	sin, cos = math32.Abs(sin), math32.Abs(cos)
	halfExtents := world.Vec2f{
		X: c.HalfExtents.X*cos + c.HalfExtents.Y*sin,
		Y: c.HalfExtents.X*sin + c.HalfExtents.Y*cos,
	}
	c.BoundingBox = world.AABBFromCenter(c.Position, halfExtents)
}

// advanceSpawn bursts once when first stepped and fades in while spawning
func (c *Character) advanceSpawn() {
	if !c.spawned {
		c.spawned = true
		if c.tuning.SpawnBurst > 0 {
			c.effects.Burst(c.Position, world.Up, c.tuning.SpawnBurst)
		}
	}
	if c.SpawnTicks == 0 {
		return
	}
	c.SpawnTicks--
	if c.fade != nil {
		alpha, finished := c.fade.Update(1)
		if finished || c.SpawnTicks == 0 {
			alpha = 1
			c.fade = nil
		}
		c.alpha = alpha
	}
}
