// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"fmt"
	"reflect"
)

// Object is anything in a Level.
// What it takes part in is decided by which of the interfaces below it implements.
// Objects are compared for exclusion so they must be comparable, usually pointers.
type Object interface{}

// CheckObject panics if object can't be added to a Level:
// it is nil or comparing it for exclusion would panic.
func CheckObject(object Object) {
	if object == nil {
		panic("nil object")
	}
	if t := reflect.TypeOf(object); !t.Comparable() {
		panic(fmt.Sprintf("object %s is not comparable", t))
	}
}

// Collidable contributes contacts to Level.Collide.
// Implementations must reject on cache.Bounds() before running FastCollide.
type Collidable interface {
	CollisionQuery(cache *CollisionCache, results *CollisionResults)
}

// Overlappable contributes to Level.Overlap.
// It returns the region of box it occupies.
type Overlappable interface {
	OverlapQuery(box AABB) (region AABB, ok bool)
}

// Intersectable contributes crossings to Level.Intersect.
// Implementations must reject on ray.Bounds() before testing edges.
type Intersectable interface {
	IntersectQuery(ray Ray, results *IntersectResults)
}

// Updater is stepped once per frame by Level.Update.
type Updater interface {
	Update(level Level) (remove bool)
}

// Bounded objects have fixed bounds while in a Level.
// Levels may use them to skip the object entirely.
// Objects that move must not implement it unless they're also an Updater.
type Bounded interface {
	Bounds() AABB
}

// Damageable objects can be hurt by melee.
type Damageable interface {
	Damage(amount float32)
}

// Effects are the particle effects the simulation triggers.
type Effects interface {
	Burst(position, direction Vec2f, count int)
}

// NoEffects discards effects.
type NoEffects struct{}

func (NoEffects) Burst(Vec2f, Vec2f, int) {}
