// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package projectile

import (
	"github.com/SoftbearStudios/glide/server/solid"
	"github.com/SoftbearStudios/glide/server/world"
	"github.com/SoftbearStudios/glide/server/world/single"
	"testing"
)

const frame = float32(1.0 / 60)

var radius8 = world.Vec2f{X: 8, Y: 8}

type countingLevel struct {
	world.Level
	collides int
}

func (l *countingLevel) Collide(position, halfExtents world.Vec2f, rotation world.Angle, exclude world.Object) []world.CollisionQueryResult {
	l.collides++
	return l.Level.Collide(position, halfExtents, rotation, exclude)
}

type recorder struct {
	bursts int
}

func (r *recorder) Burst(world.Vec2f, world.Vec2f, int) {
	r.bursts++
}

// wall is a vertical line at x facing -x
func wall(t *testing.T, x float32) *solid.Sprite {
	t.Helper()
	line, err := world.NewLine(world.Vec2f{X: x, Y: -100}, world.Vec2f{X: x, Y: 100})
	if err != nil {
		t.Fatal(err)
	}
	return solid.NewSprite("wall", []world.Line{line})
}

func TestProjectile_Hit(t *testing.T) {
	level := single.New()
	level.Add(wall(t, 13))
	effects := &recorder{}
	p := New(world.Vec2f{}, world.Vec2f{X: 600}, radius8, nil, effects)

	hit, destroyed := p.Step(level, frame)
	if !destroyed || !hit.Valid {
		t.Fatalf("expected hit, found %+v", hit)
	}
	if !hit.ResolveDirection.ApproxEqual(world.Vec2f{X: -1}, 1e-5) {
		t.Errorf("wrong resolve direction %v", hit.ResolveDirection)
	}
	if effects.bursts != 1 {
		t.Errorf("expected 1 burst, found %d", effects.bursts)
	}

	// Destroyed projectiles do nothing
	if _, destroyed := p.Step(level, frame); !destroyed || effects.bursts != 1 {
		t.Errorf("expected no more bursts, found %d", effects.bursts)
	}
}

func TestProjectile_NoTunnelling(t *testing.T) {
	level := single.New()
	level.Add(wall(t, 30))
	p := New(world.Vec2f{}, world.Vec2f{X: 3000}, radius8, nil, nil)

	if _, destroyed := p.Step(level, frame); !destroyed {
		t.Fatalf("tunnelled to %v", p.Position)
	}
	if p.Position.X >= 30 {
		t.Errorf("passed the wall to %v", p.Position)
	}
}

func TestProjectile_Substeps(t *testing.T) {
	level := &countingLevel{Level: single.New()}

	p := New(world.Vec2f{}, world.Vec2f{X: 600}, radius8, nil, nil)
	p.Step(level, frame)
	if level.collides != 2 {
		t.Errorf("expected 2 sub-steps, found %d", level.collides)
	}
	if !p.Position.ApproxEqual(world.Vec2f{X: 10}, 1e-4) {
		t.Errorf("wrong position %v", p.Position)
	}

	level.collides = 0
	p = New(world.Vec2f{}, world.Vec2f{X: 60000}, radius8, nil, nil)
	p.Step(level, frame)
	if level.collides != MaxSubsteps {
		t.Errorf("expected %d sub-steps, found %d", MaxSubsteps, level.collides)
	}

	level.collides = 0
	p = New(world.Vec2f{}, world.Vec2f{}, radius8, nil, nil)
	if _, destroyed := p.Step(level, frame); destroyed || level.collides != 0 {
		t.Errorf("stationary projectile queried %d times", level.collides)
	}

	p = New(world.Vec2f{}, world.Vec2f{X: 600}, world.Vec2f{}, nil, nil)
	if _, destroyed := p.Step(level, frame); destroyed || level.collides != 0 {
		t.Errorf("degenerate projectile queried %d times", level.collides)
	}
}

func TestProjectile_MovingAway(t *testing.T) {
	level := single.New()
	level.Add(wall(t, 13))
	p := New(world.Vec2f{X: 8}, world.Vec2f{X: -60}, radius8, nil, nil)

	if hit, destroyed := p.Step(level, frame); destroyed {
		t.Errorf("hit a contact it was leaving %+v", hit)
	}
}

func TestProjectile_Owner(t *testing.T) {
	level := single.New()
	owner := wall(t, 13)
	level.Add(owner)
	p := New(world.Vec2f{}, world.Vec2f{X: 600}, radius8, owner, nil)

	if _, destroyed := p.Step(level, frame); destroyed {
		t.Error("hit its owner")
	}
}

func TestProjectile_Update(t *testing.T) {
	level := single.New()
	level.Add(wall(t, 100))
	p := New(world.Vec2f{}, world.Vec2f{X: 600}, radius8, nil, nil)
	level.Add(p)

	for i := 0; i < 20 && level.Count() == 2; i++ {
		level.Update()
	}
	if level.Count() != 1 || !p.Destroyed() {
		t.Errorf("expected projectile removed on impact, at %v", p.Position)
	}
}

type target struct {
	box    world.AABB
	damage float32
}

func (t *target) OverlapQuery(box world.AABB) (world.AABB, bool) {
	return t.box.Intersection(box)
}

func (t *target) Damage(amount float32) {
	t.damage += amount
}

func TestProjectile_Damage(t *testing.T) {
	level := single.New()
	dummy := &target{box: world.AABBFrom(20, -10, 10, 20)}
	level.Add(dummy)

	// Harmless projectiles pass through
	p := New(world.Vec2f{}, world.Vec2f{X: 1500}, radius8, nil, nil)
	if _, destroyed := p.Step(level, frame); destroyed || dummy.damage != 0 {
		t.Fatalf("harmless projectile hit %+v", dummy)
	}

	effects := &recorder{}
	p = New(world.Vec2f{}, world.Vec2f{X: 1500}, radius8, nil, effects)
	p.Damage = 0.5
	hit, destroyed := p.Step(level, frame)
	if !destroyed || hit.Object != world.Object(dummy) {
		t.Fatalf("expected to hit target, found %+v", hit)
	}
	if dummy.damage != 0.5 || effects.bursts != 1 {
		t.Errorf("expected one hit, found damage %f and %d bursts", dummy.damage, effects.bursts)
	}

	// The owner is never damaged
	dummy.damage = 0
	p = New(world.Vec2f{}, world.Vec2f{X: 1500}, radius8, dummy, nil)
	p.Damage = 0.5
	if _, destroyed := p.Step(level, frame); destroyed || dummy.damage != 0 {
		t.Errorf("damaged owner %+v", dummy)
	}
}
