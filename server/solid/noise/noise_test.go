// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"github.com/SoftbearStudios/glide/server/world"
	"github.com/SoftbearStudios/glide/server/world/single"
	"testing"
)

func TestGenerator_Lines(t *testing.T) {
	g := NewDefault()
	lines := g.Lines(-1000, 1000, 0)
	if len(lines) < 100 {
		t.Fatalf("expected many lines, found %d", len(lines))
	}

	// Closed loop
	for i := range lines {
		next := lines[(i+1)%len(lines)]
		if !lines[i].End.ApproxEqual(next.Start, 1e-3) {
			t.Errorf("line %d end %v not joined to %v", i, lines[i].End, next.Start)
		}
	}

	// Surface normals face up
	for i := range lines {
		line := &lines[i]
		if line.Direction.X > 0 && line.Normal.Y <= 0 {
			t.Errorf("surface line %d faces down: %+v", i, line)
		}
		if line.Start.Y > g.Amplitude+1e-3 || line.Start.Y < -g.Amplitude-g.Depth-1e-3 {
			t.Errorf("line %d out of range: %+v", i, line)
		}
	}

	again := New(Seed).Lines(-1000, 1000, 0)
	if len(again) != len(lines) || again[10] != lines[10] {
		t.Error("not deterministic")
	}

	if lines := g.Lines(10, 0, 0); lines != nil {
		t.Error("expected no lines for empty range")
	}
}

func TestGenerator_Sprite(t *testing.T) {
	g := New(1)
	g.Amplitude = 20
	sprite := g.Sprite(-500, 500, 0)
	level := single.New()
	level.Add(sprite)

	x := float32(37)
	surface := g.Height(x)
	results := level.Collide(world.Vec2f{X: x, Y: surface + 30}, world.Vec2f{X: 16, Y: 32}, 0, nil)
	if len(results) == 0 {
		t.Fatal("expected to touch the surface")
	}
	for _, result := range results {
		if result.ResolveDirection.Y <= 0 {
			t.Errorf("expected to be pushed up, found %+v", result)
		}
	}

	if results := level.Collide(world.Vec2f{X: x, Y: g.Amplitude + 40}, world.Vec2f{X: 16, Y: 32}, 0, nil); len(results) != 0 {
		t.Errorf("expected no contacts above terrain, found %d", len(results))
	}
}
