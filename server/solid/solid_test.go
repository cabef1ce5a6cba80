// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package solid

import (
	"github.com/SoftbearStudios/glide/server/world"
	"github.com/SoftbearStudios/glide/server/world/single"
	"github.com/chewxy/math32"
	"testing"
)

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 1e-3
}

func TestGround_Collide(t *testing.T) {
	level := single.New()
	ground := &Ground{Height: 10}
	level.Add(ground)

	halfExtents := world.Vec2f{X: 16, Y: 32}
	tests := []struct {
		y           float32
		penetration float32
	}{
		{41, 1},
		{20, 22},
		{10, 32},
		{0, 42}, // below the surface
		{43, 0},
	}

	for _, test := range tests {
		results := level.Collide(world.Vec2f{X: 1234, Y: test.y}, halfExtents, 0, nil)
		if test.penetration == 0 {
			if len(results) != 0 {
				t.Errorf("y=%f: expected no contact, found %d", test.y, len(results))
			}
			continue
		}
		if len(results) != 1 {
			t.Fatalf("y=%f: expected 1 contact, found %d", test.y, len(results))
		}
		result := results[0]
		if result.IsPointCollision || result.Object != world.Object(ground) {
			t.Errorf("y=%f: wrong contact %+v", test.y, result)
		}
		if !result.ResolveDirection.ApproxEqual(world.Up, 1e-6) {
			t.Errorf("y=%f: expected up, found %v", test.y, result.ResolveDirection)
		}
		if !approx(result.Penetration, test.penetration) {
			t.Errorf("y=%f: expected penetration %f, found %f", test.y, test.penetration, result.Penetration)
		}
	}
}

func TestGround_OverlapIntersect(t *testing.T) {
	level := single.New()
	level.Add(&Ground{})

	overlaps := level.Overlap(world.Vec2f{Y: 5}, world.Vec2f{X: 10, Y: 10}, nil)
	if len(overlaps) != 1 || !approx(overlaps[0].Area, 100) || !approx(overlaps[0].Center.Y, -2.5) {
		t.Errorf("wrong overlap %+v", overlaps)
	}
	if overlaps := level.Overlap(world.Vec2f{Y: 20}, world.Vec2f{X: 10, Y: 10}, nil); len(overlaps) != 0 {
		t.Errorf("expected no overlap above ground")
	}

	intersections := level.Intersect(world.Vec2f{X: 3, Y: 30}, world.Vec2f{X: 3, Y: -10}, nil)
	if len(intersections) != 1 || !approx(intersections[0].Distance, 30) || !intersections[0].Point.ApproxEqual(world.Vec2f{X: 3}, 1e-4) {
		t.Errorf("wrong intersection %+v", intersections)
	}
	if intersections := level.Intersect(world.Vec2f{Y: 30}, world.Vec2f{X: 100, Y: 10}, nil); len(intersections) != 0 {
		t.Errorf("expected miss")
	}
}

func box(t *testing.T, min, max world.Vec2f) []world.Line {
	corners := []world.Vec2f{{X: min.X, Y: max.Y}, max, {X: max.X, Y: min.Y}, min}
	var lines []world.Line
	for i := range corners {
		line, err := world.NewLine(corners[i], corners[(i+1)%len(corners)])
		if err != nil {
			t.Fatal(err)
		}
		lines = append(lines, line)
	}
	world.PruneConcaveCorners(lines)
	return lines
}

func TestSprite(t *testing.T) {
	sprite := NewSprite("crate", box(t, world.Vec2f{X: -20, Y: -20}, world.Vec2f{X: 20, Y: 20}))
	if bounds := sprite.Bounds(); bounds != world.AABBFrom(-20, -20, 40, 40) {
		t.Errorf("wrong bounds %+v", bounds)
	}

	level := single.New()
	level.Add(sprite)

	// Side
	results := level.Collide(world.Vec2f{X: 30}, world.Vec2f{X: 12, Y: 12}, 0, nil)
	if len(results) != 1 || !results[0].ResolveDirection.ApproxEqual(world.Vec2f{X: 1}, 1e-6) || !approx(results[0].Penetration, 2) {
		t.Errorf("side: %+v", results)
	}

	// Corner
	results = level.Collide(world.Vec2f{X: 25, Y: 25}, world.Vec2f{X: 10, Y: 10}, 0, nil)
	if len(results) != 2 {
		t.Fatalf("corner: expected a point contact from each line, found %d", len(results))
	}
	for _, result := range results {
		if !result.IsPointCollision || !result.ResolveDirection.ApproxEqual(world.Vec2f{X: 1, Y: 1}.Norm(), 1e-5) {
			t.Errorf("corner: %+v", result)
		}
	}

	// Far away
	if results := level.Collide(world.Vec2f{X: 100}, world.Vec2f{X: 12, Y: 12}, 0, nil); len(results) != 0 {
		t.Errorf("far: %+v", results)
	}

	intersections := level.Intersect(world.Vec2f{X: -50}, world.Vec2f{X: 50}, nil)
	if len(intersections) != 2 {
		t.Fatalf("expected 2 intersections, found %d", len(intersections))
	}
	for _, intersection := range intersections {
		if !approx(intersection.Distance, 30) && !approx(intersection.Distance, 70) {
			t.Errorf("wrong intersection %+v", intersection)
		}
	}

	if empty := NewSprite("empty", nil); empty.Bounds() != (world.AABB{}) {
		t.Error("empty sprite has bounds")
	}
}
