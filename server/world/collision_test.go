// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
	"math/rand"
	"testing"
)

func mustLine(t testing.TB, start, end Vec2f) Line {
	line, err := NewLine(start, end)
	if err != nil {
		t.Fatal(err)
	}
	return line
}

func TestCollisionCache_FastCollideFlat(t *testing.T) {
	line := mustLine(t, Vec2f{X: -1000}, Vec2f{X: 1000})
	halfExtents := Vec2f{X: 16, Y: 32}

	var cache CollisionCache
	for i := 0; i < 500; i++ {
		rotation := Angle(rand.Float32() * math32.Pi * 2)
		penetration := 0.01 + rand.Float32()*10
		x := rand.Float32()*200 - 100

		ellipse := Ellipse{HalfExtents: halfExtents, Rotation: rotation}
		position := Vec2f{X: x, Y: ellipse.Support(Up) - penetration}
		if !cache.Reset(position, halfExtents, rotation) {
			t.Fatal("reset failed")
		}

		contact, ok := cache.FastCollide(&line)
		if !ok {
			t.Errorf("%s: expected collision", rotation)
			continue
		}
		if contact.IsPointCollision {
			t.Errorf("%s: expected planar collision", rotation)
		}
		if !contact.ResolveDirection.ApproxEqual(line.Normal, 1e-6) || !contact.Normal.ApproxEqual(line.Normal, 1e-6) {
			t.Errorf("%s: resolve %v not parallel to normal %v", rotation, contact.ResolveDirection, line.Normal)
		}
		if math32.Abs(contact.Penetration-penetration) > 1e-3 {
			t.Errorf("%s: expected penetration %f, found %f", rotation, penetration, contact.Penetration)
		}
		if math32.Abs(contact.Point.Y) > 1e-2 {
			t.Errorf("%s: contact point %v not on line", rotation, contact.Point)
		}
	}
}

func TestCollisionCache_FastCollideBelow(t *testing.T) {
	line := mustLine(t, Vec2f{X: -100}, Vec2f{X: 100})

	var cache CollisionCache
	cache.Reset(Vec2f{Y: -8}, Vec2f{X: 10, Y: 10}, 0)
	contact, ok := cache.FastCollide(&line)
	if !ok {
		t.Fatal("expected collision")
	}
	if !contact.ResolveDirection.ApproxEqual(Vec2f{Y: -1}, 1e-6) {
		t.Errorf("expected resolve toward center, found %v", contact.ResolveDirection)
	}
	if !contact.Normal.ApproxEqual(Up, 1e-6) {
		t.Errorf("expected line normal, found %v", contact.Normal)
	}
	if math32.Abs(contact.Penetration-2) > 1e-4 {
		t.Errorf("expected penetration 2, found %f", contact.Penetration)
	}
}

func TestCollisionCache_FastCollidePoint(t *testing.T) {
	line := mustLine(t, Vec2f{}, Vec2f{X: 100})

	var cache CollisionCache
	cache.Reset(Vec2f{X: -6, Y: 6}, Vec2f{X: 10, Y: 10}, 0)
	contact, ok := cache.FastCollide(&line)
	if !ok {
		t.Fatal("expected point collision")
	}
	if !contact.IsPointCollision {
		t.Error("expected point collision flag")
	}
	expected := Vec2f{X: -1, Y: 1}.Norm()
	if !contact.ResolveDirection.ApproxEqual(expected, 1e-5) || contact.Normal != contact.ResolveDirection {
		t.Errorf("expected resolve %v, found %v", expected, contact.ResolveDirection)
	}
	if math32.Abs(contact.Penetration-(10-math32.Sqrt(72))) > 1e-4 {
		t.Errorf("wrong penetration %f", contact.Penetration)
	}
	if !contact.Point.ApproxEqual(Vec2f{}, 1e-4) {
		t.Errorf("expected contact at endpoint, found %v", contact.Point)
	}

	line.StartCollideable = false
	if _, ok := cache.FastCollide(&line); ok {
		t.Error("non collideable endpoint collided")
	}
}

func TestCollisionCache_FastCollidePointScaled(t *testing.T) {
	// Touching the end of an ellipse twice as wide as it is tall
	line := mustLine(t, Vec2f{}, Vec2f{X: 100})

	var cache CollisionCache
	cache.Reset(Vec2f{Y: 9}, Vec2f{X: 20, Y: 10}, 0)
	contact, ok := cache.FastCollide(&line)
	if !ok || !contact.IsPointCollision {
		t.Fatalf("expected point collision, found %+v %t", contact, ok)
	}
	if !contact.ResolveDirection.ApproxEqual(Up, 1e-5) {
		t.Errorf("expected up, found %v", contact.ResolveDirection)
	}
	if math32.Abs(contact.Penetration-1) > 1e-4 {
		t.Errorf("expected penetration 1, found %f", contact.Penetration)
	}
}

func TestCollisionCache_FastCollideMiss(t *testing.T) {
	line := mustLine(t, Vec2f{X: -100}, Vec2f{X: 100})

	var cache CollisionCache
	for _, y := range []float32{10, 10.0005, 50, -10.0005} {
		cache.Reset(Vec2f{Y: y}, Vec2f{X: 10, Y: 10}, 0)
		if contact, ok := cache.FastCollide(&line); ok {
			t.Errorf("y=%f: unexpected collision %+v", y, contact)
		}
	}

	if cache.Reset(Vec2f{}, Vec2f{X: 10}, 0) {
		t.Error("degenerate ellipse accepted")
	}
}

func TestCollisionCache_Transform(t *testing.T) {
	var cache CollisionCache
	for i := 0; i < 100; i++ {
		position := Vec2f{X: rand.Float32()*100 - 50, Y: rand.Float32()*100 - 50}
		halfExtents := Vec2f{X: 1 + rand.Float32()*20, Y: 1 + rand.Float32()*20}
		cache.Reset(position, halfExtents, Angle(rand.Float32()*10))

		point := Vec2f{X: rand.Float32()*100 - 50, Y: rand.Float32()*100 - 50}
		if back := cache.ToWorld(cache.ToLocal(point)); !back.ApproxEqual(point, 1e-3) {
			t.Errorf("round trip %v became %v", point, back)
		}
	}

	// The ellipse becomes a circle of radius rx
	cache.Reset(Vec2f{X: 5, Y: 5}, Vec2f{X: 8, Y: 2}, Pi/2)
	top := cache.ToLocal(Vec2f{X: 5, Y: 13})
	if math32.Abs(top.Length()-cache.Radius()) > 1e-4 {
		t.Errorf("expected %v on circle of radius %f", top, cache.Radius())
	}
	side := cache.ToLocal(Vec2f{X: 3, Y: 5})
	if math32.Abs(side.Length()-cache.Radius()) > 1e-4 {
		t.Errorf("expected %v on circle of radius %f", side, cache.Radius())
	}

	bounds := cache.Bounds()
	if !bounds.Vec2f.ApproxEqual(Vec2f{X: 3, Y: -3}, 1e-4) || math32.Abs(bounds.Width-4) > 1e-4 || math32.Abs(bounds.Height-16) > 1e-4 {
		t.Errorf("wrong bounds %+v", bounds)
	}
}

func TestIntersectSegments(t *testing.T) {
	ta, tb, ok := IntersectSegments(Vec2f{X: -1}, Vec2f{X: 1}, Vec2f{Y: -1}, Vec2f{Y: 3})
	if !ok || math32.Abs(ta-0.5) > 1e-6 || math32.Abs(tb-0.25) > 1e-6 {
		t.Errorf("expected crossing at 0.5, 0.25, found %f, %f, %t", ta, tb, ok)
	}

	if _, _, ok := IntersectSegments(Vec2f{}, Vec2f{X: 1}, Vec2f{Y: 1}, Vec2f{X: 1, Y: 1}); ok {
		t.Error("parallel segments intersected")
	}
	if _, _, ok := IntersectSegments(Vec2f{X: -1}, Vec2f{X: 1}, Vec2f{X: 2, Y: -1}, Vec2f{X: 2, Y: 1}); ok {
		t.Error("disjoint segments intersected")
	}
}

func BenchmarkCollisionCache_FastCollide(b *testing.B) {
	const count = 1024
	lines := make([]Line, count)
	for i := range lines {
		start := Vec2f{X: rand.Float32()*40 - 20, Y: rand.Float32()*40 - 20}
		lines[i] = mustLine(b, start, start.Add(Angle(rand.Float32()*10).Vec2f().Mul(20)))
	}

	var cache CollisionCache
	cache.Reset(Vec2f{}, Vec2f{X: 16, Y: 32}, 1)
	b.ResetTimer()

	hits := 0
	for i := 0; i < b.N; i++ {
		if _, ok := cache.FastCollide(&lines[i&(count-1)]); ok {
			hits++
		}
	}
	_ = hits
}
