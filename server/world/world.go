// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"fmt"
	"github.com/chewxy/math32"
	"math/rand"
	"testing"
)

// Level A level holds objects and answers collision queries about them
// Single threaded: no method may be called concurrently with another
type Level interface {
	// Add Adds an object and returns its id
	// Ids increase so they are also the update and dispatch order
	// Objects added during Update are first updated on the next frame
	Add(object Object) ObjectID

	// Remove Removes an object
	// During Update the removal is deferred until the end of the frame
	Remove(objectID ObjectID)

	// Object Gets an object by its id or nil
	Object(objectID ObjectID) Object

	// Count returns number of objects in the level
	Count() int

	// ForObjects Iterates all the objects in id order and returns if stopped early
	// Cannot add or remove objects during iteration
	ForObjects(callback func(objectID ObjectID, object Object) (stop bool)) bool

	// Update Updates every Updater once in id order then applies removals
	Update()

	// Debug Prints debug output to os.Stdout
	Debug()

	// Collide Finds the contacts of an ellipse with every Collidable except exclude
	// The result aliases a buffer that the next Collide overwrites, so copy what must be kept
	Collide(position, halfExtents Vec2f, rotation Angle, exclude Object) []CollisionQueryResult

	// Overlap Finds every Overlappable except exclude that overlaps a box
	// The result aliases a buffer that the next Overlap overwrites
	Overlap(center, halfExtents Vec2f, exclude Object) []OverlapQueryResult

	// Intersect Finds every crossing of a ray with Intersectables except exclude
	// The result aliases a buffer that the next Intersect overwrites
	Intersect(start, end Vec2f, exclude Object) []IntersectQueryResult
}

// testBox is a square solid wound clockwise.
type testBox struct {
	lines  []Line
	bounds AABB
}

func newTestBox(center Vec2f, halfSize float32) *testBox {
	corners := [...]Vec2f{
		{X: center.X - halfSize, Y: center.Y + halfSize},
		{X: center.X + halfSize, Y: center.Y + halfSize},
		{X: center.X + halfSize, Y: center.Y - halfSize},
		{X: center.X - halfSize, Y: center.Y - halfSize},
	}
	box := &testBox{bounds: AABBFromCenter(center, Vec2f{X: halfSize, Y: halfSize})}
	for i := range corners {
		line, err := NewLine(corners[i], corners[(i+1)%len(corners)])
		if err != nil {
			panic(err)
		}
		box.lines = append(box.lines, line)
	}
	PruneConcaveCorners(box.lines)
	return box
}

func (box *testBox) Bounds() AABB {
	return box.bounds
}

func (box *testBox) CollisionQuery(cache *CollisionCache, results *CollisionResults) {
	if !cache.Intersects(box.bounds) {
		return
	}
	for i := range box.lines {
		line := &box.lines[i]
		if !cache.Intersects(line.Bounds()) {
			continue
		}
		if contact, ok := cache.FastCollide(line); ok && !results.Add(contact) {
			return
		}
	}
}

func (box *testBox) OverlapQuery(query AABB) (AABB, bool) {
	return box.bounds.Intersection(query)
}

func (box *testBox) IntersectQuery(ray Ray, results *IntersectResults) {
	if !ray.Bounds().Intersects(box.bounds) {
		return
	}
	for i := range box.lines {
		line := &box.lines[i]
		if point, distance, ok := line.IntersectRay(ray); ok && !results.Add(point, line.Normal, distance) {
			return
		}
	}
}

// testMover is an Updater that calls update every frame.
type testMover struct {
	update func(mover *testMover, level Level) bool
	frames int
}

func (mover *testMover) Update(level Level) bool {
	mover.frames++
	return mover.update(mover, level)
}

func approxEqual(a, b float32) bool {
	return math32.Abs(a-b) < 1e-3
}

// TestLevel tests a Level implementation
func TestLevel(t *testing.T, create func(radius int) Level) {
	t.Run("Objects", func(t *testing.T) {
		testLevelObjects(t, create(500))
	})
	t.Run("Collide", func(t *testing.T) {
		testLevelCollide(t, create(500))
	})
	t.Run("Capacity", func(t *testing.T) {
		testLevelCapacity(t, create(500))
	})
	t.Run("Overlap", func(t *testing.T) {
		testLevelOverlap(t, create(500))
	})
	t.Run("Intersect", func(t *testing.T) {
		testLevelIntersect(t, create(500))
	})
	t.Run("Update", func(t *testing.T) {
		testLevelUpdate(t, create(500))
	})
	t.Run("Uncomparable", func(t *testing.T) {
		testLevelUncomparable(t, create(500))
	})
}

func testLevelUncomparable(t *testing.T, level Level) {
	box := newTestBox(Vec2f{}, 10)
	level.Add(box)

	// A testBox value holds a slice so comparing two of them would panic
	for _, object := range []Object{nil, *box} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected Add(%T) to panic", object)
				}
			}()
			level.Add(object)
		}()
	}
	if level.Count() != 1 {
		t.Errorf("expected 1 object, found %d", level.Count())
	}

	// Excluding an uncomparable value is harmless since no object shares its type
	if results := level.Collide(Vec2f{Y: 12}, Vec2f{X: 5, Y: 5}, 0, *box); len(results) == 0 {
		t.Error("expected collision with box")
	}
}

func testLevelObjects(t *testing.T, level Level) {
	boxes := make([]*testBox, 5)
	ids := make([]ObjectID, len(boxes))
	for i := range boxes {
		boxes[i] = newTestBox(Vec2f{X: float32(i) * 200}, 10)
		ids[i] = level.Add(boxes[i])
		if ids[i] == ObjectIDInvalid {
			t.Fatal("invalid id")
		}
		if i > 0 && ids[i] <= ids[i-1] {
			t.Errorf("ids not increasing: %s then %s", ids[i-1], ids[i])
		}
	}

	if c := level.Count(); c != len(boxes) {
		t.Errorf("expected %d objects, found %d", len(boxes), c)
	}

	for i, id := range ids {
		if level.Object(id) != Object(boxes[i]) {
			t.Errorf("object %s not found", id)
		}
	}

	level.Remove(ids[2])
	if level.Object(ids[2]) != nil {
		t.Error("removed object still found")
	}
	if c := level.Count(); c != len(boxes)-1 {
		t.Errorf("expected %d objects after remove, found %d", len(boxes)-1, c)
	}

	var last ObjectID
	visited := 0
	level.ForObjects(func(id ObjectID, _ Object) bool {
		if id <= last {
			t.Errorf("not in id order: %s after %s", id, last)
		}
		if id == ids[2] {
			t.Error("visited removed object")
		}
		last = id
		visited++
		return false
	})
	if visited != len(boxes)-1 {
		t.Errorf("visited %d objects", visited)
	}

	if !level.ForObjects(func(ObjectID, Object) bool { return true }) {
		t.Error("expected ForObjects to report stopping early")
	}
}

func testLevelCollide(t *testing.T, level Level) {
	// Top at y=0 spanning x in [-50, 50]
	box := newTestBox(Vec2f{Y: -50}, 50)
	id := level.Add(box)
	level.Add(newTestBox(Vec2f{X: 400}, 50))

	halfExtents := Vec2f{X: 16, Y: 32}
	results := level.Collide(Vec2f{Y: 31}, halfExtents, 0, nil)
	if len(results) != 1 {
		t.Fatalf("expected 1 contact, found %d", len(results))
	}

	result := results[0]
	if !result.Valid || result.Object != Object(box) || result.ObjectID != id {
		t.Errorf("wrong result object %+v", result)
	}
	if result.IsPointCollision {
		t.Error("expected planar collision")
	}
	if !result.Normal.ApproxEqual(Up, 1e-5) || !result.ResolveDirection.ApproxEqual(Up, 1e-5) {
		t.Errorf("expected up normal, found %v", result.Normal)
	}
	if !approxEqual(result.Penetration, 1) {
		t.Errorf("expected penetration 1, found %f", result.Penetration)
	}
	if !approxEqual(result.Point.Y, 0) {
		t.Errorf("expected contact on surface, found %v", result.Point)
	}

	if results := level.Collide(Vec2f{Y: 31}, halfExtents, 0, box); len(results) != 0 {
		t.Errorf("exclude ignored: %d contacts", len(results))
	}
	if results := level.Collide(Vec2f{Y: 33}, halfExtents, 0, nil); len(results) != 0 {
		t.Errorf("expected no contacts above surface, found %d", len(results))
	}
	if results := level.Collide(Vec2f{Y: 31}, Vec2f{X: 16}, 0, nil); len(results) != 0 {
		t.Errorf("degenerate ellipse collided %d times", len(results))
	}

	// Rotated 90 degrees the ellipse only reaches down 16
	if results := level.Collide(Vec2f{Y: 15}, halfExtents, Pi/2, nil); len(results) != 1 || !approxEqual(results[0].Penetration, 1) {
		t.Errorf("rotated collide: %+v", results)
	}
}

func testLevelCapacity(t *testing.T, level Level) {
	for i := 0; i < MaxCollisionResults+8; i++ {
		level.Add(newTestBox(Vec2f{Y: -50}, 50))
	}

	results := level.Collide(Vec2f{Y: 31}, Vec2f{X: 16, Y: 32}, 0, nil)
	if len(results) != MaxCollisionResults {
		t.Errorf("expected %d contacts, found %d", MaxCollisionResults, len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].ObjectID <= results[i-1].ObjectID {
			t.Errorf("results not in id order")
		}
	}

	if overlaps := level.Overlap(Vec2f{}, Vec2f{X: 10, Y: 10}, nil); len(overlaps) != MaxOverlapResults {
		t.Errorf("expected %d overlaps, found %d", MaxOverlapResults, len(overlaps))
	}
}

func testLevelOverlap(t *testing.T, level Level) {
	box := newTestBox(Vec2f{Y: -50}, 50)
	level.Add(box)
	level.Add(newTestBox(Vec2f{X: 400}, 50))

	results := level.Overlap(Vec2f{}, Vec2f{X: 10, Y: 10}, nil)
	if len(results) != 1 {
		t.Fatalf("expected 1 overlap, found %d", len(results))
	}

	result := results[0]
	if !result.Valid || result.Object != Object(box) {
		t.Errorf("wrong overlap object %+v", result)
	}
	if !approxEqual(result.Area, 200) || !result.Center.ApproxEqual(Vec2f{Y: -5}, 1e-4) || !result.HalfExtents.ApproxEqual(Vec2f{X: 10, Y: 5}, 1e-4) {
		t.Errorf("wrong overlap region %+v", result)
	}

	if results := level.Overlap(Vec2f{}, Vec2f{X: 10, Y: 10}, box); len(results) != 0 {
		t.Errorf("exclude ignored: %d overlaps", len(results))
	}
	if results := level.Overlap(Vec2f{Y: 100}, Vec2f{X: 10, Y: 10}, nil); len(results) != 0 {
		t.Errorf("expected no overlaps, found %d", len(results))
	}
}

func testLevelIntersect(t *testing.T, level Level) {
	box := newTestBox(Vec2f{Y: -50}, 50)
	level.Add(box)

	results := level.Intersect(Vec2f{Y: 50}, Vec2f{Y: -200}, nil)
	if len(results) != 2 {
		t.Fatalf("expected 2 intersections, found %d", len(results))
	}
	if !approxEqual(results[0].Distance, 50) || !results[0].Normal.ApproxEqual(Up, 1e-5) {
		t.Errorf("wrong first intersection %+v", results[0])
	}
	if !approxEqual(results[1].Distance, 150) || !results[1].Point.ApproxEqual(Vec2f{Y: -100}, 1e-3) {
		t.Errorf("wrong second intersection %+v", results[1])
	}

	if results := level.Intersect(Vec2f{Y: 50}, Vec2f{Y: -200}, box); len(results) != 0 {
		t.Errorf("exclude ignored: %d intersections", len(results))
	}
	if results := level.Intersect(Vec2f{X: 100, Y: 50}, Vec2f{X: 100, Y: -200}, nil); len(results) != 0 {
		t.Errorf("expected miss, found %d", len(results))
	}
}

func testLevelUpdate(t *testing.T, level Level) {
	var order []string
	var added *testMover

	a := &testMover{update: func(mover *testMover, level Level) bool {
		order = append(order, "a")
		if mover.frames == 1 {
			added = &testMover{update: func(*testMover, Level) bool {
				order = append(order, "c")
				return false
			}}
			level.Add(added)
		}
		return false
	}}
	b := &testMover{update: func(mover *testMover, level Level) bool {
		order = append(order, "b")
		return mover.frames == 2
	}}
	level.Add(a)
	bID := level.Add(b)

	level.Update()
	if fmt.Sprint(order) != "[a b]" {
		t.Errorf("frame 1 order %v", order)
	}
	if level.Count() != 3 {
		t.Errorf("expected 3 objects, found %d", level.Count())
	}

	order = order[:0]
	level.Update()
	if fmt.Sprint(order) != "[a b c]" {
		t.Errorf("frame 2 order %v", order)
	}
	if level.Object(bID) != nil || level.Count() != 2 {
		t.Errorf("b not removed at end of frame")
	}

	// Removal requested during a frame is deferred
	var found Object
	aID := ObjectIDInvalid
	level.ForObjects(func(id ObjectID, object Object) bool {
		if object == Object(a) {
			aID = id
		}
		return false
	})
	added.update = func(_ *testMover, level Level) bool {
		level.Remove(aID)
		found = level.Object(aID)
		return false
	}
	level.Update()
	if found == nil {
		t.Error("removal was not deferred")
	}
	if level.Object(aID) != nil || level.Count() != 1 {
		t.Error("deferred removal not applied")
	}
}

type benchLevel struct {
	level     Level
	positions []Vec2f
}

func createBenchLevels(create func(radius int) Level, end int) []benchLevel {
	var levels []benchLevel
	radius := 500
	for count := 64; count <= end; count *= 4 {
		level := create(radius)
		r := float32(radius)
		positions := make([]Vec2f, count)
		for i := range positions {
			positions[i] = Vec2f{X: rand.Float32()*r*2 - r, Y: rand.Float32()*r*2 - r}
			level.Add(newTestBox(positions[i], 10+rand.Float32()*20))
		}
		levels = append(levels, benchLevel{level: level, positions: positions})
		radius *= 2
	}
	return levels
}

// BenchLevel benchmarks a Level implementation
func BenchLevel(b *testing.B, create func(radius int) Level, end int) {
	levels := createBenchLevels(create, end)

	for _, l := range levels {
		level := l
		b.Run(fmt.Sprintf("Collide/%d", len(level.positions)), func(b *testing.B) {
			total := 0
			for i := 0; i < b.N; i++ {
				position := level.positions[i%len(level.positions)]
				total += len(level.level.Collide(position, Vec2f{X: 16, Y: 32}, Angle(i), nil))
			}
			_ = total
		})
	}

	for _, l := range levels {
		level := l
		b.Run(fmt.Sprintf("Overlap/%d", len(level.positions)), func(b *testing.B) {
			total := 0
			for i := 0; i < b.N; i++ {
				position := level.positions[i%len(level.positions)]
				total += len(level.level.Overlap(position, Vec2f{X: 20, Y: 20}, nil))
			}
			_ = total
		})
	}

	for _, l := range levels {
		level := l
		b.Run(fmt.Sprintf("Intersect/%d", len(level.positions)), func(b *testing.B) {
			total := 0
			for i := 0; i < b.N; i++ {
				position := level.positions[i%len(level.positions)]
				total += len(level.level.Intersect(position, position.Add(Vec2f{X: 100, Y: -100}), nil))
			}
			_ = total
		})
	}
}
