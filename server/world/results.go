// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// Query result capacities.
// Results past these are dropped.
const (
	MaxCollisionResults = 32
	MaxOverlapResults   = 32
	MaxIntersectResults = 32
)

// CollisionQueryResult is one contact found by Level.Collide.
// The zero value is invalid and stands for "no surface".
type CollisionQueryResult struct {
	Contact
	Valid    bool
	Object   Object
	ObjectID ObjectID
}

// OverlapQueryResult is one object found by Level.Overlap.
type OverlapQueryResult struct {
	Valid       bool
	Object      Object
	ObjectID    ObjectID
	Center      Vec2f
	HalfExtents Vec2f
	Area        float32
}

// IntersectQueryResult is one crossing found by Level.Intersect.
type IntersectQueryResult struct {
	Valid    bool
	Object   Object
	ObjectID ObjectID
	Point    Vec2f
	Normal   Vec2f
	Distance float32 // along the ray, >= 0
}

// CollisionResults is the fixed capacity buffer Collidables add their contacts to.
type CollisionResults struct {
	buf      [MaxCollisionResults]CollisionQueryResult
	n        int
	object   Object
	objectID ObjectID
}

// Add records a contact for the object currently being queried.
// Returns false once the buffer is full, after which the contact is dropped.
func (results *CollisionResults) Add(contact Contact) bool {
	if results.n == len(results.buf) {
		return false
	}
	results.buf[results.n] = CollisionQueryResult{
		Contact:  contact,
		Valid:    true,
		Object:   results.object,
		ObjectID: results.objectID,
	}
	results.n++
	return true
}

func (results *CollisionResults) Full() bool {
	return results.n == len(results.buf)
}

func (results *CollisionResults) Len() int {
	return results.n
}

// Results aliases the buffer.
func (results *CollisionResults) Results() []CollisionQueryResult {
	return results.buf[:results.n]
}

func (results *CollisionResults) reset() {
	// Clear old object references
	for i := range results.buf[:results.n] {
		results.buf[i] = CollisionQueryResult{}
	}
	results.n = 0
	results.object = nil
	results.objectID = ObjectIDInvalid
}

func (results *CollisionResults) bind(objectID ObjectID, object Object) {
	results.objectID = objectID
	results.object = object
}

// IntersectResults is the fixed capacity buffer Intersectables add their crossings to.
type IntersectResults struct {
	buf      [MaxIntersectResults]IntersectQueryResult
	n        int
	object   Object
	objectID ObjectID
}

// Add records a crossing. Returns false once the buffer is full.
func (results *IntersectResults) Add(point, normal Vec2f, distance float32) bool {
	if results.n == len(results.buf) {
		return false
	}
	results.buf[results.n] = IntersectQueryResult{
		Valid:    true,
		Object:   results.object,
		ObjectID: results.objectID,
		Point:    point,
		Normal:   normal,
		Distance: max(distance, 0),
	}
	results.n++
	return true
}

func (results *IntersectResults) Full() bool {
	return results.n == len(results.buf)
}

func (results *IntersectResults) Len() int {
	return results.n
}

// Results aliases the buffer.
func (results *IntersectResults) Results() []IntersectQueryResult {
	return results.buf[:results.n]
}

func (results *IntersectResults) reset() {
	for i := range results.buf[:results.n] {
		results.buf[i] = IntersectQueryResult{}
	}
	results.n = 0
	results.object = nil
	results.objectID = ObjectIDInvalid
}

func (results *IntersectResults) bind(objectID ObjectID, object Object) {
	results.objectID = objectID
	results.object = object
}
