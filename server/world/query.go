// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// Query is the dispatch engine behind Level queries.
// A Level calls Begin*, then the matching method for each candidate object in ObjectID order,
// then reads the results. Every Begin* overwrites the previous results.
// The zero value is ready to use.
type Query struct {
	cache      CollisionCache
	collisions CollisionResults

	box          AABB
	overlaps     [MaxOverlapResults]OverlapQueryResult
	overlapCount int

	ray        Ray
	intersects IntersectResults

	exclude Object
}

// BeginCollide starts a Collide query.
// ok is false if the ellipse is degenerate, in which case there are no candidates.
func (query *Query) BeginCollide(position, halfExtents Vec2f, rotation Angle, exclude Object) (bounds AABB, ok bool) {
	query.collisions.reset()
	query.exclude = exclude
	if !query.cache.Reset(position, halfExtents, rotation) {
		return
	}
	return query.cache.Bounds(), true
}

// Collide dispatches to one candidate. Returns true once the results are full.
func (query *Query) Collide(objectID ObjectID, object Object) (full bool) {
	if query.excluded(object) {
		return query.collisions.Full()
	}
	if collidable, ok := object.(Collidable); ok {
		query.collisions.bind(objectID, object)
		collidable.CollisionQuery(&query.cache, &query.collisions)
	}
	return query.collisions.Full()
}

// Collisions aliases the result buffer until the next BeginCollide.
func (query *Query) Collisions() []CollisionQueryResult {
	return query.collisions.Results()
}

// BeginOverlap starts an Overlap query.
func (query *Query) BeginOverlap(center, halfExtents Vec2f, exclude Object) (box AABB, ok bool) {
	for i := range query.overlaps[:query.overlapCount] {
		query.overlaps[i] = OverlapQueryResult{}
	}
	query.overlapCount = 0
	query.exclude = exclude
	if halfExtents.X < 0 || halfExtents.Y < 0 {
		return
	}
	query.box = AABBFromCenter(center, halfExtents)
	return query.box, true
}

func (query *Query) Overlap(objectID ObjectID, object Object) (full bool) {
	if query.overlapCount == len(query.overlaps) {
		return true
	}
	if query.excluded(object) {
		return false
	}
	overlappable, ok := object.(Overlappable)
	if !ok {
		return false
	}
	region, ok := overlappable.OverlapQuery(query.box)
	if !ok {
		return false
	}
	query.overlaps[query.overlapCount] = OverlapQueryResult{
		Valid:       true,
		Object:      object,
		ObjectID:    objectID,
		Center:      region.Center(),
		HalfExtents: region.HalfExtents(),
		Area:        region.Area(),
	}
	query.overlapCount++
	return query.overlapCount == len(query.overlaps)
}

// Overlaps aliases the result buffer until the next BeginOverlap.
func (query *Query) Overlaps() []OverlapQueryResult {
	return query.overlaps[:query.overlapCount]
}

// BeginIntersect starts an Intersect query.
// ok is false for zero length rays.
func (query *Query) BeginIntersect(start, end Vec2f, exclude Object) (bounds AABB, ok bool) {
	query.intersects.reset()
	query.exclude = exclude
	query.ray = Ray{Start: start, End: end}
	if start.DistanceSquared(end) < NormEpsilon*NormEpsilon {
		return
	}
	return query.ray.Bounds(), true
}

func (query *Query) Intersect(objectID ObjectID, object Object) (full bool) {
	if query.excluded(object) {
		return query.intersects.Full()
	}
	if intersectable, ok := object.(Intersectable); ok {
		query.intersects.bind(objectID, object)
		intersectable.IntersectQuery(query.ray, &query.intersects)
	}
	return query.intersects.Full()
}

// Intersections aliases the result buffer until the next BeginIntersect.
func (query *Query) Intersections() []IntersectQueryResult {
	return query.intersects.Results()
}

func (query *Query) excluded(object Object) bool {
	return query.exclude != nil && object == query.exclude
}
