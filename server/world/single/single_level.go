// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package single

import (
	"fmt"
	"github.com/SoftbearStudios/glide/server/world"
	"sort"
)

// Level is a world.Level that visits every object on every query
type Level struct {
	objects  []entry // sorted by id
	ids      world.ObjectIDAllocator
	query    world.Query
	updating bool
	removals []world.ObjectID // deferred until the end of Update
}

type entry struct {
	world.ObjectID
	world.Object
}

func New() *Level {
	return &Level{}
}

func (l *Level) Add(object world.Object) world.ObjectID {
	world.CheckObject(object)
	objectID := l.ids.Allocate()
	// Ids increase so appending keeps objects sorted
	l.objects = append(l.objects, entry{ObjectID: objectID, Object: object})
	return objectID
}

func (l *Level) Remove(objectID world.ObjectID) {
	if l.updating {
		l.removals = append(l.removals, objectID)
		return
	}
	if i, ok := l.index(objectID); ok {
		copy(l.objects[i:], l.objects[i+1:])
		l.objects[len(l.objects)-1] = entry{}
		l.objects = l.objects[:len(l.objects)-1]
	}
}

func (l *Level) Object(objectID world.ObjectID) world.Object {
	if i, ok := l.index(objectID); ok {
		return l.objects[i].Object
	}
	return nil
}

func (l *Level) Count() int {
	return len(l.objects)
}

func (l *Level) ForObjects(callback func(objectID world.ObjectID, object world.Object) (stop bool)) bool {
	for _, e := range l.objects {
		if callback(e.ObjectID, e.Object) {
			return true
		}
	}
	return false
}

func (l *Level) Update() {
	if l.updating {
		panic("cannot update during update")
	}
	l.updating = true

	// Objects added during the frame are appended past n
	n := len(l.objects)
	for i := 0; i < n; i++ {
		e := l.objects[i]
		updater, ok := e.Object.(world.Updater)
		if !ok || l.removing(e.ObjectID) {
			continue
		}
		if updater.Update(l) {
			l.removals = append(l.removals, e.ObjectID)
		}
	}

	l.updating = false
	for _, objectID := range l.removals {
		l.Remove(objectID)
	}
	l.removals = l.removals[:0]
}

func (l *Level) Debug() {
	fmt.Printf("single level: objects: %d\n", l.Count())
}

func (l *Level) Collide(position, halfExtents world.Vec2f, rotation world.Angle, exclude world.Object) []world.CollisionQueryResult {
	if _, ok := l.query.BeginCollide(position, halfExtents, rotation, exclude); ok {
		for _, e := range l.objects {
			if l.query.Collide(e.ObjectID, e.Object) {
				break
			}
		}
	}
	return l.query.Collisions()
}

func (l *Level) Overlap(center, halfExtents world.Vec2f, exclude world.Object) []world.OverlapQueryResult {
	if _, ok := l.query.BeginOverlap(center, halfExtents, exclude); ok {
		for _, e := range l.objects {
			if l.query.Overlap(e.ObjectID, e.Object) {
				break
			}
		}
	}
	return l.query.Overlaps()
}

func (l *Level) Intersect(start, end world.Vec2f, exclude world.Object) []world.IntersectQueryResult {
	if _, ok := l.query.BeginIntersect(start, end, exclude); ok {
		for _, e := range l.objects {
			if l.query.Intersect(e.ObjectID, e.Object) {
				break
			}
		}
	}
	return l.query.Intersections()
}

func (l *Level) index(objectID world.ObjectID) (int, bool) {
	i := sort.Search(len(l.objects), func(i int) bool {
		return l.objects[i].ObjectID >= objectID
	})
	return i, i < len(l.objects) && l.objects[i].ObjectID == objectID
}

func (l *Level) removing(objectID world.ObjectID) bool {
	for _, id := range l.removals {
		if id == objectID {
			return true
		}
	}
	return false
}
