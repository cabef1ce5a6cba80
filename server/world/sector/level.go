// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sector

import (
	"fmt"
	"github.com/SoftbearStudios/glide/server/world"
	"math"
)

const size = 256 // World units

type (
	// Level is an implementation of world.Level which divides static objects into sectors
	// Objects that are Updaters or aren't Bounded can move so are visited by every query
	Level struct {
		sectors      []sector       // sectors stores the static objects in spatial partitions
		always       []sectorObject // always is visited by every query, sorted by id
		objects      []sectorObject // objects is every object sorted by id
		candidateBuf []sectorObject // candidateBuf is reused by queries
		ids          world.ObjectIDAllocator
		query        world.Query
		width        uint16           // width is cross section in sector space
		logWidth     uint8            // logWidth is log2(width)
		updating     bool             // removals are deferred while updating
		removals     []world.ObjectID // removals to do after Update
	}

	// sector is one bucket of the Level
	sector struct {
		objects []sectorObject // sorted by id
	}

	// sectorObject stores its id next to the object
	sectorObject struct {
		world.ObjectID
		world.Object
		static bool
	}
)

// New creates a new Level with sectors covering a square of radius.
// Objects outside it still work but share the edge sectors.
func New(radius float32) *Level {
	intWidth := int(radius*(1.0/size))*2 + 2
	if radius < 0 || intWidth > math.MaxInt16/2 {
		panic("radius out of range")
	}
	width := nextPowerOf2(uint16(intWidth))

	return &Level{
		sectors:  make([]sector, int(width)*int(width)),
		width:    width,
		logWidth: log2(width),
	}
}

func (l *Level) Add(object world.Object) world.ObjectID {
	world.CheckObject(object)

	o := sectorObject{ObjectID: l.ids.Allocate(), Object: object}
	_, updater := object.(world.Updater)
	bounded, ok := object.(world.Bounded)
	o.static = ok && !updater

	// Ids increase so appending keeps slices sorted
	l.objects = append(l.objects, o)
	if o.static {
		l.forSectorsInBounds(bounded.Bounds(), func(_ sectorID, s *sector) bool {
			s.objects = append(s.objects, o)
			return false
		})
	} else {
		l.always = append(l.always, o)
	}
	return o.ObjectID
}

func (l *Level) Remove(objectID world.ObjectID) {
	if l.updating {
		l.removals = append(l.removals, objectID)
		return
	}

	i := search(l.objects, objectID)
	if i == len(l.objects) || l.objects[i].ObjectID != objectID {
		return
	}
	o := l.objects[i]

	if o.static {
		l.forSectorsInBounds(o.Object.(world.Bounded).Bounds(), func(_ sectorID, s *sector) bool {
			s.objects = remove(s.objects, objectID)
			if len(s.objects) == 0 {
				// Delete slice if no more objects
				s.objects = nil
			}
			return false
		})
	} else {
		l.always = remove(l.always, objectID)
	}
	l.objects = remove(l.objects, objectID)
}

func (l *Level) Object(objectID world.ObjectID) world.Object {
	i := search(l.objects, objectID)
	if i == len(l.objects) || l.objects[i].ObjectID != objectID {
		return nil
	}
	return l.objects[i].Object
}

func (l *Level) Count() int {
	return len(l.objects)
}

func (l *Level) ForObjects(callback func(objectID world.ObjectID, object world.Object) (stop bool)) bool {
	for _, o := range l.objects {
		if callback(o.ObjectID, o.Object) {
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
		o := l.objects[i]
		if o.static {
			continue
		}
		updater, ok := o.Object.(world.Updater)
		if !ok || l.removing(o.ObjectID) {
			continue
		}
		if updater.Update(l) {
			l.removals = append(l.removals, o.ObjectID)
		}
	}

	l.updating = false
	for _, objectID := range l.removals {
		l.Remove(objectID)
	}
	l.removals = l.removals[:0]
}

// Debug output
func (l *Level) Debug() {
	occupied := 0
	busiest := 0
	var busiestID sectorID
	for i := range l.sectors {
		count := len(l.sectors[i].objects)
		if count == 0 {
			continue
		}
		occupied++
		if count > busiest {
			busiest = count
			busiestID = sliceIndexSectorID(i, l.width, l.logWidth)
		}
	}
	fmt.Printf("sector level: sectors: %d (%d occupied), objects: %d, always: %d, busiest: %v with %d\n",
		len(l.sectors), occupied, l.Count(), len(l.always), busiestID, busiest)
}

func (l *Level) Collide(position, halfExtents world.Vec2f, rotation world.Angle, exclude world.Object) []world.CollisionQueryResult {
	if bounds, ok := l.query.BeginCollide(position, halfExtents, rotation, exclude); ok {
		for _, o := range l.candidates(bounds) {
			if l.query.Collide(o.ObjectID, o.Object) {
				break
			}
		}
	}
	return l.query.Collisions()
}

func (l *Level) Overlap(center, halfExtents world.Vec2f, exclude world.Object) []world.OverlapQueryResult {
	if box, ok := l.query.BeginOverlap(center, halfExtents, exclude); ok {
		for _, o := range l.candidates(box) {
			if l.query.Overlap(o.ObjectID, o.Object) {
				break
			}
		}
	}
	return l.query.Overlaps()
}

func (l *Level) Intersect(start, end world.Vec2f, exclude world.Object) []world.IntersectQueryResult {
	if bounds, ok := l.query.BeginIntersect(start, end, exclude); ok {
		for _, o := range l.candidates(bounds) {
			if l.query.Intersect(o.ObjectID, o.Object) {
				break
			}
		}
	}
	return l.query.Intersections()
}

func (l *Level) removing(objectID world.ObjectID) bool {
	for _, id := range l.removals {
		if id == objectID {
			return true
		}
	}
	return false
}
