// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sector

import (
	"github.com/SoftbearStudios/glide/server/world"
)

// sectorRange returns the sectors covering bounds.
// Bounds outside the Level are clamped to the edge sectors, which hold everything beyond them.
func (l *Level) sectorRange(bounds world.AABB) (minSectorID, maxSectorID sectorID) {
	width := l.width
	min := -int16(width / 2)
	max := int16(width/2 - 1)

	minSectorID = vec2fSectorID(bounds.Vec2f).min(min).max(max)
	maxSectorID = vec2fSectorID(bounds.Max()).min(min).max(max)
	return
}

// forSectorsInBounds Iterates all the sectors overlapping bounds and returns if stopped early
func (l *Level) forSectorsInBounds(bounds world.AABB, callback func(sectorID sectorID, sector *sector) (stop bool)) bool {
	minSectorID, maxSectorID := l.sectorRange(bounds)
	min := -int16(l.width / 2)

	width2 := int(l.width)
	sectors := l.sectors

	// Iterate y in outer for better locality of reference
	for y := minSectorID.y; y <= maxSectorID.y; y++ {
		for x := minSectorID.x; x <= maxSectorID.x; x++ {
			s := &sectors[int(x-min)+int(y-min)*width2]
			if callback(sectorID{x: x, y: y}, s) {
				return true
			}
		}
	}

	return false
}

// candidates returns the objects that might be in bounds in id order.
// The result aliases a buffer that is reused by the next call.
func (l *Level) candidates(bounds world.AABB) []sectorObject {
	buf := append(l.candidateBuf[:0], l.always...)
	sorted := true

	l.forSectorsInBounds(bounds, func(_ sectorID, s *sector) bool {
		if len(s.objects) > 0 {
			buf = append(buf, s.objects...)
			sorted = false
		}
		return false
	})

	if !sorted {
		sortObjects(buf)
		buf = dedup(buf)
	}

	l.candidateBuf = buf
	return buf
}
