// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sector

import (
	"github.com/SoftbearStudios/glide/server/world"
)

// sectorID is a unique identifier of a sector by is position in the Level
type sectorID struct {
	x, y int16
}

// min sets the sectorID's min value
func (id sectorID) min(m int16) sectorID {
	if id.x < m {
		id.x = m
	}
	if id.y < m {
		id.y = m
	}
	return id
}

// max sets the sectorID's max value
func (id sectorID) max(m int16) sectorID {
	if id.x > m {
		id.x = m
	}
	if id.y > m {
		id.y = m
	}
	return id
}

func (id sectorID) sliceIndex(width uint16) int {
	min := -int16(width / 2)
	max := int16(width / 2)

	if id.x < min || id.x >= max || id.y < min || id.y >= max {
		return -1
	}

	x := int(id.x - min)
	y := int(id.y - min)

	return x + y*int(width)
}

// sliceIndexSectorID returns a sectorID from a slice index.
// width must be a power of 2.
func sliceIndexSectorID(index int, width uint16, logWidth uint8) sectorID {
	return sectorID{x: int16(int(uint16(index)&(width-1)) - int(width/2)), y: int16((index >> logWidth) - int(width/2))}
}

// vec2fSectorID returns the sector containing vec, which may be outside the Level.
func vec2fSectorID(vec world.Vec2f) sectorID {
	s := vec.Mul(1.0 / size).Floor()
	// Clamp before converting so far away positions don't wrap
	const limit = 1 << 14
	return sectorID{x: int16(max(-limit, min(limit, s.X))), y: int16(max(-limit, min(limit, s.Y)))}
}
