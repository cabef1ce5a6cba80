// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sector

import (
	"github.com/SoftbearStudios/glide/server/world"
	"math/bits"
	"sort"
)

// nextPowerOf2 returns the next power of 2 after or equal to n.
func nextPowerOf2(n uint16) uint16 {
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	return n + 1
}

func log2(n uint16) uint8 {
	return uint8(bits.Len16(n - 1))
}

func sortObjects(objects []sectorObject) {
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].ObjectID < objects[j].ObjectID
	})
}

// dedup removes adjacent duplicates from sorted objects.
func dedup(objects []sectorObject) []sectorObject {
	if len(objects) < 2 {
		return objects
	}
	n := 1
	for i := 1; i < len(objects); i++ {
		if objects[i].ObjectID != objects[n-1].ObjectID {
			objects[n] = objects[i]
			n++
		}
	}
	// Clear references past the end
	for i := n; i < len(objects); i++ {
		objects[i] = sectorObject{}
	}
	return objects[:n]
}

// remove removes the object with objectID, if any, keeping objects sorted.
func remove(objects []sectorObject, objectID world.ObjectID) []sectorObject {
	i := search(objects, objectID)
	if i == len(objects) || objects[i].ObjectID != objectID {
		return objects
	}
	copy(objects[i:], objects[i+1:])
	objects[len(objects)-1] = sectorObject{}
	return objects[:len(objects)-1]
}

func search(objects []sectorObject, objectID world.ObjectID) int {
	return sort.Search(len(objects), func(i int) bool {
		return objects[i].ObjectID >= objectID
	})
}
