// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package geometry

import (
	"fmt"
	"github.com/SoftbearStudios/glide/server/world"
	"github.com/lafriks/go-tiled"
	"io/fs"
	"sort"
)

// SpawnGroup is the name of the Tiled object group whose objects are spawn points.
const SpawnGroup = "spawn"

// LoadTiled loads a Tiled map.
// Polygons and polylines in object groups become placements and
// objects in the SpawnGroup become spawn points. Tiled is Y-down so Y is negated, and
// closed shapes are rewound clockwise so their normals face out.
// Other objects with a size, ellipses included, become rectangles.
// Objects may have "scale" (float) and "reverseNormals" (bool) properties.
func LoadTiled(fsys fs.FS, name string) (*Map, error) {
	levelMap, err := tiled.LoadFile(name, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", name, err)
	}

	m := &Map{}
	for _, og := range levelMap.ObjectGroups {
		for _, o := range og.Objects {
			position := world.Vec2f{X: float32(o.X), Y: -float32(o.Y)}

			if og.Name == SpawnGroup {
				m.Spawns = append(m.Spawns, position)
				continue
			}

			shape := Shape{
				Scale:          float32(o.Properties.GetFloat("scale")),
				ReverseNormals: o.Properties.GetBool("reverseNormals"),
			}

			for _, polygon := range o.Polygons {
				shape.Segments = append(shape.Segments, segments(tiledPoints(polygon.Points), true)...)
			}
			for _, polyline := range o.PolyLines {
				shape.Segments = append(shape.Segments, segments(tiledPoints(polyline.Points), false)...)
			}
			if len(o.Polygons) == 0 && len(o.PolyLines) == 0 && o.Width > 0 && o.Height > 0 {
				rect := []world.Vec2f{
					{X: 0, Y: 0},
					{X: float32(o.Width), Y: 0},
					{X: float32(o.Width), Y: -float32(o.Height)},
					{X: 0, Y: -float32(o.Height)},
				}
				shape.Segments = append(shape.Segments, segments(rect, true)...)
			}

			if len(shape.Segments) == 0 {
				continue
			}
			m.Placements = append(m.Placements, Placement{Name: o.Name, Position: position, Shape: shape})
		}
	}

	// Spawn points left to right for consistent assignment
	sort.Slice(m.Spawns, func(i, j int) bool {
		return m.Spawns[i].X < m.Spawns[j].X
	})

	return m, nil
}

// tiledPoints converts Tiled points to Y-up.
func tiledPoints(points *tiled.Points) []world.Vec2f {
	if points == nil {
		return nil
	}
	result := make([]world.Vec2f, len(*points))
	for i, point := range *points {
		result[i] = world.Vec2f{X: float32(point.X), Y: -float32(point.Y)}
	}
	return result
}

// segments joins points into segments. Closed loops are wound clockwise.
func segments(points []world.Vec2f, closed bool) []Segment {
	if len(points) < 2 {
		return nil
	}

	if closed && signedArea(points) > 0 {
		// Counterclockwise
		reversed := make([]world.Vec2f, len(points))
		for i, point := range points {
			reversed[len(points)-1-i] = point
		}
		points = reversed
	}

	n := len(points) - 1
	if closed {
		n = len(points)
	}

	result := make([]Segment, 0, n)
	for i := 0; i < n; i++ {
		a := points[i]
		b := points[(i+1)%len(points)]
		result = append(result, Segment{a.X, a.Y, b.X, b.Y})
	}
	return result
}

// signedArea is positive for counterclockwise (Y-up) loops.
func signedArea(points []world.Vec2f) float32 {
	var area float32
	for i := range points {
		area += points[i].Cross(points[(i+1)%len(points)])
	}
	return area * 0.5
}
