// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package geometry

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/glide/server/solid"
	"github.com/SoftbearStudios/glide/server/world"
	jsoniter "github.com/json-iterator/go"
	"io/fs"
	"path"
)

var json = jsoniter.Config{
	EscapeHTML:                    false,
	SortMapKeys:                   true,
	DisallowUnknownFields:         true,
	TagKey:                        "json",
	ObjectFieldMustBeSimpleString: true,
	CaseSensitive:                 true,
}.Froze()

var ErrUnknownFormat = errors.New("unknown level format")

// Segment is one line given as x1, y1, x2, y2.
type Segment [4]float32

// Shape is the persisted collision boundary of a solid.
type Shape struct {
	// Scale is applied about the origin of the shape, 0 means 1.
	Scale float32 `json:"scale,omitempty"`
	// ReverseNormals flips every line so a counterclockwise boundary faces outward.
	ReverseNormals bool      `json:"reverseNormals,omitempty"`
	Segments       []Segment `json:"lines"`
}

// Placement is a Shape at a position in a level.
type Placement struct {
	Name     string      `json:"name"`
	Position world.Vec2f `json:"position"`
	Shape    Shape       `json:"shape"`
}

// Map is the static content of a level.
type Map struct {
	Placements []Placement   `json:"placements"`
	Spawns     []world.Vec2f `json:"spawns"`
}

// ParseShape decodes a JSON Shape.
func ParseShape(data []byte) (*Shape, error) {
	var shape Shape
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, fmt.Errorf("parse shape: %w", err)
	}
	return &shape, nil
}

// Lines returns the lines of the shape in world space with concave corners pruned.
// Degenerate lines are skipped.
func (shape *Shape) Lines(position world.Vec2f) []world.Line {
	scale := shape.Scale
	if scale == 0 {
		scale = 1
	} else if scale < 0 {
		return nil
	}

	lines := make([]world.Line, 0, len(shape.Segments))
	for _, segment := range shape.Segments {
		line, err := world.NewLine(world.Vec2f{X: segment[0], Y: segment[1]}, world.Vec2f{X: segment[2], Y: segment[3]})
		if err != nil {
			continue
		}
		if shape.ReverseNormals {
			line = line.Reverse()
		}
		if scale != 1 {
			line = line.Scale(scale)
			if line.Length() < world.LineEpsilon {
				continue
			}
		}
		lines = append(lines, line)
	}

	// Pruned before translating so the epsilon is relative to the shape
	world.PruneConcaveCorners(lines)
	for i := range lines {
		lines[i] = lines[i].Translate(position)
	}
	return lines
}

// LoadMap loads a level from a Tiled map (.tmx) or JSON Map (.json).
func LoadMap(fsys fs.FS, name string) (*Map, error) {
	switch path.Ext(name) {
	case ".tmx":
		return LoadTiled(fsys, name)
	case ".json":
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read map %s: %w", name, err)
		}
		var m Map
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse map %s: %w", name, err)
		}
		return &m, nil
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownFormat)
	}
}

// MarshalMap encodes m as JSON.
func MarshalMap(m *Map) ([]byte, error) {
	return json.Marshal(m)
}

// Populate adds a solid.Sprite to level for every placement that has lines.
// Returns the number added.
func (m *Map) Populate(level world.Level) int {
	added := 0
	for i := range m.Placements {
		placement := &m.Placements[i]
		lines := placement.Shape.Lines(placement.Position)
		if len(lines) == 0 {
			continue
		}
		level.Add(solid.NewSprite(placement.Name, lines))
		added++
	}
	return added
}
