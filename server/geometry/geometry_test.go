// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package geometry

import (
	"errors"
	"github.com/SoftbearStudios/glide/server/world"
	"github.com/SoftbearStudios/glide/server/world/single"
	"testing"
	"testing/fstest"
)

func TestShape_Lines(t *testing.T) {
	// Counterclockwise square with reversed normals
	shape, err := ParseShape([]byte(`{"scale": 2, "reverseNormals": true, "lines": [
		[0, 0, 10, 0], [10, 0, 10, 10], [10, 10, 0, 10], [0, 10, 0, 0], [5, 5, 5, 5]
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	lines := shape.Lines(world.Vec2f{X: 100, Y: 50})
	if len(lines) != 4 {
		t.Fatalf("expected degenerate line to be skipped, found %d lines", len(lines))
	}

	bottom := lines[0]
	if !bottom.Start.ApproxEqual(world.Vec2f{X: 120, Y: 50}, 1e-4) || !bottom.End.ApproxEqual(world.Vec2f{X: 100, Y: 50}, 1e-4) {
		t.Errorf("bottom not scaled, reversed and translated: %+v", bottom)
	}
	if !bottom.Normal.ApproxEqual(world.Vec2f{Y: -1}, 1e-6) {
		t.Errorf("bottom normal should face out, found %v", bottom.Normal)
	}
	for _, line := range lines {
		if !line.StartCollideable || !line.EndCollideable {
			t.Errorf("convex corner pruned: %+v", line)
		}
	}
}

func TestShape_Invalid(t *testing.T) {
	if _, err := ParseShape([]byte(`{"lines": [[0, 0, 1, "a"]]}`)); err == nil {
		t.Error("expected error for non numeric line")
	}
	if _, err := ParseShape([]byte(`{"lines": [], "color": "red"}`)); err == nil {
		t.Error("expected error for unknown field")
	}
	shape := Shape{Scale: -1, Segments: []Segment{{0, 0, 1, 1}}}
	if lines := shape.Lines(world.Vec2f{}); len(lines) != 0 {
		t.Error("negative scale produced lines")
	}
}

const testTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" tiledversion="1.10.2" orientation="orthogonal" renderorder="right-down" width="16" height="16" tilewidth="16" tileheight="16" infinite="0" nextlayerid="3" nextobjectid="6">
 <objectgroup id="1" name="solids">
  <object id="1" name="floor" x="100" y="200">
   <polygon points="0,0 50,0 50,20 0,20"/>
  </object>
  <object id="2" name="backwards" x="300" y="200">
   <polygon points="0,0 0,20 50,20 50,0"/>
  </object>
  <object id="3" name="ledge" x="0" y="0">
   <properties>
    <property name="scale" type="float" value="2"/>
   </properties>
   <polyline points="0,0 10,0"/>
  </object>
  <object id="4" name="crate" x="0" y="100" width="10" height="10"/>
 </objectgroup>
 <objectgroup id="2" name="spawn">
  <object id="5" x="80" y="150"/>
  <object id="6" x="20" y="150"/>
 </objectgroup>
</map>`

func TestLoadTiled(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/test.tmx": &fstest.MapFile{Data: []byte(testTMX)},
	}

	m, err := LoadMap(fsys, "levels/test.tmx")
	if err != nil {
		t.Fatal(err)
	}

	if len(m.Spawns) != 2 || m.Spawns[0] != (world.Vec2f{X: 20, Y: -150}) {
		t.Errorf("wrong spawns %v", m.Spawns)
	}
	if len(m.Placements) != 4 {
		t.Fatalf("expected 4 placements, found %d", len(m.Placements))
	}

	// Both windings face out
	for _, placement := range m.Placements[:2] {
		lines := placement.Shape.Lines(placement.Position)
		if len(lines) != 4 {
			t.Fatalf("%s: expected 4 lines, found %d", placement.Name, len(lines))
		}
		foundTop := false
		for _, line := range lines {
			center := world.Vec2f{X: placement.Position.X + 25, Y: placement.Position.Y - 10}
			if line.SignedDistance(center) >= 0 {
				t.Errorf("%s: normal %v faces in", placement.Name, line.Normal)
			}
			if line.Normal.ApproxEqual(world.Up, 1e-6) && line.Start.Y == placement.Position.Y {
				foundTop = true
			}
		}
		if !foundTop {
			t.Errorf("%s: no top", placement.Name)
		}
	}

	ledge := m.Placements[2]
	if ledge.Name != "ledge" || ledge.Shape.Scale != 2 || len(ledge.Shape.Segments) != 1 {
		t.Errorf("wrong ledge %+v", ledge)
	} else if lines := ledge.Shape.Lines(ledge.Position); lines[0].Length() != 20 {
		t.Errorf("ledge not scaled: %+v", lines[0])
	}

	crate := m.Placements[3]
	if crate.Name != "crate" || len(crate.Shape.Segments) != 4 {
		t.Errorf("wrong crate %+v", crate)
	}
}

func TestLoadMap_JSON(t *testing.T) {
	m := &Map{
		Placements: []Placement{{Name: "a", Position: world.Vec2f{X: 1, Y: 2}, Shape: Shape{Segments: []Segment{{0, 0, 1, 0}}}}},
		Spawns:     []world.Vec2f{{X: 3, Y: 4}},
	}
	data, err := MarshalMap(m)
	if err != nil {
		t.Fatal(err)
	}

	fsys := fstest.MapFS{"level.json": &fstest.MapFile{Data: data}}
	loaded, err := LoadMap(fsys, "level.json")
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Placements) != 1 || loaded.Placements[0].Position != m.Placements[0].Position || loaded.Spawns[0] != m.Spawns[0] {
		t.Errorf("loaded %+v", loaded)
	}

	if _, err := LoadMap(fsys, "level.xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected unknown format, found %v", err)
	}
	if _, err := LoadMap(fsys, "missing.json"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMap_Populate(t *testing.T) {
	m := &Map{
		Placements: []Placement{
			{Name: "floor", Shape: Shape{Segments: []Segment{{-100, 0, 100, 0}}}},
			{Name: "empty"},
			{Name: "hidden", Shape: Shape{Scale: -1, Segments: []Segment{{0, 0, 1, 0}}}},
		},
	}
	level := single.New()
	if added := m.Populate(level); added != 1 || level.Count() != 1 {
		t.Fatalf("expected 1 sprite, found %d", level.Count())
	}

	// Floor is solid from above
	results := level.Collide(world.Vec2f{Y: 5}, world.Vec2f{X: 10, Y: 10}, 0, nil)
	if len(results) != 1 || !results[0].ResolveDirection.ApproxEqual(world.Up, 1e-5) {
		t.Errorf("wrong contacts %+v", results)
	}
}
