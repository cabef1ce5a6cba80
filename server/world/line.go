// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"errors"
)

// LineEpsilon is the length under which a Line is degenerate.
const LineEpsilon = 1e-4

var ErrDegenerateLine = errors.New("degenerate line")

// Line is one collision edge.
// Its Normal is Direction rotated counterclockwise, so solids wound clockwise
// (Y-up) have outward normals.
type Line struct {
	Start     Vec2f `json:"start"`
	End       Vec2f `json:"end"`
	Normal    Vec2f `json:"normal"`
	Direction Vec2f `json:"direction"`

	// Endpoints that aren't collideable never produce point collisions.
	StartCollideable bool `json:"startCollideable"`
	EndCollideable   bool `json:"endCollideable"`
}

// NewLine creates a Line with both endpoints collideable.
func NewLine(start, end Vec2f) (Line, error) {
	direction, ok := end.Sub(start).NormOk()
	if !ok || start.Distance(end) < LineEpsilon {
		return Line{}, ErrDegenerateLine
	}
	return Line{
		Start:            start,
		End:              end,
		Normal:           direction.Rot90(),
		Direction:        direction,
		StartCollideable: true,
		EndCollideable:   true,
	}, nil
}

func (line *Line) Length() float32 {
	return line.End.Sub(line.Start).Length()
}

func (line *Line) Bounds() AABB {
	return AABBFromPoints(line.Start, line.End)
}

func (line Line) Translate(offset Vec2f) Line {
	line.Start = line.Start.Add(offset)
	line.End = line.End.Add(offset)
	return line
}

// Scale scales about the origin. factor must be positive.
func (line Line) Scale(factor float32) Line {
	line.Start = line.Start.Mul(factor)
	line.End = line.End.Mul(factor)
	return line
}

// Reverse swaps the endpoints, which flips the normal.
func (line Line) Reverse() Line {
	line.Start, line.End = line.End, line.Start
	line.StartCollideable, line.EndCollideable = line.EndCollideable, line.StartCollideable
	line.Direction = line.Direction.Rot180()
	line.Normal = line.Normal.Rot180()
	return line
}

// SignedDistance is the distance from point to the infinite line, positive on the normal side.
func (line *Line) SignedDistance(point Vec2f) float32 {
	return point.Sub(line.Start).Dot(line.Normal)
}

// cornerEpsilon is how close two endpoints must be to be considered shared.
const cornerEpsilon = 1e-3

// PruneConcaveCorners marks shared endpoints of concave corners as non-collideable
// so motion glides through concave notches instead of catching on phantom corners.
// A corner where a ends and b starts is concave if a's direction points against b's normal.
// O(n^2), meant to be called once when geometry is loaded.
func PruneConcaveCorners(lines []Line) {
	const cornerEpsilon2 = cornerEpsilon * cornerEpsilon
	for i := range lines {
		a := &lines[i]
		for j := range lines {
			if i == j {
				continue
			}
			b := &lines[j]
			if a.End.DistanceSquared(b.Start) > cornerEpsilon2 {
				continue
			}
			if a.Direction.Dot(b.Normal) < 0 {
				a.EndCollideable = false
				b.StartCollideable = false
			}
		}
	}
}
