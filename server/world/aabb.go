// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

// AABB is an axis aligned box given by its minimum corner and its size.
type AABB struct {
	Vec2f
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

func AABBFrom(x, y, width, height float32) AABB {
	return AABB{
		Vec2f:  Vec2f{X: x, Y: y},
		Width:  width,
		Height: height,
	}
}

// AABBFromCenter creates an AABB from its center and half extents.
func AABBFromCenter(center, halfExtents Vec2f) AABB {
	return AABB{
		Vec2f:  center.Sub(halfExtents),
		Width:  halfExtents.X * 2,
		Height: halfExtents.Y * 2,
	}
}

// AABBFromPoints is the smallest AABB containing both points.
func AABBFromPoints(a, b Vec2f) AABB {
	return AABB{
		Vec2f:  Vec2f{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Width:  max(a.X, b.X) - min(a.X, b.X),
		Height: max(a.Y, b.Y) - min(a.Y, b.Y),
	}
}

func (a AABB) Center() Vec2f {
	return Vec2f{X: a.X + a.Width*0.5, Y: a.Y + a.Height*0.5}
}

func (a AABB) HalfExtents() Vec2f {
	return Vec2f{X: a.Width * 0.5, Y: a.Height * 0.5}
}

// Max is the maximum corner.
func (a AABB) Max() Vec2f {
	return Vec2f{X: a.X + a.Width, Y: a.Y + a.Height}
}

func (a AABB) Area() float32 {
	return a.Width * a.Height
}

// Intersects a and b are intersecting
func (a AABB) Intersects(b AABB) bool {
	return a.X+a.Width >= b.X && a.X <= b.X+b.Width && a.Y+a.Height >= b.Y && a.Y <= b.Height+b.Y
}

// Contains a fully contains b
func (a AABB) Contains(b AABB) bool {
	return a.X <= b.X && a.Y <= b.Y && a.X+a.Width >= b.X+b.Width && a.Y+a.Height >= b.Y+b.Height
}

// Intersection is the region shared by a and b.
// ok is false if they don't overlap by a positive area.
func (a AABB) Intersection(b AABB) (region AABB, ok bool) {
	minX := max(a.X, b.X)
	minY := max(a.Y, b.Y)
	maxX := min(a.X+a.Width, b.X+b.Width)
	maxY := min(a.Y+a.Height, b.Y+b.Height)
	if maxX <= minX || maxY <= minY {
		return
	}
	return AABB{Vec2f: Vec2f{X: minX, Y: minY}, Width: maxX - minX, Height: maxY - minY}, true
}

// Union is the smallest AABB containing a and b.
func (a AABB) Union(b AABB) AABB {
	minX := min(a.X, b.X)
	minY := min(a.Y, b.Y)
	maxX := max(a.X+a.Width, b.X+b.Width)
	maxY := max(a.Y+a.Height, b.Y+b.Height)
	return AABB{Vec2f: Vec2f{X: minX, Y: minY}, Width: maxX - minX, Height: maxY - minY}
}

// Expand grows a by margin on every side.
func (a AABB) Expand(margin float32) AABB {
	a.X -= margin
	a.Y -= margin
	a.Width += margin * 2
	a.Height += margin * 2
	return a
}

// CornerCoordinates Center coords to corner coords
func (a AABB) CornerCoordinates() AABB {
	a.Vec2f = Vec2f{X: a.X - a.Width*0.5, Y: a.Y - a.Height*0.5}
	return a
}
