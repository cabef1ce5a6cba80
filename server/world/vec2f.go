// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
	"math"
)

// NormEpsilon is the shortest vector NormOk will normalize.
const NormEpsilon = 1e-6

type Vec2f struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Up is the world up direction (Y-up).
var Up = Vec2f{X: 0, Y: 1}

func (vec Vec2f) Mul(factor float32) Vec2f {
	vec.X *= factor
	vec.Y *= factor
	return vec
}

func (vec Vec2f) Div(divisor float32) Vec2f {
	return vec.Mul(1.0 / divisor)
}

func (vec Vec2f) AddScaled(otherVec Vec2f, factor float32) Vec2f {
	vec.X += otherVec.X * factor
	vec.Y += otherVec.Y * factor
	return vec
}

func (vec Vec2f) Add(otherVec Vec2f) Vec2f {
	vec.X += otherVec.X
	vec.Y += otherVec.Y
	return vec
}

func (vec Vec2f) Sub(otherVec Vec2f) Vec2f {
	vec.X -= otherVec.X
	vec.Y -= otherVec.Y
	return vec
}

func (vec Vec2f) Dot(otherVec Vec2f) float32 {
	return vec.X*otherVec.X + vec.Y*otherVec.Y
}

// Cross is the z component of the 3D cross product.
func (vec Vec2f) Cross(otherVec Vec2f) float32 {
	return vec.X*otherVec.Y - vec.Y*otherVec.X
}

func (vec Vec2f) Angle() Angle {
	return Angle(math32.Atan2(vec.Y, vec.X))
}

// Rot90 rotates 90 degrees counterclockwise (Y-up).
func (vec Vec2f) Rot90() Vec2f {
	return Vec2f{X: -vec.Y, Y: vec.X}
}

// RotN90 rotates 90 degrees clockwise (Y-up).
func (vec Vec2f) RotN90() Vec2f {
	return Vec2f{X: vec.Y, Y: -vec.X}
}

// Rot180 rotates 180 degrees.
func (vec Vec2f) Rot180() Vec2f {
	return Vec2f{X: -vec.X, Y: -vec.Y}
}

// Rotate rotates counterclockwise by an angle given as its sine and cosine.
func (vec Vec2f) Rotate(sin, cos float32) Vec2f {
	return Vec2f{X: vec.X*cos - vec.Y*sin, Y: vec.X*sin + vec.Y*cos}
}

func (vec Vec2f) Distance(otherVec Vec2f) float32 {
	return vec.Sub(otherVec).Length()
}

func (vec Vec2f) DistanceSquared(otherVec Vec2f) float32 {
	x := vec.X - otherVec.X
	y := vec.Y - otherVec.Y
	return x*x + y*y
}

func (vec Vec2f) Length() float32 {
	return math32.Hypot(vec.X, vec.Y)
}

func (vec Vec2f) LengthSquared() float32 {
	return vec.X*vec.X + vec.Y*vec.Y
}

func Lerp(a, b, factor float32) float32 {
	return a + (b-a)*factor
}

func (vec Vec2f) Lerp(otherVec Vec2f, factor float32) Vec2f {
	vec.X = Lerp(vec.X, otherVec.X, factor)
	vec.Y = Lerp(vec.Y, otherVec.Y, factor)
	return vec
}

func (vec Vec2f) Abs() Vec2f {
	vec.X = math32.Abs(vec.X)
	vec.Y = math32.Abs(vec.Y)
	return vec
}

func (vec Vec2f) Ceil() Vec2f {
	// Use math.Ceil instead because it uses assembly
	vec.X = float32(math.Ceil(float64(vec.X)))
	vec.Y = float32(math.Ceil(float64(vec.Y)))
	return vec
}

func (vec Vec2f) Floor() Vec2f {
	// Use math.Floor instead because it uses assembly
	vec.X = float32(math.Floor(float64(vec.X)))
	vec.Y = float32(math.Floor(float64(vec.Y)))
	return vec
}

// Norm divides by the length without checking it.
// Use NormOk when the vector may be zero.
func (vec Vec2f) Norm() Vec2f {
	return vec.Div(vec.Length())
}

// NormOk returns the unit vector and true, or the zero vector and false if
// the vector is too short to have a direction.
func (vec Vec2f) NormOk() (Vec2f, bool) {
	length := vec.Length()
	if length < NormEpsilon {
		return Vec2f{}, false
	}
	return vec.Div(length), true
}

func (vec Vec2f) Round() Vec2f {
	vec.X = float32(math.Round(float64(vec.X)))
	vec.Y = float32(math.Round(float64(vec.Y)))
	return vec
}

// ApproxEqual is true if both components are within tolerance.
func (vec Vec2f) ApproxEqual(otherVec Vec2f, tolerance float32) bool {
	return math32.Abs(vec.X-otherVec.X) <= tolerance && math32.Abs(vec.Y-otherVec.Y) <= tolerance
}
