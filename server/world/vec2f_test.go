// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
	"math/rand"
	"testing"
)

func BenchmarkVec2f_NormOk(b *testing.B) {
	const count = 1024
	vectors := make([]Vec2f, count)
	for i := range vectors {
		vectors[i] = Vec2f{X: rand.Float32()*100 - 50, Y: rand.Float32()*100 - 50}
	}
	b.ResetTimer()

	var acc Vec2f
	for i := 0; i < b.N; i++ {
		n, _ := vectors[i&(count-1)].NormOk()
		acc = acc.Add(n)
	}
	_ = acc
}

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 0.02
}

func TestVec2f_Angle(t *testing.T) {
	tests := []struct {
		vec Vec2f
		ang Angle
	}{
		{Vec2f{0, 0}, 0},
		{Vec2f{1, 1}, Pi / 4},
		{Vec2f{0, 1}, Pi / 2},
		{Vec2f{0, -1}, -Pi / 2},
		{Vec2f{-1, 0}, Pi},
	}

	for _, test := range tests {
		if !approx(0, test.ang.Diff(test.vec.Angle()).Float()) {
			t.Errorf("expected %v.Angle(): %s, got %s", test.vec, test.ang, test.vec.Angle())
		}
	}

	for i := float32(-10.0); i < 10; i += 0.25 {
		a := ToAngle(i)
		a2 := a.Vec2f().Angle()
		if a2 <= -Pi || a2 > Pi {
			t.Errorf("%s out of range", a2)
		}
		if !approx(0, a.Diff(a2).Float()) {
			t.Errorf("expected %s got %s", a, a2)
		}
	}
}

func TestVec2f_NormOk(t *testing.T) {
	tests := []struct {
		vec  Vec2f
		norm Vec2f
		ok   bool
	}{
		{Vec2f{}, Vec2f{}, false},
		{Vec2f{X: NormEpsilon / 2}, Vec2f{}, false},
		{Vec2f{X: -NormEpsilon / 4, Y: NormEpsilon / 4}, Vec2f{}, false},
		{Vec2f{X: 3, Y: 4}, Vec2f{X: 0.6, Y: 0.8}, true},
		{Vec2f{Y: -1e-3}, Vec2f{Y: -1}, true},
	}

	for _, test := range tests {
		norm, ok := test.vec.NormOk()
		if ok != test.ok || !norm.ApproxEqual(test.norm, 1e-6) {
			t.Errorf("%v.NormOk(): expected %v %t, got %v %t", test.vec, test.norm, test.ok, norm, ok)
		}
		if math32.IsNaN(norm.X) || math32.IsNaN(norm.Y) {
			t.Errorf("%v.NormOk() is NaN", test.vec)
		}
	}
}

func TestVec2f_Rotate(t *testing.T) {
	v := Vec2f{X: 2, Y: 1}

	sin, cos := math32.Sincos(math32.Pi / 2)
	if r := v.Rotate(sin, cos); !r.ApproxEqual(v.Rot90(), 1e-5) {
		t.Errorf("expected Rot90 %v, got %v", v.Rot90(), r)
	}

	sin, cos = math32.Sincos(-math32.Pi / 2)
	if r := v.Rotate(sin, cos); !r.ApproxEqual(v.RotN90(), 1e-5) {
		t.Errorf("expected RotN90 %v, got %v", v.RotN90(), r)
	}

	for i := float32(-6); i < 6; i += 0.5 {
		sin, cos := math32.Sincos(i)
		r := v.Rotate(sin, cos)
		if !approx(r.Length(), v.Length()) {
			t.Errorf("rotating by %f changed length to %f", i, r.Length())
		}
		if !approx(0, r.Angle().Diff(v.Angle()+ToAngle(i)).Float()) {
			t.Errorf("rotating by %f gave angle %s", i, r.Angle())
		}
	}
}
