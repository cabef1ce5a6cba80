// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"testing"
)

func TestTicks_Sub(t *testing.T) {
	tests := []struct {
		ticks, other, expected Ticks
	}{
		{30, 1, 29},
		{1, 1, 0},
		{0, 1, 0},
		{5, TicksMax, 0},
		{TicksMax, 0, TicksMax},
	}

	for _, test := range tests {
		if actual := test.ticks.Sub(test.other); actual != test.expected {
			t.Errorf("%d.Sub(%d): expected %d, got %d", test.ticks, test.other, test.expected, actual)
		}
	}
}

func TestTicks_Float(t *testing.T) {
	if TicksPerSecond != 60 {
		t.Errorf("expected 60 ticks per second, found %d", TicksPerSecond)
	}
	if seconds := ToTicks(2).Float(); !approx(seconds, 2) {
		t.Errorf("expected 2 seconds, found %f", seconds)
	}
	if !approx(Ticks(1).Float(), TickSeconds) {
		t.Errorf("expected one tick to be %f seconds", TickSeconds)
	}

	buf, err := Ticks(30).MarshalJSON()
	if err != nil || string(buf) != "0.5" {
		t.Errorf("expected 0.5, got %s %v", buf, err)
	}
}
