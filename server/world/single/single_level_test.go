// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package single

import (
	"github.com/SoftbearStudios/glide/server/world"
	"testing"
)

func TestSingleLevel(t *testing.T) {
	world.TestLevel(t, func(_ int) world.Level {
		return New()
	})
}

func BenchmarkSingleLevel(b *testing.B) {
	world.BenchLevel(b, func(_ int) world.Level {
		return New()
	}, 4096)
}
