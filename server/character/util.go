// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package character

func clamp(val, minimum, maximum float32) float32 {
	return min(max(val, minimum), maximum)
}

func square(a float32) float32 {
	return a * a
}
