// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"github.com/SoftbearStudios/glide/server/solid"
	"github.com/SoftbearStudios/glide/server/world"
	"github.com/aquilax/go-perlin"
)

const (
	// Seed default seed.
	Seed = int64(56)

	frequency     = 0.004
	zoneFrequency = 0.0007
)

// Generator generates rolling terrain using perlin noise.
type Generator struct {
	hi *perlin.Perlin // for smaller/higher frequency details
	lo *perlin.Perlin // for larger/lower frequency hills

	// Amplitude is the maximum height above or below the base of the surface.
	Amplitude float32
	// Step is the horizontal length of each surface line.
	Step float32
	// Depth is how far the bottom is below the base.
	Depth float32
}

func NewDefault() *Generator {
	return New(Seed)
}

// New creates a new Generator with a seed.
func New(seed int64) *Generator {
	return &Generator{
		hi:        perlin.NewPerlin(1.5, 2.0, 4, seed),
		lo:        perlin.NewPerlin(2.5, 3.0, 4, seed+1),
		Amplitude: 150,
		Step:      16,
		Depth:     500,
	}
}

// Height returns the surface height at x relative to the base.
func (g *Generator) Height(x float32) float32 {
	hi := g.hi.Noise1D(float64(x) * frequency)
	lo := g.lo.Noise1D(float64(x) * zoneFrequency)
	return clamp(float32(hi*0.35+lo*1.3), -1, 1) * g.Amplitude
}

// Lines generates a closed solid spanning [minX, maxX] whose surface is around baseY.
// It is wound clockwise so normals face out, and concave corners are pruned.
func (g *Generator) Lines(minX, maxX, baseY float32) []world.Line {
	step := g.Step
	if step <= 0 || maxX <= minX {
		return nil
	}

	var points []world.Vec2f

	// Surface left to right
	for x := minX; x < maxX; x += step {
		points = append(points, world.Vec2f{X: x, Y: baseY + g.Height(x)})
	}
	points = append(points, world.Vec2f{X: maxX, Y: baseY + g.Height(maxX)})

	// Right side down, bottom right to left, left side closes back up
	bottom := baseY - g.Amplitude - g.Depth
	points = append(points, world.Vec2f{X: maxX, Y: bottom}, world.Vec2f{X: minX, Y: bottom})

	lines := make([]world.Line, 0, len(points))
	for i := range points {
		line, err := world.NewLine(points[i], points[(i+1)%len(points)])
		if err != nil {
			// Skip degenerate lines
			continue
		}
		lines = append(lines, line)
	}

	world.PruneConcaveCorners(lines)
	return lines
}

// Sprite generates a solid.Sprite with Lines.
func (g *Generator) Sprite(minX, maxX, baseY float32) *solid.Sprite {
	return solid.NewSprite("terrain", g.Lines(minX, maxX, baseY))
}
