// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package character

import (
	"errors"
	"fmt"
	"github.com/BurntSushi/toml"
	"github.com/SoftbearStudios/glide/server/world"
	"io"
	"strings"
)

// Tuning holds every constant of the character pipeline.
// Distances are world units, velocities are world units per frame.
type Tuning struct {
	Gravity             float32 `toml:"gravity"`
	ContactMargin       float32 `toml:"contact_margin"`        // inflation of the contact scan
	SurfaceSearchMargin float32 `toml:"surface_search_margin"` // inflation of the orientation scan
	MoveIntoEpsilon     float32 `toml:"move_into_epsilon"`
	RepulsionVelocity   float32 `toml:"repulsion_velocity"`
	Friction            float32 `toml:"friction"`
	NearVerticalNormalY float32 `toml:"near_vertical_normal_y"` // surfaces below this are walls
	StopSpeed           float32 `toml:"stop_speed"`
	PlatformBoostDepth  float32 `toml:"platform_boost_depth"` // fraction of half height
	PlatformBoost       float32 `toml:"platform_boost"`       // fraction of gravity
	AirStraightenStep   float32 `toml:"air_straighten_step"`  // radians per frame
	OrientMinResolveY   float32 `toml:"orient_min_resolve_y"`
	SurfaceOrientSmooth float32 `toml:"surface_orient_smooth"`
	ResolveIterations   int     `toml:"resolve_iterations"` // per pass
	AirTransference     float32 `toml:"air_transference"`
	MoveDeceleration    float32 `toml:"move_deceleration"`
	MoveDeadZone        float32 `toml:"move_dead_zone"`
	JumpSpeed           float32 `toml:"jump_speed"`
	SpawnTicks          int     `toml:"spawn_ticks"`
	SpawnBurst          int     `toml:"spawn_burst"` // particles
}

func DefaultTuning() Tuning {
	return Tuning{
		Gravity:             0.5,
		ContactMargin:       2,
		SurfaceSearchMargin: 8,
		MoveIntoEpsilon:     0.01,
		RepulsionVelocity:   0.1,
		Friction:            0.25,
		NearVerticalNormalY: 0.1,
		StopSpeed:           0.01,
		PlatformBoostDepth:  0.75,
		PlatformBoost:       1,
		AirStraightenStep:   0.05,
		OrientMinResolveY:   0.1,
		SurfaceOrientSmooth: 0.85,
		ResolveIterations:   8,
		AirTransference:     0.9,
		MoveDeceleration:    0.85,
		MoveDeadZone:        0,
		JumpSpeed:           10,
		SpawnTicks:          30,
		SpawnBurst:          12,
	}
}

// LoadTuning reads a TOML file over DefaultTuning.
// Keys missing from the file keep their default and unknown keys are an error.
func LoadTuning(path string) (Tuning, error) {
	tuning := DefaultTuning()
	meta, err := toml.DecodeFile(path, &tuning)
	if err != nil {
		return tuning, fmt.Errorf("tuning %s: %w", path, err)
	}
	return tuning, checkTuning(meta, tuning)
}

// DecodeTuning is LoadTuning for any reader.
func DecodeTuning(r io.Reader) (Tuning, error) {
	tuning := DefaultTuning()
	meta, err := toml.NewDecoder(r).Decode(&tuning)
	if err != nil {
		return tuning, fmt.Errorf("tuning: %w", err)
	}
	return tuning, checkTuning(meta, tuning)
}

func checkTuning(meta toml.MetaData, tuning Tuning) error {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return fmt.Errorf("tuning: unknown keys %s", strings.Join(keys, ", "))
	}
	return tuning.Validate()
}

// Validate rejects tunings the pipeline can't run with.
func (tuning *Tuning) Validate() error {
	switch {
	case tuning.ResolveIterations < 0:
		return errors.New("tuning: resolve_iterations must not be negative")
	case tuning.SurfaceOrientSmooth < 0 || tuning.SurfaceOrientSmooth > 1:
		return errors.New("tuning: surface_orient_smooth must be within [0, 1]")
	case tuning.AirTransference < 0 || tuning.AirTransference > 1:
		return errors.New("tuning: air_transference must be within [0, 1]")
	case tuning.MoveDeceleration < 0 || tuning.MoveDeceleration > 1:
		return errors.New("tuning: move_deceleration must be within [0, 1]")
	case tuning.ContactMargin < 0 || tuning.SurfaceSearchMargin < 0:
		return errors.New("tuning: margins must not be negative")
	case tuning.SpawnTicks < 0 || tuning.SpawnBurst < 0:
		return errors.New("tuning: spawn values must not be negative")
	case tuning.SpawnTicks > int(world.TicksMax):
		return fmt.Errorf("tuning: spawn_ticks must be at most %d", world.TicksMax)
	}
	return nil
}
