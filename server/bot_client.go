// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/glide/server/character"
	"github.com/SoftbearStudios/glide/server/world"
	"github.com/chewxy/math32"
	"math/rand"
)

const (
	botWalkSpeed   = 4
	botLedgeProbe  = 48 // below the feet
	botSightRange  = 600
	botMeleeRange  = 40
	botShootSpeed  = 1200
	botJumpProb    = 0.01
	botShootProb   = 0.02
	botRespawnProb = 0.05
)

type (
	// BotClient controls a character using the same inbounds as a SocketClient.
	BotClient struct {
		ClientData
		aggression float32
		facing     float32 // -1 or 1
		destroying bool
	}

	// Target is a character that is closest
	Target struct {
		*CharacterView
		distanceSquared float32
	}
)

func (bot *BotClient) Close() {}

func (bot *BotClient) Data() *ClientData {
	return &bot.ClientData
}

func (bot *BotClient) Destroy() {
	if bot.destroying {
		return // In case goroutine hasn't run yet
	}

	bot.destroying = true
	hub := bot.Hub

	// Needs to go through always.
	select {
	case hub.unregister <- bot:
	default:
		go func() {
			hub.unregister <- bot
		}()
	}
}

func (bot *BotClient) Init() {
	r := getRand()
	bot.aggression = r.Float32()
	bot.facing = 1
	if prob(r, 0.5) {
		bot.facing = -1
	}
	poolRand(r)

	bot.receiveAsync(Spawn{})
}

// Send runs on the hub goroutine so the bot may look at the level directly.
func (bot *BotClient) Send(out outbound) {
	defer out.Pool()
	if bot.destroying {
		return
	}

	snapshot, ok := out.(*Snapshot)
	if !ok {
		return
	}

	// Use local rand to avoid locking
	r := getRand()
	defer poolRand(r)

	if snapshot.CharacterID == world.ObjectIDInvalid {
		if prob(r, botRespawnProb) {
			bot.receiveAsync(Spawn{})
		}
		return
	}

	hub := bot.Hub
	c := hub.Character(snapshot.CharacterID)
	if c == nil || c.Spawning() {
		return
	}
	level := hub.Level()

	var closest Target
	for i := range snapshot.Characters {
		view := &snapshot.Characters[i]
		if view.ObjectID == snapshot.CharacterID {
			continue
		}
		closest.Closest(view, c.Position.DistanceSquared(view.Position))
	}

	if closest.Found() && closest.distanceSquared < botSightRange*botSightRange &&
		character.LineOfSight(level, c.Position, closest.Position, c) {

		toward := closest.Position.Sub(c.Position)
		bot.facing = math32.Copysign(1, toward.X)

		if closest.distanceSquared < botMeleeRange*botMeleeRange {
			bot.receiveAsync(Attack{Direction: toward})
		} else if prob(r, float64(bot.aggression*botShootProb)) {
			bot.receiveAsync(Fire{Velocity: aim(r, toward).Mul(botShootSpeed)})
		}
	}

	// Turn around at ledges
	if c.FlattestSurface.Valid {
		ahead := world.Vec2f{X: bot.facing * c.HalfExtents.X * 2}
		if ground := c.Probe(level, ahead, botLedgeProbe); !ground.Valid {
			bot.facing = -bot.facing
		}
	}

	bot.receiveAsync(Move{Velocity: world.Vec2f{X: bot.facing * botWalkSpeed}})
	if prob(r, botJumpProb) {
		bot.receiveAsync(Jump{})
	}
}

// aim adds some inaccuracy
func aim(r *rand.Rand, toward world.Vec2f) world.Vec2f {
	angle := toward.Angle() + 0.1*world.Angle(r.Float32()-0.5)
	return angle.Vec2f()
}

// receiveAsync Doesn't deadlock the hub
func (bot *BotClient) receiveAsync(in inbound) {
	select {
	case bot.Hub.inbound <- SignedInbound{Client: bot, inbound: in}:
	default:
		// Drop bot messages to avoid downfall of server
	}
}

func (t *Target) Closest(view *CharacterView, distanceSquared float32) {
	if t.CharacterView == nil || distanceSquared < t.distanceSquared {
		t.CharacterView = view
		t.distanceSquared = distanceSquared
	}
}

func (t *Target) Found() bool {
	return t.CharacterView != nil
}
