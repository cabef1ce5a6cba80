// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/glide/server/character"
	"github.com/SoftbearStudios/glide/server/world"
	"github.com/SoftbearStudios/glide/server/world/single"
	"os"
	"sync/atomic"
	"time"
)

const (
	botPeriod    = time.Second / 4
	debugPeriod  = time.Second * 5
	logPeriod    = time.Second * 10
	statusPeriod = time.Second
	updatePeriod = world.TickPeriod

	// maxCatchUp is the most frames simulated per update tick when falling behind
	maxCatchUp = 3
)

// HubOptions configures a Hub. The zero value is an empty single.Level with default tuning.
type HubOptions struct {
	Level   world.Level
	Tuning  *character.Tuning
	Spawns  []world.Vec2f // where characters appear, in turn
	MinBots int           // bot controlled characters to keep around
	LogFile string        // csv stats, disabled if empty
}

// Hub owns a Level, steps it every frame, and broadcasts snapshots to its clients.
type Hub struct {
	// Level state
	level     world.Level
	tuning    *character.Tuning
	spawns    []world.Vec2f
	nextSpawn int
	frame     uint32
	clients   ClientList // implemented as double-linked list

	// bursts are buffered until next update.
	bursts []Burst

	// Flags
	minBots int
	logFile string

	// Served atomically by HTTP
	statusJSON atomic.Value

	// funcBenches are benchmarks of core Hub functions.
	funcBenches []funcBench

	// Inbound channels
	inbound    chan SignedInbound
	register   chan Client
	unregister chan Client

	updateTime time.Time
}

func NewHub(options HubOptions) *Hub {
	if options.Level == nil {
		options.Level = single.New()
	}
	if options.Tuning == nil {
		tuning := character.DefaultTuning()
		options.Tuning = &tuning
	}
	if len(options.Spawns) == 0 {
		options.Spawns = []world.Vec2f{{Y: characterHalfExtents.Y * 2}}
	}

	h := &Hub{
		level:      options.Level,
		tuning:     options.Tuning,
		spawns:     options.Spawns,
		minBots:    options.MinBots,
		logFile:    options.LogFile,
		inbound:    make(chan SignedInbound, 16+options.MinBots*2),
		register:   make(chan Client, 8+options.MinBots),
		unregister: make(chan Client, 16+options.MinBots),
		updateTime: time.Now(),
	}
	h.Status()
	return h
}

// Level is the level being simulated. Only use it on the hub goroutine.
func (h *Hub) Level() world.Level {
	return h.level
}

// Register adds a client from any goroutine.
func (h *Hub) Register(client Client) {
	h.register <- client
}

// Run simulates forever, it should be called on its own goroutine.
func (h *Hub) Run() {
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		}
		println("That's it, I'm out -hub") // Don't waste time debugging hub exists
		os.Exit(1)
	}()

	updateTicker := time.NewTicker(updatePeriod)
	statusTicker := time.NewTicker(statusPeriod)
	debugTicker := time.NewTicker(debugPeriod)
	logTicker := time.NewTicker(logPeriod)
	botsTicker := time.NewTicker(botPeriod)

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case in := <-h.inbound:
			// Read all messages currently in the channel
			n := len(h.inbound)

			for {
				// If not same hub the message is old
				if h == in.Client.Data().Hub {
					in.Inbound(h, in.Client)
				}

				if n--; n <= 0 {
					break
				}

				in = <-h.inbound
			}
		case <-updateTicker.C:
			now := time.Now()
			timeDelta := now.Sub(h.updateTime) + updatePeriod/10 // Kludge factor
			h.updateTime = now

			frames := min(max(int(timeDelta/updatePeriod), 1), maxCatchUp)
			for i := 0; i < frames; i++ {
				h.Physics()
			}
			h.Update()
		case <-statusTicker.C:
			h.Status()
		case <-debugTicker.C:
			h.Debug()
		case <-logTicker.C:
			h.Log()
		case <-botsTicker.C:
			// Add as many as fit in the channel but don't block because it would deadlock
			for i := h.bots() + len(h.register) - len(h.unregister); i < h.minBots; i++ {
				select {
				case h.register <- &BotClient{}:
				default:
				}
			}
		}
	}
}

func (h *Hub) addClient(client Client) {
	h.clients.Add(client)
	client.Data().Hub = h
	client.Init()
}

// removeClient also removes the client's character.
func (h *Hub) removeClient(client Client) {
	client.Close()
	data := client.Data()
	if h.Character(data.CharacterID) != nil {
		h.level.Remove(data.CharacterID)
	}
	data.CharacterID = world.ObjectIDInvalid
	data.Hub = nil
	h.clients.Remove(client)
}

// Physics steps the level one frame.
func (h *Hub) Physics() {
	defer h.timeFunction("physics", time.Now())

	h.level.Update()
	h.frame++
}

// Burst implements world.Effects.
func (h *Hub) Burst(position, direction world.Vec2f, count int) {
	h.bursts = append(h.bursts, Burst{Position: position, Direction: direction, Count: count})
}

func (h *Hub) bots() (count int) {
	for client := h.clients.First; client != nil; client = client.Data().Next {
		if _, ok := client.(*BotClient); ok {
			count++
		}
	}
	return
}
