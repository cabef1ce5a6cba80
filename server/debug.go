// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"runtime"
	"time"
)

// Debug prints debugging info to console.
func (h *Hub) Debug() {
	fmt.Printf("Debug [%v] frame %d\n", time.Now().Format(time.UnixDate), h.frame)
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	fmt.Printf(" - memstats: %dM/%dM\n", stats.HeapInuse/1e6, stats.NextGC/1e6)

	var (
		socketCount int
		botCount    int
		localCount  int
		controlling int
	)

	for client := h.clients.First; client != nil; client = client.Data().Next {
		switch client.(type) {
		case *SocketClient:
			socketCount++
		case *BotClient:
			botCount++
		default:
			localCount++
		}
		if h.Character(client.Data().CharacterID) != nil {
			controlling++
		}
	}

	characters, projectiles := h.count()
	fmt.Printf(" - clients: %d, bots: %d, local: %d, controlling: %d\n", socketCount, botCount, localCount, controlling)
	fmt.Printf(" - characters: %d, projectiles: %d, pending bursts: %d\n", characters, projectiles, len(h.bursts))

	fmt.Print(" - ")
	h.level.Debug()

	// Function benchmarks
	var totalDuration time.Duration

	fmt.Print(" - ")
	for i := range h.funcBenches {
		bench := &h.funcBenches[i]

		duration := bench.reset()
		totalDuration += duration

		fmt.Print(bench.name, ": ", duration, ", ")
	}
	fmt.Println("total:", totalDuration)
}

// funcBench is a benchmark of a core function.
type funcBench struct {
	name     string
	duration time.Duration
	runs     int
}

// reset resets the benchmark and returns the average duration
func (bench *funcBench) reset() time.Duration {
	if bench.runs == 0 {
		return 0
	}
	average := bench.duration / time.Duration(bench.runs)
	bench.duration = 0
	bench.runs = 0
	return average
}

// timeFunction times a function.
// defer timeFunction("name", time.Now())
func (h *Hub) timeFunction(name string, start time.Time) {
	end := time.Now()

	var bench *funcBench
	for i := range h.funcBenches {
		b := &h.funcBenches[i]
		if name == b.name {
			bench = b
			break
		}
	}

	if bench == nil {
		h.funcBenches = append(h.funcBenches, funcBench{name: name})
		bench = &h.funcBenches[len(h.funcBenches)-1]
	}

	bench.duration += end.Sub(start)
	bench.runs++
}
