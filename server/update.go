// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/glide/server/character"
	"github.com/SoftbearStudios/glide/server/projectile"
	"github.com/SoftbearStudios/glide/server/world"
	"log"
	"time"
)

// Status is served by ServeIndex.
type Status struct {
	Frame       uint32 `json:"frame"`
	Clients     int    `json:"clients"`
	Objects     int    `json:"objects"`
	Characters  int    `json:"characters"`
	Projectiles int    `json:"projectiles"`
}

// Update sends a Snapshot to every client and clears the bursts.
func (h *Hub) Update() {
	defer h.timeFunction("update", time.Now())

	base := NewSnapshot()
	defer base.Pool()

	h.level.ForObjects(func(objectID world.ObjectID, object world.Object) bool {
		switch o := object.(type) {
		case *character.Character:
			base.Characters = append(base.Characters, CharacterView{
				ObjectID:    objectID,
				Position:    o.Position,
				HalfExtents: o.HalfExtents,
				Rotation:    o.SurfaceRotation,
				Health:      o.Health,
				Alpha:       o.Alpha(),
				Grounded:    o.FlattestSurface.Valid,
				Spawning:    o.SpawnTicks,
			})
		case *projectile.Projectile:
			base.Projectiles = append(base.Projectiles, ProjectileView{
				ObjectID:    objectID,
				Position:    o.Position,
				HalfExtents: o.HalfExtents,
				Rotation:    o.Rotation(),
			})
		}
		return false
	})

	for client := h.clients.First; client != nil; client = client.Data().Next {
		data := client.Data()
		if h.Character(data.CharacterID) == nil {
			// Died since the last update
			data.CharacterID = world.ObjectIDInvalid
		}

		snapshot := NewSnapshot()
		snapshot.Characters = append(snapshot.Characters, base.Characters...)
		snapshot.Projectiles = append(snapshot.Projectiles, base.Projectiles...)
		snapshot.Bursts = append(snapshot.Bursts, h.bursts...)
		snapshot.Frame = h.frame
		snapshot.CharacterID = data.CharacterID
		client.Send(snapshot)
	}

	for i := range h.bursts {
		h.bursts[i] = Burst{}
	}
	h.bursts = h.bursts[:0]
}

// Status updates the JSON served by ServeIndex.
func (h *Hub) Status() Status {
	characters, projectiles := h.count()
	status := Status{
		Frame:       h.frame,
		Clients:     h.clients.Len,
		Objects:     h.level.Count(),
		Characters:  characters,
		Projectiles: projectiles,
	}

	buf, err := json.Marshal(status)
	if err != nil {
		log.Println("status error:", err)
		return status
	}
	h.statusJSON.Store(buf)
	return status
}

func (h *Hub) count() (characters, projectiles int) {
	h.level.ForObjects(func(_ world.ObjectID, object world.Object) bool {
		switch object.(type) {
		case *character.Character:
			characters++
		case *projectile.Projectile:
			projectiles++
		}
		return false
	})
	return
}
