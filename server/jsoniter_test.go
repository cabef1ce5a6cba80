// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"github.com/SoftbearStudios/glide/server/world"
	"testing"
)

func TestJsonIter(t *testing.T) {
	const testObjectID = 0x1a

	testSnapshot := Message{Data: &Snapshot{
		Characters: []CharacterView{{
			ObjectID:    testObjectID,
			Position:    world.Vec2f{X: 1.0, Y: 0.5},
			HalfExtents: world.Vec2f{X: 16, Y: 32},
			Rotation:    world.ToAngle(0.25),
			Health:      1,
			Alpha:       0.5,
			Grounded:    true,
			Spawning:    3,
		}},
		Bursts:      []Burst{{Position: world.Vec2f{X: 2, Y: 3}, Direction: world.Up, Count: 4}},
		Frame:       7,
		CharacterID: testObjectID,
	}}

	const testSnapshotString = `{"data":{"characters":[{"id":"1a","position":{"x":1,"y":0.5},"halfExtents":{"x":16,"y":32},"rotation":0.25,"health":1,"alpha":0.5,"grounded":true,"spawning":0.05}],"bursts":[{"position":{"x":2,"y":3},"direction":{"x":0,"y":1},"count":4}],"frame":7,"characterID":"1a"},"type":"snapshot"}`

	buf, err := json.Marshal(testSnapshot)
	if err != nil {
		t.Error("error marshaling:", err.Error())
		return
	}
	expected := []byte(testSnapshotString)
	if !bytes.Equal(buf, expected) {
		j := -1
		for i := range buf {
			if i >= len(expected) || buf[i] != expected[i] {
				j = i
				break
			}
		}
		t.Error("different output:\none:", string(expected), "\ntwo:", string(buf), "\ndiff:", j)
	}

	realObjectID := world.ObjectID(0x123abc)
	const objectIDString = `{"objectID": "123abc"}`

	var objectIDWrapper struct {
		ObjectID world.ObjectID `json:"objectID"`
	}
	err = json.Unmarshal([]byte(objectIDString), &objectIDWrapper)
	if err != nil {
		t.Error("error unmarshaling:", err.Error())
		return
	}
	if objectIDWrapper.ObjectID != realObjectID {
		t.Error("different output:\nexpected:", realObjectID, "\ngot:", objectIDWrapper.ObjectID, "\n")
	}

	if err = json.Unmarshal([]byte(`{"objectID": "0"}`), &objectIDWrapper); err == nil {
		t.Error("expected invalid object id error")
	}
}

func TestJsonIter_Inbound(t *testing.T) {
	tests := []struct {
		message  string
		expected inbound
	}{
		{`{"type":"move","data":{"velocity":{"x":4,"y":0}}}`, Move{Velocity: world.Vec2f{X: 4}}},
		{`{"data":{"velocity":{"x":0,"y":600}},"type":"fire"}`, Fire{Velocity: world.Vec2f{Y: 600}}},
		{`{"type":"jump","data":{}}`, Jump{}},
		{`{"type":"spawn","data":{}}`, Spawn{}},
		{`{"type":"attack","data":{"direction":{"x":-1,"y":0}}}`, Attack{Direction: world.Vec2f{X: -1}}},
	}

	for _, test := range tests {
		var message Message
		if err := json.Unmarshal([]byte(test.message), &message); err != nil {
			t.Errorf("%s: %v", test.message, err)
			continue
		}
		if message.Data != test.expected {
			t.Errorf("%s: expected %#v, found %#v", test.message, test.expected, message.Data)
		}
	}

	var message Message
	if err := json.Unmarshal([]byte(`{"type":"teleport","data":{}}`), &message); err != nil {
		t.Fatal(err)
	}
	if invalid, ok := message.Data.(InvalidInbound); !ok || invalid.messageType != "teleport" {
		t.Errorf("expected invalid inbound, found %#v", message.Data)
	}

	if err := json.Unmarshal([]byte(`{"data":{}}`), &message); err == nil {
		t.Error("expected missing type error")
	}
}
