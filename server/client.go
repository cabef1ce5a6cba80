// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/glide/server/world"
)

type (
	// Client is an observer of the Hub that may control one character.
	Client interface {
		// Init is called once on the hub goroutine after the client is registered
		// and client.Data().Hub is set.
		Init()

		// Close is called by (only) the hub goroutine when the client is unregistered.
		Close()

		// Send delivers a snapshot on the hub goroutine.
		// The client takes ownership of out and must Pool it once done.
		Send(out outbound)

		// Destroy unregisters the client from the hub exactly once, however often it's called.
		// It may be called from any goroutine.
		Destroy()

		// Data holds the character and the ClientList links.
		Data() *ClientData
	}

	// ClientData is embedded by every Client.
	ClientData struct {
		CharacterID world.ObjectID // invalid until the client spawns
		Hub         *Hub
		Previous    Client
		Next        Client
	}

	// ClientList is a doubly-linked list of Clients.
	// It can be iterated like this:
	// for client := list.First; client != nil; client = client.Data().Next {}
	// Or to remove all iterated items like this:
	// for client := list.First; client != nil; client = list.Remove(client) {}
	ClientList struct {
		First Client
		Last  Client
		Len   int
	}
)

// Add adds a Client to the list.
func (list *ClientList) Add(client Client) {
	data := client.Data()
	if data.Previous != nil || data.Next != nil {
		panic("already added")
	}

	// Repair list
	if list.First == nil {
		list.First = client
	} else if list.Last == nil {
		panic("invalid state")
	} else {
		list.Last.Data().Next = client
		data.Previous = list.Last
	}

	list.Last = client
	list.Len++
}

// Remove removes a Client from the list.
// Returns the next element of the list.
func (list *ClientList) Remove(client Client) (next Client) {
	data := client.Data()

	// Repair list
	if data.Previous != nil {
		data.Previous.Data().Next = data.Next
	} else if list.First == client {
		list.First = data.Next
	} else {
		panic("already removed")
	}

	if data.Next != nil {
		data.Next.Data().Previous = data.Previous
	} else if list.Last == client {
		list.Last = data.Previous
	} else {
		panic("already removed")
	}

	list.Len--
	next = data.Next
	data.Next = nil
	data.Previous = nil

	return
}
