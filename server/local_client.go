// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"sync"
)

// LocalClient receives snapshots in process, for tools and tests.
// Snapshots are dropped if Snapshots is full. Pool them once done.
type LocalClient struct {
	ClientData
	Snapshots chan *Snapshot
	once      sync.Once
}

func NewLocalClient(buffer int) *LocalClient {
	return &LocalClient{
		Snapshots: make(chan *Snapshot, buffer),
	}
}

func (client *LocalClient) Init() {}

func (client *LocalClient) Close() {
	close(client.Snapshots)
}

func (client *LocalClient) Data() *ClientData {
	return &client.ClientData
}

func (client *LocalClient) Destroy() {
	client.once.Do(func() {
		hub := client.Hub

		// Needs to go through when called on hub goroutine.
		select {
		case hub.unregister <- client:
		default:
			go func() {
				hub.unregister <- client
			}()
		}
	})
}

func (client *LocalClient) Send(out outbound) {
	snapshot, ok := out.(*Snapshot)
	if !ok {
		out.Pool()
		return
	}

	select {
	case client.Snapshots <- snapshot:
	default:
		snapshot.Pool()
	}
}
