// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"github.com/gorilla/websocket"
	"log"
	"net/http"
	"sync"
	"time"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 5 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 8) / 10

	// If more than this many snapshots are queued for sending, the
	// socket is congested and snapshots may be dropped
	socketCongestionThreshold = 10

	// One second of snapshots at TickPeriod before the client is closed
	socketBufferSize = 60

	// Largest inbound command allowed from the observer.
	maxMessageSize = 512

	debugSocket = false
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // observers may be served from anywhere
	},
	HandshakeTimeout: time.Second,
	ReadBufferSize:   maxMessageSize,
	WriteBufferSize:  4096,
}

// SocketClient streams snapshots to a websocket observer and forwards its commands to the hub.
type SocketClient struct {
	ClientData
	conn    *websocket.Conn
	send    chan outbound
	once    sync.Once
	counter int // counts up every send
}

// NewSocketClient wraps an upgraded connection. It is registered with the hub separately.
func NewSocketClient(conn *websocket.Conn) *SocketClient {
	return &SocketClient{
		conn: conn,
		send: make(chan outbound, socketBufferSize),
	}
}

func (client *SocketClient) Close() {
	close(client.send)
}

func (client *SocketClient) Data() *ClientData {
	return &client.ClientData
}

func (client *SocketClient) Destroy() {
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

		_ = client.conn.Close()
	})
}

func (client *SocketClient) Init() {
	go client.writePump()
	go client.readPump()
}

func (client *SocketClient) Send(message outbound) {
	// Snapshots queued beyond the threshold
	congestion := len(client.send) - socketCongestionThreshold

	// Send only every congestion'th snapshot until the queue drains.
	// Each snapshot is complete so skipping one loses only its bursts.
	client.counter++
	if congestion > 1 && client.counter%congestion != 0 {
		if debugSocket {
			fmt.Println("SocketClient dropping message due to congestion")
		}
		message.Pool()
		return
	}

	select {
	case client.send <- message:
	default:
		// Queue full, the observer stopped reading
		if debugSocket {
			fmt.Println("SocketClient is not responsive")
		}
		message.Pool()
		client.Destroy()
	}
}

func (client *SocketClient) readPump() {
	defer client.Destroy()
	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, r, err := client.conn.NextReader()
		if err != nil {
			if debugSocket {
				fmt.Println(err)
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Println("close error:", err)
			}
			break
		}

		var message Message
		err = json.NewDecoder(r).Decode(&message)
		if err != nil {
			log.Println("unmarshal error:", err.Error())
			break
		}

		if invalidMessage, ok := message.Data.(InvalidInbound); ok {
			log.Println("invalid command type received:", invalidMessage.messageType)
		} else {
			client.Hub.inbound <- SignedInbound{Client: client, inbound: message.Data.(inbound)}
		}
	}
}

func (client *SocketClient) writePump() {
	pingTicker := time.NewTicker(pingPeriod)

	defer func() {
		if err := recover(); err != nil {
			if debugSocket {
				fmt.Println("send error:", err)
			}
		}
		pingTicker.Stop()
		client.Destroy()
	}()

	for {
		select {
		case out, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				_ = client.conn.WriteMessage(websocket.CloseMessage, nil)
				panic("hub closed channel")
			}

			w, err := client.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				panic(err)
			}

			// Message adds the "type" of the snapshot
			if err = json.NewEncoder(w).Encode(Message{Data: out}); err != nil {
				panic(err)
			}

			out.Pool()

			if err = w.Close(); err != nil {
				panic(err)
			}
		case <-pingTicker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
