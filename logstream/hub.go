// This file is part of Chronostim.
//
// Chronostim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Chronostim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Chronostim.  If not, see <https://www.gnu.org/licenses/>.

// Package logstream streams track records to websocket clients as they are
// produced. A Hub implements the tracklog.Sink interface and can be combined
// with other sinks with tracklog.Multi().
//
// Messages are JSON text frames with the envelope:
//
//	{"type": "record", "ts": "<wall time>", "data": {...}}
//
// Recording never blocks the timing core. If the hub cannot keep up, records
// are dropped and counted. A client that cannot keep up with the hub is
// disconnected.
package logstream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/chronostim/chronostim/environment"
	"github.com/chronostim/chronostim/logger"
	"github.com/chronostim/chronostim/tracklog"
)

// default queue sizes
const (
	defaultSendBuf      = 32
	defaultBroadcastBuf = 256
)

// Config for a new Hub. Zero values mean the default.
type Config struct {
	// SendBuf is the outbound queue size of each client
	SendBuf int

	// BroadcastBuf is the size of the queue of records waiting to be sent
	BroadcastBuf int
}

// RecordData is the data payload of a "record" message.
type RecordData struct {
	Time    int64  `json:"time"`
	Latency int64  `json:"latency"`
	Source  string `json:"source"`
	Message string `json:"message"`
}

type envelope struct {
	Type string     `json:"type"`
	Ts   *time.Time `json:"ts,omitempty"`
	Data any        `json:"data,omitempty"`
}

// Hub tracks the connected clients and fans out records to them.
type Hub struct {
	env *environment.Environment

	broadcast  chan []byte
	register   chan *client
	unregister chan *client

	// closed when Run() returns
	done chan struct{}

	crit    sync.Mutex
	clients map[*client]struct{}

	sendBuf int

	dropped atomic.Int64
}

// NewHub is the preferred method of initialisation for the Hub type. Call
// Run() to start the hub.
func NewHub(env *environment.Environment, cfg Config) *Hub {
	sendBuf := cfg.SendBuf
	if sendBuf <= 0 {
		sendBuf = defaultSendBuf
	}
	bcastBuf := cfg.BroadcastBuf
	if bcastBuf <= 0 {
		bcastBuf = defaultBroadcastBuf
	}

	return &Hub{
		env:        env,
		broadcast:  make(chan []byte, bcastBuf),
		register:   make(chan *client, 8),
		unregister: make(chan *client, 8),
		done:       make(chan struct{}),
		clients:    make(map[*client]struct{}),
		sendBuf:    sendBuf,
	}
}

// Record implements the tracklog.Sink interface. It never blocks.
func (h *Hub) Record(r tracklog.Record) {
	now := time.Now().UTC()
	msg, err := json.Marshal(envelope{
		Type: "record",
		Ts:   &now,
		Data: RecordData{
			Time:    r.Timestamp.Time,
			Latency: r.Timestamp.MaxLatency,
			Source:  r.Source,
			Message: r.Message,
		},
	})
	if err != nil {
		logger.Log(h.env, "logstream", err)
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		h.dropped.Add(1)
	}
}

// Dropped returns the number of records dropped because the broadcast queue
// was full.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.crit.Lock()
	defer h.crit.Unlock()
	return len(h.clients)
}

// Run processes hub events until the context is cancelled. All clients are
// disconnected on return.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return

		case c := <-h.register:
			h.crit.Lock()
			h.clients[c] = struct{}{}
			n := len(h.clients)
			h.crit.Unlock()
			logger.Logf(h.env, "logstream", "client connected: %s (%d clients)", c.remoteAddr, n)

		case c := <-h.unregister:
			h.remove(c, "disconnected")

		case msg := <-h.broadcast:
			// remove slow clients after the clients map has been unlocked
			var slow []*client

			h.crit.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					slow = append(slow, c)
				}
			}
			h.crit.Unlock()

			for _, c := range slow {
				h.remove(c, "too slow")
			}
		}
	}
}

func (h *Hub) closeAll() {
	h.crit.Lock()
	defer h.crit.Unlock()
	for c := range h.clients {
		_ = c.conn.Close()
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *Hub) remove(c *client, reason string) {
	h.crit.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
	}
	n := len(h.clients)
	h.crit.Unlock()

	if !ok {
		return
	}

	_ = c.conn.Close()

	// closing the channel stops the write pump. only the hub goroutine
	// closes the channel and only once, because the client has been
	// removed from the map
	close(c.send)

	logger.Logf(h.env, "logstream", "client %s: %s (%d clients)", reason, c.remoteAddr, n)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeHTTP implements the http.Handler interface. The connection is
// upgraded to a websocket and registered with the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Logf(h.env, "logstream", "upgrade failed: %v", err)
		return
	}

	c := &client{
		hub:        h,
		conn:       conn,
		send:       make(chan []byte, h.sendBuf),
		remoteAddr: r.RemoteAddr,
	}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}

	// the pumps must outlive the request so they are not given the request
	// context
	go c.writePump()
	go c.readPump()
}
