// Package transport pumps one game's event stream and inbound commands
// over a WebSocket connection, per spec.md §6: newline-delimited JSON
// envelopes out, decoded Pass/Charge/Play/Claim/.../Chat commands in.
// It generalizes the teacher's internal/server/connection.go send/receive
// pump split from msgpack framing to the JSON wire format this game
// uses, and from a single table's message types to any tablehub.Table.
package transport

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/pokerforbots/internal/broadcast"
	"github.com/lox/pokerforbots/internal/game"
	"github.com/lox/pokerforbots/internal/protocol"
	"github.com/lox/pokerforbots/internal/tablehub"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Conn is one client's WebSocket connection to a single game, seated
// (seat != nil) or spectating.
type Conn struct {
	ws     *websocket.Conn
	table  *tablehub.Table
	seat   *game.Seat
	logger *log.Logger
}

// New wraps ws for table as seat (nil for a spectator).
func New(ws *websocket.Conn, table *tablehub.Table, seat *game.Seat, logger *log.Logger) *Conn {
	return &Conn{ws: ws, table: table, seat: seat, logger: logger.WithPrefix("transport")}
}

// Serve subscribes to the table (catching up from lastEventID is the
// caller's job per broadcast.Hub.Subscribe's contract -- read the
// persisted log first, then call Serve) and runs the read and write
// pumps until the connection fails or ctx is cancelled. It blocks until
// the connection ends, then unsubscribes.
func (c *Conn) Serve(ctx context.Context, lastEventID uint64) {
	sub := c.table.Subscribe(c.seat, lastEventID)
	defer c.table.Unsubscribe(sub)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); c.writePump(ctx, sub) }()
	go func() { defer wg.Done(); c.readPump(ctx, cancel) }()
	wg.Wait()
}

// writePump delivers every envelope the subscriber receives as one line
// of JSON, and keepalive-pings the connection between events.
func (c *Conn) writePump(ctx context.Context, sub *broadcast.Subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case env, ok := <-sub.Chan():
			if !ok {
				return
			}
			data, err := protocol.MarshalEvent(env)
			if err != nil {
				c.logger.Error("encode event", "err", err)
				continue
			}
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Warn("write failed, closing connection", "err", err)
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump decodes one command per inbound message and submits it to
// the table under this connection's seat. A spectator connection (seat
// == nil) has no seat to attribute a command to, so every command it
// sends is silently dropped. Decode failures and rejected commands are
// logged and the connection stays open; nothing is sent back to the
// client when a command is rejected.
func (c *Conn) readPump(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		cmd, err := protocol.DecodeCommand(data)
		if err != nil {
			c.logger.Warn("malformed command", "err", err)
			continue
		}
		if c.seat == nil {
			continue // spectators observe only; no seat to attribute a command to
		}
		event, err := cmd.ToEvent(*c.seat)
		if err != nil {
			c.logger.Warn("bad command", "err", err)
			continue
		}
		if err := c.table.Submit(ctx, event); err != nil {
			c.logger.Debug("command rejected", "seat", *c.seat, "err", err)
		}
	}
}
