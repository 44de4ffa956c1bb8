package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubesolver/internal/input"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// WSMessage is the envelope of every websocket frame.
//
// Clients send {"type":"solve","data":{"scrambled_cube":...}} and receive
// one "move" message per quarter turn, then "done". A "ping" message is
// answered with "pong".
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// WSMove is the data of a "move" message.
type WSMove struct {
	Index int    `json:"index"`
	Move  string `json:"move"`
	Phase string `json:"phase"`
}

// WSDone is the data of a "done" message.
type WSDone struct {
	MoveCount int  `json:"move_count"`
	Cached    bool `json:"cached"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
	// done is closed when writePump gives up on the connection.
	done chan struct{}
	log  *zap.Logger
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &wsClient{
		conn: conn,
		send: make(chan []byte, 256),
		done: make(chan struct{}),
		log:  s.log,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go client.writePump()
	go func() {
		defer cancel()
		client.readPump(ctx, s)
	}()
}

// readPump handles one request at a time; moves of a solution are queued
// before the next request is read.
func (c *wsClient) readPump(ctx context.Context, s *Server) {
	defer func() {
		close(c.send)
	}()

	c.conn.SetReadLimit(maxBodyBytes)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("websocket closed", zap.Error(err))
			}
			return
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.sendError("malformed_request", "message is not JSON")
			continue
		}

		switch msg.Type {
		case "ping":
			c.sendMessage("pong", nil)
		case "solve":
			c.solve(ctx, s, msg.Data)
		default:
			c.sendError("unknown_type", "unknown message type "+msg.Type)
		}
	}
}

func (c *wsClient) solve(ctx context.Context, s *Server, data json.RawMessage) {
	g, err := input.Parse(data)
	if err != nil {
		_, code := errorStatus(err)
		c.sendError(code, err.Error())
		return
	}

	sol, cached, err := s.solve(ctx, g)
	if err != nil {
		_, code := errorStatus(err)
		c.sendError(code, err.Error())
		return
	}

	for _, seg := range sol.Segments {
		for i := seg.Start; i < seg.End; i++ {
			c.sendMessage("move", WSMove{Index: i, Move: sol.Moves[i].Notation(), Phase: seg.Phase.String()})
		}
	}
	c.sendMessage("done", WSDone{MoveCount: len(sol.Moves), Cached: cached})
}

func (c *wsClient) sendError(code, message string) {
	c.sendMessage("error", ErrorDetail{Code: code, Message: message})
}

func (c *wsClient) sendMessage(typ string, data any) {
	msg := WSMessage{Type: typ}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			c.log.Error("failed to encode websocket message", zap.Error(err))
			return
		}
		msg.Data = raw
	}
	out, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("failed to encode websocket message", zap.Error(err))
		return
	}
	select {
	case c.send <- out:
	case <-c.done:
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
