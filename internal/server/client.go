package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ESikich/TopDownRPG/internal/content"
	"github.com/ESikich/TopDownRPG/internal/domain"
	"github.com/ESikich/TopDownRPG/internal/engine"
	"github.com/ESikich/TopDownRPG/pkg/api"
	"github.com/ESikich/TopDownRPG/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client owns one websocket connection and one game instance. The game is
// only ever touched from readPump, so no locking is needed around it.
type Client struct {
	server *Server
	conn   *websocket.Conn
	game   *engine.Game
	send   chan api.ServerResponse
	done   chan struct{}
}

func NewClient(s *Server, conn *websocket.Conn) *Client {
	return &Client{
		server: s,
		conn:   conn,
		send:   make(chan api.ServerResponse, 64),
		done:   make(chan struct{}),
	}
}

// forward copies hub updates into the write queue. It exits when Unregister
// closes the updates channel, or when the connection is gone and nothing
// drains c.send anymore.
func (c *Client) forward(updates <-chan api.ServerResponse) {
	for msg := range updates {
		select {
		case c.send <- msg:
		case <-c.done:
			return
		}
	}
}

// readPump reads commands, advances the game and pushes snapshots.
func (c *Client) readPump() {
	c.game = engine.NewGame(c.server.Cfg, content.DefaultCatalog())
	playerID := c.game.PlayerID()

	defer func() {
		close(c.done)
		c.server.Hub.Unregister(c.game.PlayerID())
		if err := c.conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("close after readPump failed")
		}
		logger.Log.WithField("entity_id", playerID).Info("Client disconnected.")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// The forwarding goroutine exits when Unregister closes the channel.
	// writePump shuts down through the connection close instead, so a
	// RESTART can swap registrations without racing on c.send.
	go c.forward(c.server.Hub.Register(playerID))

	logger.Log.WithFields(logrus.Fields{
		"entity_id": playerID,
		"seed":      c.server.Cfg.Seed,
	}).Info("Client connected, game created.")

	// First snapshot so the client can render before any input.
	init := BuildResponse(c.game, &engine.TurnReport{})
	init.Type = "INIT"
	c.server.Hub.SendTo(playerID, init)

	for {
		var cmd api.ClientCommand
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.WithError(err).Error("Websocket read failed.")
			}
			return
		}
		c.handleCommand(cmd)
	}
}

func (c *Client) handleCommand(cmd api.ClientCommand) {
	var report *engine.TurnReport

	switch cmd.Action {
	case "CAST":
		var p api.CastPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			logger.Log.WithError(err).Warn("Bad CAST payload.")
			return
		}
		report = c.game.CastSpell(p.SpellID, domain.EntityID(p.TargetID))

	case "EQUIP":
		var p api.EquipPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			logger.Log.WithError(err).Warn("Bad EQUIP payload.")
			return
		}
		var err error
		report, err = c.game.EquipItem(p.Slot, domain.EntityID(p.ItemID))
		if err != nil {
			report = &engine.TurnReport{Messages: []string{err.Error()}}
		}

	case "RESTART":
		oldID := c.game.PlayerID()
		c.server.Hub.Unregister(oldID)

		// A restart is a brand new run, never a replay of the old seed.
		c.game = engine.NewGame(c.server.Cfg.Reseeded(), content.DefaultCatalog())
		go c.forward(c.server.Hub.Register(c.game.PlayerID()))
		report = &engine.TurnReport{Messages: []string{"A new adventure begins."}}

	default:
		action := domain.ParseAction(cmd.Action)
		if action == domain.ActionUnknown {
			logger.Log.WithField("action", cmd.Action).Warn("Unknown client action.")
			return
		}
		report = c.game.HandleAction(action)
	}

	resp := BuildResponse(c.game, report)
	if report.PlayerDied {
		resp.Type = "GAME_OVER"
	}
	c.server.Hub.SendTo(c.game.PlayerID(), resp)
}

// writePump forwards snapshots to the socket and keeps the connection alive.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("close after writePump failed")
		}
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close failed")
				}
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				logger.Log.WithError(err).Debug("write json failed")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
