package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/dominionfree/dominion-server-go/internal/config"
)

// WSMessage is the wire envelope in both directions.
type WSMessage struct {
	Type     string          `json:"type"`
	GameID   string          `json:"game_id,omitempty"`
	PlayerID string          `json:"player_id,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// Inbound message types.
const (
	MsgCreateGame = "create_game"
	MsgJoinGame   = "join_game"
	MsgDecision   = "decision"
	MsgGetState   = "get_state"
)

// Outbound message types.
const (
	MsgGameState = "game_state"
	MsgGameOver  = "game_over"
	MsgError     = "error"
)

type createGameData struct {
	Players []string `json:"players"`
	Seed    int64    `json:"seed,omitempty"`
}

type decisionData struct {
	Chosen []string `json:"chosen"`
}

type errorData struct {
	Message string `json:"message"`
}

type gameOverData struct {
	Scores  map[string]int `json:"scores"`
	Winners []string       `json:"winners"`
	Turns   int            `json:"turns"`
}

// Client is one WebSocket connection bound to a player seat.
// playerID and gameID are guarded by the hub mutex; the readPump goroutine
// and the broadcast paths both touch them.
type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	playerID string
	gameID   string
}

// Hub routes messages between clients and hosted games.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	manager    *Manager
	logger     *zap.Logger
	cfg        config.WebSocketConfig
}

// NewHub creates a hub over the given game manager.
func NewHub(manager *Manager, cfg config.WebSocketConfig, logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		manager:    manager,
		logger:     logger,
		cfg:        cfg,
	}
}

// Run processes client registration until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			gameID, playerID := client.gameID, client.playerID
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Debug("client unregistered",
				zap.String("player_id", playerID),
				zap.String("game_id", gameID),
			)
		}
	}
}

// bindSeat records the client's game and seat under the hub mutex.
func (h *Hub) bindSeat(client *Client, gameID, playerID string) {
	h.mu.Lock()
	client.gameID = gameID
	if playerID != "" {
		client.playerID = playerID
	}
	h.mu.Unlock()
}

// seat reads the client's game and seat under the hub mutex.
func (h *Hub) seat(client *Client) (gameID, playerID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return client.gameID, client.playerID
}

func (h *Hub) handleMessage(client *Client, msg WSMessage) {
	switch msg.Type {
	case MsgCreateGame:
		var data createGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			h.sendError(client, "malformed create_game payload")
			return
		}
		session, err := h.manager.CreateGame(data.Players, data.Seed)
		if err != nil {
			h.sendError(client, err.Error())
			return
		}
		h.bindSeat(client, session.GameID(), msg.PlayerID)
		h.broadcastGame(session)

	case MsgJoinGame:
		session := h.manager.GetSession(msg.GameID)
		if session == nil {
			h.sendError(client, "unknown game "+msg.GameID)
			return
		}
		seated := false
		for _, id := range session.Players() {
			if id == msg.PlayerID {
				seated = true
				break
			}
		}
		if !seated {
			h.sendError(client, "player "+msg.PlayerID+" has no seat in game "+msg.GameID)
			return
		}
		h.bindSeat(client, msg.GameID, msg.PlayerID)
		h.sendViewAs(client, session, msg.PlayerID)

	case MsgDecision:
		gameID, playerID := h.seat(client)
		session := h.manager.GetSession(gameID)
		if session == nil {
			h.sendError(client, "not joined to a game")
			return
		}
		var data decisionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			h.sendError(client, "malformed decision payload")
			return
		}
		if err := session.Resolve(context.Background(), playerID, data.Chosen); err != nil {
			// Invalid answers leave the decision pending; report and let
			// the client retry.
			h.sendError(client, err.Error())
			h.sendViewAs(client, session, playerID)
			return
		}
		h.broadcastGame(session)
		if session.Finished() {
			h.broadcastGameOver(session)
		}

	case MsgGetState:
		gameID, playerID := h.seat(client)
		session := h.manager.GetSession(gameID)
		if session == nil {
			h.sendError(client, "not joined to a game")
			return
		}
		h.sendViewAs(client, session, playerID)

	default:
		h.sendError(client, "unknown message type "+msg.Type)
	}
}

// broadcastGame sends every seated client its own projection of the game.
func (h *Hub) broadcastGame(session *Session) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if client.gameID == session.GameID() {
			h.sendViewAs(client, session, client.playerID)
		}
	}
}

func (h *Hub) broadcastGameOver(session *Session) {
	result := session.Result()
	if result == nil {
		return
	}
	data := gameOverData{Scores: result.Scores, Winners: result.Winners, Turns: result.Turns}
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	msg, err := json.Marshal(WSMessage{Type: MsgGameOver, GameID: session.GameID(), Data: payload})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if client.gameID == session.GameID() {
			client.trySend(msg)
		}
	}
}

func (h *Hub) sendViewAs(client *Client, session *Session, playerID string) {
	view := session.View(playerID)
	payload, err := json.Marshal(view)
	if err != nil {
		h.logger.Error("failed to encode view", zap.Error(err))
		return
	}
	msg, err := json.Marshal(WSMessage{Type: MsgGameState, GameID: session.GameID(), Data: payload})
	if err != nil {
		return
	}
	client.trySend(msg)
}

func (h *Hub) sendError(client *Client, message string) {
	payload, _ := json.Marshal(errorData{Message: message})
	msg, err := json.Marshal(WSMessage{Type: MsgError, Data: payload})
	if err != nil {
		return
	}
	client.trySend(msg)
}

func (c *Client) trySend(msg []byte) {
	select {
	case c.send <- msg:
	default:
		// Slow consumer; drop the frame rather than block the hub.
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	if h.cfg.ReadLimit > 0 {
		c.conn.SetReadLimit(h.cfg.ReadLimit)
	}

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.sendError(c, "malformed message")
			continue
		}
		h.handleMessage(c, msg)
	}
}

func (c *Client) writePump(h *Hub) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades an HTTP request and attaches the connection to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 256),
	}
	h.register <- client

	go client.writePump(h)
	go client.readPump(h)
}

// StartWebSocketServer runs the gateway until the context is cancelled.
func StartWebSocketServer(ctx context.Context, cfg config.WebSocketConfig, manager *Manager, logger *zap.Logger) error {
	hub := NewHub(manager, cfg, logger)
	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)

	srv := &http.Server{
		Addr:    cfg.Address,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("websocket gateway listening", zap.String("address", cfg.Address))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
