// Pairquiz
//
// Two players share a room identified by a short code. Each round,
// both privately answer the same prompt; each is then shown the
// partner's real answer hidden among decoys and must pick it out.
// A correct pick scores a point. Five rounds per game.
//
// Features:
// - Single websocket endpoint at /pair/ws; rooms are chosen by message
// - Six-character room codes from an alphabet without lookalike glyphs
// - Server-authoritative phase deadlines (clients only render countdowns)
// - Unanswered phases resolve with sentinel values instead of blocking
// - In-browser QR link for sharing a room code, backed by go-qrcode
//
// All room state is owned by a single hub goroutine: inbound messages,
// disconnects and fired timers are delivered over channels and each is
// handled to completion before the next, so the game logic is free of
// locks.

package main

import (
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
}

type inboundMessage struct {
	client *Client
	msg    clientMessage
}

type Hub struct {
	cfg    *Config
	engine *engine

	clients map[string]*Client // keyed by playerID

	register chan *Client
	unreg    chan *Client
	inbound  chan inboundMessage
	tasks    chan func()
}

func newHub(cfg *Config) *Hub {
	h := &Hub{
		cfg:      cfg,
		clients:  make(map[string]*Client),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		inbound:  make(chan inboundMessage),
		tasks:    make(chan func(), 16),
	}
	h.engine = newEngine(cfg, h, h.runAfter, rand.New(rand.NewSource(time.Now().UnixNano())))

	return h
}

// runAfter schedules fn onto the hub goroutine after d, so timer
// callbacks are serialized with inbound messages.
func (h *Hub) runAfter(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, func() { h.tasks <- fn })
	return func() { t.Stop() }
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c.playerID] = c

		case c := <-h.unreg:
			if cur, ok := h.clients[c.playerID]; ok && cur == c {
				delete(h.clients, c.playerID)
				close(c.send)
			}
			h.engine.dropPlayer(c.playerID)

		case in := <-h.inbound:
			h.dispatch(in.client, in.msg)

		case fn := <-h.tasks:
			fn()
		}
	}
}

func (h *Hub) dispatch(c *Client, msg clientMessage) {
	switch msg.Type {
	case "create_room":
		h.engine.createRoom(c.playerID, msg.PlayerName)
	case "join_room":
		h.engine.joinRoom(c.playerID, msg.PlayerName, msg.RoomCode)
	case "player_ready":
		h.engine.setReady(c.playerID, msg.RoomCode, msg.Ready != nil && *msg.Ready)
	case "submit_answer":
		h.engine.submitAnswer(c.playerID, msg.RoomCode, msg.Answer)
	case "submit_guess":
		h.engine.submitGuess(c.playerID, msg.RoomCode, msg.Guess)
	case "play_again":
		h.engine.playAgain(c.playerID, msg.RoomCode)
	default:
		// ignore unknown types
	}
}

// toPlayer implements sender. Clients that can't keep up are dropped;
// their read pump then unregisters them like any other disconnect.
func (h *Hub) toPlayer(playerID string, msg any) {
	c, ok := h.clients[playerID]
	if !ok {
		return
	}

	select {
	case c.send <- msg:
	default:
		delete(h.clients, playerID)
		close(c.send)
	}
}

func (h *Hub) toRoom(room *Room, msg any) {
	for _, p := range room.Players {
		h.toPlayer(p.ID, msg)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func serveWS(cfg *Config, h *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn:     conn,
			send:     make(chan any, 8),
			playerID: uuid.NewString(),
		}

		logf(cfg, "GAMES: Connection %s from %s", client.playerID, realIP(r))

		h.register <- client

		go client.writePump()
		client.readPump(h)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unreg <- c
		_ = c.conn.Close()
	}()

	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		h.inbound <- inboundMessage{client: c, msg: msg}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func serveLanding(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		_, _ = io.WriteString(w, newPage("pairquiz", "Connect a pairquiz client to ./ws to play."))
	}
}

// QR handler: generates a PNG QR code linking to the join page for a
// room, using go-qrcode.
func qrHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	code := ps.ByName("code")
	if code == "" {
		http.Error(w, "missing room code", http.StatusBadRequest)
		return
	}

	// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	// We are at /.../qr/:code; strip the trailing "/qr/:code" to get
	// back to the landing page.
	path := strings.TrimSuffix(r.URL.Path, "/qr/"+code)

	url := scheme + "://" + r.Host + path + "?code=" + code

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// registerPairGame sets up routes so that:
//   - $path          → HTML landing page
//   - $path/ws       → shared websocket endpoint
//   - $path/qr/:code → PNG QR code linking a room's join page
func registerPairGame(cfg *Config, path string, mux *httprouter.Router) {
	hub := newHub(cfg)
	go hub.run()

	mux.GET(cfg.prefix+path, serveLanding(cfg))

	mux.GET(cfg.prefix+path+"/ws", serveWS(cfg, hub))

	mux.GET(cfg.prefix+path+"/qr/:code", qrHandler)
}
