package handlers

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"onegoal/internal/models"
	jwtutil "onegoal/pkg/jwt"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks live websocket connections per user and pushes freshly created
// notifications to them. It implements services.NotificationPublisher.
type Hub struct {
	mu      sync.Mutex
	clients map[string][]*websocket.Conn
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string][]*websocket.Conn)}
}

// Publish sends the notification to every open connection of the user. A user
// with no open connections is simply skipped.
func (h *Hub) Publish(userID string, notif models.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conn := range h.clients[userID] {
		_ = conn.WriteJSON(notif)
	}
}

func (h *Hub) add(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userID] = append(h.clients[userID], conn)
}

func (h *Hub) remove(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.clients[userID]
	for i, c := range conns {
		if c == conn {
			h.clients[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

// WSNotificationHandler upgrades an authenticated request into a live
// notification stream.
type WSNotificationHandler struct {
	Hub       *Hub
	JWTSecret string
}

// NewWSNotificationHandler creates a new instance of WSNotificationHandler.
func NewWSNotificationHandler(hub *Hub, jwtSecret string) *WSNotificationHandler {
	return &WSNotificationHandler{Hub: hub, JWTSecret: jwtSecret}
}

// GET /ws/notifications?token=
//
// Browsers cannot set headers on websocket dials, so the JWT arrives as a
// query parameter instead of the usual Authorization header.
func (h *WSNotificationHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}
	claims, err := jwtutil.ValidateToken(token, h.JWTSecret)
	if err != nil {
		logrus.WithError(err).Warn("WebSocket auth failed")
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	logrus.WithField("userID", userID).Info("WebSocket connected")
	h.Hub.add(userID, conn)

	defer func() {
		h.Hub.remove(userID, conn)
		conn.Close()
		logrus.WithField("userID", userID).Info("WebSocket disconnected")
	}()

	// The stream is one-way; reads only detect the client going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
