package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/parla-app/parla-backend/internal/middleware"
	"github.com/parla-app/parla-backend/internal/services"
)

var usernameUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// usernameCheckMessage is one candidate typed into the username field.
type usernameCheckMessage struct {
	Username string `json:"username"`
}

// usernameStatusMessage is the advisory answer for one candidate.
type usernameStatusMessage struct {
	Username string `json:"username"`
	Status   string `json:"status"` // idle, invalid, taken, ok
}

const usernameWSIdleTimeout = 5 * time.Minute

// UsernameWS streams live username availability feedback while the user
// types. Authentication uses the session token (Authorization: Bearer
// <token>, or ?token= for browser WebSocket clients). The feedback is
// advisory; saving re-validates against the store.
func (h *Handler) UsernameWS(w http.ResponseWriter, r *http.Request) {
	token := middleware.SessionToken(r)
	if token == "" {
		token = r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing session token", http.StatusUnauthorized)
			return
		}
	}

	userID, ok, err := services.ValidateSession(token)
	if err != nil || !ok {
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}

	conn, err := usernameUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		conn.SetReadDeadline(time.Now().Add(usernameWSIdleTimeout))

		var msg usernameCheckMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		status, err := h.Profile.CheckUsername(r.Context(), userID, msg.Username)
		if err != nil {
			status = services.UsernameIdle
		}

		if err := conn.WriteJSON(usernameStatusMessage{Username: msg.Username, Status: status}); err != nil {
			return
		}
	}
}
