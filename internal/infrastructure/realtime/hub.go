package realtime

import (
	"sync"
)

// Hub tracks one active notification socket per user. Conversations here are
// single-user (user plus assistant), so there are no rooms to fan out to: a
// completed turn only ever notifies its own user.
type Hub struct {
	mu           sync.RWMutex
	sessions     map[string]*Connection // sessionID -> connection
	userSessions map[string]string      // userID -> sessionID
}

// NewHub constructs an initialized Hub.
func NewHub() *Hub {
	return &Hub{
		sessions:     make(map[string]*Connection),
		userSessions: make(map[string]string),
	}
}

// Attach registers a connection for the given user. If a previous session exists,
// it is removed and closed after the swap to enforce one active socket per user.
func (h *Hub) Attach(conn *Connection) {
	var previous *Connection

	h.mu.Lock()
	if existingID, ok := h.userSessions[conn.UserID]; ok {
		if existing := h.sessions[existingID]; existing != nil {
			previous = existing
			h.detachLocked(existingID)
		}
	}

	h.sessions[conn.ID] = conn
	h.userSessions[conn.UserID] = conn.ID
	h.mu.Unlock()

	conn.Start()

	if previous != nil {
		previous.Close(4001, "session replaced")
	}
}

// Detach removes a connection if it is still tracked.
func (h *Hub) Detach(conn *Connection) {
	h.mu.Lock()
	h.detachLocked(conn.ID)
	h.mu.Unlock()
}

// NotifyUser delivers payload to the current connection of the given user.
// Returns false when the user has no live socket; delivery is best-effort.
func (h *Hub) NotifyUser(userID string, payload []byte) bool {
	h.mu.RLock()
	sessionID, ok := h.userSessions[userID]
	if !ok {
		h.mu.RUnlock()
		return false
	}
	conn := h.sessions[sessionID]
	h.mu.RUnlock()
	if conn == nil {
		return false
	}
	return conn.Send(payload) == nil
}

// Close terminates all tracked connections and clears hub state.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := make([]*Connection, 0, len(h.sessions))
	for _, conn := range h.sessions {
		sessions = append(sessions, conn)
	}
	h.sessions = make(map[string]*Connection)
	h.userSessions = make(map[string]string)
	h.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(1001, "hub shutdown")
	}
}

func (h *Hub) detachLocked(sessionID string) {
	conn, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	delete(h.sessions, sessionID)

	if current, ok := h.userSessions[conn.UserID]; ok && current == sessionID {
		delete(h.userSessions, conn.UserID)
	}
}
