package domain

import (
	"time"
)

// SessionStatus is the connection state of a messaging session.
type SessionStatus string

const (
	SessionDisconnected SessionStatus = "disconnected"
	SessionConnecting   SessionStatus = "connecting"
	SessionConnected    SessionStatus = "connected"
	SessionError        SessionStatus = "error"
)

// Valid reports whether s is a known session status.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionDisconnected, SessionConnecting, SessionConnected, SessionError:
		return true
	}
	return false
}

// sessionTransitions maps each status to the set of statuses it may move to.
// A connected session must disconnect before it can reconnect.
var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionDisconnected: {SessionConnecting},
	SessionConnecting:   {SessionConnected, SessionDisconnected, SessionError},
	SessionConnected:    {SessionDisconnected, SessionError},
	SessionError:        {SessionConnecting, SessionDisconnected},
}

// CanTransition reports whether a session may move from s to next.
func (s SessionStatus) CanTransition(next SessionStatus) bool {
	for _, allowed := range sessionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Session represents a linked WhatsApp account with its connection lifecycle.
type Session struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	PhoneNumber  string        `json:"phone_number"`
	QRCode       string        `json:"qr_code,omitempty"`
	Status       SessionStatus `json:"status"`
	LastActivity time.Time     `json:"last_activity"`
	CreatedAt    time.Time     `json:"created_at"`
}

// IsConnected returns true if the session is currently connected.
func (s *Session) IsConnected() bool {
	return s.Status == SessionConnected
}
