package domain

import "testing"

func TestSessionStatusCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from SessionStatus
		to   SessionStatus
		want bool
	}{
		{"disconnected to connecting", SessionDisconnected, SessionConnecting, true},
		{"disconnected to connected skips handshake", SessionDisconnected, SessionConnected, false},
		{"connecting to connected", SessionConnecting, SessionConnected, true},
		{"connecting to error", SessionConnecting, SessionError, true},
		{"connecting aborted", SessionConnecting, SessionDisconnected, true},
		{"connected to disconnected", SessionConnected, SessionDisconnected, true},
		{"connected to connecting without disconnect", SessionConnected, SessionConnecting, false},
		{"connected to connected", SessionConnected, SessionConnected, false},
		{"error to connecting retries", SessionError, SessionConnecting, true},
		{"error to connected", SessionError, SessionConnected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestSessionStatusValid(t *testing.T) {
	for _, s := range []SessionStatus{SessionDisconnected, SessionConnecting, SessionConnected, SessionError} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if SessionStatus("paused").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}

func TestIsConnected(t *testing.T) {
	s := Session{Status: SessionConnected}
	if !s.IsConnected() {
		t.Error("expected connected session to report IsConnected")
	}
	s.Status = SessionConnecting
	if s.IsConnected() {
		t.Error("expected connecting session to not report IsConnected")
	}
}
