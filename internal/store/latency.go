package store

import "time"

// Latency holds the simulated backend delay for each operation class.
// The zero value disables all delays, which is what tests want.
type Latency struct {
	CreateSession time.Duration
	DeleteSession time.Duration
	// ConnectSession covers the QR handshake and is deliberately the
	// longest delay.
	ConnectSession time.Duration
	CreateAgent    time.Duration
	UpdateAgent    time.Duration
	DeleteAgent    time.Duration
	MutateCatalog  time.Duration
	Auth           time.Duration
}

// DefaultLatency returns the delays the demo backend simulates.
func DefaultLatency() Latency {
	return Latency{
		CreateSession:  1 * time.Second,
		DeleteSession:  500 * time.Millisecond,
		ConnectSession: 2 * time.Second,
		CreateAgent:    1 * time.Second,
		UpdateAgent:    500 * time.Millisecond,
		DeleteAgent:    500 * time.Millisecond,
		MutateCatalog:  500 * time.Millisecond,
		Auth:           1 * time.Second,
	}
}

// Scaled returns a copy with every delay multiplied by f. A factor of 0
// disables simulated latency entirely.
func (l Latency) Scaled(f float64) Latency {
	scale := func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * f)
	}
	return Latency{
		CreateSession:  scale(l.CreateSession),
		DeleteSession:  scale(l.DeleteSession),
		ConnectSession: scale(l.ConnectSession),
		CreateAgent:    scale(l.CreateAgent),
		UpdateAgent:    scale(l.UpdateAgent),
		DeleteAgent:    scale(l.DeleteAgent),
		MutateCatalog:  scale(l.MutateCatalog),
		Auth:           scale(l.Auth),
	}
}
