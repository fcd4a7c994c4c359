package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nmoreau/agentdesk/internal/domain"
	"github.com/nmoreau/agentdesk/internal/events"
)

func testAgentInput(sessionID string) AgentInput {
	return AgentInput{
		Name:      "Shop Assistant",
		SessionID: sessionID,
		Status:    domain.AgentActive,
		Configuration: domain.AgentConfiguration{
			Personality:       "Helpful assistant",
			ResponseStyle:     domain.StyleFriendly,
			Language:          "en",
			MaxResponseLength: 300,
			FallbackMessage:   "Let me get a human.",
		},
	}
}

func TestCreateSessionDefaults(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	sess, err := s.CreateSession(ctx, "Main Store", "+33123456789")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if sess.ID == "" {
		t.Error("expected a generated ID")
	}
	if sess.Status != domain.SessionDisconnected {
		t.Errorf("expected new session to be disconnected, got %s", sess.Status)
	}
	if sess.CreatedAt.IsZero() || sess.LastActivity.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestCreateSessionValidation(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	if _, err := s.CreateSession(ctx, "", "+33123456789"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error for empty name, got %v", err)
	}
	if _, err := s.CreateSession(ctx, "Main Store", ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error for empty phone, got %v", err)
	}

	sessions, _ := s.Sessions(ctx)
	if len(sessions) != 0 {
		t.Errorf("rejected creates must not mutate the collection, got %d sessions", len(sessions))
	}
}

func TestSequentialCreatesYieldDistinctIDsInOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	const n = 10
	var created []string
	for i := 0; i < n; i++ {
		sess, err := s.CreateSession(ctx, fmt.Sprintf("Session %d", i), fmt.Sprintf("+3300000000%d", i))
		if err != nil {
			t.Fatalf("CreateSession %d failed: %v", i, err)
		}
		created = append(created, sess.ID)
	}

	seen := make(map[string]bool)
	for _, id := range created {
		if seen[id] {
			t.Errorf("duplicate ID %s", id)
		}
		seen[id] = true
	}

	sessions, err := s.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions failed: %v", err)
	}
	if len(sessions) != n {
		t.Fatalf("expected %d sessions, got %d", n, len(sessions))
	}
	for i, sess := range sessions {
		if sess.ID != created[i] {
			t.Errorf("listing out of insertion order at %d: got %s, want %s", i, sess.ID, created[i])
		}
	}
}

func TestDeleteSessionCascadesToAgents(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	doomed, err := s.CreateSession(ctx, "Doomed", "+331")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	kept, err := s.CreateSession(ctx, "Kept", "+332")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := s.CreateAgent(ctx, testAgentInput(doomed.ID)); err != nil {
			t.Fatalf("CreateAgent failed: %v", err)
		}
	}
	survivor, err := s.CreateAgent(ctx, testAgentInput(kept.ID))
	if err != nil {
		t.Fatalf("CreateAgent failed: %v", err)
	}

	if err := s.DeleteSession(ctx, doomed.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	sessions, _ := s.Sessions(ctx)
	if len(sessions) != 1 || sessions[0].ID != kept.ID {
		t.Errorf("expected only the kept session to remain, got %+v", sessions)
	}

	agents, _ := s.Agents(ctx)
	if len(agents) != 1 || agents[0].ID != survivor.ID {
		t.Errorf("cascade removed the wrong agents, got %+v", agents)
	}
}

func TestDeleteSessionNotFound(t *testing.T) {
	s := NewMemory()
	if err := s.DeleteSession(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestConnectSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	hub := events.NewHub()
	s := NewMemory(WithEvents(hub))

	sess, err := s.CreateSession(ctx, "Main Store", "+331")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	ch, cancel := hub.Subscribe()
	defer cancel()

	connected, err := s.ConnectSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("ConnectSession failed: %v", err)
	}
	if connected.Status != domain.SessionConnected {
		t.Errorf("expected connected status, got %s", connected.Status)
	}
	if connected.QRCode != "" {
		t.Error("expected QR code to be cleared once connected")
	}
	if !connected.LastActivity.After(sess.LastActivity) && !connected.LastActivity.Equal(sess.LastActivity) {
		t.Error("expected last activity to be refreshed")
	}

	// The handshake publishes a connecting event followed by a connected one.
	var statuses []domain.SessionStatus
	for len(statuses) < 2 {
		select {
		case evt := <-ch:
			if evt.Entity != events.EntitySession || evt.Action != events.ActionUpdated {
				continue
			}
			payload, ok := evt.Payload.(domain.Session)
			if !ok {
				t.Fatalf("unexpected payload type %T", evt.Payload)
			}
			statuses = append(statuses, payload.Status)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for handshake events, saw %v", statuses)
		}
	}
	if statuses[0] != domain.SessionConnecting || statuses[1] != domain.SessionConnected {
		t.Errorf("expected connecting then connected, got %v", statuses)
	}
}

func TestConnectSessionRejectsIllegalTransition(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	sess, err := s.CreateSession(ctx, "Main Store", "+331")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if _, err := s.ConnectSession(ctx, sess.ID); err != nil {
		t.Fatalf("first connect failed: %v", err)
	}

	// Connecting an already-connected session must be rejected.
	if _, err := s.ConnectSession(ctx, sess.ID); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestConnectSessionNotFound(t *testing.T) {
	s := NewMemory()
	if _, err := s.ConnectSession(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestConnectSessionFaultMarksError(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(WithFault(func(op string) error {
		if op == "session.connect" {
			return errors.New("handshake timed out")
		}
		return nil
	}))

	sess, err := s.CreateSession(ctx, "Main Store", "+331")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if _, err := s.ConnectSession(ctx, sess.ID); err == nil {
		t.Fatal("expected connect to fail")
	}

	got, err := s.Session(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if got.Status != domain.SessionError {
		t.Errorf("expected errored session, got %s", got.Status)
	}

	// An errored session may retry.
	s.fault = nil
	if _, err := s.ConnectSession(ctx, sess.ID); err != nil {
		t.Errorf("retry after error failed: %v", err)
	}
}

func TestUpdateAgentChangesOnlyPatchedFields(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	sess, err := s.CreateSession(ctx, "Main Store", "+331")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	agent, err := s.CreateAgent(ctx, testAgentInput(sess.ID))
	if err != nil {
		t.Fatalf("CreateAgent failed: %v", err)
	}

	status := domain.AgentInactive
	updated, err := s.UpdateAgent(ctx, agent.ID, domain.AgentPatch{Status: &status})
	if err != nil {
		t.Fatalf("UpdateAgent failed: %v", err)
	}

	if updated.Status != domain.AgentInactive {
		t.Errorf("expected inactive status, got %s", updated.Status)
	}
	if updated.Name != agent.Name || updated.Description != agent.Description ||
		updated.SessionID != agent.SessionID || !updated.CreatedAt.Equal(agent.CreatedAt) {
		t.Error("patch changed fields it should not have touched")
	}
	if updated.Configuration.Personality != agent.Configuration.Personality ||
		updated.Configuration.MaxResponseLength != agent.Configuration.MaxResponseLength {
		t.Error("patch changed configuration it should not have touched")
	}
}

func TestUpdateAgentValidatesPatch(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	sess, _ := s.CreateSession(ctx, "Main Store", "+331")
	agent, _ := s.CreateAgent(ctx, testAgentInput(sess.ID))

	bad := domain.AgentConfiguration{
		ResponseStyle:     domain.StyleFormal,
		MaxResponseLength: 50,
	}
	if _, err := s.UpdateAgent(ctx, agent.ID, domain.AgentPatch{Configuration: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error for out-of-range response length, got %v", err)
	}
}

func TestCatalogCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	item, err := s.AddCatalogItem(ctx, CatalogInput{
		Category: "electronics",
		Name:     "Wireless Earbuds",
		Price:    79.99,
		Stock:    12,
		Tags:     []string{"audio"},
	})
	if err != nil {
		t.Fatalf("AddCatalogItem failed: %v", err)
	}

	price := 59.99
	updated, err := s.UpdateCatalogItem(ctx, item.ID, domain.CatalogPatch{Price: &price})
	if err != nil {
		t.Fatalf("UpdateCatalogItem failed: %v", err)
	}
	if updated.Price != 59.99 {
		t.Errorf("expected updated price, got %v", updated.Price)
	}
	if updated.Stock != 12 || updated.Name != item.Name {
		t.Error("patch changed fields it should not have touched")
	}

	if err := s.DeleteCatalogItem(ctx, item.ID); err != nil {
		t.Fatalf("DeleteCatalogItem failed: %v", err)
	}
	if _, err := s.CatalogItem(ctx, item.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not-found after delete, got %v", err)
	}
}

func TestCatalogValidation(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	tests := []struct {
		name  string
		input CatalogInput
	}{
		{"empty name", CatalogInput{Category: "c"}},
		{"empty category", CatalogInput{Name: "n"}},
		{"negative price", CatalogInput{Category: "c", Name: "n", Price: -1}},
		{"negative stock", CatalogInput{Category: "c", Name: "n", Stock: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.AddCatalogItem(ctx, tt.input); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

// TestConcurrentMutationsCompose exercises the atomic-replace guarantee:
// an update and a delete racing on the same collection must both land.
func TestConcurrentMutationsCompose(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(WithLatency(Latency{
		UpdateAgent: 10 * time.Millisecond,
		DeleteAgent: 10 * time.Millisecond,
	}))

	sess, err := s.CreateSession(ctx, "Main Store", "+331")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	a, err := s.CreateAgent(ctx, testAgentInput(sess.ID))
	if err != nil {
		t.Fatalf("CreateAgent failed: %v", err)
	}
	b, err := s.CreateAgent(ctx, testAgentInput(sess.ID))
	if err != nil {
		t.Fatalf("CreateAgent failed: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		status := domain.AgentInactive
		if _, err := s.UpdateAgent(ctx, a.ID, domain.AgentPatch{Status: &status}); err != nil {
			t.Errorf("UpdateAgent failed: %v", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.DeleteAgent(ctx, b.ID); err != nil {
			t.Errorf("DeleteAgent failed: %v", err)
		}
	}()
	wg.Wait()

	agents, _ := s.Agents(ctx)
	if len(agents) != 1 {
		t.Fatalf("expected exactly one agent to remain, got %d", len(agents))
	}
	if agents[0].ID != a.ID || agents[0].Status != domain.AgentInactive {
		t.Errorf("lost an update: remaining agent %+v", agents[0])
	}
}

func TestBusyFlagDuringOperation(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(WithLatency(Latency{CreateSession: 50 * time.Millisecond}))

	if s.Busy() {
		t.Fatal("store must start idle")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := s.CreateSession(ctx, "Main Store", "+331"); err != nil {
			t.Errorf("CreateSession failed: %v", err)
		}
	}()

	// Wait for the operation to enter its simulated delay.
	deadline := time.Now().Add(time.Second)
	for !s.Busy() {
		if time.Now().After(deadline) {
			t.Fatal("store never reported busy")
		}
		time.Sleep(time.Millisecond)
	}

	<-done
	if s.Busy() {
		t.Error("store must be idle after the operation completes")
	}
}

func TestFaultHookAbortsMutation(t *testing.T) {
	ctx := context.Background()
	injected := errors.New("backend unavailable")
	s := NewMemory(WithFault(func(op string) error {
		if op == "session.create" {
			return injected
		}
		return nil
	}))

	if _, err := s.CreateSession(ctx, "Main Store", "+331"); !errors.Is(err, injected) {
		t.Fatalf("expected injected error, got %v", err)
	}
	sessions, _ := s.Sessions(ctx)
	if len(sessions) != 0 {
		t.Errorf("aborted create must not mutate the collection, got %d sessions", len(sessions))
	}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	s.Seed()

	sessions, _ := s.Sessions(ctx)
	if len(sessions) != 1 {
		t.Fatalf("expected 1 seeded session, got %d", len(sessions))
	}
	if sessions[0].Status != domain.SessionConnected {
		t.Errorf("expected seeded session to be connected, got %s", sessions[0].Status)
	}

	agents, _ := s.Agents(ctx)
	if len(agents) != 1 {
		t.Fatalf("expected 1 seeded agent, got %d", len(agents))
	}
	if agents[0].SessionID != sessions[0].ID {
		t.Error("seeded agent must reference the seeded session")
	}
}

func TestLatencyScaled(t *testing.T) {
	l := DefaultLatency().Scaled(0)
	if l.CreateSession != 0 || l.ConnectSession != 0 || l.Auth != 0 {
		t.Errorf("scaling by zero must disable all delays, got %+v", l)
	}

	half := DefaultLatency().Scaled(0.5)
	if half.ConnectSession != time.Second {
		t.Errorf("expected 1s connect delay at half scale, got %v", half.ConnectSession)
	}
}
