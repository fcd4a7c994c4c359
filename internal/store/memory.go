package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/nmoreau/agentdesk/internal/domain"
	"github.com/nmoreau/agentdesk/internal/events"
)

// FaultHook lets tests inject failures into simulated operations. It is
// called with an operation name ("session.connect", "agent.create", ...)
// after the simulated delay; a non-nil return aborts the mutation.
type FaultHook func(op string) error

// EventSink receives entity-change events. *events.Hub satisfies it.
type EventSink interface {
	Publish(evt events.Event)
}

// MemoryStore implements Service over in-process collections. Every
// mutation replaces the affected collection slice atomically under the
// store mutex, so overlapping operations compose: the simulated delay
// happens outside the critical section and two interleaved operations
// both land.
type MemoryStore struct {
	mu       sync.Mutex
	sessions []domain.Session
	agents   []domain.Agent
	catalog  []domain.CatalogItem

	inflight atomic.Int32
	latency  Latency
	fault    FaultHook
	sink     EventSink
	now      func() time.Time
	newID    func() string
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithLatency sets the simulated delays.
func WithLatency(l Latency) Option {
	return func(s *MemoryStore) { s.latency = l }
}

// WithFault installs a failure-injection hook.
func WithFault(h FaultHook) Option {
	return func(s *MemoryStore) { s.fault = h }
}

// WithEvents wires an event sink for entity-change notifications.
func WithEvents(sink EventSink) Option {
	return func(s *MemoryStore) { s.sink = sink }
}

// WithClock overrides the time source. Tests use it for deterministic
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) { s.now = now }
}

// WithIDGenerator overrides entity ID generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *MemoryStore) { s.newID = gen }
}

// NewMemory creates an empty in-memory store. Without options it applies
// no simulated latency.
func NewMemory(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Busy reports whether any operation is in flight.
func (s *MemoryStore) Busy() bool {
	return s.inflight.Load() > 0
}

func (s *MemoryStore) begin() {
	s.inflight.Add(1)
}

func (s *MemoryStore) end() {
	s.inflight.Add(-1)
}

// wait simulates backend latency. It deliberately ignores context
// cancellation: once an operation's delay starts, the mutation always
// lands, matching the fire-and-forget behavior of the simulated backend.
func (s *MemoryStore) wait(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

func (s *MemoryStore) check(op string) error {
	if s.fault != nil {
		return s.fault(op)
	}
	return nil
}

func (s *MemoryStore) publish(action, entity, id string, payload any) {
	if s.sink != nil {
		s.sink.Publish(events.Event{Action: action, Entity: entity, ID: id, Payload: payload})
	}
}

// replaceAt returns a copy of list with element i replaced. Collections
// are never mutated in place so concurrent readers always see a
// consistent snapshot.
func replaceAt[T any](list []T, i int, v T) []T {
	next := make([]T, len(list))
	copy(next, list)
	next[i] = v
	return next
}

func appendCopy[T any](list []T, v T) []T {
	next := make([]T, len(list), len(list)+1)
	copy(next, list)
	return append(next, v)
}

func filterCopy[T any](list []T, keep func(T) bool) []T {
	next := make([]T, 0, len(list))
	for _, v := range list {
		if keep(v) {
			next = append(next, v)
		}
	}
	return next
}

// --- Sessions ---

// Sessions lists every session in insertion order.
func (s *MemoryStore) Sessions(_ context.Context) ([]domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions, nil
}

// Session retrieves one session by ID.
func (s *MemoryStore) Session(_ context.Context, id string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess, nil
		}
	}
	return domain.Session{}, fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
}

// CreateSession registers a new disconnected session.
func (s *MemoryStore) CreateSession(_ context.Context, name, phoneNumber string) (domain.Session, error) {
	if name == "" {
		return domain.Session{}, fmt.Errorf("%w: session name is required", domain.ErrValidation)
	}
	if phoneNumber == "" {
		return domain.Session{}, fmt.Errorf("%w: phone number is required", domain.ErrValidation)
	}

	s.begin()
	defer s.end()
	s.wait(s.latency.CreateSession)
	if err := s.check("session.create"); err != nil {
		return domain.Session{}, err
	}

	now := s.now()
	sess := domain.Session{
		ID:           s.newID(),
		Name:         name,
		PhoneNumber:  phoneNumber,
		Status:       domain.SessionDisconnected,
		LastActivity: now,
		CreatedAt:    now,
	}

	s.mu.Lock()
	s.sessions = appendCopy(s.sessions, sess)
	s.mu.Unlock()

	s.publish(events.ActionCreated, events.EntitySession, sess.ID, sess)
	return sess, nil
}

// ConnectSession simulates the QR handshake: the session enters
// connecting with a fresh QR code, and after the handshake delay flips to
// connected. A session deleted mid-handshake surfaces as not found.
func (s *MemoryStore) ConnectSession(_ context.Context, id string) (domain.Session, error) {
	s.begin()
	defer s.end()

	s.mu.Lock()
	i := indexSession(s.sessions, id)
	if i < 0 {
		s.mu.Unlock()
		return domain.Session{}, fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	cur := s.sessions[i]
	if !cur.Status.CanTransition(domain.SessionConnecting) {
		s.mu.Unlock()
		return domain.Session{}, fmt.Errorf("%w: cannot connect session in status %q", domain.ErrConflict, cur.Status)
	}

	connecting := cur
	connecting.Status = domain.SessionConnecting
	connecting.QRCode = "agentdesk://link/" + s.newID()
	connecting.LastActivity = s.now()
	s.sessions = replaceAt(s.sessions, i, connecting)
	s.mu.Unlock()

	s.publish(events.ActionUpdated, events.EntitySession, id, connecting)

	s.wait(s.latency.ConnectSession)
	if err := s.check("session.connect"); err != nil {
		s.failSession(id)
		return domain.Session{}, err
	}

	s.mu.Lock()
	i = indexSession(s.sessions, id)
	if i < 0 {
		// Deleted while the handshake was pending.
		s.mu.Unlock()
		return domain.Session{}, fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	connected := s.sessions[i]
	connected.Status = domain.SessionConnected
	connected.QRCode = ""
	connected.LastActivity = s.now()
	s.sessions = replaceAt(s.sessions, i, connected)
	s.mu.Unlock()

	s.publish(events.ActionUpdated, events.EntitySession, id, connected)
	return connected, nil
}

// failSession marks a session as errored after a failed handshake.
func (s *MemoryStore) failSession(id string) {
	s.mu.Lock()
	i := indexSession(s.sessions, id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	failed := s.sessions[i]
	failed.Status = domain.SessionError
	failed.QRCode = ""
	failed.LastActivity = s.now()
	s.sessions = replaceAt(s.sessions, i, failed)
	s.mu.Unlock()

	s.publish(events.ActionUpdated, events.EntitySession, id, failed)
}

// DeleteSession removes the session and every agent attached to it.
func (s *MemoryStore) DeleteSession(_ context.Context, id string) error {
	s.begin()
	defer s.end()
	s.wait(s.latency.DeleteSession)
	if err := s.check("session.delete"); err != nil {
		return err
	}

	s.mu.Lock()
	if indexSession(s.sessions, id) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}

	// Both collection updates happen inside one critical section so no
	// reader observes an orphaned agent.
	s.sessions = filterCopy(s.sessions, func(sess domain.Session) bool {
		return sess.ID != id
	})
	var cascaded []string
	s.agents = filterCopy(s.agents, func(a domain.Agent) bool {
		if a.SessionID == id {
			cascaded = append(cascaded, a.ID)
			return false
		}
		return true
	})
	s.mu.Unlock()

	s.publish(events.ActionDeleted, events.EntitySession, id, nil)
	for _, agentID := range cascaded {
		s.publish(events.ActionDeleted, events.EntityAgent, agentID, nil)
	}
	return nil
}

func indexSession(list []domain.Session, id string) int {
	for i, sess := range list {
		if sess.ID == id {
			return i
		}
	}
	return -1
}

// --- Agents ---

// Agents lists every agent in insertion order.
func (s *MemoryStore) Agents(_ context.Context) ([]domain.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agents, nil
}

// Agent retrieves one agent by ID.
func (s *MemoryStore) Agent(_ context.Context, id string) (domain.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.agents {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Agent{}, fmt.Errorf("%w: agent %s", domain.ErrNotFound, id)
}

// CreateAgent registers a new agent.
func (s *MemoryStore) CreateAgent(_ context.Context, input AgentInput) (domain.Agent, error) {
	if err := input.Validate(); err != nil {
		return domain.Agent{}, err
	}

	s.begin()
	defer s.end()
	s.wait(s.latency.CreateAgent)
	if err := s.check("agent.create"); err != nil {
		return domain.Agent{}, err
	}

	status := input.Status
	if status == "" {
		status = domain.AgentActive
	}

	now := s.now()
	agent := domain.Agent{
		ID:            s.newID(),
		Name:          input.Name,
		Description:   input.Description,
		SessionID:     input.SessionID,
		Status:        status,
		LastActivity:  now,
		CreatedAt:     now,
		Configuration: input.Configuration,
	}

	s.mu.Lock()
	s.agents = appendCopy(s.agents, agent)
	s.mu.Unlock()

	s.publish(events.ActionCreated, events.EntityAgent, agent.ID, agent)
	return agent, nil
}

// UpdateAgent shallow-merges the patch into the stored agent.
func (s *MemoryStore) UpdateAgent(_ context.Context, id string, patch domain.AgentPatch) (domain.Agent, error) {
	if err := patch.Validate(); err != nil {
		return domain.Agent{}, err
	}

	s.begin()
	defer s.end()
	s.wait(s.latency.UpdateAgent)
	if err := s.check("agent.update"); err != nil {
		return domain.Agent{}, err
	}

	s.mu.Lock()
	i := indexAgent(s.agents, id)
	if i < 0 {
		s.mu.Unlock()
		return domain.Agent{}, fmt.Errorf("%w: agent %s", domain.ErrNotFound, id)
	}
	updated := patch.Apply(s.agents[i])
	updated.LastActivity = s.now()
	s.agents = replaceAt(s.agents, i, updated)
	s.mu.Unlock()

	s.publish(events.ActionUpdated, events.EntityAgent, id, updated)
	return updated, nil
}

// DeleteAgent removes one agent.
func (s *MemoryStore) DeleteAgent(_ context.Context, id string) error {
	s.begin()
	defer s.end()
	s.wait(s.latency.DeleteAgent)
	if err := s.check("agent.delete"); err != nil {
		return err
	}

	s.mu.Lock()
	if indexAgent(s.agents, id) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: agent %s", domain.ErrNotFound, id)
	}
	s.agents = filterCopy(s.agents, func(a domain.Agent) bool {
		return a.ID != id
	})
	s.mu.Unlock()

	s.publish(events.ActionDeleted, events.EntityAgent, id, nil)
	return nil
}

func indexAgent(list []domain.Agent, id string) int {
	for i, a := range list {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// --- Catalog ---

// CatalogItems lists every catalog item in insertion order.
func (s *MemoryStore) CatalogItems(_ context.Context) ([]domain.CatalogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog, nil
}

// CatalogItem retrieves one catalog item by ID.
func (s *MemoryStore) CatalogItem(_ context.Context, id string) (domain.CatalogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.catalog {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.CatalogItem{}, fmt.Errorf("%w: catalog item %s", domain.ErrNotFound, id)
}

// AddCatalogItem registers a new catalog item.
func (s *MemoryStore) AddCatalogItem(_ context.Context, input CatalogInput) (domain.CatalogItem, error) {
	if err := input.Validate(); err != nil {
		return domain.CatalogItem{}, err
	}

	s.begin()
	defer s.end()
	s.wait(s.latency.MutateCatalog)
	if err := s.check("catalog.add"); err != nil {
		return domain.CatalogItem{}, err
	}

	item := domain.CatalogItem{
		ID:          s.newID(),
		Category:    input.Category,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Images:      input.Images,
		Tags:        input.Tags,
		CreatedAt:   s.now(),
	}

	s.mu.Lock()
	s.catalog = appendCopy(s.catalog, item)
	s.mu.Unlock()

	s.publish(events.ActionCreated, events.EntityCatalog, item.ID, item)
	return item, nil
}

// UpdateCatalogItem shallow-merges the patch into the stored item.
func (s *MemoryStore) UpdateCatalogItem(_ context.Context, id string, patch domain.CatalogPatch) (domain.CatalogItem, error) {
	if err := patch.Validate(); err != nil {
		return domain.CatalogItem{}, err
	}

	s.begin()
	defer s.end()
	s.wait(s.latency.MutateCatalog)
	if err := s.check("catalog.update"); err != nil {
		return domain.CatalogItem{}, err
	}

	s.mu.Lock()
	i := indexCatalog(s.catalog, id)
	if i < 0 {
		s.mu.Unlock()
		return domain.CatalogItem{}, fmt.Errorf("%w: catalog item %s", domain.ErrNotFound, id)
	}
	updated := patch.Apply(s.catalog[i])
	s.catalog = replaceAt(s.catalog, i, updated)
	s.mu.Unlock()

	s.publish(events.ActionUpdated, events.EntityCatalog, id, updated)
	return updated, nil
}

// DeleteCatalogItem removes one catalog item.
func (s *MemoryStore) DeleteCatalogItem(_ context.Context, id string) error {
	s.begin()
	defer s.end()
	s.wait(s.latency.MutateCatalog)
	if err := s.check("catalog.delete"); err != nil {
		return err
	}

	s.mu.Lock()
	if indexCatalog(s.catalog, id) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: catalog item %s", domain.ErrNotFound, id)
	}
	s.catalog = filterCopy(s.catalog, func(item domain.CatalogItem) bool {
		return item.ID != id
	})
	s.mu.Unlock()

	s.publish(events.ActionDeleted, events.EntityCatalog, id, nil)
	return nil
}

func indexCatalog(list []domain.CatalogItem, id string) int {
	for i, item := range list {
		if item.ID == id {
			return i
		}
	}
	return -1
}

var _ Service = (*MemoryStore)(nil)
