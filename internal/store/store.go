// Package store owns the dashboard's domain collections (sessions, agents,
// catalog) behind a service interface. The in-memory implementation
// simulates backend latency; a networked implementation can replace it
// without touching the HTTP layer.
package store

import (
	"context"
	"fmt"

	"github.com/nmoreau/agentdesk/internal/domain"
)

// Service defines every operation the dashboard performs against the
// session, agent, and catalog collections.
type Service interface {
	// Sessions
	Sessions(ctx context.Context) ([]domain.Session, error)
	Session(ctx context.Context, id string) (domain.Session, error)
	CreateSession(ctx context.Context, name, phoneNumber string) (domain.Session, error)
	// ConnectSession drives the session through connecting to connected.
	// It fails with domain.ErrConflict if the current status does not
	// allow a connection attempt.
	ConnectSession(ctx context.Context, id string) (domain.Session, error)
	// DeleteSession removes the session and cascades to every agent
	// attached to it.
	DeleteSession(ctx context.Context, id string) error

	// Agents
	Agents(ctx context.Context) ([]domain.Agent, error)
	Agent(ctx context.Context, id string) (domain.Agent, error)
	CreateAgent(ctx context.Context, input AgentInput) (domain.Agent, error)
	// UpdateAgent shallow-merges the patch into the stored agent and
	// refreshes its last-activity timestamp.
	UpdateAgent(ctx context.Context, id string, patch domain.AgentPatch) (domain.Agent, error)
	DeleteAgent(ctx context.Context, id string) error

	// Catalog
	CatalogItems(ctx context.Context) ([]domain.CatalogItem, error)
	CatalogItem(ctx context.Context, id string) (domain.CatalogItem, error)
	AddCatalogItem(ctx context.Context, input CatalogInput) (domain.CatalogItem, error)
	UpdateCatalogItem(ctx context.Context, id string, patch domain.CatalogPatch) (domain.CatalogItem, error)
	DeleteCatalogItem(ctx context.Context, id string) error

	// Busy reports whether any operation is currently in flight. The
	// dashboard uses it to disable duplicate submissions; it is advisory
	// and does not serialize operations.
	Busy() bool
}

// AgentInput carries the fields needed to create an agent. The session
// reference is not checked for existence; callers own cross-collection
// consistency.
type AgentInput struct {
	Name          string                    `json:"name"`
	Description   string                    `json:"description"`
	SessionID     string                    `json:"session_id"`
	Status        domain.AgentStatus        `json:"status"`
	Configuration domain.AgentConfiguration `json:"configuration"`
}

// Validate checks the input against domain constraints.
func (in *AgentInput) Validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: agent name is required", domain.ErrValidation)
	}
	if in.SessionID == "" {
		return fmt.Errorf("%w: agent session reference is required", domain.ErrValidation)
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("%w: unknown agent status %q", domain.ErrValidation, in.Status)
	}
	return in.Configuration.Validate()
}

// CatalogInput carries the fields needed to add a catalog item.
type CatalogInput struct {
	Category    string   `json:"category"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
	Tags        []string `json:"tags"`
}

// Validate checks the input against domain constraints.
func (in *CatalogInput) Validate() error {
	item := domain.CatalogItem{
		Category: in.Category,
		Name:     in.Name,
		Price:    in.Price,
		Stock:    in.Stock,
	}
	return item.Validate()
}
