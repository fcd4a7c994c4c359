package domain

import (
	"fmt"
	"time"
)

// AgentStatus is the lifecycle state of an AI agent.
type AgentStatus string

const (
	AgentActive   AgentStatus = "active"
	AgentInactive AgentStatus = "inactive"
	AgentTraining AgentStatus = "training"
)

// Valid reports whether s is a known agent status.
func (s AgentStatus) Valid() bool {
	switch s {
	case AgentActive, AgentInactive, AgentTraining:
		return true
	}
	return false
}

// ResponseStyle controls the tone an agent answers with.
type ResponseStyle string

const (
	StyleFormal       ResponseStyle = "formal"
	StyleCasual       ResponseStyle = "casual"
	StyleFriendly     ResponseStyle = "friendly"
	StyleProfessional ResponseStyle = "professional"
)

// Valid reports whether s is a known response style.
func (s ResponseStyle) Valid() bool {
	switch s {
	case StyleFormal, StyleCasual, StyleFriendly, StyleProfessional:
		return true
	}
	return false
}

// Bounds for AgentConfiguration.MaxResponseLength.
const (
	MinResponseLength = 100
	MaxResponseLength = 2000
)

// AgentConfiguration holds the behavioral settings of an agent.
type AgentConfiguration struct {
	Personality        string        `json:"personality"`
	ResponseStyle      ResponseStyle `json:"response_style"`
	Language           string        `json:"language"`
	MaxResponseLength  int           `json:"max_response_length"`
	UseShopData        bool          `json:"use_shop_data"`
	ShopDataCategories []string      `json:"shop_data_categories"`
	FallbackMessage    string        `json:"fallback_message"`
}

// Validate checks the configuration against domain constraints.
func (c *AgentConfiguration) Validate() error {
	if !c.ResponseStyle.Valid() {
		return fmt.Errorf("%w: unknown response style %q", ErrValidation, c.ResponseStyle)
	}
	if c.MaxResponseLength < MinResponseLength || c.MaxResponseLength > MaxResponseLength {
		return fmt.Errorf("%w: max response length %d outside [%d, %d]",
			ErrValidation, c.MaxResponseLength, MinResponseLength, MaxResponseLength)
	}
	return nil
}

// Agent represents a configured automated responder attached to a session.
type Agent struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	SessionID     string             `json:"session_id"`
	Status        AgentStatus        `json:"status"`
	LastActivity  time.Time          `json:"last_activity"`
	CreatedAt     time.Time          `json:"created_at"`
	Configuration AgentConfiguration `json:"configuration"`
}

// AgentPatch is a partial update to an agent. Nil fields are left unchanged.
type AgentPatch struct {
	Name          *string             `json:"name,omitempty"`
	Description   *string             `json:"description,omitempty"`
	SessionID     *string             `json:"session_id,omitempty"`
	Status        *AgentStatus        `json:"status,omitempty"`
	Configuration *AgentConfiguration `json:"configuration,omitempty"`
}

// Apply merges the patch into a copy of the agent and returns it.
func (p AgentPatch) Apply(a Agent) Agent {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.SessionID != nil {
		a.SessionID = *p.SessionID
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Configuration != nil {
		a.Configuration = *p.Configuration
	}
	return a
}

// Validate checks the patch's provided fields against domain constraints.
func (p AgentPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("%w: agent name cannot be empty", ErrValidation)
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: unknown agent status %q", ErrValidation, *p.Status)
	}
	if p.Configuration != nil {
		return p.Configuration.Validate()
	}
	return nil
}
