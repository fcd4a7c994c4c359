package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nmoreau/agentdesk/internal/domain"
	"github.com/nmoreau/agentdesk/internal/kv"
)

// SelectedSlotKey is the persisted slot carrying a selected template from
// the template gallery to the agent-creation form. It is consumed on
// first read.
const SelectedSlotKey = "selectedAgentTemplate"

// Prefill holds the agent-creation form defaults, optionally seeded from
// a selected template.
type Prefill struct {
	Name          string                    `json:"name"`
	Configuration domain.AgentConfiguration `json:"configuration"`
}

// DefaultConfiguration returns the agent-creation form defaults used when
// no template was selected.
func DefaultConfiguration() domain.AgentConfiguration {
	return domain.AgentConfiguration{
		ResponseStyle:     domain.StyleFriendly,
		Language:          "en",
		MaxResponseLength: 300,
		FallbackMessage:   "I'll transfer your request to a human advisor.",
	}
}

// Handoff moves a selected template from the gallery to the creation form
// through a persisted slot.
type Handoff struct {
	slots kv.Store
}

// NewHandoff creates a Handoff over the given slot store.
func NewHandoff(slots kv.Store) *Handoff {
	return &Handoff{slots: slots}
}

// Select serializes the template into the hand-off slot, replacing any
// previous selection.
func (h *Handoff) Select(ctx context.Context, id string) error {
	tmpl, err := Get(id)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(tmpl)
	if err != nil {
		return fmt.Errorf("serialize template: %w", err)
	}
	if err := h.slots.Set(ctx, SelectedSlotKey, raw); err != nil {
		return fmt.Errorf("persist template slot: %w", err)
	}
	return nil
}

// TakeSelected reads and clears the hand-off slot. Returns (nil, nil)
// when no template was selected; a malformed slot is discarded the same
// way.
func (h *Handoff) TakeSelected(ctx context.Context) (*domain.AgentTemplate, error) {
	raw, err := h.slots.Get(ctx, SelectedSlotKey)
	if err != nil {
		return nil, fmt.Errorf("read template slot: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	if err := h.slots.Delete(ctx, SelectedSlotKey); err != nil {
		return nil, fmt.Errorf("clear template slot: %w", err)
	}

	var tmpl domain.AgentTemplate
	if err := json.Unmarshal(raw, &tmpl); err != nil || tmpl.ID == "" {
		slog.Warn("Discarding malformed template slot", "error", err)
		return nil, nil
	}
	return &tmpl, nil
}

// PrefillAgentForm builds the agent-creation form defaults, consuming the
// selected template if one was handed off.
func (h *Handoff) PrefillAgentForm(ctx context.Context) (Prefill, error) {
	prefill := Prefill{Configuration: DefaultConfiguration()}

	tmpl, err := h.TakeSelected(ctx)
	if err != nil {
		return Prefill{}, err
	}
	if tmpl != nil {
		prefill.Name = tmpl.Name
		prefill.Configuration.Personality = tmpl.Prompt.Personality
	}
	return prefill, nil
}
