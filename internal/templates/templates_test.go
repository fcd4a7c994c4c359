package templates

import (
	"context"
	"errors"
	"testing"

	"github.com/nmoreau/agentdesk/internal/domain"
	"github.com/nmoreau/agentdesk/internal/kv"
)

func TestCatalogIsWellFormed(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("expected a non-empty template catalog")
	}

	seen := make(map[string]bool)
	for _, tmpl := range all {
		if tmpl.ID == "" || tmpl.Name == "" || tmpl.Category == "" {
			t.Errorf("template %+v missing required fields", tmpl)
		}
		if seen[tmpl.ID] {
			t.Errorf("duplicate template ID %s", tmpl.ID)
		}
		seen[tmpl.ID] = true
		if tmpl.Prompt.Personality == "" {
			t.Errorf("template %s has no personality prompt", tmpl.ID)
		}
	}
}

func TestByCategory(t *testing.T) {
	sales := ByCategory("Sales")
	if len(sales) != 1 || sales[0].ID != "sales-assistant" {
		t.Errorf("unexpected Sales templates: %+v", sales)
	}
	if got := ByCategory("Unknown"); got != nil {
		t.Errorf("expected no templates for unknown category, got %+v", got)
	}
}

func TestGet(t *testing.T) {
	tmpl, err := Get("customer-support")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if tmpl.Name != "Customer Support" {
		t.Errorf("unexpected template %+v", tmpl)
	}

	if _, err := Get("nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestHandoffRoundTrip(t *testing.T) {
	ctx := context.Background()
	slots := kv.NewMemory()
	h := NewHandoff(slots)

	if err := h.Select(ctx, "sales-assistant"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	prefill, err := h.PrefillAgentForm(ctx)
	if err != nil {
		t.Fatalf("PrefillAgentForm failed: %v", err)
	}

	want, _ := Get("sales-assistant")
	if prefill.Name != want.Name {
		t.Errorf("expected prefilled name %q, got %q", want.Name, prefill.Name)
	}
	if prefill.Configuration.Personality != want.Prompt.Personality {
		t.Errorf("expected prefilled personality from template, got %q", prefill.Configuration.Personality)
	}

	// The slot is consumed on first read.
	raw, _ := slots.Get(ctx, SelectedSlotKey)
	if raw != nil {
		t.Error("expected hand-off slot to be cleared after prefill")
	}
}

func TestPrefillWithoutSelection(t *testing.T) {
	ctx := context.Background()
	h := NewHandoff(kv.NewMemory())

	prefill, err := h.PrefillAgentForm(ctx)
	if err != nil {
		t.Fatalf("PrefillAgentForm failed: %v", err)
	}
	if prefill.Name != "" {
		t.Errorf("expected empty name without a selection, got %q", prefill.Name)
	}

	defaults := DefaultConfiguration()
	if prefill.Configuration.ResponseStyle != defaults.ResponseStyle ||
		prefill.Configuration.MaxResponseLength != defaults.MaxResponseLength {
		t.Errorf("expected form defaults, got %+v", prefill.Configuration)
	}
}

func TestSelectUnknownTemplate(t *testing.T) {
	h := NewHandoff(kv.NewMemory())
	if err := h.Select(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestTakeSelectedDiscardsMalformedSlot(t *testing.T) {
	ctx := context.Background()
	slots := kv.NewMemory()
	if err := slots.Set(ctx, SelectedSlotKey, []byte("{broken")); err != nil {
		t.Fatalf("Failed to write slot: %v", err)
	}

	h := NewHandoff(slots)
	tmpl, err := h.TakeSelected(ctx)
	if err != nil {
		t.Fatalf("TakeSelected failed: %v", err)
	}
	if tmpl != nil {
		t.Errorf("expected malformed slot to be discarded, got %+v", tmpl)
	}
	raw, _ := slots.Get(ctx, SelectedSlotKey)
	if raw != nil {
		t.Error("expected malformed slot to be cleared")
	}
}
