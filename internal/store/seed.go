package store

import (
	"time"

	"github.com/nmoreau/agentdesk/internal/domain"
)

// Seed loads the demo dataset: one connected session with an active shop
// assistant agent, mirroring what a freshly onboarded store looks like.
// It bypasses simulated latency and publishes no events.
func (s *MemoryStore) Seed() {
	now := s.now()
	dayAgo := now.Add(-24 * time.Hour)

	session := domain.Session{
		ID:           s.newID(),
		Name:         "Main Store Session",
		PhoneNumber:  "+33123456789",
		Status:       domain.SessionConnected,
		LastActivity: now,
		CreatedAt:    dayAgo,
	}

	agent := domain.Agent{
		ID:           s.newID(),
		Name:         "Shop Assistant",
		Description:  "Answers customer questions about products",
		SessionID:    session.ID,
		Status:       domain.AgentActive,
		LastActivity: now,
		CreatedAt:    dayAgo,
		Configuration: domain.AgentConfiguration{
			Personality:        "Professional and friendly sales assistant",
			ResponseStyle:      domain.StyleFriendly,
			Language:           "fr",
			MaxResponseLength:  500,
			UseShopData:        true,
			ShopDataCategories: []string{"electronics", "clothing"},
			FallbackMessage:    "I'll transfer your request to a human advisor.",
		},
	}

	s.mu.Lock()
	s.sessions = appendCopy(s.sessions, session)
	s.agents = appendCopy(s.agents, agent)
	s.mu.Unlock()
}
