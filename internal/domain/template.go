package domain

// TemplatePrompt is the structured prompt definition of an agent template.
type TemplatePrompt struct {
	Role                string   `json:"role"`
	Personality         string   `json:"personality"`
	Constraints         []string `json:"constraints"`
	ResponseStyle       string   `json:"response_style"`
	Language            string   `json:"language"`
	SpecialInstructions []string `json:"special_instructions"`
}

// AgentTemplate is a predefined agent configuration. Templates are static
// and read-only; they seed the agent-creation form but are never persisted
// as entities themselves.
type AgentTemplate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	UseCases    []string       `json:"use_cases"`
	Prompt      TemplatePrompt `json:"prompt"`
}
