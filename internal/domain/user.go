// Package domain contains core domain types for the agentdesk application.
package domain

// User represents an authenticated dashboard user.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
