// Package models defines the server-side data model shared by
// repositories, services, and handlers.
package models

import "time"

// User is one row of the credential store. Persona columns are optional
// and were added in a later migration, so they are nullable in the schema.
type User struct {
	ID            string
	UserName      string
	Email         string
	PasswordHash  string
	Gender        string
	AssistantName string
	// AssistantGender holds the configured preference, which may be a
	// relative value ("Same as me" / "Opposite of me"). Resolution to a
	// concrete gender happens in the persona package.
	AssistantGender string
	CreatedAt       time.Time
	LastLogin       *time.Time
}

// PersonaFields is the subset of User needed to compose the assistant
// persona for a session.
type PersonaFields struct {
	Gender          string
	AssistantName   string
	AssistantGender string
}
