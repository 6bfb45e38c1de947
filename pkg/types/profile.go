package types

import (
	"time"

	"github.com/google/uuid"
)

// ResourceType identifies a kind of stored resource.
type ResourceType string

const (
	// ResourceTypeProfile is a stored configuration profile.
	ResourceTypeProfile ResourceType = "profile"

	// ResourceTypeSecrets is the sealed secrets record of a profile.
	ResourceTypeSecrets ResourceType = "secrets"
)

// Profile is a stored configuration document plus its metadata. The stored
// document is always the template render (no secrets); the credential
// material lives in the profile's sealed secrets record.
type Profile struct {
	// ID is the unique identifier of the profile.
	ID string `json:"id" yaml:"id"`

	// Name is the human-readable name the profile is addressed by.
	Name string `json:"name" yaml:"name"`

	// Description is an optional free-form note.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Document is the template-mode YAML text of the configuration.
	Document string `json:"document" yaml:"document"`

	// CreatedAt is when the profile was first imported.
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`

	// UpdatedAt is when the profile was last written.
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// NewProfile creates a profile with a fresh ID and timestamps.
func NewProfile(name, document string) *Profile {
	now := time.Now()
	return &Profile{
		ID:        uuid.New().String(),
		Name:      name,
		Document:  document,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks if a profile is well formed.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return NewValidationError("profile name is required")
	}
	if p.Document == "" {
		return NewValidationError("profile document is required")
	}
	return nil
}
