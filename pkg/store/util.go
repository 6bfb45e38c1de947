package store

import (
	"fmt"
	"strings"

	"github.com/plexforge/kometa-studio/pkg/types"
)

// MakeKey builds the flat key used by the storage backends.
func MakeKey(resourceType types.ResourceType, name string) string {
	return fmt.Sprintf("%s/%s", resourceType, name)
}

// MakePrefix builds the key prefix covering all resources of a type.
func MakePrefix(resourceType types.ResourceType) string {
	return fmt.Sprintf("%s/", resourceType)
}

// ParseKey splits a storage key back into resource type and name.
func ParseKey(key string) (types.ResourceType, string, error) {
	parts := strings.SplitN(key, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid key format: %s", key)
	}
	return types.ResourceType(parts[0]), parts[1], nil
}

// IsNotFoundError returns true if the error indicates a missing resource.
func IsNotFoundError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found")
}

// IsAlreadyExistsError returns true if the error indicates a duplicate
// resource.
func IsAlreadyExistsError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "already exists")
}
