package repos

import (
	"context"
	"time"

	"github.com/plexforge/kometa-studio/pkg/store"
	"github.com/plexforge/kometa-studio/pkg/types"
)

// ProfileRepo manages stored configuration profiles.
type ProfileRepo struct {
	*BaseRepo[types.Profile]
}

// NewProfileRepo creates a profile repository over the given store.
func NewProfileRepo(s store.Store) *ProfileRepo {
	return &ProfileRepo{
		BaseRepo: NewBaseRepo[types.Profile](types.ResourceTypeProfile, s),
	}
}

// Create validates and stores a new profile.
func (r *ProfileRepo) Create(ctx context.Context, profile *types.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	return r.BaseRepo.Create(ctx, profile.Name, profile)
}

// Update validates and replaces an existing profile, refreshing its
// UpdatedAt timestamp.
func (r *ProfileRepo) Update(ctx context.Context, profile *types.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	profile.UpdatedAt = time.Now()
	return r.BaseRepo.Update(ctx, profile.Name, profile)
}
