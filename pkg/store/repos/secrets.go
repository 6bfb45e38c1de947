package repos

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/plexforge/kometa-studio/pkg/crypto"
	"github.com/plexforge/kometa-studio/pkg/store"
	"github.com/plexforge/kometa-studio/pkg/types"
)

// sealedRecord is the stored shape of a profile's secrets. Data holds the
// AES-GCM sealed JSON encoding of types.Secrets, bound to the profile name.
type sealedRecord struct {
	Profile string `json:"profile"`
	Data    []byte `json:"data"`
}

// SecretsRepo manages the sealed secrets records of profiles. Secrets are
// encrypted before they reach the store and decrypted on the way out; the
// profile name is the authenticated binding, so a record copied to another
// profile will not open.
type SecretsRepo struct {
	base   *BaseRepo[sealedRecord]
	sealer *crypto.Sealer
}

// NewSecretsRepo creates a secrets repository over the given store and
// sealer.
func NewSecretsRepo(s store.Store, sealer *crypto.Sealer) *SecretsRepo {
	return &SecretsRepo{
		base:   NewBaseRepo[sealedRecord](types.ResourceTypeSecrets, s),
		sealer: sealer,
	}
}

// Put seals and stores the secrets for a profile, replacing any previous
// record.
func (r *SecretsRepo) Put(ctx context.Context, profileName string, secrets *types.Secrets) error {
	if profileName == "" {
		return types.NewValidationError("profile name is required")
	}
	if secrets == nil {
		secrets = &types.Secrets{}
	}

	plaintext, err := json.Marshal(secrets)
	if err != nil {
		return fmt.Errorf("failed to serialize secrets: %w", err)
	}

	sealed, err := r.sealer.Seal(plaintext, []byte(profileName))
	if err != nil {
		return fmt.Errorf("failed to seal secrets: %w", err)
	}

	record := &sealedRecord{Profile: profileName, Data: sealed}
	err = r.base.Create(ctx, profileName, record)
	if store.IsAlreadyExistsError(err) {
		err = r.base.Update(ctx, profileName, record)
	}
	return err
}

// Get retrieves and opens the secrets for a profile.
func (r *SecretsRepo) Get(ctx context.Context, profileName string) (*types.Secrets, error) {
	record, err := r.base.Get(ctx, profileName)
	if err != nil {
		return nil, err
	}

	plaintext, err := r.sealer.Open(record.Data, []byte(profileName))
	if err != nil {
		return nil, fmt.Errorf("failed to open secrets for profile %q: %w", profileName, err)
	}

	var secrets types.Secrets
	if err := json.Unmarshal(plaintext, &secrets); err != nil {
		return nil, fmt.Errorf("failed to deserialize secrets: %w", err)
	}
	return &secrets, nil
}

// Delete removes a profile's secrets record.
func (r *SecretsRepo) Delete(ctx context.Context, profileName string) error {
	return r.base.Delete(ctx, profileName)
}

// Exists reports whether a profile has a stored secrets record.
func (r *SecretsRepo) Exists(ctx context.Context, profileName string) (bool, error) {
	return r.base.Exists(ctx, profileName)
}
