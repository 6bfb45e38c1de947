package repos

import (
	"bytes"
	"context"
	"testing"

	"github.com/plexforge/kometa-studio/pkg/crypto"
	"github.com/plexforge/kometa-studio/pkg/store"
	"github.com/plexforge/kometa-studio/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemoryStore(t *testing.T) store.Store {
	t.Helper()
	s := store.NewMemoryStore()
	require.NoError(t, s.Open(""))
	t.Cleanup(func() { s.Close() })
	return s
}

func testSealer(t *testing.T) *crypto.Sealer {
	t.Helper()
	key := bytes.Repeat([]byte{0x2a}, 32)
	sealer, err := crypto.NewSealer(key)
	require.NoError(t, err)
	return sealer
}

func TestProfileRepoLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepo(openMemoryStore(t))

	profile := types.NewProfile("movies", "plex:\n  url:\n  token:\n")
	profile.Description = "main library"
	require.NoError(t, repo.Create(ctx, profile))

	got, err := repo.Get(ctx, "movies")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, got.ID)
	assert.Equal(t, "main library", got.Description)

	got.Document = "plex:\n  url:\n  token:\n  timeout: 120\n"
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.Get(ctx, "movies")
	require.NoError(t, err)
	assert.Contains(t, updated.Document, "timeout")
	assert.False(t, updated.UpdatedAt.Before(profile.UpdatedAt))

	profiles, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	require.NoError(t, repo.Delete(ctx, "movies"))
	exists, err := repo.Exists(ctx, "movies")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProfileRepoRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepo(openMemoryStore(t))

	err := repo.Create(ctx, &types.Profile{Name: "", Document: "x"})
	require.Error(t, err)
	assert.True(t, types.IsValidationError(err))

	err = repo.Create(ctx, &types.Profile{Name: "empty", Document: ""})
	require.Error(t, err)
	assert.True(t, types.IsValidationError(err))
}

func TestSecretsRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSecretsRepo(openMemoryStore(t), testSealer(t))

	secrets := &types.Secrets{
		Plex: &types.PlexSecrets{URL: "http://plex:32400", Token: "plex-token-1234"},
		TMDb: &types.TMDbSecrets{APIKey: "tmdb-key"},
	}
	require.NoError(t, repo.Put(ctx, "movies", secrets))

	got, err := repo.Get(ctx, "movies")
	require.NoError(t, err)
	require.NotNil(t, got.Plex)
	assert.Equal(t, "plex-token-1234", got.Plex.Token)
	require.NotNil(t, got.TMDb)
	assert.Equal(t, "tmdb-key", got.TMDb.APIKey)
	assert.Nil(t, got.Trakt)
}

func TestSecretsRepoPutReplaces(t *testing.T) {
	ctx := context.Background()
	repo := NewSecretsRepo(openMemoryStore(t), testSealer(t))

	require.NoError(t, repo.Put(ctx, "movies", &types.Secrets{
		TMDb: &types.TMDbSecrets{APIKey: "old"},
	}))
	require.NoError(t, repo.Put(ctx, "movies", &types.Secrets{
		TMDb: &types.TMDbSecrets{APIKey: "new"},
	}))

	got, err := repo.Get(ctx, "movies")
	require.NoError(t, err)
	assert.Equal(t, "new", got.TMDb.APIKey)
}

func TestSecretsRepoBindsToProfileName(t *testing.T) {
	ctx := context.Background()
	s := openMemoryStore(t)
	repo := NewSecretsRepo(s, testSealer(t))

	require.NoError(t, repo.Put(ctx, "movies", &types.Secrets{
		TMDb: &types.TMDbSecrets{APIKey: "secret"},
	}))

	// Copy the sealed record under another profile's key. The AAD check
	// must reject it on open.
	var record sealedRecord
	require.NoError(t, s.Get(ctx, types.ResourceTypeSecrets, "movies", &record))
	record.Profile = "shows"
	require.NoError(t, s.Create(ctx, types.ResourceTypeSecrets, "shows", &record))

	_, err := repo.Get(ctx, "shows")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open secrets")
}

func TestSecretsRepoMissingProfile(t *testing.T) {
	ctx := context.Background()
	repo := NewSecretsRepo(openMemoryStore(t), testSealer(t))

	_, err := repo.Get(ctx, "absent")
	require.Error(t, err)
	assert.True(t, store.IsNotFoundError(err))

	exists, err := repo.Exists(ctx, "absent")
	require.NoError(t, err)
	assert.False(t, exists)
}
