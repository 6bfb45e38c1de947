package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/plexforge/kometa-studio/internal/config"
	"github.com/plexforge/kometa-studio/pkg/crypto"
	"github.com/plexforge/kometa-studio/pkg/document"
	"github.com/plexforge/kometa-studio/pkg/store"
	"github.com/plexforge/kometa-studio/pkg/store/repos"
	"github.com/plexforge/kometa-studio/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStudio(t *testing.T) *studio {
	t.Helper()

	s := store.NewMemoryStore()
	require.NoError(t, s.Open(""))
	t.Cleanup(func() { s.Close() })

	sealer, err := crypto.NewSealer(bytes.Repeat([]byte{0x11}, 32))
	require.NoError(t, err)

	return &studio{
		cfg:      config.Default(),
		store:    s,
		profiles: repos.NewProfileRepo(s),
		secrets:  repos.NewSecretsRepo(s, sealer),
		sealer:   sealer,
	}
}

func TestHasYAMLExtension(t *testing.T) {
	assert.True(t, hasYAMLExtension("config.yml"))
	assert.True(t, hasYAMLExtension("config.YAML"))
	assert.False(t, hasYAMLExtension("config.json"))
	assert.False(t, hasYAMLExtension("config"))
}

func TestRunImportStoresTemplateAndSeals(t *testing.T) {
	ctx := context.Background()
	s := testStudio(t)

	doc := strings.Join([]string{
		"plex:",
		"  url: http://plex:32400",
		"  token: super-secret-token",
		"  timeout: 60",
		"tmdb:",
		"  apikey: tmdb-key-123",
		"",
	}, "\n")

	require.NoError(t, runImport(ctx, s, "main", []byte(doc)))

	profile, err := s.profiles.Get(ctx, "main")
	require.NoError(t, err)
	assert.NotContains(t, profile.Document, "super-secret-token")
	assert.NotContains(t, profile.Document, "tmdb-key-123")
	assert.Contains(t, profile.Document, "timeout: 60")

	secrets, err := s.secrets.Get(ctx, "main")
	require.NoError(t, err)
	require.NotNil(t, secrets.Plex)
	assert.Equal(t, "super-secret-token", secrets.Plex.Token)
	require.NotNil(t, secrets.TMDb)
	assert.Equal(t, "tmdb-key-123", secrets.TMDb.APIKey)
}

func TestRunImportRejectsInvalidDocument(t *testing.T) {
	ctx := context.Background()
	s := testStudio(t)

	err := runImport(ctx, s, "broken", []byte("plex: [unclosed"))
	require.Error(t, err)

	_, err = s.profiles.Get(ctx, "broken")
	assert.True(t, store.IsNotFoundError(err))
}

func TestRunImportDuplicateWithoutForce(t *testing.T) {
	ctx := context.Background()
	s := testStudio(t)

	doc := []byte("plex:\n  url: http://plex:32400\n  token: tok\n")
	require.NoError(t, runImport(ctx, s, "main", doc))

	err := runImport(ctx, s, "main", doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestSetSecretField(t *testing.T) {
	secrets := &types.Secrets{}

	require.NoError(t, setSecretField(secrets, "plex", "token", "tok"))
	require.NoError(t, setSecretField(secrets, "plex", "url", "http://plex:32400"))
	require.NoError(t, setSecretField(secrets, "sonarr", "token", "arr-tok"))
	require.NoError(t, setSecretField(secrets, "trakt", "access_token", "at"))
	require.NoError(t, setSecretField(secrets, "trakt", "client_secret", "cs"))

	assert.Equal(t, "tok", secrets.Plex.Token)
	assert.Equal(t, "http://plex:32400", secrets.Plex.URL)
	assert.Equal(t, "arr-tok", secrets.Sonarr.Token)
	assert.Nil(t, secrets.Radarr)
	assert.Equal(t, "cs", secrets.Trakt.ClientSecret)
	assert.Equal(t, "at", secrets.Trakt.Authorization.AccessToken)

	assert.Error(t, setSecretField(secrets, "plex", "apikey", "x"))
	assert.Error(t, setSecretField(secrets, "jellyfin", "token", "x"))
}

func TestMaskSecrets(t *testing.T) {
	secrets := &types.Secrets{
		Plex: &types.PlexSecrets{URL: "http://plex:32400", Token: "secret-token-12345"},
		Trakt: &types.TraktSecrets{
			ClientSecret:  "client-secret-value",
			Authorization: &types.TraktAuthorization{AccessToken: "short"},
		},
	}

	masked := maskSecrets(secrets)

	// Companion URL stays readable, tokens do not.
	assert.Equal(t, "http://plex:32400", masked.Plex.URL)
	assert.Equal(t, document.Mask("secret-token-12345"), masked.Plex.Token)
	assert.Equal(t, "****", masked.Trakt.Authorization.AccessToken)
	assert.NotContains(t, masked.Trakt.ClientSecret, "client-secret-value")

	// The original record is untouched.
	assert.Equal(t, "secret-token-12345", secrets.Plex.Token)
}

func TestSecretSections(t *testing.T) {
	assert.Empty(t, secretSections(&types.Secrets{}))

	secrets := &types.Secrets{
		Plex:   &types.PlexSecrets{URL: "http://plex:32400"},
		Radarr: &types.ArrSecrets{Token: "tok"},
		TMDb:   &types.TMDbSecrets{APIKey: "key"},
	}
	sections := secretSections(secrets)
	assert.ElementsMatch(t, []string{"radarr", "tmdb"}, sections)
}

func TestFormatAge(t *testing.T) {
	assert.Equal(t, "Unknown", formatAge(time.Time{}))
	assert.Equal(t, "Just now", formatAge(time.Now()))
	assert.Equal(t, "5m", formatAge(time.Now().Add(-5*time.Minute)))
	assert.Equal(t, "3h", formatAge(time.Now().Add(-3*time.Hour)))
	assert.Equal(t, "2d", formatAge(time.Now().Add(-48*time.Hour)))
}
