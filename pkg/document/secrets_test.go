package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSecrets(t *testing.T) {
	secrets, err := ExtractSecrets([]byte(sampleDocument))
	require.NoError(t, err)

	require.NotNil(t, secrets.Plex)
	assert.Equal(t, "http://localhost:32400", secrets.Plex.URL)
	assert.Equal(t, "secret-token-12345", secrets.Plex.Token)

	require.NotNil(t, secrets.TMDb)
	assert.Equal(t, "tmdb-api-key-0001", secrets.TMDb.APIKey)

	require.NotNil(t, secrets.Radarr)
	assert.Equal(t, "http://localhost:7878", secrets.Radarr.URL)
	assert.Equal(t, "radarr-key-9999", secrets.Radarr.Token)

	require.NotNil(t, secrets.Trakt)
	assert.Equal(t, "trakt-client-secret", secrets.Trakt.ClientSecret)
	require.NotNil(t, secrets.Trakt.Authorization)
	assert.Equal(t, "trakt-access-token", secrets.Trakt.Authorization.AccessToken)
	assert.Equal(t, "trakt-refresh-token", secrets.Trakt.Authorization.RefreshToken)

	// Absent services yield absent sub-records, not empty ones.
	assert.Nil(t, secrets.Tautulli)
	assert.Nil(t, secrets.Sonarr)
	assert.Nil(t, secrets.MDBList)
}

func TestExtractSecretsIgnoresNonSecretFields(t *testing.T) {
	doc := `
plex:
  timeout: 60
tmdb:
  language: en
`
	secrets, err := ExtractSecrets([]byte(doc))
	require.NoError(t, err)
	assert.True(t, secrets.IsEmpty())
}

func TestExtractSecretsNumericScalar(t *testing.T) {
	doc := `
tmdb:
  apikey: 123456789
`
	secrets, err := ExtractSecrets([]byte(doc))
	require.NoError(t, err)
	require.NotNil(t, secrets.TMDb)
	assert.Equal(t, "123456789", secrets.TMDb.APIKey)
}

func TestMask(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		want   string
	}{
		{"long secret keeps head and tail", "secret-token-12345", "secr****2345"},
		{"short secret is fully hidden", "abc", "****"},
		{"seven characters still hidden", "1234567", "****"},
		{"eight characters reveals both ends", "12345678", "1234****5678"},
		{"empty stays empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Mask(tt.secret))
		})
	}
}
