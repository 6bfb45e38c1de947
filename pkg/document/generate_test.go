package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plexforge/kometa-studio/pkg/types"
)

const knownFieldsDocument = `
settings:
  cache: true
  sync_mode: append
plex:
  timeout: 60
  verify_ssl: false
tmdb:
  language: en
libraries:
  Movies:
    schedule: daily
    collection_files:
      - default: imdb
    overlay_files:
      - default: studio
        template_variables:
          builder_level: movie
      - default: studio
        template_variables:
          builder_level: collection
`

func TestGenerateRoundTrip(t *testing.T) {
	first, err := Parse([]byte(knownFieldsDocument), true)
	require.NoError(t, err)

	out, err := Generate(first, nil, ModeTemplate, false)
	require.NoError(t, err)

	second, err := Parse(out, true)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateRoundTripKeepsDuplicateFileSpecs(t *testing.T) {
	cfg, err := Parse([]byte(knownFieldsDocument), true)
	require.NoError(t, err)

	out, err := Generate(cfg, nil, ModeTemplate, false)
	require.NoError(t, err)

	reparsed, err := Parse(out, true)
	require.NoError(t, err)

	overlays := reparsed.Libraries["Movies"].OverlayFiles
	require.Len(t, overlays, 2)
	assert.Equal(t, map[string]interface{}{"builder_level": "movie"}, overlays[0]["template_variables"])
	assert.Equal(t, map[string]interface{}{"builder_level": "collection"}, overlays[1]["template_variables"])
}

func TestGenerateFixedSectionOrder(t *testing.T) {
	cfg, err := Parse([]byte(knownFieldsDocument), true)
	require.NoError(t, err)

	out, err := Generate(cfg, nil, ModeTemplate, false)
	require.NoError(t, err)

	text := string(out)
	settingsAt := strings.Index(text, "settings:")
	plexAt := strings.Index(text, "plex:")
	tmdbAt := strings.Index(text, "tmdb:")
	librariesAt := strings.Index(text, "libraries:")
	require.NotEqual(t, -1, settingsAt)
	require.NotEqual(t, -1, plexAt)
	require.NotEqual(t, -1, tmdbAt)
	require.NotEqual(t, -1, librariesAt)
	assert.Less(t, settingsAt, plexAt)
	assert.Less(t, plexAt, tmdbAt)
	assert.Less(t, tmdbAt, librariesAt)
}

func TestGenerateModeGating(t *testing.T) {
	cfg := &types.Config{}
	plex := &types.Section{Name: types.SectionPlex}
	plex.SetEnabled(true)
	cfg.Plex = plex

	secrets := &types.Secrets{
		Plex: &types.PlexSecrets{
			URL:   "http://localhost:32400",
			Token: "secret-token-12345",
		},
	}

	template, err := Generate(cfg, secrets, ModeTemplate, false)
	require.NoError(t, err)
	assert.NotContains(t, string(template), "http://localhost:32400")
	assert.NotContains(t, string(template), "secret-token-12345")

	masked, err := Generate(cfg, secrets, ModeMasked, false)
	require.NoError(t, err)
	assert.Contains(t, string(masked), "http://localhost:32400")
	assert.Contains(t, string(masked), "secr****2345")
	assert.NotContains(t, string(masked), "secret-token-12345")

	full, err := Generate(cfg, secrets, ModeFull, false)
	require.NoError(t, err)
	assert.Contains(t, string(full), "http://localhost:32400")
	assert.Contains(t, string(full), "secret-token-12345")
}

func TestGenerateMasksTraktAuthorizationPair(t *testing.T) {
	cfg := &types.Config{}
	trakt := &types.Section{Name: types.SectionTrakt}
	trakt.SetEnabled(true)
	cfg.Trakt = trakt

	secrets := &types.Secrets{
		Trakt: &types.TraktSecrets{
			ClientSecret: "trakt-client-secret",
			Authorization: &types.TraktAuthorization{
				AccessToken:  "access-token-value",
				RefreshToken: "refresh-token-value",
			},
		},
	}

	masked, err := Generate(cfg, secrets, ModeMasked, false)
	require.NoError(t, err)
	text := string(masked)
	assert.Contains(t, text, "trak****cret")
	assert.Contains(t, text, "acce****alue")
	assert.Contains(t, text, "refr****alue")
	assert.NotContains(t, text, "access-token-value")
	assert.NotContains(t, text, "refresh-token-value")
}

func TestGenerateEnablementGating(t *testing.T) {
	disabled := false
	enabled := true

	cfg := &types.Config{
		// Plex defaults to emitted; explicitly disabling suppresses it.
		Plex: &types.Section{Name: types.SectionPlex, Enabled: &disabled},
		// TMDb defaults to emitted with no flag at all.
		TMDb: &types.Section{Name: types.SectionTMDb},
		// Radarr is only emitted when explicitly enabled.
		Radarr: &types.Section{Name: types.SectionRadarr},
		Sonarr: &types.Section{Name: types.SectionSonarr, Enabled: &enabled},
	}

	out, err := Generate(cfg, nil, ModeTemplate, false)
	require.NoError(t, err)
	text := string(out)
	assert.NotContains(t, text, "plex:")
	assert.Contains(t, text, "tmdb:")
	assert.NotContains(t, text, "radarr:")
	assert.Contains(t, text, "sonarr:")
}

func TestGenerateBanners(t *testing.T) {
	cfg := &types.Config{
		Settings: &types.Section{
			Name:   types.SectionSettings,
			Fields: map[string]interface{}{"cache": true},
		},
	}

	tests := []struct {
		mode   RenderMode
		banner string
	}{
		{ModeTemplate, templateBanner},
		{ModeMasked, maskedBanner},
		{ModeFull, fullBanner},
	}
	for _, tt := range tests {
		out, err := Generate(cfg, nil, tt.mode, true)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), tt.banner+"\n"))
	}

	out, err := Generate(cfg, nil, ModeTemplate, false)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(string(out), "#"))
}

func TestGenerateMergesExtrasAfterKnownFields(t *testing.T) {
	doc := `
plex:
  timeout: 60
  zz_extra: 1
  aa_extra: 2
`
	cfg, err := Parse([]byte(doc), true)
	require.NoError(t, err)

	out, err := Generate(cfg, nil, ModeTemplate, false)
	require.NoError(t, err)
	text := string(out)

	timeoutAt := strings.Index(text, "timeout:")
	aaAt := strings.Index(text, "aa_extra:")
	zzAt := strings.Index(text, "zz_extra:")
	require.NotEqual(t, -1, timeoutAt)
	require.NotEqual(t, -1, aaAt)
	require.NotEqual(t, -1, zzAt)
	assert.Less(t, timeoutAt, aaAt)
	assert.Less(t, aaAt, zzAt)
}

func TestParseRenderMode(t *testing.T) {
	for _, valid := range []string{"template", "masked", "full"} {
		mode, err := ParseRenderMode(valid)
		require.NoError(t, err)
		assert.Equal(t, RenderMode(valid), mode)
	}
	_, err := ParseRenderMode("plaintext")
	assert.Error(t, err)
}
