package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plexforge/kometa-studio/pkg/types"
)

const sampleDocument = `
settings:
  cache: true
  sync_mode: append
  custom_setting: hello
plex:
  url: http://localhost:32400
  token: secret-token-12345
  timeout: 60
  plex_extra: 42
tmdb:
  apikey: tmdb-api-key-0001
  language: en
radarr:
  enabled: true
  url: http://localhost:7878
  token: radarr-key-9999
  root_folder_path: /movies
trakt:
  client_id: trakt-client-id
  client_secret: trakt-client-secret
  authorization:
    access_token: trakt-access-token
    refresh_token: trakt-refresh-token
libraries:
  Movies:
    collection_files:
      - default: imdb
    overlay_files:
      - default: studio
        template_variables:
          builder_level: movie
      - default: studio
        template_variables:
          builder_level: collection
    library_extra: true
top_level_extra:
  nested: value
`

func TestParseAssemblesSections(t *testing.T) {
	cfg, err := Parse([]byte(sampleDocument), true)
	require.NoError(t, err)

	require.NotNil(t, cfg.Settings)
	assert.Equal(t, true, cfg.Settings.Fields["cache"])
	assert.Equal(t, "append", cfg.Settings.Fields["sync_mode"])
	assert.Nil(t, cfg.Settings.Enabled)

	require.NotNil(t, cfg.Plex)
	assert.Equal(t, 60, cfg.Plex.Fields["timeout"])
	require.NotNil(t, cfg.Plex.Enabled)
	assert.True(t, *cfg.Plex.Enabled)

	require.NotNil(t, cfg.Radarr)
	assert.Equal(t, "/movies", cfg.Radarr.Fields["root_folder_path"])
	require.NotNil(t, cfg.Radarr.Enabled)
	assert.True(t, *cfg.Radarr.Enabled)

	require.NotNil(t, cfg.Trakt)
	assert.Equal(t, "trakt-client-id", cfg.Trakt.Fields["client_id"])

	assert.Nil(t, cfg.Tautulli)
	assert.Nil(t, cfg.Sonarr)
	assert.Nil(t, cfg.MDBList)
}

func TestParseNeverAttachesSecrets(t *testing.T) {
	for _, preserveExtras := range []bool{true, false} {
		cfg, err := Parse([]byte(sampleDocument), preserveExtras)
		require.NoError(t, err)

		for _, name := range types.SectionOrder {
			section := cfg.Section(name)
			if section == nil {
				continue
			}
			spec, ok := types.SpecFor(name)
			require.True(t, ok)
			for _, key := range spec.SecretKeys {
				assert.NotContains(t, section.Fields, key,
					"section %s leaked secret %q into fields (preserveExtras=%v)", name, key, preserveExtras)
				assert.NotContains(t, section.Extras, key,
					"section %s leaked secret %q into extras (preserveExtras=%v)", name, key, preserveExtras)
			}
		}
	}
}

func TestParseExtrasFidelity(t *testing.T) {
	cfg, err := Parse([]byte(sampleDocument), true)
	require.NoError(t, err)

	assert.Equal(t, "hello", cfg.Settings.Extras["custom_setting"])
	assert.Equal(t, 42, cfg.Plex.Extras["plex_extra"])
	assert.Equal(t, true, cfg.Libraries["Movies"].Extras["library_extra"])
	assert.Equal(t, map[string]interface{}{"nested": "value"}, cfg.Extras["top_level_extra"])

	// Opting out of fidelity discards extras at every level.
	cfg, err = Parse([]byte(sampleDocument), false)
	require.NoError(t, err)
	assert.Nil(t, cfg.Settings.Extras)
	assert.Nil(t, cfg.Plex.Extras)
	assert.Nil(t, cfg.Libraries["Movies"].Extras)
	assert.Nil(t, cfg.Extras)
}

func TestParsePreservesFileSpecOrderAndDuplicates(t *testing.T) {
	cfg, err := Parse([]byte(sampleDocument), true)
	require.NoError(t, err)

	overlays := cfg.Libraries["Movies"].OverlayFiles
	require.Len(t, overlays, 2)
	assert.Equal(t, "studio", overlays[0]["default"])
	assert.Equal(t, "studio", overlays[1]["default"])
	assert.Equal(t,
		map[string]interface{}{"builder_level": "movie"},
		overlays[0]["template_variables"])
	assert.Equal(t,
		map[string]interface{}{"builder_level": "collection"},
		overlays[1]["template_variables"])
}

func TestParseDropsEmptyLibraries(t *testing.T) {
	doc := `
libraries:
  Movies:
  "TV Shows":
    collection_files:
      - default: imdb
`
	cfg, err := Parse([]byte(doc), true)
	require.NoError(t, err)

	assert.NotContains(t, cfg.Libraries, "Movies")
	require.Contains(t, cfg.Libraries, "TV Shows")
	require.Len(t, cfg.Libraries["TV Shows"].CollectionFiles, 1)
	assert.Equal(t, "imdb", cfg.Libraries["TV Shows"].CollectionFiles[0]["default"])
}

func TestParseExplicitlyDisabledSection(t *testing.T) {
	doc := `
plex:
  enabled: false
  timeout: 30
`
	cfg, err := Parse([]byte(doc), true)
	require.NoError(t, err)
	require.NotNil(t, cfg.Plex)
	require.NotNil(t, cfg.Plex.Enabled)
	assert.False(t, *cfg.Plex.Enabled)
	assert.NotContains(t, cfg.Plex.Fields, "enabled")
}

func TestParseFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"sequence root", "- a\n- b\n"},
		{"scalar root", "just a string\n"},
		{"empty document", ""},
		{"malformed yaml", "plex: [unclosed\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.text), true)
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.True(t, types.IsFormatError(err), "want FormatError, got %T: %v", err, err)
		})
	}
}

func TestParseValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"section not a mapping", "plex: just-a-string\n"},
		{"enabled not a boolean", "plex:\n  enabled: please\n"},
		{"libraries not a mapping", "libraries:\n  - Movies\n"},
		{"collection_files not a sequence", "libraries:\n  Movies:\n    collection_files: imdb\n"},
		{"file spec not a mapping", "libraries:\n  Movies:\n    collection_files:\n      - imdb\n"},
		{"run_order not strings", "libraries:\n  Movies:\n    run_order:\n      - 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.text), true)
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.True(t, types.IsValidationError(err), "want ValidationError, got %T: %v", err, err)
		})
	}
}
