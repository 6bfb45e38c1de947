package types

// Section names for the top-level blocks of a configuration document.
const (
	SectionSettings  = "settings"
	SectionPlex      = "plex"
	SectionTMDb      = "tmdb"
	SectionTautulli  = "tautulli"
	SectionMDBList   = "mdblist"
	SectionRadarr    = "radarr"
	SectionSonarr    = "sonarr"
	SectionTrakt     = "trakt"
	SectionLibraries = "libraries"
)

// SectionOrder is the canonical emission order for generated documents.
// Libraries and top-level extras are appended after these.
var SectionOrder = []string{
	SectionSettings,
	SectionPlex,
	SectionTMDb,
	SectionTautulli,
	SectionMDBList,
	SectionRadarr,
	SectionSonarr,
	SectionTrakt,
}

// LibraryKeyOrder is the canonical emission order for the known keys of a
// library entry.
var LibraryKeyOrder = []string{
	"template_variables",
	"schedule",
	"run_order",
	"filters",
	"collection_files",
	"overlay_files",
	"metadata_files",
	"operations",
	"settings",
}

// SectionSpec declares the schema of one configuration section: the field
// names the editor understands, which of those carry credential material,
// and how enablement defaults are derived. The registry below is static and
// must be treated as read-only.
type SectionSpec struct {
	// Name is the top-level key of the section.
	Name string

	// KnownKeys are the non-secret fields the editor understands. Any other
	// non-secret field is preserved verbatim under the section's extras.
	KnownKeys []string

	// SecretKeys are the fields owned by the secrets record. They are never
	// attached to a parsed configuration.
	SecretKeys []string

	// CredentialKeys is the subset of SecretKeys that is redacted in masked
	// renders. Companion fields such as a service URL are secret (kept out
	// of the portable document) but shown as-is when secrets are rendered.
	CredentialKeys []string

	// HasEnabled marks sections that carry an enabled flag. Settings and
	// library entries do not.
	HasEnabled bool

	// DefaultEnabled controls emission when the enabled flag was never set:
	// true means the section is emitted unless explicitly disabled.
	DefaultEnabled bool
}

// IsKnown reports whether key is one of the section's known fields.
func (s *SectionSpec) IsKnown(key string) bool {
	for _, k := range s.KnownKeys {
		if k == key {
			return true
		}
	}
	return false
}

// IsSecret reports whether key is one of the section's secret fields.
func (s *SectionSpec) IsSecret(key string) bool {
	for _, k := range s.SecretKeys {
		if k == key {
			return true
		}
	}
	return false
}

// IsCredential reports whether key must be redacted in masked renders.
func (s *SectionSpec) IsCredential(key string) bool {
	for _, k := range s.CredentialKeys {
		if k == key {
			return true
		}
	}
	return false
}

var sectionSpecs = map[string]*SectionSpec{
	SectionSettings: {
		Name: SectionSettings,
		KnownKeys: []string{
			"run_order", "cache", "cache_expiration", "asset_directory",
			"asset_folders", "asset_depth", "create_asset_folders",
			"prioritize_assets", "dimensional_asset_rename",
			"download_url_assets", "show_missing_season_assets",
			"show_missing_episode_assets", "show_asset_not_needed",
			"sync_mode", "minimum_items", "default_collection_order",
			"delete_below_minimum", "delete_not_scheduled", "run_again_delay",
			"missing_only_released", "only_filters_missing", "show_unmanaged",
			"show_unconfigured", "show_filtered", "show_options",
			"show_missing", "save_report", "tvdb_language", "ignore_ids",
			"ignore_imdb_ids", "item_refresh_delay",
			"playlist_sync_to_users", "playlist_exclude_users",
			"playlist_report", "verify_ssl", "custom_repo",
			"overlay_artwork_filetype", "overlay_artwork_quality",
		},
	},
	SectionPlex: {
		Name: SectionPlex,
		KnownKeys: []string{
			"enabled", "timeout", "db_cache", "clean_bundles", "empty_trash",
			"optimize", "verify_ssl",
		},
		SecretKeys:     []string{"url", "token"},
		CredentialKeys: []string{"token"},
		HasEnabled:     true,
		DefaultEnabled: true,
	},
	SectionTMDb: {
		Name: SectionTMDb,
		KnownKeys: []string{
			"enabled", "language", "region", "cache_expiration",
		},
		SecretKeys:     []string{"apikey"},
		CredentialKeys: []string{"apikey"},
		HasEnabled:     true,
		DefaultEnabled: true,
	},
	SectionTautulli: {
		Name:           SectionTautulli,
		KnownKeys:      []string{"enabled"},
		SecretKeys:     []string{"url", "apikey"},
		CredentialKeys: []string{"apikey"},
		HasEnabled:     true,
	},
	SectionMDBList: {
		Name:           SectionMDBList,
		KnownKeys:      []string{"enabled", "cache_expiration"},
		SecretKeys:     []string{"apikey"},
		CredentialKeys: []string{"apikey"},
		HasEnabled:     true,
	},
	SectionRadarr: {
		Name: SectionRadarr,
		KnownKeys: []string{
			"enabled", "add_missing", "add_existing", "upgrade_existing",
			"monitor_existing", "root_folder_path", "monitor", "availability",
			"quality_profile", "tag", "search", "radarr_path", "plex_path",
			"ignore_cache",
		},
		SecretKeys:     []string{"url", "token"},
		CredentialKeys: []string{"token"},
		HasEnabled:     true,
	},
	SectionSonarr: {
		Name: SectionSonarr,
		KnownKeys: []string{
			"enabled", "add_missing", "add_existing", "upgrade_existing",
			"monitor_existing", "root_folder_path", "monitor",
			"quality_profile", "language_profile", "series_type",
			"season_folder", "tag", "search", "cutoff_search", "sonarr_path",
			"plex_path", "ignore_cache",
		},
		SecretKeys:     []string{"url", "token"},
		CredentialKeys: []string{"token"},
		HasEnabled:     true,
	},
	SectionTrakt: {
		Name:           SectionTrakt,
		KnownKeys:      []string{"enabled", "client_id", "pin"},
		SecretKeys:     []string{"client_secret", "authorization"},
		CredentialKeys: []string{"client_secret"},
		HasEnabled:     true,
	},
}

// LibrarySpec declares the schema of a single library entry.
var LibrarySpec = &SectionSpec{
	Name:      "library",
	KnownKeys: LibraryKeyOrder,
}

// SpecFor returns the SectionSpec registered for a top-level section name.
func SpecFor(name string) (*SectionSpec, bool) {
	s, ok := sectionSpecs[name]
	return s, ok
}
