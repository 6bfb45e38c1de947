package types

import (
	"fmt"
	"sort"
)

// Extras holds fields the editor does not understand, preserved verbatim so
// a parse/edit/generate cycle never destroys them. A nil Extras means the
// level had no unrecognized fields; an empty map is never round-tripped.
type Extras map[string]interface{}

// FileSpec is one ordered entry of a library's collection, overlay, or
// metadata file list. It is an arbitrary mapping, commonly of the shape
// {default: <name>, template_variables: {...}}. Entries are never deduped
// or keyed by their default value.
type FileSpec map[string]interface{}

// Section is one settings or external-integration block of a configuration.
type Section struct {
	// Name is the top-level key of the section (e.g., "plex").
	Name string `json:"name" yaml:"name"`

	// Fields holds the section's known, non-secret fields.
	Fields map[string]interface{} `json:"fields,omitempty" yaml:"fields,omitempty"`

	// Enabled is the section's enablement flag. Settings carries none. Nil
	// means the flag was never set; emission then follows the section's
	// default-enablement rule.
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Extras holds unrecognized, non-secret fields of the section.
	Extras Extras `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// IsEnabled resolves the section's enablement against its spec's default.
func (s *Section) IsEnabled() bool {
	if s.Enabled != nil {
		return *s.Enabled
	}
	if spec, ok := SpecFor(s.Name); ok {
		return spec.DefaultEnabled
	}
	return false
}

// SetEnabled sets the section's enablement flag explicitly.
func (s *Section) SetEnabled(enabled bool) {
	s.Enabled = &enabled
}

// Validate checks the section against its declared spec: every field must
// be a known key, secret fields must never be attached, and extras keys
// must be disjoint from the known and secret key sets.
func (s *Section) Validate() error {
	spec, ok := SpecFor(s.Name)
	if !ok {
		return NewValidationError("unknown section: " + s.Name)
	}
	for key := range s.Fields {
		if spec.IsSecret(key) {
			return NewValidationError(fmt.Sprintf("section %s holds secret field %q", s.Name, key))
		}
		if !spec.IsKnown(key) {
			return NewValidationError(fmt.Sprintf("section %s holds unrecognized field %q outside extras", s.Name, key))
		}
	}
	for key := range s.Extras {
		if spec.IsKnown(key) || spec.IsSecret(key) {
			return NewValidationError(fmt.Sprintf("section %s extras collide with declared key %q", s.Name, key))
		}
	}
	if !spec.HasEnabled && s.Enabled != nil {
		return NewValidationError(fmt.Sprintf("section %s does not carry an enabled flag", s.Name))
	}
	return nil
}

// LibraryEntry is one named library: ordered file lists plus the library's
// scheduling, filtering, and operations blocks.
type LibraryEntry struct {
	TemplateVariables map[string]interface{} `json:"template_variables,omitempty" yaml:"template_variables,omitempty"`
	Schedule          interface{}            `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	RunOrder          []string               `json:"run_order,omitempty" yaml:"run_order,omitempty"`
	Filters           map[string]interface{} `json:"filters,omitempty" yaml:"filters,omitempty"`
	CollectionFiles   []FileSpec             `json:"collection_files,omitempty" yaml:"collection_files,omitempty"`
	OverlayFiles      []FileSpec             `json:"overlay_files,omitempty" yaml:"overlay_files,omitempty"`
	MetadataFiles     []FileSpec             `json:"metadata_files,omitempty" yaml:"metadata_files,omitempty"`
	Operations        map[string]interface{} `json:"operations,omitempty" yaml:"operations,omitempty"`
	Settings          map[string]interface{} `json:"settings,omitempty" yaml:"settings,omitempty"`

	// Extras holds unrecognized library-level fields.
	Extras Extras `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// Validate checks the library entry's extras against the library schema.
func (l *LibraryEntry) Validate() error {
	for key := range l.Extras {
		if LibrarySpec.IsKnown(key) {
			return NewValidationError(fmt.Sprintf("library extras collide with declared key %q", key))
		}
	}
	return nil
}

// Config is the canonical in-memory model of a configuration document: a
// fixed set of optional sections, the named libraries, and the top-level
// extras. It never holds secret fields; those live in a Secrets record.
type Config struct {
	Settings *Section `json:"settings,omitempty" yaml:"settings,omitempty"`
	Plex     *Section `json:"plex,omitempty" yaml:"plex,omitempty"`
	TMDb     *Section `json:"tmdb,omitempty" yaml:"tmdb,omitempty"`
	Tautulli *Section `json:"tautulli,omitempty" yaml:"tautulli,omitempty"`
	MDBList  *Section `json:"mdblist,omitempty" yaml:"mdblist,omitempty"`
	Radarr   *Section `json:"radarr,omitempty" yaml:"radarr,omitempty"`
	Sonarr   *Section `json:"sonarr,omitempty" yaml:"sonarr,omitempty"`
	Trakt    *Section `json:"trakt,omitempty" yaml:"trakt,omitempty"`

	Libraries map[string]*LibraryEntry `json:"libraries,omitempty" yaml:"libraries,omitempty"`

	Extras Extras `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// Section returns the section stored under a top-level section name, or nil.
func (c *Config) Section(name string) *Section {
	switch name {
	case SectionSettings:
		return c.Settings
	case SectionPlex:
		return c.Plex
	case SectionTMDb:
		return c.TMDb
	case SectionTautulli:
		return c.Tautulli
	case SectionMDBList:
		return c.MDBList
	case SectionRadarr:
		return c.Radarr
	case SectionSonarr:
		return c.Sonarr
	case SectionTrakt:
		return c.Trakt
	}
	return nil
}

// SetSection replaces the section stored under a top-level section name.
// Editing happens by whole-section replacement only.
func (c *Config) SetSection(name string, s *Section) {
	switch name {
	case SectionSettings:
		c.Settings = s
	case SectionPlex:
		c.Plex = s
	case SectionTMDb:
		c.TMDb = s
	case SectionTautulli:
		c.Tautulli = s
	case SectionMDBList:
		c.MDBList = s
	case SectionRadarr:
		c.Radarr = s
	case SectionSonarr:
		c.Sonarr = s
	case SectionTrakt:
		c.Trakt = s
	}
}

// LibraryNames returns the library names in sorted order so generation is
// deterministic.
func (c *Config) LibraryNames() []string {
	names := make([]string, 0, len(c.Libraries))
	for name := range c.Libraries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the whole assembled configuration against the declared
// schema. Any violation is terminal; no partial configuration survives.
func (c *Config) Validate() error {
	for _, name := range SectionOrder {
		s := c.Section(name)
		if s == nil {
			continue
		}
		if s.Name != name {
			return NewValidationError(fmt.Sprintf("section stored under %q declares name %q", name, s.Name))
		}
		if err := s.Validate(); err != nil {
			return err
		}
	}
	for name, entry := range c.Libraries {
		if entry == nil {
			return NewValidationError(fmt.Sprintf("library %q has no entry", name))
		}
		if err := entry.Validate(); err != nil {
			return WrapValidationError(err, "library %q", name)
		}
	}
	for key := range c.Extras {
		if _, ok := SpecFor(key); ok || key == SectionLibraries {
			return NewValidationError(fmt.Sprintf("top-level extras collide with section %q", key))
		}
	}
	return nil
}
