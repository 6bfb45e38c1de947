package document

import (
	"bytes"
	"fmt"
	"sort"

	yaml "gopkg.in/yaml.v3"

	"github.com/plexforge/kometa-studio/pkg/types"
)

// RenderMode selects how secret fields are treated when a configuration is
// rendered back to text.
type RenderMode string

const (
	// ModeTemplate renders the portable document: no secret fields at all.
	ModeTemplate RenderMode = "template"

	// ModeMasked renders secrets redacted for display; companion fields
	// such as service URLs are shown as-is.
	ModeMasked RenderMode = "masked"

	// ModeFull reinstates live credentials verbatim.
	ModeFull RenderMode = "full"
)

// ParseRenderMode parses a mode name as given on the command line.
func ParseRenderMode(s string) (RenderMode, error) {
	switch RenderMode(s) {
	case ModeTemplate, ModeMasked, ModeFull:
		return RenderMode(s), nil
	}
	return "", fmt.Errorf("unknown render mode %q (want template, masked, or full)", s)
}

// Banner comments prepended to generated documents, one per render mode.
const (
	templateBanner = "# Kometa configuration exported without secrets. Fill in service credentials before running."
	maskedBanner   = "# Kometa configuration with masked secrets. Masked values are for display only and will not work."
	fullBanner     = "# WARNING: this Kometa configuration contains live credentials. Keep this file private."
)

// Generate reassembles a configuration into canonical document text.
// Sections are emitted in a fixed order, secret fields are re-injected or
// masked according to the render mode, and extras are merged back after the
// fields the editor understands. The output uses 2-space indentation.
func Generate(cfg *types.Config, secrets *types.Secrets, mode RenderMode, includeComment bool) ([]byte, error) {
	root := newMappingNode()

	for _, name := range types.SectionOrder {
		section := cfg.Section(name)
		if section == nil {
			continue
		}
		spec, _ := types.SpecFor(name)
		if spec.HasEnabled && !section.IsEnabled() {
			continue
		}
		node, err := buildSectionNode(section, spec, secrets, mode)
		if err != nil {
			return nil, err
		}
		appendPair(root, name, node)
	}

	if len(cfg.Libraries) > 0 {
		libs := newMappingNode()
		for _, name := range cfg.LibraryNames() {
			node, err := buildLibraryNode(cfg.Libraries[name])
			if err != nil {
				return nil, err
			}
			appendPair(libs, name, node)
		}
		appendPair(root, types.SectionLibraries, libs)
	}

	if err := appendExtras(root, cfg.Extras); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if includeComment {
		switch mode {
		case ModeMasked:
			buf.WriteString(maskedBanner)
		case ModeFull:
			buf.WriteString(fullBanner)
		default:
			buf.WriteString(templateBanner)
		}
		buf.WriteByte('\n')
	}

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return buf.Bytes(), nil
}

// buildSectionNode emits a section as known fields, then secret fields per
// the render mode, then extras. The enabled marker never appears in output;
// enablement is implied by emission.
func buildSectionNode(section *types.Section, spec *types.SectionSpec, secrets *types.Secrets, mode RenderMode) (*yaml.Node, error) {
	node := newMappingNode()

	for _, key := range spec.KnownKeys {
		if key == "enabled" {
			continue
		}
		if value, ok := section.Fields[key]; ok {
			if err := appendPair(node, key, value); err != nil {
				return nil, err
			}
		}
	}

	if mode != ModeTemplate && secrets != nil {
		if err := appendSecretFields(node, section.Name, secrets, mode); err != nil {
			return nil, err
		}
	}

	if err := appendExtras(node, section.Extras); err != nil {
		return nil, err
	}
	return node, nil
}

// appendSecretFields overlays a service's secret fields onto its section
// node. Credential fields pass through Mask in masked mode; companion
// fields (service URLs) are copied unmasked in both masked and full modes.
func appendSecretFields(node *yaml.Node, name string, secrets *types.Secrets, mode RenderMode) error {
	redact := func(value string) string {
		if mode == ModeMasked {
			return Mask(value)
		}
		return value
	}
	appendIfSet := func(key, value string) error {
		if value == "" {
			return nil
		}
		return appendPair(node, key, value)
	}

	switch name {
	case types.SectionPlex:
		if s := secrets.Plex; s != nil {
			if err := appendIfSet("url", s.URL); err != nil {
				return err
			}
			return appendIfSet("token", redact(s.Token))
		}
	case types.SectionTMDb:
		if s := secrets.TMDb; s != nil {
			return appendIfSet("apikey", redact(s.APIKey))
		}
	case types.SectionTautulli:
		if s := secrets.Tautulli; s != nil {
			if err := appendIfSet("url", s.URL); err != nil {
				return err
			}
			return appendIfSet("apikey", redact(s.APIKey))
		}
	case types.SectionMDBList:
		if s := secrets.MDBList; s != nil {
			return appendIfSet("apikey", redact(s.APIKey))
		}
	case types.SectionRadarr:
		if s := secrets.Radarr; s != nil {
			if err := appendIfSet("url", s.URL); err != nil {
				return err
			}
			return appendIfSet("token", redact(s.Token))
		}
	case types.SectionSonarr:
		if s := secrets.Sonarr; s != nil {
			if err := appendIfSet("url", s.URL); err != nil {
				return err
			}
			return appendIfSet("token", redact(s.Token))
		}
	case types.SectionTrakt:
		if s := secrets.Trakt; s != nil {
			if err := appendIfSet("client_secret", redact(s.ClientSecret)); err != nil {
				return err
			}
			if auth := s.Authorization; auth != nil {
				authNode := newMappingNode()
				if err := appendIfSetTo(authNode, "access_token", redact(auth.AccessToken)); err != nil {
					return err
				}
				if err := appendIfSetTo(authNode, "refresh_token", redact(auth.RefreshToken)); err != nil {
					return err
				}
				if len(authNode.Content) > 0 {
					return appendPair(node, "authorization", authNode)
				}
			}
		}
	}
	return nil
}

func appendIfSetTo(node *yaml.Node, key, value string) error {
	if value == "" {
		return nil
	}
	return appendPair(node, key, value)
}

// buildLibraryNode emits a library entry's known keys in their fixed order,
// then its extras. File lists keep their order and duplicates verbatim.
func buildLibraryNode(library *types.LibraryEntry) (*yaml.Node, error) {
	node := newMappingNode()

	fields := []struct {
		key   string
		value interface{}
		set   bool
	}{
		{"template_variables", library.TemplateVariables, library.TemplateVariables != nil},
		{"schedule", library.Schedule, library.Schedule != nil},
		{"run_order", library.RunOrder, library.RunOrder != nil},
		{"filters", library.Filters, library.Filters != nil},
		{"collection_files", library.CollectionFiles, library.CollectionFiles != nil},
		{"overlay_files", library.OverlayFiles, library.OverlayFiles != nil},
		{"metadata_files", library.MetadataFiles, library.MetadataFiles != nil},
		{"operations", library.Operations, library.Operations != nil},
		{"settings", library.Settings, library.Settings != nil},
	}
	for _, f := range fields {
		if !f.set {
			continue
		}
		if err := appendPair(node, f.key, f.value); err != nil {
			return nil, err
		}
	}

	if err := appendExtras(node, library.Extras); err != nil {
		return nil, err
	}
	return node, nil
}

func appendExtras(node *yaml.Node, extras types.Extras) error {
	keys := make([]string, 0, len(extras))
	for key := range extras {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := appendPair(node, key, extras[key]); err != nil {
			return err
		}
	}
	return nil
}

func newMappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func appendPair(node *yaml.Node, key string, value interface{}) error {
	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	valueNode, ok := value.(*yaml.Node)
	if !ok {
		valueNode = &yaml.Node{}
		if err := valueNode.Encode(value); err != nil {
			return fmt.Errorf("failed to encode field %s: %w", key, err)
		}
	}
	node.Content = append(node.Content, keyNode, valueNode)
	return nil
}
