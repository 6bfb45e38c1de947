package document

import (
	"fmt"

	yaml "gopkg.in/yaml.v3"

	"github.com/plexforge/kometa-studio/pkg/types"
)

// topLevelSpec partitions the whole decoded document: every section name
// and the libraries block are known, everything else is a top-level extra.
var topLevelSpec = &types.SectionSpec{
	Name:      "document",
	KnownKeys: append(append([]string{}, types.SectionOrder...), types.SectionLibraries),
}

// Parse decodes configuration text and assembles the canonical Config
// model. Unknown fields are preserved under the relevant extras level when
// preserveExtras is true, and discarded otherwise. Secret fields never
// reach the returned Config regardless of preserveExtras.
//
// Text that is not a YAML mapping at the root fails with a FormatError; an
// assembled configuration that violates the declared schema fails with a
// ValidationError. Both are terminal: no partial Config is returned.
func Parse(text []byte, preserveExtras bool) (*types.Config, error) {
	root, err := decodeMapping(text)
	if err != nil {
		return nil, err
	}

	cfg := &types.Config{}

	for _, name := range types.SectionOrder {
		rawValue, ok := root[name]
		if !ok {
			continue
		}
		spec, _ := types.SpecFor(name)
		section, err := assembleSection(name, rawValue, spec, preserveExtras)
		if err != nil {
			return nil, err
		}
		cfg.SetSection(name, section)
	}

	if rawLibs, ok := root[types.SectionLibraries]; ok {
		libs, err := assembleLibraries(rawLibs, preserveExtras)
		if err != nil {
			return nil, err
		}
		cfg.Libraries = libs
	}

	if preserveExtras {
		_, extras := Partition(root, topLevelSpec)
		cfg.Extras = extras
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeMapping decodes text and requires a mapping at the document root.
func decodeMapping(text []byte) (map[string]interface{}, error) {
	var root map[string]interface{}
	if err := yaml.Unmarshal(text, &root); err != nil {
		return nil, types.WrapFormatError(err, "configuration is not valid YAML")
	}
	if root == nil {
		return nil, types.NewFormatError("configuration root must be a mapping")
	}
	return root, nil
}

func assembleSection(name string, rawValue interface{}, spec *types.SectionSpec, preserveExtras bool) (*types.Section, error) {
	raw, ok := asMapping(rawValue)
	if !ok {
		return nil, types.NewValidationError(fmt.Sprintf("section %s must be a mapping", name))
	}

	known, extras := Partition(raw, spec)

	section := &types.Section{Name: name}
	if spec.HasEnabled {
		// Presence of the block implies enablement unless the block says
		// otherwise.
		section.SetEnabled(true)
		if v, ok := known["enabled"]; ok {
			b, ok := v.(bool)
			if !ok {
				return nil, types.NewValidationError(fmt.Sprintf("section %s field enabled must be a boolean", name))
			}
			section.SetEnabled(b)
			delete(known, "enabled")
		}
	}
	if len(known) > 0 {
		section.Fields = known
	}
	if preserveExtras {
		section.Extras = extras
	}
	return section, nil
}

func assembleLibraries(rawValue interface{}, preserveExtras bool) (map[string]*types.LibraryEntry, error) {
	raw, ok := asMapping(rawValue)
	if !ok {
		return nil, types.NewValidationError("libraries must be a mapping of library names")
	}

	libraries := make(map[string]*types.LibraryEntry, len(raw))
	for name, rawEntry := range raw {
		entry, ok := asMapping(rawEntry)
		if !ok {
			// A null or scalar library stanza carries nothing to edit and
			// is dropped rather than retained as an empty entry.
			continue
		}
		library, err := assembleLibrary(entry, preserveExtras)
		if err != nil {
			return nil, types.WrapValidationError(err, "library %q", name)
		}
		libraries[name] = library
	}
	if len(libraries) == 0 {
		return nil, nil
	}
	return libraries, nil
}

func assembleLibrary(raw map[string]interface{}, preserveExtras bool) (*types.LibraryEntry, error) {
	known, extras := Partition(raw, types.LibrarySpec)

	library := &types.LibraryEntry{}
	var err error
	if v, ok := known["template_variables"]; ok {
		if library.TemplateVariables, err = requireMapping(v, "template_variables"); err != nil {
			return nil, err
		}
	}
	if v, ok := known["schedule"]; ok {
		library.Schedule = v
	}
	if v, ok := known["run_order"]; ok {
		if library.RunOrder, err = requireStringSequence(v, "run_order"); err != nil {
			return nil, err
		}
	}
	if v, ok := known["filters"]; ok {
		if library.Filters, err = requireMapping(v, "filters"); err != nil {
			return nil, err
		}
	}
	if v, ok := known["collection_files"]; ok {
		if library.CollectionFiles, err = requireFileSpecs(v, "collection_files"); err != nil {
			return nil, err
		}
	}
	if v, ok := known["overlay_files"]; ok {
		if library.OverlayFiles, err = requireFileSpecs(v, "overlay_files"); err != nil {
			return nil, err
		}
	}
	if v, ok := known["metadata_files"]; ok {
		if library.MetadataFiles, err = requireFileSpecs(v, "metadata_files"); err != nil {
			return nil, err
		}
	}
	if v, ok := known["operations"]; ok {
		if library.Operations, err = requireMapping(v, "operations"); err != nil {
			return nil, err
		}
	}
	if v, ok := known["settings"]; ok {
		if library.Settings, err = requireMapping(v, "settings"); err != nil {
			return nil, err
		}
	}
	if preserveExtras {
		library.Extras = extras
	}
	return library, nil
}

func asMapping(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok && m != nil
}

func requireMapping(v interface{}, field string) (map[string]interface{}, error) {
	m, ok := asMapping(v)
	if !ok {
		return nil, types.NewValidationError(fmt.Sprintf("field %s must be a mapping", field))
	}
	return m, nil
}

func requireStringSequence(v interface{}, field string) ([]string, error) {
	seq, ok := v.([]interface{})
	if !ok {
		return nil, types.NewValidationError(fmt.Sprintf("field %s must be a sequence of strings", field))
	}
	out := make([]string, 0, len(seq))
	for _, item := range seq {
		s, ok := item.(string)
		if !ok {
			return nil, types.NewValidationError(fmt.Sprintf("field %s must be a sequence of strings", field))
		}
		out = append(out, s)
	}
	return out, nil
}

// requireFileSpecs coerces one of the ordered file lists. Order and
// duplicate entries are preserved verbatim; the list is never deduplicated
// or keyed by its default value.
func requireFileSpecs(v interface{}, field string) ([]types.FileSpec, error) {
	seq, ok := v.([]interface{})
	if !ok {
		return nil, types.NewValidationError(fmt.Sprintf("field %s must be a sequence", field))
	}
	out := make([]types.FileSpec, 0, len(seq))
	for i, item := range seq {
		m, ok := asMapping(item)
		if !ok {
			return nil, types.NewValidationError(fmt.Sprintf("field %s entry %d must be a mapping", field, i))
		}
		out = append(out, types.FileSpec(m))
	}
	return out, nil
}
