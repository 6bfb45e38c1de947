// Package document implements the round-trip engine between raw
// configuration text and the typed configuration model, together with the
// secrets extraction, masking, and regeneration that keep credential
// material out of the portable document.
//
// Every function here is a pure transformation over immutable input;
// concurrent calls need no synchronization.
package document

import (
	"github.com/plexforge/kometa-studio/pkg/types"
)

// Partition splits a decoded mapping against a section spec: known fields
// are copied out, secret fields are dropped (ExtractSecrets captures them
// from the same source text), and everything else lands in extras. Extras
// is nil, not empty, when no keys qualified, so round trips never introduce
// spurious empty mappings.
//
// Partition performs no type or shape validation; that is the schema
// validation applied to the assembled configuration.
func Partition(raw map[string]interface{}, spec *types.SectionSpec) (map[string]interface{}, types.Extras) {
	known := make(map[string]interface{})
	var extras types.Extras
	for key, value := range raw {
		switch {
		case spec.IsKnown(key):
			known[key] = value
		case spec.IsSecret(key):
			// Owned by the secrets record; never copied into the model.
		default:
			if extras == nil {
				extras = make(types.Extras)
			}
			extras[key] = value
		}
	}
	return known, extras
}
