package document

import (
	"fmt"

	"github.com/plexforge/kometa-studio/pkg/types"
)

// ExtractSecrets walks raw configuration text and collects the declared
// secret fields of every external service into a Secrets record. It is
// deliberately independent of Parse: secrets and configuration are two
// separately produced views of the same text, so the configuration can
// never leak a credential even if a section's secret-key list is wrong.
//
// Absence is a normal state, never an error: a service missing from the
// document yields a nil sub-record.
func ExtractSecrets(text []byte) (*types.Secrets, error) {
	root, err := decodeMapping(text)
	if err != nil {
		return nil, err
	}

	secrets := &types.Secrets{}

	if raw, ok := asMapping(root[types.SectionPlex]); ok {
		url := scalarField(raw, "url")
		token := scalarField(raw, "token")
		if url != "" || token != "" {
			secrets.Plex = &types.PlexSecrets{URL: url, Token: token}
		}
	}
	if raw, ok := asMapping(root[types.SectionTMDb]); ok {
		if apikey := scalarField(raw, "apikey"); apikey != "" {
			secrets.TMDb = &types.TMDbSecrets{APIKey: apikey}
		}
	}
	if raw, ok := asMapping(root[types.SectionTautulli]); ok {
		url := scalarField(raw, "url")
		apikey := scalarField(raw, "apikey")
		if url != "" || apikey != "" {
			secrets.Tautulli = &types.TautulliSecrets{URL: url, APIKey: apikey}
		}
	}
	if raw, ok := asMapping(root[types.SectionMDBList]); ok {
		if apikey := scalarField(raw, "apikey"); apikey != "" {
			secrets.MDBList = &types.MDBListSecrets{APIKey: apikey}
		}
	}
	if raw, ok := asMapping(root[types.SectionRadarr]); ok {
		url := scalarField(raw, "url")
		token := scalarField(raw, "token")
		if url != "" || token != "" {
			secrets.Radarr = &types.ArrSecrets{URL: url, Token: token}
		}
	}
	if raw, ok := asMapping(root[types.SectionSonarr]); ok {
		url := scalarField(raw, "url")
		token := scalarField(raw, "token")
		if url != "" || token != "" {
			secrets.Sonarr = &types.ArrSecrets{URL: url, Token: token}
		}
	}
	if raw, ok := asMapping(root[types.SectionTrakt]); ok {
		trakt := &types.TraktSecrets{ClientSecret: scalarField(raw, "client_secret")}
		if auth, ok := asMapping(raw["authorization"]); ok {
			access := scalarField(auth, "access_token")
			refresh := scalarField(auth, "refresh_token")
			if access != "" || refresh != "" {
				trakt.Authorization = &types.TraktAuthorization{
					AccessToken:  access,
					RefreshToken: refresh,
				}
			}
		}
		if trakt.ClientSecret != "" || trakt.Authorization != nil {
			secrets.Trakt = trakt
		}
	}

	return secrets, nil
}

// scalarField reads a scalar field as a string. Non-string scalars, as when
// an API key made of digits decodes as a number, are rendered back to their
// text form; mappings and sequences are not credential material and yield
// nothing.
func scalarField(raw map[string]interface{}, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case map[string]interface{}, []interface{}:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Mask produces a display-safe redaction of a secret string: the first and
// last four characters around a fixed filler, or the bare filler when the
// secret is too short to reveal anything. Empty input stays empty.
//
// This is a display obfuscation only, not a cryptographic control.
func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) < 8 {
		return "****"
	}
	return secret[:4] + "****" + secret[len(secret)-4:]
}
