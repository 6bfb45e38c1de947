package types

// Secrets is the credential record for a configuration document: one
// optional sub-record per external service, holding only the fields
// declared secret for that service. It is produced straight from document
// text and never derived from a Config, so a scrubbing bug in the parser
// can never leak into or out of it. Its lifetime is independent of the
// configuration it was extracted from; the profile store owns it.
type Secrets struct {
	Plex     *PlexSecrets     `json:"plex,omitempty" yaml:"plex,omitempty"`
	TMDb     *TMDbSecrets     `json:"tmdb,omitempty" yaml:"tmdb,omitempty"`
	Tautulli *TautulliSecrets `json:"tautulli,omitempty" yaml:"tautulli,omitempty"`
	MDBList  *MDBListSecrets  `json:"mdblist,omitempty" yaml:"mdblist,omitempty"`
	Radarr   *ArrSecrets      `json:"radarr,omitempty" yaml:"radarr,omitempty"`
	Sonarr   *ArrSecrets      `json:"sonarr,omitempty" yaml:"sonarr,omitempty"`
	Trakt    *TraktSecrets    `json:"trakt,omitempty" yaml:"trakt,omitempty"`
}

// IsEmpty reports whether no service has any extracted secrets.
func (s *Secrets) IsEmpty() bool {
	if s == nil {
		return true
	}
	return s.Plex == nil && s.TMDb == nil && s.Tautulli == nil &&
		s.MDBList == nil && s.Radarr == nil && s.Sonarr == nil && s.Trakt == nil
}

// PlexSecrets holds the Plex server address and its access token.
type PlexSecrets struct {
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
}

// TMDbSecrets holds the TMDb API key.
type TMDbSecrets struct {
	APIKey string `json:"apikey,omitempty" yaml:"apikey,omitempty"`
}

// TautulliSecrets holds the Tautulli address and API key.
type TautulliSecrets struct {
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
	APIKey string `json:"apikey,omitempty" yaml:"apikey,omitempty"`
}

// MDBListSecrets holds the MDBList API key.
type MDBListSecrets struct {
	APIKey string `json:"apikey,omitempty" yaml:"apikey,omitempty"`
}

// ArrSecrets holds the address and API token of a Radarr or Sonarr server.
type ArrSecrets struct {
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
}

// TraktSecrets holds the Trakt client secret and, once the device flow has
// completed, the OAuth token pair.
type TraktSecrets struct {
	ClientSecret  string              `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`
	Authorization *TraktAuthorization `json:"authorization,omitempty" yaml:"authorization,omitempty"`
}

// TraktAuthorization is the OAuth access/refresh token pair for Trakt.
type TraktAuthorization struct {
	AccessToken  string `json:"access_token,omitempty" yaml:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
}
