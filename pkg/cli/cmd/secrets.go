package cmd

import (
	"fmt"
	"syscall"

	"github.com/plexforge/kometa-studio/pkg/cli/format"
	"github.com/plexforge/kometa-studio/pkg/document"
	"github.com/plexforge/kometa-studio/pkg/store"
	"github.com/plexforge/kometa-studio/pkg/types"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	yaml "gopkg.in/yaml.v3"
)

// secretsCmd groups the secrets subcommands.
var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Inspect and edit a profile's sealed credentials",
}

// secretsShowCmd prints a profile's secrets with values masked.
var secretsShowCmd = &cobra.Command{
	Use:   "show <profile>",
	Short: "Show a profile's credentials, masked",
	Long: `Show prints the credential fields stored for a profile. Values are
always masked; use render --mode full to obtain live credentials.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		s, err := openStudio()
		if err != nil {
			return err
		}
		defer s.Close()

		secrets, err := s.secrets.Get(cmd.Context(), name)
		if err != nil {
			if store.IsNotFoundError(err) {
				return fmt.Errorf("profile %q has no secrets record", name)
			}
			return err
		}
		if secrets.IsEmpty() {
			fmt.Printf("Profile %q has no stored credentials\n", name)
			return nil
		}

		out, err := yaml.Marshal(maskSecrets(secrets))
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

// secretsSetCmd sets one credential field, prompting without echo.
var secretsSetCmd = &cobra.Command{
	Use:   "set <profile> <service> <field>",
	Short: "Set one credential field for a profile",
	Long: `Set stores a single credential field in a profile's sealed secrets
record. The value is prompted for and never echoed.

Services and their fields:
  plex      url, token
  tmdb      apikey
  tautulli  url, apikey
  mdblist   apikey
  radarr    url, token
  sonarr    url, token
  trakt     client_secret, access_token, refresh_token

Example:
  kstudio secrets set main plex token`,
	Args:          cobra.ExactArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, service, field := args[0], args[1], args[2]

		s, err := openStudio()
		if err != nil {
			return err
		}
		defer s.Close()

		if _, err := s.profiles.Get(cmd.Context(), name); err != nil {
			if store.IsNotFoundError(err) {
				return fmt.Errorf("profile %q not found", name)
			}
			return err
		}

		secrets, err := s.secrets.Get(cmd.Context(), name)
		if err != nil {
			if !store.IsNotFoundError(err) {
				return err
			}
			secrets = &types.Secrets{}
		}

		fmt.Printf("Enter value for %s.%s: ", service, field)
		value, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read value: %w", err)
		}

		if err := setSecretField(secrets, service, field, string(value)); err != nil {
			return err
		}
		if err := s.secrets.Put(cmd.Context(), name, secrets); err != nil {
			return err
		}

		format.PrintSuccess(fmt.Sprintf("✓ Sealed %s.%s for profile %q", service, field, name))
		return nil
	},
}

// secretsClearCmd removes a profile's secrets record.
var secretsClearCmd = &cobra.Command{
	Use:           "clear <profile>",
	Short:         "Delete a profile's secrets record",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		s, err := openStudio()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.secrets.Delete(cmd.Context(), name); err != nil {
			if store.IsNotFoundError(err) {
				return fmt.Errorf("profile %q has no secrets record", name)
			}
			return err
		}
		format.PrintSuccess(fmt.Sprintf("✓ Cleared credentials for profile %q", name))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(secretsCmd)
	secretsCmd.AddCommand(secretsShowCmd)
	secretsCmd.AddCommand(secretsSetCmd)
	secretsCmd.AddCommand(secretsClearCmd)
}

// setSecretField writes one credential field, creating the service record if
// needed.
func setSecretField(secrets *types.Secrets, service, field, value string) error {
	badField := func() error {
		return fmt.Errorf("unknown field %q for service %q", field, service)
	}

	switch service {
	case types.SectionPlex:
		if secrets.Plex == nil {
			secrets.Plex = &types.PlexSecrets{}
		}
		switch field {
		case "url":
			secrets.Plex.URL = value
		case "token":
			secrets.Plex.Token = value
		default:
			return badField()
		}
	case types.SectionTMDb:
		if secrets.TMDb == nil {
			secrets.TMDb = &types.TMDbSecrets{}
		}
		if field != "apikey" {
			return badField()
		}
		secrets.TMDb.APIKey = value
	case types.SectionTautulli:
		if secrets.Tautulli == nil {
			secrets.Tautulli = &types.TautulliSecrets{}
		}
		switch field {
		case "url":
			secrets.Tautulli.URL = value
		case "apikey":
			secrets.Tautulli.APIKey = value
		default:
			return badField()
		}
	case types.SectionMDBList:
		if secrets.MDBList == nil {
			secrets.MDBList = &types.MDBListSecrets{}
		}
		if field != "apikey" {
			return badField()
		}
		secrets.MDBList.APIKey = value
	case types.SectionRadarr, types.SectionSonarr:
		arr := secrets.Radarr
		if service == types.SectionSonarr {
			arr = secrets.Sonarr
		}
		if arr == nil {
			arr = &types.ArrSecrets{}
			if service == types.SectionSonarr {
				secrets.Sonarr = arr
			} else {
				secrets.Radarr = arr
			}
		}
		switch field {
		case "url":
			arr.URL = value
		case "token":
			arr.Token = value
		default:
			return badField()
		}
	case types.SectionTrakt:
		if secrets.Trakt == nil {
			secrets.Trakt = &types.TraktSecrets{}
		}
		switch field {
		case "client_secret":
			secrets.Trakt.ClientSecret = value
		case "access_token", "refresh_token":
			if secrets.Trakt.Authorization == nil {
				secrets.Trakt.Authorization = &types.TraktAuthorization{}
			}
			if field == "access_token" {
				secrets.Trakt.Authorization.AccessToken = value
			} else {
				secrets.Trakt.Authorization.RefreshToken = value
			}
		default:
			return badField()
		}
	default:
		return fmt.Errorf("unknown service %q", service)
	}
	return nil
}

// maskSecrets returns a copy of secrets with every value masked for display.
func maskSecrets(secrets *types.Secrets) *types.Secrets {
	mask := func(v string) string {
		if v == "" {
			return ""
		}
		return document.Mask(v)
	}

	out := &types.Secrets{}
	if secrets.Plex != nil {
		out.Plex = &types.PlexSecrets{URL: secrets.Plex.URL, Token: mask(secrets.Plex.Token)}
	}
	if secrets.TMDb != nil {
		out.TMDb = &types.TMDbSecrets{APIKey: mask(secrets.TMDb.APIKey)}
	}
	if secrets.Tautulli != nil {
		out.Tautulli = &types.TautulliSecrets{URL: secrets.Tautulli.URL, APIKey: mask(secrets.Tautulli.APIKey)}
	}
	if secrets.MDBList != nil {
		out.MDBList = &types.MDBListSecrets{APIKey: mask(secrets.MDBList.APIKey)}
	}
	if secrets.Radarr != nil {
		out.Radarr = &types.ArrSecrets{URL: secrets.Radarr.URL, Token: mask(secrets.Radarr.Token)}
	}
	if secrets.Sonarr != nil {
		out.Sonarr = &types.ArrSecrets{URL: secrets.Sonarr.URL, Token: mask(secrets.Sonarr.Token)}
	}
	if secrets.Trakt != nil {
		out.Trakt = &types.TraktSecrets{ClientSecret: mask(secrets.Trakt.ClientSecret)}
		if secrets.Trakt.Authorization != nil {
			out.Trakt.Authorization = &types.TraktAuthorization{
				AccessToken:  mask(secrets.Trakt.Authorization.AccessToken),
				RefreshToken: mask(secrets.Trakt.Authorization.RefreshToken),
			}
		}
	}
	return out
}
