package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/plexforge/kometa-studio/pkg/cli/format"
	"github.com/plexforge/kometa-studio/pkg/document"
	"github.com/plexforge/kometa-studio/pkg/log"
	"github.com/plexforge/kometa-studio/pkg/store"
	"github.com/plexforge/kometa-studio/pkg/types"
	"github.com/spf13/cobra"
)

var (
	importName        string
	importDescription string
	importForce       bool
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a Kometa configuration file as a profile",
	Long: `Import splits a Kometa configuration file into a portable template and
its credential material. The template is stored as a profile; the
credentials are sealed and stored as the profile's secrets record. The
original file is not modified.

Examples:
  # Import a config under a profile named after the file
  kstudio import config.yml

  # Import under an explicit profile name
  kstudio import config.yml --name main

  # Replace an existing profile
  kstudio import config.yml --name main --force`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", filename, err)
		}

		name := importName
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		}

		s, err := openStudio()
		if err != nil {
			return err
		}
		defer s.Close()

		return runImport(cmd.Context(), s, name, data)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importName, "name", "", "Profile name (default is the file name without extension)")
	importCmd.Flags().StringVar(&importDescription, "description", "", "Optional profile description")
	importCmd.Flags().BoolVar(&importForce, "force", false, "Replace the profile if it already exists")
}

// runImport parses, splits, and stores one document under the given name.
func runImport(ctx context.Context, s *studio, name string, data []byte) error {
	cfg, err := document.Parse(data, true)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	secrets, err := document.ExtractSecrets(data)
	if err != nil {
		return fmt.Errorf("failed to extract credentials: %w", err)
	}

	// The stored document is the template render, so the profile record
	// itself never carries credentials.
	template, err := document.Generate(cfg, nil, document.ModeTemplate, false)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	profile := types.NewProfile(name, string(template))
	profile.Description = importDescription

	err = s.profiles.Create(ctx, profile)
	if store.IsAlreadyExistsError(err) {
		if !importForce {
			return fmt.Errorf("profile %q already exists (use --force to replace)", name)
		}
		existing, getErr := s.profiles.Get(ctx, name)
		if getErr != nil {
			return getErr
		}
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		err = s.profiles.Update(ctx, profile)
	}
	if err != nil {
		return err
	}

	if err := s.secrets.Put(ctx, name, secrets); err != nil {
		return fmt.Errorf("failed to store secrets: %w", err)
	}

	log.Debug("Imported profile", log.Str("profile", name), log.Bool("hasSecrets", !secrets.IsEmpty()))

	if secrets.IsEmpty() {
		format.PrintSuccess(fmt.Sprintf("✓ Imported profile %q (no credentials found)", name))
	} else {
		format.PrintSuccess(fmt.Sprintf("✓ Imported profile %q with sealed credentials", name))
	}
	return nil
}
