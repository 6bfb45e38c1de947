package cmd

import (
	"fmt"
	"os"

	"github.com/plexforge/kometa-studio/pkg/cli/format"
	"github.com/plexforge/kometa-studio/pkg/document"
	"github.com/plexforge/kometa-studio/pkg/store"
	"github.com/spf13/cobra"
)

var (
	renderMode   string
	renderOutput string
	renderNoNote bool
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render <profile>",
	Short: "Render a stored profile back to a Kometa configuration",
	Long: `Render reassembles a stored profile into Kometa configuration text.

The mode controls how credentials are treated:
  template  omit all secret fields (the default, safe to share)
  masked    show secrets redacted, for display only
  full      reinstate live credentials verbatim

Examples:
  # Print the shareable template
  kstudio render main

  # Write a runnable config with live credentials
  kstudio render main --mode full -o config.yml`,
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

		modeName := renderMode
		if modeName == "" {
			modeName = s.cfg.Render.Mode
		}
		mode, err := document.ParseRenderMode(modeName)
		if err != nil {
			return err
		}

		profile, err := s.profiles.Get(cmd.Context(), name)
		if err != nil {
			if store.IsNotFoundError(err) {
				return fmt.Errorf("profile %q not found", name)
			}
			return err
		}

		cfg, err := document.Parse([]byte(profile.Document), true)
		if err != nil {
			return fmt.Errorf("stored document for profile %q is invalid: %w", name, err)
		}

		secrets, err := s.secrets.Get(cmd.Context(), name)
		if err != nil && !store.IsNotFoundError(err) {
			return err
		}

		out, err := document.Generate(cfg, secrets, mode, !renderNoNote)
		if err != nil {
			return fmt.Errorf("failed to render profile %q: %w", name, err)
		}

		if renderOutput == "" {
			fmt.Print(string(out))
			return nil
		}
		if err := os.WriteFile(renderOutput, out, 0600); err != nil {
			return fmt.Errorf("error writing %s: %w", renderOutput, err)
		}
		format.PrintSuccess(fmt.Sprintf("✓ Rendered profile %q to %s (%s mode)", name, renderOutput, mode))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderMode, "mode", "m", "", "Render mode: template, masked, or full (default from tool config)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Write to a file instead of stdout")
	renderCmd.Flags().BoolVar(&renderNoNote, "no-note", false, "Omit the leading banner comment")
}
