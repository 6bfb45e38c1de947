package cmd

import (
	"fmt"

	"github.com/plexforge/kometa-studio/pkg/cli/format"
	"github.com/plexforge/kometa-studio/pkg/store"
	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <profile>",
	Short: "Delete a stored profile and its secrets",
	Long: `Delete removes a profile and, if present, its sealed secrets record.

Example:
  kstudio delete main`,
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

		if err := s.profiles.Delete(cmd.Context(), name); err != nil {
			if store.IsNotFoundError(err) {
				return fmt.Errorf("profile %q not found", name)
			}
			return err
		}

		// The secrets record is optional; a missing one is not an error.
		if err := s.secrets.Delete(cmd.Context(), name); err != nil && !store.IsNotFoundError(err) {
			return err
		}

		format.PrintSuccess(fmt.Sprintf("✓ Deleted profile %q", name))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
