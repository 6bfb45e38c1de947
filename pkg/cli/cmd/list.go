package cmd

import (
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored profiles",
	Long: `List the stored profiles with their descriptions, whether a sealed
secrets record exists, and when they were last written.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStudio()
		if err != nil {
			return err
		}
		defer s.Close()

		profiles, err := s.profiles.List(cmd.Context())
		if err != nil {
			return err
		}

		hasSecrets := make(map[string]bool, len(profiles))
		for _, profile := range profiles {
			exists, err := s.secrets.Exists(cmd.Context(), profile.Name)
			if err != nil {
				return err
			}
			hasSecrets[profile.Name] = exists
		}

		return NewProfileTable().Render(profiles, hasSecrets)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
