package cmd

import (
	"fmt"
	"os"

	"github.com/plexforge/kometa-studio/pkg/cli/format"
	"github.com/plexforge/kometa-studio/pkg/document"
	"github.com/spf13/cobra"
)

var (
	exportMode   string
	exportOutput string
	exportNoNote bool
	exportExtras bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Re-render a configuration file without touching the profile store",
	Long: `Export reads a Kometa configuration file and writes it back in canonical
form, with credentials omitted, masked, or kept according to the mode. It
is a file-to-file round trip; nothing is stored.

Examples:
  # Produce a shareable copy of a working config
  kstudio export config.yml -o config.template.yml

  # Show the config with credentials masked
  kstudio export config.yml --mode masked`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", filename, err)
		}

		mode, err := document.ParseRenderMode(exportMode)
		if err != nil {
			return err
		}

		cfg, err := document.Parse(data, exportExtras)
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		secrets, err := document.ExtractSecrets(data)
		if err != nil {
			return fmt.Errorf("failed to extract credentials: %w", err)
		}

		out, err := document.Generate(cfg, secrets, mode, !exportNoNote)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", filename, err)
		}

		if exportOutput == "" {
			fmt.Print(string(out))
			return nil
		}
		if err := os.WriteFile(exportOutput, out, 0600); err != nil {
			return fmt.Errorf("error writing %s: %w", exportOutput, err)
		}
		format.PrintSuccess(fmt.Sprintf("✓ Exported %s to %s (%s mode)", filename, exportOutput, mode))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportMode, "mode", "m", "template", "Render mode: template, masked, or full")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	exportCmd.Flags().BoolVar(&exportNoNote, "no-note", false, "Omit the leading banner comment")
	exportCmd.Flags().BoolVar(&exportExtras, "keep-extras", true, "Carry unknown fields through to the output")
}
