package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/plexforge/kometa-studio/pkg/cli/format"
	"github.com/plexforge/kometa-studio/pkg/document"
	"github.com/plexforge/kometa-studio/pkg/types"
	"github.com/spf13/cobra"
)

var (
	lintQuiet      bool
	lintRecursive  bool
	lintStrict     bool
	lintExitOnFail bool
	lintFormat     string
	lintContext    int
)

// lintCmd represents the lint command
var lintCmd = &cobra.Command{
	Use:   "lint [file or directory]...",
	Short: "Validate Kometa configuration files",
	Long: `Lint and validate Kometa configuration files for correctness.

This command checks the document structure, each service section's shape,
the libraries block, and the enabled flags. With --strict it also flags
credential values found in the document itself.

Examples:
  # Lint a single file
  kstudio lint config.yml

  # Recursively lint all YAML files in a directory
  kstudio lint --recursive ./configs/

  # Also flag credentials living in the document
  kstudio lint --strict config.yml

  # Output in JSON format for CI integration
  kstudio lint --format json config.yml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("at least one file or directory is required")
		}

		var filesToLint []string
		for _, arg := range args {
			info, err := os.Stat(arg)
			if err != nil {
				return fmt.Errorf("error accessing %s: %w", arg, err)
			}

			if info.IsDir() {
				if lintRecursive {
					err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
						if err != nil {
							return err
						}
						if !info.IsDir() && hasYAMLExtension(path) {
							filesToLint = append(filesToLint, path)
						}
						return nil
					})
					if err != nil {
						return fmt.Errorf("error walking directory %s: %w", arg, err)
					}
				} else {
					entries, err := os.ReadDir(arg)
					if err != nil {
						return fmt.Errorf("error reading directory %s: %w", arg, err)
					}
					for _, e := range entries {
						if !e.IsDir() && hasYAMLExtension(e.Name()) {
							filesToLint = append(filesToLint, filepath.Join(arg, e.Name()))
						}
					}
				}
			} else if hasYAMLExtension(arg) {
				filesToLint = append(filesToLint, arg)
			} else if !lintQuiet {
				fmt.Printf("Skipping non-YAML file: %s\n", arg)
			}
		}

		if len(filesToLint) == 0 {
			return fmt.Errorf("no YAML files found to lint")
		}

		return runLint(filesToLint)
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().BoolVar(&lintQuiet, "quiet", false, "Only show errors, no progress or success messages")
	lintCmd.Flags().BoolVarP(&lintRecursive, "recursive", "r", false, "Recursively process directories")
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "Also flag credential values found in the document")
	lintCmd.Flags().BoolVar(&lintExitOnFail, "exit-on-fail", false, "Exit on first validation failure")
	lintCmd.Flags().StringVar(&lintFormat, "format", "text", "Output format (text, json)")
	lintCmd.Flags().IntVar(&lintContext, "context", 1, "Number of context lines to show around errors")
}

// hasYAMLExtension checks if a file has a YAML extension
func hasYAMLExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".yaml" || ext == ".yml"
}

// runLint performs the actual linting of files
func runLint(files []string) error {
	totalErrorCount := 0
	totalWarningCount := 0
	startTime := time.Now()
	var allDiagnostics []format.Diagnostic

	for _, filename := range files {
		if verbose && !lintQuiet && lintFormat == "text" {
			fmt.Printf("Linting %s...\n", filename)
		}

		data, err := os.ReadFile(filename)
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", filename, err)
			totalErrorCount++
			if lintExitOnFail {
				return fmt.Errorf("validation failed")
			}
			continue
		}

		formatter := format.NewDiagnosticFormatter(filename, data)
		formatter.ContextLines = lintContext
		formatter.OutputFormat = lintFormat

		lintFile(formatter, data)

		totalErrorCount += formatter.ErrorCount
		totalWarningCount += formatter.WarningCount
		allDiagnostics = append(allDiagnostics, formatter.Diagnostics...)

		if formatter.ErrorCount > 0 {
			if lintFormat == "text" {
				formatter.PrintSummary()
			}
			if lintExitOnFail {
				return fmt.Errorf("validation failed")
			}
		}
	}

	if lintFormat == "json" {
		jsonFormatter := format.NewDiagnosticFormatter("", nil)
		jsonFormatter.Diagnostics = allDiagnostics
		jsonFormatter.ErrorCount = totalErrorCount
		jsonFormatter.WarningCount = totalWarningCount
		fmt.Println(jsonFormatter.FormatAsJSON())
	}

	if lintFormat == "text" {
		format.PrintLintSummary(len(files), totalErrorCount, totalWarningCount, time.Since(startTime))
	}

	if totalErrorCount > 0 {
		return fmt.Errorf("")
	}
	return nil
}

// lintFile validates one document and records its findings.
func lintFile(formatter *format.DiagnosticFormatter, data []byte) {
	if _, err := document.Parse(data, true); err != nil {
		formatter.PrintHeader()
		msg := err.Error()
		if types.IsFormatError(err) {
			msg = "not valid YAML: " + msg
		}
		formatter.PrintError(msg, formatter.ExtractLineNumber(err.Error()))
		return
	}

	if !lintStrict {
		return
	}

	secrets, err := document.ExtractSecrets(data)
	if err != nil {
		formatter.PrintError(err.Error(), 0)
		return
	}
	for _, section := range secretSections(secrets) {
		formatter.PrintWarning(section, "credential values found in document; move them to the profile's secrets record")
	}
}

// secretSections names the service sections of a document carrying
// credential material.
func secretSections(secrets *types.Secrets) []string {
	if secrets.IsEmpty() {
		return nil
	}
	var sections []string
	if secrets.Plex != nil && secrets.Plex.Token != "" {
		sections = append(sections, types.SectionPlex)
	}
	if secrets.TMDb != nil {
		sections = append(sections, types.SectionTMDb)
	}
	if secrets.Tautulli != nil && secrets.Tautulli.APIKey != "" {
		sections = append(sections, types.SectionTautulli)
	}
	if secrets.MDBList != nil {
		sections = append(sections, types.SectionMDBList)
	}
	if secrets.Radarr != nil && secrets.Radarr.Token != "" {
		sections = append(sections, types.SectionRadarr)
	}
	if secrets.Sonarr != nil && secrets.Sonarr.Token != "" {
		sections = append(sections, types.SectionSonarr)
	}
	if secrets.Trakt != nil {
		sections = append(sections, types.SectionTrakt)
	}
	return sections
}
