package cmd

import (
	"fmt"
	"os"

	"github.com/plexforge/kometa-studio/internal/config"
	"github.com/plexforge/kometa-studio/pkg/log"
	"github.com/plexforge/kometa-studio/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kstudio",
	Short: "Kometa Studio - profile editor for Kometa configurations",
	Long: `Kometa Studio edits Kometa configuration files without ever holding
your credentials in the document itself. Configurations are split into a
portable template and a sealed secrets record, stored per profile, and can
be rendered back with secrets omitted, masked, or reinstated.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.Help()
			return
		}
	},
	Version: version.Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "tool config file (default is kstudio.yaml in . or the data dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	viper.SetEnvPrefix("KSTUDIO")
	viper.AutomaticEnv()
}

// loadToolConfig reads the tool configuration and applies its log settings.
func loadToolConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load tool config: %w", err)
	}

	level := log.ParseLevel(cfg.Log.Level)
	if verbose {
		level = log.DebugLevel
	}
	opts := []log.LoggerOption{log.WithLevel(level)}
	if cfg.Log.Format == "json" {
		opts = append(opts, log.WithFormatter(&log.JSONFormatter{}))
	}
	log.SetDefaultLogger(log.NewLogger(opts...))

	return cfg, nil
}
