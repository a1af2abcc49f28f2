// Package cli provides the command-line interface for coverhue.
package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/coverhue/coverhue/internal/config"
	"github.com/coverhue/coverhue/internal/version"
)

var (
	// Global flags
	globalVerbose    bool
	globalQuiet      bool
	globalConfigPath string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "coverhue",
		Short: "Colour palettes from album cover art",
		Long: `Coverhue looks up album cover art and reduces it to a small
representative colour palette via k-means clustering.

Cover art is resolved through Last.fm, MusicBrainz (with the Cover Art
Archive) and Discogs, in that order. Generated palettes can be checked
for colour vision deficiency friendliness and saved for later review.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&globalConfigPath, "config", "", "config file (default: <user config dir>/coverhue/config.json)")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(optimalCmd)
	rootCmd.AddCommand(distinctCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(palettesCmd)
}

// newLogger builds the application logger from the global verbosity flags.
func newLogger() hclog.Logger {
	level := hclog.Info
	if globalQuiet {
		level = hclog.Error
	}
	if globalVerbose {
		level = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "coverhue",
		Level:  level,
		Output: os.Stderr,
	})
}

// loadConfig loads the configuration file named by --config, or the default
// location when the flag is unset.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(afero.NewOsFs(), globalConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
