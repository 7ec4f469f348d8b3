// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/labrocante/brocante/internal/config"
)

var (
	configPath string // directory holding main.toml
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "brocante",
	Short: "La Brocante is the web shop of a second hand store",
	Long: `La Brocante serves the public catalog of a second hand store
(home, products, contact, location) and its back office where the
products, categories, site settings and images are managed.`,
	Args: cobra.OnlyValidArgs,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "directory holding main.toml (default ./etc/)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
