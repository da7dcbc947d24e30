package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Collectibles catalog server with filtering, exports, and watermarked images",
		Long: `Catalog serves a collectibles inventory from plain JSON files.

It filters and pages records the same way the table on the site does,
encodes the exact view state into shareable links, exports row
selections to CSV/JSON/Parquet/Excel/PDF, and serves images with a
tiled watermark overlay.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "catalog.yaml", "Path to the config file")

	cmd.AddCommand(newServeCmd(&configPath))
	cmd.AddCommand(newExportCmd(&configPath))

	return cmd
}
