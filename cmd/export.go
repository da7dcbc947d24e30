package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/georgiajedi/catalog/internal/catalog"
	"github.com/georgiajedi/catalog/internal/config"
	"github.com/georgiajedi/catalog/internal/export"
	"github.com/georgiajedi/catalog/internal/tablestate"
	"github.com/spf13/cobra"
)

func newExportCmd(configPath *string) *cobra.Command {
	var (
		collection string
		format     string
		mode       string
		state      string
		ids        string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export catalog rows to a file",
		Long: `Exports a row selection without running the server.

The --state flag takes the same compact s= value the site's detail links
carry, so a filtered browser view can be exported exactly as seen.`,
		Example: `  # Everything, as CSV
  catalog export --collection autographs --format csv --out autographs.csv

  # A saved filtered view, as a spreadsheet
  catalog export --collection autographs --format xlsx --mode filtered \
    --state "$STATE" --out filtered.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			store := catalog.NewStore(cfg.DataDir)
			records, err := store.Records(collection)
			if err != nil {
				return err
			}

			st := tablestate.New()
			if state != "" {
				decoded := tablestate.Decode(state)
				if decoded == nil {
					return fmt.Errorf("invalid --state value")
				}
				st = *decoded
			}

			var selected []string
			if ids != "" {
				selected = strings.Split(ids, ",")
			}

			rows := export.MapRows(export.Select(records, st, export.ParseMode(mode), selected))
			if len(rows) == 0 {
				return fmt.Errorf("no rows matched the export selection")
			}

			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer file.Close()

			if err := export.Write(file, f, rows, strings.TrimSuffix(out, "."+string(f))); err != nil {
				return err
			}

			slog.Info("Export written", "file", out, "rows", len(rows), "format", string(f))
			return nil
		},
	}

	cmd.Flags().StringVarP(&collection, "collection", "c", "autographs", "Collection to export")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format: csv, json, parquet, xlsx, pdf")
	cmd.Flags().StringVarP(&mode, "mode", "m", "all", "Row selection: all, filtered, page, selected")
	cmd.Flags().StringVar(&state, "state", "", "Encoded table state (the s= link parameter)")
	cmd.Flags().StringVar(&ids, "ids", "", "Comma-separated record ids for --mode selected")
	cmd.Flags().StringVarP(&out, "out", "o", "export.csv", "Output file path")

	return cmd
}
