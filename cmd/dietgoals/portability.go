package dietgoals

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/saadjs/dietgoals/internal/service"
	"github.com/spf13/cobra"
)

var (
	exportOut    string
	exportSets   []string
	exportFull   bool
	importIn     string
	importMode   string
	importDryRun bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export goal sets (and optionally body and workout history) as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			data, err := service.ExportGoalSets(sqldb, exportSets, exportFull)
			if err != nil {
				return err
			}
			if strings.TrimSpace(exportOut) == "" || exportOut == "-" {
				return service.WriteExport(cmd.OutOrStdout(), data)
			}
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			if err := service.WriteExport(f, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d goal set(s) to %s\n", len(data.GoalSets), exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import goal sets from a YAML or JSON export",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		var r io.Reader = cmd.InOrStdin()
		if importIn != "-" {
			f, err := os.Open(importIn)
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()
			r = f
		}
		data, err := service.ReadExport(r)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.ImportData(sqldb, data, service.ImportOptions{
				Mode:   service.ImportMode(strings.ToLower(strings.TrimSpace(importMode))),
				DryRun: importDryRun,
			})
			if err != nil {
				return err
			}
			prefix := "Import report"
			if importDryRun {
				prefix = "Dry run"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: inserted=%d updated=%d skipped=%d conflicts=%d\n", prefix, report.Inserted, report.Updated, report.Skipped, report.Conflicts)
			for _, w := range report.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path (default stdout)")
	exportCmd.Flags().StringArrayVar(&exportSets, "set", nil, "Goal set to export (repeatable, default all)")
	exportCmd.Flags().BoolVar(&exportFull, "full", false, "Include body measurements, workouts and config")

	importCmd.Flags().StringVar(&importIn, "in", "", "Input file path, or - for stdin")
	importCmd.Flags().StringVar(&importMode, "mode", "fail", "Conflict mode: fail, skip, merge or replace")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate and report without writing")
}
