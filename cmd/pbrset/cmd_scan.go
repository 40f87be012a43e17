package main

import (
	"fmt"
	"os"

	"github.com/handiism/pbrset/internal/report"
	"github.com/handiism/pbrset/internal/scan"
	"github.com/spf13/cobra"
)

var (
	scanOutput string
	scanList   bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <root>",
	Short: "Discover and resolve every material set under a folder",
	Long: `Walks the folder tree, groups texture files into sets by name and size,
resolves every set and writes a report. Hidden folders are skipped.

With --list the discovered set paths are printed without resolving them.

Example:
  pbrset scan ~/textures --format csv --output library.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&reportFormat, "format", "f", "", "Report format: json, yaml or csv (default from config)")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "Write the report to this file instead of stdout")
	scanCmd.Flags().BoolVar(&scanList, "list", false, "Only list the discovered set paths")
}

func runScan(cmd *cobra.Command, args []string) error {
	name := reportFormat
	if name == "" {
		name = settings.ReportFormat
	}
	format, err := report.ParseFormat(name)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	manager := scan.NewManager(settings, progressPrinter(cmd.ErrOrStderr()), scan.WithLogger(logger))

	if _, err := manager.Discover(ctx, args[0]); err != nil {
		return err
	}
	if scanList {
		for _, setPath := range manager.SetPaths() {
			fmt.Fprintln(cmd.OutOrStdout(), setPath)
		}
		return nil
	}
	if err := manager.ResolveAll(ctx); err != nil {
		return err
	}

	w := report.NewWriter(format)
	if scanOutput == "" {
		return w.Write(cmd.OutOrStdout(), manager.Results())
	}

	f, err := os.Create(scanOutput)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := w.Write(f, manager.Results()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
