package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/pbrset/internal/graph"
	ioutils "github.com/handiism/pbrset/internal/io"
	"github.com/handiism/pbrset/internal/model"
	"github.com/handiism/pbrset/internal/report"
	"github.com/handiism/pbrset/internal/resolve"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reportFormat  string
	thumbnailKind string
	previewOutput string
	graphReport   string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <set-path>...",
	Short: "Resolve material sets and print a report",
	Long: `Resolves each set path, e.g. /textures/Wood/Wood_2K, against the files in
its folder and prints the workflow, size and passes found.

A set path that is itself a directory is resolved against its own files.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

var graphCmd = &cobra.Command{
	Use:   "graph <set-path>",
	Short: "Print the shader graph for a material set as JSON",
	Long: `Resolves the set and prints its shader graph as JSON.

With --from-report the set is taken from a JSON or YAML report written by
resolve or scan instead, matched by set path or set name:
  pbrset graph --from-report library.json Wood_2K`,
	Args: cobra.ExactArgs(1),
	RunE: runGraph,
}

var thumbnailCmd = &cobra.Command{
	Use:   "thumbnail <set-path>",
	Short: "Find the preview image of a material set",
	Long: `Prints the path of the preview render for a set, falling back to the
thumbnail, alpha masked or color pass. With --preview a JPEG preview of
that image is written as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runThumbnail,
}

func init() {
	resolveCmd.Flags().StringVarP(&reportFormat, "format", "f", "", "Report format: json, yaml or csv (default from config)")
	thumbnailCmd.Flags().StringVar(&thumbnailKind, "kind", "", "Preview kind: sphere, flat or cube (default from config)")
	thumbnailCmd.Flags().StringVar(&previewOutput, "preview", "", "Write a JPEG preview to this path")
	graphCmd.Flags().StringVar(&graphReport, "from-report", "", "Read the set from a JSON or YAML report instead of the filesystem")
}

func resolveSet(setPath string) (*model.MaterialSet, error) {
	set, err := resolve.Resolve(setPath, settings.ToResolveOptions(logger))
	if err != nil {
		return nil, err
	}
	if missing := set.MissingCritical(); len(missing) > 0 {
		logger.Warn("set is missing critical passes",
			zap.String("set", set.SetName),
			zap.Strings("missing", missing))
	}
	return set, nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	name := reportFormat
	if name == "" {
		name = settings.ReportFormat
	}
	format, err := report.ParseFormat(name)
	if err != nil {
		return err
	}

	sets := make([]*model.MaterialSet, 0, len(args))
	for _, setPath := range args {
		set, err := resolveSet(setPath)
		if err != nil {
			return err
		}
		sets = append(sets, set)
	}
	return report.NewWriter(format).Write(cmd.OutOrStdout(), sets)
}

// setFromReport reads a report and returns the set whose path or name is
// key. The report format follows the file extension.
func setFromReport(path, key string) (*model.MaterialSet, error) {
	format, err := report.ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sets, err := report.Read(f, format)
	if err != nil {
		return nil, err
	}
	for _, set := range sets {
		if set.SetPath == key || set.SetName == key {
			return set, nil
		}
	}
	return nil, fmt.Errorf("set %s not found in %s", key, path)
}

func runGraph(cmd *cobra.Command, args []string) error {
	var set *model.MaterialSet
	var err error
	if graphReport != "" {
		set, err = setFromReport(graphReport, args[0])
	} else {
		set, err = resolveSet(args[0])
	}
	if err != nil {
		return err
	}

	g, edits, err := graph.Build(set, settings.ToGraphOptions(ioutils.NewImageService(), logger))
	if g == nil {
		return err
	}
	for _, e := range edits {
		if !e.OK() {
			logger.Warn("graph edit failed", zap.String("op", e.Op), zap.String("node", e.Node), zap.Error(e.Err))
		}
	}

	data, merr := json.MarshalIndent(g, "", "  ")
	if merr != nil {
		return merr
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func runThumbnail(cmd *cobra.Command, args []string) error {
	kind := thumbnailKind
	if kind == "" {
		kind = settings.ThumbnailType
	}

	set, err := resolveSet(args[0])
	if err != nil {
		return err
	}
	path, err := resolve.FindThumbnail(set, kind)
	if err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("no preview found for %s", set.SetName)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)

	if previewOutput == "" {
		return nil
	}
	data, err := ioutils.NewImageService().PreviewFile(cmd.Context(), path, settings.PreviewSize)
	if err != nil {
		return err
	}
	return os.WriteFile(previewOutput, data, 0644)
}
