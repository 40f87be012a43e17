// Command pbrset resolves PBR texture folders into material sets, builds
// shader graph descriptions from them and exports rendered datasets.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/pbrset/internal/config"
	"github.com/handiism/pbrset/internal/scan"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool

	logger   *zap.Logger
	settings *config.Settings
)

var rootCmd = &cobra.Command{
	Use:   "pbrset",
	Short: "Resolve PBR texture sets into materials",
	Long: `pbrset groups texture files such as Wood_COL_2K.jpg and Wood_NRM_2K.jpg
into material sets, detects the workflow (metalness, specular or dielectric)
and reports which passes were found.

For interactive mode, use: pbrset-tui`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		settings = config.DefaultSettings()
		if configPath != "" {
			settings, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (.json or .yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show verbose output")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(thumbnailCmd)
	rootCmd.AddCommand(datasetCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if ctx.Err() != nil {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

// progressPrinter prints progress events to w, hiding verbose events
// unless --verbose is set.
func progressPrinter(w io.Writer) func(scan.ProgressEvent) {
	return func(event scan.ProgressEvent) {
		if event.Level == scan.LevelVerbose && !verbose {
			return
		}
		fmt.Fprintln(w, progressPrefix(event.Level)+event.Message)
	}
}

func progressPrefix(level scan.ProgressLevel) string {
	switch level {
	case scan.LevelError:
		return "✗ "
	case scan.LevelWarning:
		return "! "
	case scan.LevelSuccess:
		return "✓ "
	case scan.LevelInfo:
		return "› "
	default:
		return "  "
	}
}
