package main

import (
	"fmt"

	"github.com/handiism/pbrset/internal/dataset"
	ioutils "github.com/handiism/pbrset/internal/io"
	"github.com/spf13/cobra"
)

var datasetRoot string

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Export rendered previews as training datasets",
}

var datasetConvertCmd = &cobra.Command{
	Use:   "convert <output-dir>",
	Short: "Convert render output into a detection dataset",
	Long: `Reads class.csv, train.csv and test.csv from the render output folder and
copies every listed frame into images, depth, seg, normals, labels and
annotations folders split into train and test. The dataset root gets its
own copies of the three indexes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := datasetRoot
		if root == "" {
			root = ioutils.SanitizeFileName(settings.DatasetName)
		}
		c := dataset.NewConverter(settings, progressPrinter(cmd.ErrOrStderr()), logger)
		err := c.Convert(cmd.Context(), args[0], root)
		converted, total := c.GetProgress()
		fmt.Fprintf(cmd.OutOrStdout(), "%d/%d frames converted\n", converted, total)
		return err
	},
}

var datasetStereoCmd = &cobra.Command{
	Use:   "stereo <data-dir>",
	Short: "Pair stereo renders into a stereo dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := datasetRoot
		if root == "" {
			root = ioutils.SanitizeFileName(settings.DatasetName) + "_stereo"
		}
		train, test, err := dataset.StereoSplit(cmd.Context(), args[0], root, settings.StereoStep, settings.MaxConcurrentCopies)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %d train / %d test pairs written to %s\n", len(train), len(test), root)
		return nil
	},
}

func init() {
	datasetCmd.PersistentFlags().StringVar(&datasetRoot, "root", "", "Dataset folder (default from config dataset_name, sanitized)")
	datasetCmd.AddCommand(datasetConvertCmd)
	datasetCmd.AddCommand(datasetStereoCmd)
}
