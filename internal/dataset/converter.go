package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/handiism/pbrset/internal/config"
	ioutils "github.com/handiism/pbrset/internal/io"
	"github.com/handiism/pbrset/internal/scan"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownClass is returned when an annotation label is not listed in
// the class index.
var ErrUnknownClass = errors.New("unknown class")

// Index file names written by the renderer.
const (
	ClassIndex = "class.csv"
	TrainIndex = "train.csv"
	TestIndex  = "test.csv"
)

// Splits of the converted dataset.
const (
	SplitTrain = "train"
	SplitTest  = "test"
)

// channel maps a rendered output suffix to its dataset folder.
type channel struct {
	suffix string
	folder string
}

var channels = []channel{
	{suffix: "_render.png", folder: "images"},
	{suffix: "_depth.exr", folder: "depth"},
	{suffix: "_albedo.exr", folder: "seg"},
	{suffix: "_normal.exr", folder: "normals"},
}

// Folders lists every top-level folder a converted dataset contains.
func Folders() []string {
	folders := make([]string, 0, len(channels)+2)
	for _, c := range channels {
		folders = append(folders, c.folder)
	}
	return append(folders, "labels", "annotations")
}

// Converter turns a render output folder into a YOLO style dataset with
// images, depth, seg, normals, labels and annotations folders per split.
// The dataset root gets its own class, train and test indexes.
type Converter struct {
	settings   *config.Settings
	logger     *zap.Logger
	onProgress func(scan.ProgressEvent)

	converted int32
	total     int32
}

// NewConverter creates a new Converter. onProgress may be nil.
func NewConverter(settings *config.Settings, onProgress func(scan.ProgressEvent), logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		settings:   settings,
		logger:     logger,
		onProgress: onProgress,
	}
}

// Convert reads the class, train and test indexes in outputDir and copies
// every listed frame into datasetRoot.
func (c *Converter) Convert(ctx context.Context, outputDir, datasetRoot string) error {
	classes, err := readIndex(filepath.Join(outputDir, ClassIndex))
	if err != nil {
		return err
	}

	splits := map[string][]string{}
	for split, index := range map[string]string{SplitTrain: TrainIndex, SplitTest: TestIndex} {
		entries, err := readIndex(filepath.Join(outputDir, index))
		if err != nil {
			return err
		}
		splits[split] = entries
	}

	for _, folder := range Folders() {
		for _, split := range []string{SplitTrain, SplitTest} {
			if err := ioutils.EnsureDir(filepath.Join(datasetRoot, folder, split)); err != nil {
				return err
			}
		}
	}

	atomic.StoreInt32(&c.total, int32(len(splits[SplitTrain])+len(splits[SplitTest])))
	atomic.StoreInt32(&c.converted, 0)
	c.progress(scan.ProgressEvent{
		Message: fmt.Sprintf("Converting %d frame(s) (%d train, %d test)", c.total, len(splits[SplitTrain]), len(splits[SplitTest])),
		Level:   scan.LevelInfo,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, c.settings.MaxConcurrentCopies))

	for _, split := range []string{SplitTrain, SplitTest} {
		for _, entry := range splits[split] {
			g.Go(func() error {
				return c.convertFrame(gctx, classes, outputDir, datasetRoot, split, entry)
			})
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := writeIndexes(datasetRoot, classes, splits); err != nil {
		return err
	}

	c.progress(scan.ProgressEvent{
		Message: fmt.Sprintf("Dataset written to %s", datasetRoot),
		Level:   scan.LevelSuccess,
	})
	return nil
}

// convertFrame copies the outputs of one frame and writes its label. The
// frame name is everything before the first dot of the annotation file.
func (c *Converter) convertFrame(ctx context.Context, classes []string, outputDir, datasetRoot, split, entry string) error {
	name, _, _ := strings.Cut(entry, ".")

	for _, ch := range channels {
		src := filepath.Join(outputDir, name+ch.suffix)
		dst := filepath.Join(datasetRoot, ch.folder, split, name+filepath.Ext(ch.suffix))
		if err := ioutils.CopyFile(ctx, src, dst); err != nil {
			return fmt.Errorf("frame %s: %w", name, err)
		}
	}

	a, err := ReadAnnotation(filepath.Join(outputDir, entry))
	if err != nil {
		return err
	}
	class := slices.Index(classes, a.Label)
	if class < 0 {
		return fmt.Errorf("frame %s: %w %q", name, ErrUnknownClass, a.Label)
	}

	label := ToYOLO(a.BBox).Label(class)
	if err := ioutils.WriteFile(ctx, filepath.Join(datasetRoot, "labels", split, name+".txt"), []byte(label)); err != nil {
		return err
	}
	if _, err := WriteAnnotation(ctx, filepath.Join(datasetRoot, "annotations", split, name), a); err != nil {
		return err
	}

	done := atomic.AddInt32(&c.converted, 1)
	c.logger.Debug("frame converted", zap.String("frame", name), zap.String("split", split))
	c.progress(scan.ProgressEvent{
		Message: fmt.Sprintf("[%d/%d] %s", done, atomic.LoadInt32(&c.total), name),
		Level:   scan.LevelVerbose,
	})
	return nil
}

// writeIndexes rewrites the class, train and test indexes of datasetRoot
// in source order.
func writeIndexes(datasetRoot string, classes []string, splits map[string][]string) error {
	indexes := []struct {
		file    string
		entries []string
	}{
		{ClassIndex, classes},
		{TrainIndex, splits[SplitTrain]},
		{TestIndex, splits[SplitTest]},
	}
	for _, index := range indexes {
		path := filepath.Join(datasetRoot, index.file)
		if err := os.WriteFile(path, nil, 0644); err != nil {
			return err
		}
		for _, entry := range index.entries {
			if err := AppendIndex(path, entry); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetProgress returns the number of converted frames and the total.
func (c *Converter) GetProgress() (converted, total int32) {
	return atomic.LoadInt32(&c.converted), atomic.LoadInt32(&c.total)
}

func (c *Converter) progress(event scan.ProgressEvent) {
	if c.onProgress != nil {
		c.onProgress(event)
	}
}
