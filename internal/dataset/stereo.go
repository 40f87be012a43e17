package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"

	ioutils "github.com/handiism/pbrset/internal/io"
	"golang.org/x/sync/errgroup"
)

// StereoPair names the four files of one stereo frame, relative to the
// dataset root.
type StereoPair struct {
	ImageL string `json:"imageL"`
	ImageR string `json:"imageR"`
	DepthL string `json:"depthL"`
	DepthR string `json:"depthR"`
}

// StereoSplit pairs the sorted stereo renders in dataDir, copies them flat
// into datasetRoot and writes train.json and test.json. Every step-th pair,
// starting with the first, goes to test. Unpaired trailing files are
// ignored.
func StereoSplit(ctx context.Context, dataDir, datasetRoot string, step, maxCopies int) (train, test []StereoPair, err error) {
	if step < 1 {
		return nil, nil, fmt.Errorf("stereo step must be at least 1, got %d", step)
	}

	var lists [4][]string
	for i, pattern := range []string{"*stereo_L.png", "*stereo_R.png", "*depth_L.exr", "*depth_R.exr"} {
		matches, err := filepath.Glob(filepath.Join(dataDir, pattern))
		if err != nil {
			return nil, nil, err
		}
		slices.Sort(matches)
		lists[i] = matches
	}

	n := min(len(lists[0]), len(lists[1]), len(lists[2]), len(lists[3]))
	train, test = []StereoPair{}, []StereoPair{}

	if err := ioutils.EnsureDir(datasetRoot); err != nil {
		return nil, nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, maxCopies))
	for i := range n {
		pair := StereoPair{
			ImageL: filepath.Base(lists[0][i]),
			ImageR: filepath.Base(lists[1][i]),
			DepthL: filepath.Base(lists[2][i]),
			DepthR: filepath.Base(lists[3][i]),
		}
		if i%step == 0 {
			test = append(test, pair)
		} else {
			train = append(train, pair)
		}
		for _, list := range lists {
			src := list[i]
			g.Go(func() error {
				return ioutils.CopyFile(gctx, src, filepath.Join(datasetRoot, filepath.Base(src)))
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	for name, pairs := range map[string][]StereoPair{"train.json": train, "test.json": test} {
		data, err := json.Marshal(pairs)
		if err != nil {
			return nil, nil, err
		}
		if err := ioutils.WriteFile(ctx, filepath.Join(datasetRoot, name), data); err != nil {
			return nil, nil, err
		}
	}
	return train, test, nil
}
