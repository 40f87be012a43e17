package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ioutils "github.com/handiism/pbrset/internal/io"
)

// BBox is a normalized screen-space box as {minX, maxX, minY, maxY}, with y
// growing upwards from the bottom of the frame.
type BBox [4]float64

// Rotation is the camera rig rotation in whole degrees around X, Y and Z.
type Rotation [3]int

// Annotation is the JSON record written next to every rendered frame.
type Annotation struct {
	Label     string   `json:"label"`
	Rotation  Rotation `json:"rotation"`
	BBox      BBox     `json:"bbox"`
	BBoxes    []BBox   `json:"bboxes"`
	Materials []string `json:"materials"`
	Seed      int64    `json:"seed"`
}

// WriteAnnotation writes a as <path>.json and returns the file name
// written, which is what the split index lists.
func WriteAnnotation(ctx context.Context, path string, a Annotation) (string, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("failed to encode annotation: %w", err)
	}
	target := path + ".json"
	if err := ioutils.WriteFile(ctx, target, data); err != nil {
		return "", err
	}
	return filepath.Base(target), nil
}

// ReadAnnotation loads an annotation JSON file.
func ReadAnnotation(path string) (Annotation, error) {
	var a Annotation
	data, err := os.ReadFile(path)
	if err != nil {
		return a, fmt.Errorf("failed to read annotation: %w", err)
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return a, fmt.Errorf("failed to parse annotation %s: %w", filepath.Base(path), err)
	}
	return a, nil
}

// AppendIndex appends one single-column CSV row to the index file at path,
// creating it if needed.
func AppendIndex(path, value string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{value}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// readIndex returns the whitespace separated entries of an index file.
func readIndex(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	return strings.Fields(string(bytes.TrimSpace(data))), nil
}

// YOLOBox is a box in YOLO label format: centre and size, normalized, with
// y growing downwards.
type YOLOBox struct {
	X, Y, W, H float64
}

// ToYOLO clamps b to the unit square and converts it to YOLO format.
//
// Example:
//
//	ToYOLO(BBox{0.25, 0.75, 0.0, 0.5}) // {X: 0.5, Y: 0.75, W: 0.5, H: 0.5}
func ToYOLO(b BBox) YOLOBox {
	minX, maxX := clamp01(b[0]), clamp01(b[1])
	minY, maxY := clamp01(b[2]), clamp01(b[3])
	return YOLOBox{
		X: (minX + maxX) / 2,
		Y: 1 - (minY+maxY)/2,
		W: maxX - minX,
		H: maxY - minY,
	}
}

func clamp01(v float64) float64 {
	return min(max(0, v), 1)
}

// Label formats a label line: "<class> x y w h".
func (y YOLOBox) Label(class int) string {
	parts := []string{strconv.Itoa(class)}
	for _, v := range []float64{y.X, y.Y, y.W, y.H} {
		parts = append(parts, strconv.FormatFloat(v, 'f', 6, 64))
	}
	return strings.Join(parts, " ")
}
