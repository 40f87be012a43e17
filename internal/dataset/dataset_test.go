package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/handiism/pbrset/internal/config"
	"github.com/handiism/pbrset/internal/scan"
)

func TestToYOLO(t *testing.T) {
	tests := []struct {
		name string
		box  BBox
		want YOLOBox
	}{
		{
			name: "inside frame",
			box:  BBox{0.25, 0.75, 0.0, 0.5},
			want: YOLOBox{X: 0.5, Y: 0.75, W: 0.5, H: 0.5},
		},
		{
			name: "clamped",
			box:  BBox{-0.5, 0.5, 0.5, 1.5},
			want: YOLOBox{X: 0.25, Y: 0.25, W: 0.5, H: 0.5},
		},
		{
			name: "fully outside",
			box:  BBox{1.2, 1.4, -0.3, -0.1},
			want: YOLOBox{X: 1, Y: 1, W: 0, H: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToYOLO(tt.box)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("ToYOLO() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestYOLOBox_Label(t *testing.T) {
	got := YOLOBox{X: 0.5, Y: 0.75, W: 0.5, H: 0.125}.Label(2)
	want := "2 0.500000 0.750000 0.500000 0.125000"
	if got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
}

func TestAnnotationAndIndex(t *testing.T) {
	dir := t.TempDir()
	a := Annotation{
		Label:     "chair",
		Rotation:  Rotation{85, 0, 30},
		BBox:      BBox{0.1, 0.2, 0.3, 0.4},
		BBoxes:    []BBox{{0.1, 0.2, 0.3, 0.4}},
		Materials: []string{"Wood_2K"},
		Seed:      7,
	}

	name, err := WriteAnnotation(context.Background(), filepath.Join(dir, "chair_0000"), a)
	if err != nil {
		t.Fatalf("WriteAnnotation() error = %v", err)
	}
	if name != "chair_0000.json" {
		t.Errorf("WriteAnnotation() name = %q", name)
	}

	got, err := ReadAnnotation(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("ReadAnnotation() error = %v", err)
	}
	if diff := cmp.Diff(a, got); diff != "" {
		t.Errorf("annotation mismatch (-want +got):\n%s", diff)
	}

	index := filepath.Join(dir, TrainIndex)
	for _, v := range []string{"chair_0001.json", "chair_0002.json"} {
		if err := AppendIndex(index, v); err != nil {
			t.Fatalf("AppendIndex() error = %v", err)
		}
	}
	entries, err := readIndex(index)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"chair_0001.json", "chair_0002.json"}, entries); diff != "" {
		t.Errorf("index mismatch (-want +got):\n%s", diff)
	}
}

func writeFrame(t *testing.T, dir, name, label string, box BBox) {
	t.Helper()
	for _, ch := range channels {
		if err := os.WriteFile(filepath.Join(dir, name+ch.suffix), []byte(name+ch.folder), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := WriteAnnotation(context.Background(), filepath.Join(dir, name), Annotation{Label: label, BBox: box}); err != nil {
		t.Fatal(err)
	}
}

func TestConverter_Convert(t *testing.T) {
	out := t.TempDir()
	root := filepath.Join(t.TempDir(), "pbr_dataset")

	writeFrame(t, out, "chair_0000", "chair", BBox{0.25, 0.75, 0.0, 0.5})
	writeFrame(t, out, "chair_0001", "chair", BBox{0, 1, 0, 1})
	writeFrame(t, out, "table_0000", "table", BBox{0, 0.5, 0, 0.5})

	for _, row := range [][2]string{
		{ClassIndex, "chair"}, {ClassIndex, "table"},
		{TestIndex, "chair_0000.json"},
		{TrainIndex, "chair_0001.json"}, {TrainIndex, "table_0000.json"},
	} {
		if err := AppendIndex(filepath.Join(out, row[0]), row[1]); err != nil {
			t.Fatal(err)
		}
	}

	var events []scan.ProgressEvent
	settings := config.DefaultSettings()
	settings.MaxConcurrentCopies = 1
	c := NewConverter(settings, func(e scan.ProgressEvent) { events = append(events, e) }, nil)

	if err := c.Convert(context.Background(), out, root); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	for _, path := range []string{
		"images/test/chair_0000.png",
		"depth/test/chair_0000.exr",
		"seg/train/table_0000.exr",
		"normals/train/chair_0001.exr",
	} {
		if _, err := os.Stat(filepath.Join(root, path)); err != nil {
			t.Errorf("expected %s: %v", path, err)
		}
	}

	seg, _ := os.ReadFile(filepath.Join(root, "seg", "train", "table_0000.exr"))
	if string(seg) != "table_0000seg" {
		t.Errorf("seg content = %q, want albedo output", seg)
	}

	label, err := os.ReadFile(filepath.Join(root, "labels", "test", "chair_0000.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(label), "0 0.500000 0.750000 0.500000 0.500000"; got != want {
		t.Errorf("label = %q, want %q", got, want)
	}
	label, _ = os.ReadFile(filepath.Join(root, "labels", "train", "table_0000.txt"))
	if got, want := string(label), "1 0.250000 0.750000 0.500000 0.500000"; got != want {
		t.Errorf("label = %q, want %q", got, want)
	}

	a, err := ReadAnnotation(filepath.Join(root, "annotations", "train", "table_0000.json"))
	if err != nil {
		t.Fatal(err)
	}
	if a.Label != "table" {
		t.Errorf("copied annotation label = %q, want table", a.Label)
	}

	// A second run rewrites the indexes instead of appending to them.
	if err := c.Convert(context.Background(), out, root); err != nil {
		t.Fatalf("second Convert() error = %v", err)
	}
	for index, want := range map[string][]string{
		ClassIndex: {"chair", "table"},
		TrainIndex: {"chair_0001.json", "table_0000.json"},
		TestIndex:  {"chair_0000.json"},
	} {
		got, err := readIndex(filepath.Join(root, index))
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", index, diff)
		}
	}

	converted, total := c.GetProgress()
	if converted != 3 || total != 3 {
		t.Errorf("progress = %d/%d", converted, total)
	}
	if last := events[len(events)-1]; last.Level != scan.LevelSuccess {
		t.Errorf("last event = %+v, want success", last)
	}
}

func TestConverter_UnknownClass(t *testing.T) {
	out := t.TempDir()
	writeFrame(t, out, "lamp_0000", "lamp", BBox{0, 1, 0, 1})
	for _, row := range [][2]string{{ClassIndex, "chair"}, {TrainIndex, "lamp_0000.json"}} {
		if err := AppendIndex(filepath.Join(out, row[0]), row[1]); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(out, TestIndex), nil, 0644); err != nil {
		t.Fatal(err)
	}

	c := NewConverter(config.DefaultSettings(), nil, nil)
	err := c.Convert(context.Background(), out, t.TempDir())
	if !errors.Is(err, ErrUnknownClass) {
		t.Errorf("Convert() error = %v, want ErrUnknownClass", err)
	}
}

func TestConverter_ZeroCopyLimit(t *testing.T) {
	out := t.TempDir()
	writeFrame(t, out, "chair_0000", "chair", BBox{0, 1, 0, 1})
	for _, row := range [][2]string{{ClassIndex, "chair"}, {TrainIndex, "chair_0000.json"}} {
		if err := AppendIndex(filepath.Join(out, row[0]), row[1]); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(out, TestIndex), nil, 0644); err != nil {
		t.Fatal(err)
	}

	root := t.TempDir()
	c := NewConverter(&config.Settings{}, nil, nil)
	if err := c.Convert(context.Background(), out, root); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "labels", "train", "chair_0000.txt")); err != nil {
		t.Errorf("expected label: %v", err)
	}
}

func TestConverter_MissingIndex(t *testing.T) {
	c := NewConverter(config.DefaultSettings(), nil, nil)
	if err := c.Convert(context.Background(), t.TempDir(), t.TempDir()); err == nil {
		t.Error("expected error for missing class index")
	}
}

func TestStereoSplit(t *testing.T) {
	data := t.TempDir()
	root := filepath.Join(t.TempDir(), "stereo")

	for _, frame := range []string{"f0", "f1", "f2", "f3"} {
		for _, suffix := range []string{"_stereo_L.png", "_stereo_R.png", "_depth_L.exr", "_depth_R.exr"} {
			if err := os.WriteFile(filepath.Join(data, frame+suffix), nil, 0644); err != nil {
				t.Fatal(err)
			}
		}
	}
	// Unpaired left image.
	if err := os.WriteFile(filepath.Join(data, "f4_stereo_L.png"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	train, test, err := StereoSplit(context.Background(), data, root, 3, 4)
	if err != nil {
		t.Fatalf("StereoSplit() error = %v", err)
	}

	pair := func(f string) StereoPair {
		return StereoPair{
			ImageL: f + "_stereo_L.png",
			ImageR: f + "_stereo_R.png",
			DepthL: f + "_depth_L.exr",
			DepthR: f + "_depth_R.exr",
		}
	}
	if diff := cmp.Diff([]StereoPair{pair("f0"), pair("f3")}, test); diff != "" {
		t.Errorf("test mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]StereoPair{pair("f1"), pair("f2")}, train); diff != "" {
		t.Errorf("train mismatch (-want +got):\n%s", diff)
	}

	raw, err := os.ReadFile(filepath.Join(root, "train.json"))
	if err != nil {
		t.Fatal(err)
	}
	var written []StereoPair
	if err := json.Unmarshal(raw, &written); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(train, written); diff != "" {
		t.Errorf("train.json mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(root, "f2_depth_R.exr")); err != nil {
		t.Errorf("expected copied depth: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "f4_stereo_L.png")); !os.IsNotExist(err) {
		t.Error("unpaired file should not be copied")
	}
}

func TestStereoSplit_InvalidStep(t *testing.T) {
	if _, _, err := StereoSplit(context.Background(), t.TempDir(), t.TempDir(), 0, 1); err == nil {
		t.Error("expected error for step 0")
	}
}
