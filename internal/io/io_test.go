package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if path != "" {
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return buf.Bytes()
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Wood: Oak/Ash", "Wood_ Oak_Ash"},
		{"Brick...", "Brick"},
		{"Name   with  spaces ", "Name with spaces"},
		{"Plain_2K", "Plain_2K"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "nested", "out", "dst.txt")

	if err := os.WriteFile(src, []byte("render"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := CopyFile(context.Background(), src, dst); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "render" {
		t.Errorf("copied content = %q", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := CopyFile(ctx, src, dst); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestImageService_Dimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Wood_COL_2K.png")
	writePNG(t, path, 64, 32)

	w, h, err := NewImageService().Dimensions(path)
	if err != nil {
		t.Fatalf("Dimensions() error = %v", err)
	}
	if w != 64 || h != 32 {
		t.Errorf("Dimensions() = %dx%d, want 64x32", w, h)
	}

	if _, _, err := NewImageService().Dimensions(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestImageService_ResizeImage(t *testing.T) {
	data := writePNG(t, "", 400, 200)

	out, err := NewImageService().ResizeImage(context.Background(), data, 100, 100)
	if err != nil {
		t.Fatalf("ResizeImage() error = %v", err)
	}

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not JPEG: %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 50 {
		t.Errorf("resized to %dx%d, want 100x50", cfg.Width, cfg.Height)
	}
}

func TestImageService_PreviewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Wood_sphere.png")
	writePNG(t, path, 20, 40)

	out, err := NewImageService().PreviewFile(context.Background(), path, 10)
	if err != nil {
		t.Fatalf("PreviewFile() error = %v", err)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 5 || cfg.Height != 10 {
		t.Errorf("preview is %dx%d, want 5x10", cfg.Width, cfg.Height)
	}
}
