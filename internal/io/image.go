package ioutils

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"os"

	_ "golang.org/x/image/bmp" // BMP decoder registration
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ImageService reads and converts texture images.
//
// ImageService is used to:
//   - Read texture dimensions for UV aspect conforming
//   - Resize preview renders to fit maximum dimensions and encode them as JPEG
//
// Example usage:
//
//	svc := NewImageService()
//
//	w, h, err := svc.Dimensions("/tex/Wood_COL_2K.jpg")
//
//	// Resize to max 256x256 and write a JPEG preview
//	preview, _ := svc.PreviewFile(ctx, "/tex/previews/Wood_sphere.png", 256)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Dimensions returns the pixel width and height of an image file. Only the
// header is decoded.
//
// Example:
//
//	w, h, err := svc.Dimensions("/tex/Wood_COL_2K.jpg") // 2048, 2048
func (s *ImageService) Dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// ResizeImage resizes an image to fit within the specified maximum dimensions.
//
// The aspect ratio is preserved. If the image is already smaller than the
// maximum dimensions, it will still be processed (re-encoded as JPEG).
//
// Parameters:
//   - ctx: Checked before decoding
//   - data: Original image data (JPEG, PNG, BMP, TIFF, WebP)
//   - maxWidth: Maximum width in pixels
//   - maxHeight: Maximum height in pixels
//
// Returns the resized image as JPEG-encoded bytes.
//
// The Catmull-Rom algorithm is used for high-quality resizing.
//
// Example:
//
//	// A 4096x2048 texture becomes 256x128
//	resized, err := svc.ResizeImage(ctx, imageData, 256, 256)
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			// Height is the limiting factor
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			// Width is the limiting factor
			height = int(float64(maxWidth) / ratio)
			width = maxWidth
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// PreviewFile reads an image file and returns a JPEG preview that fits in
// a maxSize square.
func (s *ImageService) PreviewFile(ctx context.Context, path string, maxSize int) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	preview, err := s.ResizeImage(ctx, data, maxSize, maxSize)
	if err != nil {
		return nil, fmt.Errorf("preview %s: %w", path, err)
	}
	return preview, nil
}
