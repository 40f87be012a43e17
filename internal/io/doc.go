// Package ioutils provides file system and image utilities for texture
// libraries.
//
// This package contains functions for:
//   - File copying and writing
//   - Filename sanitization for cross-platform compatibility
//   - Directory creation
//   - Reading texture dimensions
//   - Image resizing and format conversion for previews
//
// # File Operations
//
//	// Copy a render into a dataset split
//	err := ioutils.CopyFile(ctx, "/renders/0001_render.png", "/out/images/train/0001.png")
//
//	// Write data to file
//	err := ioutils.WriteFile(ctx, "/out/labels/train/0001.txt", []byte("0 0.5 0.5 0.2 0.2\n"))
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/out/images/train")
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("Wood: Oak/Ash") // Returns "Wood_ Oak_Ash"
//
// # Image Processing
//
// The ImageService reads texture sizes and builds preview images. PNG,
// JPEG, BMP, TIFF and WebP inputs are supported:
//
//	svc := ioutils.NewImageService()
//
//	// Size of a texture without decoding its pixels
//	w, h, _ := svc.Dimensions("/tex/Wood_COL_2K.jpg")
//
//	// Resize to fit within 256x256 as JPEG
//	preview, _ := svc.ResizeImage(ctx, data, 256, 256)
package ioutils
