package ioutils

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	invalidNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	repeatedSpace    = regexp.MustCompile(`\s+`)
)

// CopyFile copies a file from source to destination.
//
// The destination file is created with mode 0644 if it doesn't exist,
// or truncated if it does. Missing parent directories of dst are created.
//
// Parameters:
//   - ctx: Checked before the copy starts; a cancelled context aborts it
//   - src: Source file path (must exist)
//   - dst: Destination file path (will be created/overwritten)
//
// Returns an error if:
//   - The context is already cancelled
//   - Source file cannot be opened
//   - Destination file cannot be created
//   - Copy operation fails
//
// Example:
//
//	err := CopyFile(ctx, "/renders/0001_depth.exr", "/out/depth/test/0001.exr")
func CopyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	if err := EnsureDir(filepath.Dir(dst)); err != nil {
		return err
	}

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return destFile.Close()
}

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
//
// Example:
//
//	err := WriteFile(ctx, "/out/labels/train/0001.txt", []byte("3 0.5 0.5 0.1 0.2\n"))
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("Wood: Oak/Ash")      // Returns "Wood_ Oak_Ash"
//	SanitizeFileName("Brick...")           // Returns "Brick"
func SanitizeFileName(name string) string {
	name = invalidNameChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpace.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
