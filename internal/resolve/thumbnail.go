package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/handiism/pbrset/internal/model"
	"github.com/handiism/pbrset/internal/naming"
)

// Thumbnail kinds shipped by texture vendors as preview renders.
const (
	ThumbnailSphere = "sphere"
	ThumbnailFlat   = "flat"
	ThumbnailCube   = "cube"
)

// previewFolders are folder names, compared case-insensitively, that hold
// preview renders next to the texture folders.
var previewFolders = []string{"previews", "preview", "thumbnail", "icon"}

// ValidThumbnailKind reports whether kind is sphere, flat or cube.
func ValidThumbnailKind(kind string) bool {
	switch kind {
	case ThumbnailSphere, ThumbnailFlat, ThumbnailCube:
		return true
	}
	return false
}

// FindThumbnail returns the best preview image for set.
//
// The set directory is searched first, then any previews/preview/thumbnail/
// icon folder beside the set directory or one level further up. A file
// matches when its name contains the set name without size followed by a
// separator and kind, e.g. "Wood_sphere.png" for set "Wood_2K". When no
// render is found the THUMBNAIL, ALPHAMASKED or COLOR pass is used, in
// that order. An empty string means nothing usable exists.
//
// Returns an error for an unknown kind or an unparsable set path.
func FindThumbnail(set *model.MaterialSet, kind string) (string, error) {
	if !ValidThumbnailKind(kind) {
		return "", fmt.Errorf("invalid thumbnail type %q", kind)
	}

	prefix, _, err := naming.SplitSetPath(set.SetPath)
	if err != nil {
		return "", err
	}

	pattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(filepath.Base(prefix)) + `[-_ .]` + kind)
	if err != nil {
		return "", fmt.Errorf("compile thumbnail pattern: %w", err)
	}

	for _, folder := range thumbnailFolders(set.Dir, filepath.Dir(prefix)) {
		if match := firstMatchingFile(folder, pattern); match != "" {
			return match, nil
		}
	}

	for _, slot := range []model.PassSlot{model.PassThumbnail, model.PassAlphaMasked, model.PassColor} {
		if path, ok := set.Passes.Get(slot); ok {
			return path, nil
		}
	}
	return "", nil
}

func thumbnailFolders(setDir, prefixDir string) []string {
	folders := []string{prefixDir}
	if setDir != "" && setDir != prefixDir {
		folders = append([]string{setDir}, folders...)
	}

	parent := filepath.Dir(prefixDir)
	folders = append(folders, previewSubfolders(parent)...)
	if grandparent := filepath.Dir(parent); grandparent != parent {
		folders = append(folders, previewSubfolders(grandparent)...)
	}
	return folders
}

func previewSubfolders(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var folders []string
	for _, entry := range entries {
		if entry.IsDir() && slices.Contains(previewFolders, strings.ToLower(entry.Name())) {
			folders = append(folders, filepath.Join(dir, entry.Name()))
		}
	}
	return folders
}

func firstMatchingFile(dir string, pattern *regexp.Regexp) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if !entry.IsDir() && pattern.MatchString(entry.Name()) {
			return filepath.Join(dir, entry.Name())
		}
	}
	return ""
}
