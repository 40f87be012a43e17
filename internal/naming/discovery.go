package naming

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// previewSuffixes are the render kinds shipped as set previews. Files
// ending in one of them are expected not to be set members.
var previewSuffixes = []string{"sphere", "flat", "cube"}

// Discovery groups a flat list of texture files into material sets.
//
// Each file that contains a pass token is a set member. The set name is
// everything before the first pass token, qualified by the file's size
// tag, so a directory holding both 2K and 4K files yields two sets.
//
// Example usage:
//
//	disco := NewDiscovery(logger)
//	sets := disco.SetsFromFiles([]string{
//	    "/tex/Wood_COL_2K.jpg",
//	    "/tex/Wood_NRM_2K.jpg",
//	    "/tex/Wood_COL_4K.jpg",
//	})
//	// sets = []string{"/tex/Wood_2K", "/tex/Wood_4K"}
type Discovery struct {
	logger *zap.Logger
}

// NewDiscovery creates a Discovery. A nil logger discards diagnostics.
func NewDiscovery(logger *zap.Logger) *Discovery {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Discovery{logger: logger}
}

// SetsFromFiles returns the unique size-qualified set paths found among
// files, in first-seen order.
//
// Skipped files:
//   - hidden files (leading dot)
//   - files without any pass token (preview renders are skipped silently)
//   - files without a size tag
func (d *Discovery) SetsFromFiles(files []string) []string {
	var sets []string
	seen := make(map[string]bool)

	for _, file := range files {
		base := filepath.Base(file)
		dir := filepath.Dir(file)

		if strings.HasPrefix(base, ".") {
			continue
		}

		// A trailing workflow marker is not a pass, drop it together
		// with the extension before looking for pass tokens.
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		upper := strings.ToUpper(stem)
		if strings.HasSuffix(upper, "METALNESS") {
			base = stem[:len(stem)-len("METALNESS")]
		} else if strings.HasSuffix(upper, "SPECULAR") {
			base = stem[:len(stem)-len("SPECULAR")]
		}

		pos := Default.firstPassToken(base)
		if pos <= 0 {
			if !isPreview(base) {
				d.logger.Debug("skipping non-valid set member", zap.String("file", file))
			}
			continue
		}

		setname := filepath.Join(dir, base[:pos])

		if loc := lastMatch(Default.SearchSize, base); loc != nil {
			setname += base[loc[0] : loc[1]-1]
		} else if loc := lastMatch(Default.SearchHires, base); loc != nil {
			setname += base[loc[0]:loc[1]]
		} else {
			d.logger.Debug("set member missing texture size, skipping",
				zap.String("file", file),
				zap.String("setname", setname))
			continue
		}

		if !seen[setname] {
			seen[setname] = true
			sets = append(sets, setname)
		}
	}

	return sets
}

func isPreview(name string) bool {
	stem := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	for _, suffix := range previewSuffixes {
		if strings.HasSuffix(stem, suffix) {
			return true
		}
	}
	return false
}
