package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/handiism/pbrset/internal/model"
)

// ErrInvalidSetPath is returned when a set path does not end in a
// separator-delimited size segment such as "_2K" or "-HIRES".
var ErrInvalidSetPath = errors.New("set path has no size segment")

// ParseTextureFile derives the naming attributes of a texture file.
//
// The function never fails: attributes that cannot be found are left at
// their zero value.
//
// Example:
//
//	tf := ParseTextureFile("/tex/Metal_NRM16_VAR1_2K_METALNESS.png")
//	// tf.Size = "2K", tf.SixteenBit = true, tf.Variant = 1,
//	// tf.Workflow = model.WorkflowMetalness
func ParseTextureFile(path string) model.TextureFile {
	name := filepath.Base(path)
	size, value := ParseSize(name)

	return model.TextureFile{
		Path:       path,
		Name:       name,
		Size:       size,
		SizeValue:  value,
		SixteenBit: IsSixteenBit(name),
		Variant:    ParseVariant(name),
		Workflow:   WorkflowMarker(name),
	}
}

// ParseSize returns the last resolution tag in name and its numeric value.
//
// "Wood_COL_2K.jpg" yields ("2K", 2); "Wood_COL_HIRES.jpg" yields
// ("HIRES", 0); a name without any tag yields ("", 0). A numeric tag is
// preferred over HIRES when both are present.
func ParseSize(name string) (string, int) {
	if loc := lastMatch(Default.SearchSize, name); loc != nil {
		tag := strings.ToUpper(name[loc[0]+1 : loc[1]-1])
		value, err := strconv.Atoi(tag[:len(tag)-1])
		if err == nil {
			return tag, value
		}
	}
	if lastMatch(Default.SearchHires, name) != nil {
		return model.SizeHires, 0
	}
	return "", 0
}

// ParseVariant returns the N of the first VAR<N> marker, or 0.
func ParseVariant(name string) int {
	m := Default.SearchVar.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// WorkflowMarker reports the workflow suffix of a filename:
// WorkflowMetalness for "..._METALNESS.png", WorkflowSpecular for
// "..._SPECULAR.jpg", empty otherwise.
func WorkflowMarker(name string) model.Workflow {
	switch {
	case Default.MetalWorkflow.MatchString(name):
		return model.WorkflowMetalness
	case Default.SpecWorkflow.MatchString(name):
		return model.WorkflowSpecular
	}
	return ""
}

// IsSixteenBit reports whether any pass token in name carries the 16-bit
// suffix.
func IsSixteenBit(name string) bool {
	for _, ln := range model.LooseNames() {
		if Default.HasPassToken16(name, ln.Name) {
			return true
		}
	}
	return false
}

// HasPassToken reports whether name contains pass as a plain token.
func HasPassToken(name, pass string) bool {
	return Default.HasPassToken(name, pass)
}

// HasPassToken16 reports whether name contains the 16-bit token of pass.
func HasPassToken16(name, pass string) bool {
	return Default.HasPassToken16(name, pass)
}

// IsMetalnessPass distinguishes a METALNESS texture pass from a METALNESS
// workflow marker. The workflow suffix is removed first; the file is a
// metalness pass only if the pass token is still present afterwards.
//
//	IsMetalnessPass("Iron_METALNESS_2K.png", "METALNESS")          // true
//	IsMetalnessPass("Iron_COL_2K_METALNESS.png", "METALNESS")      // false
func IsMetalnessPass(name, pass string) bool {
	stripped := Default.MetalWorkflow.ReplaceAllString(name, "")
	return Default.HasPassToken(stripped, pass) || Default.HasPassToken16(stripped, pass)
}

// SplitSetPath splits a size-qualified set path into the path prefix that
// every member file starts with and the trailing size segment.
//
//	prefix, size, _ := SplitSetPath("/tex/Wood_Floor_2K")
//	// prefix = "/tex/Wood_Floor", size = "2K"
//
// A trailing slash is ignored. Returns ErrInvalidSetPath when the last
// path element has no separator.
func SplitSetPath(setPath string) (string, string, error) {
	setPath = filepath.Clean(setPath)
	m := Default.BeforeLastSeparator.FindString(setPath)
	if m == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSetPath, setPath)
	}

	prefix := m[:len(m)-1]
	size := setPath[len(m):]
	if strings.ContainsAny(size, `/\`) || prefix == "" || strings.HasSuffix(prefix, "/") || strings.HasSuffix(prefix, `\`) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSetPath, setPath)
	}

	return prefix, size, nil
}

// SplitMaterialName splits a material name into display words.
//
// Separators, size tags and extensions are dropped, CamelCase runs and
// digit runs become separate words, and the upper-case HIRES marker is
// skipped. Lower-case runs with no leading capital are dropped.
//
//	SplitMaterialName("WoodFlooring042_4K")
//	// []string{"Wood", "Flooring", "042"}
func SplitMaterialName(name string) []string {
	parts := Default.SplitName.Split(strings.ReplaceAll(name, "HIRES", ""), -1)

	var words []string
	for _, part := range parts {
		if part == "" {
			continue
		}
		words = append(words, Default.NameWords.FindAllString(part, -1)...)
	}
	return words
}
