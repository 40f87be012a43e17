package model

import "path/filepath"

// SizeHires is the resolution tag used by sets that ship a single
// high-resolution variant instead of numbered sizes.
const SizeHires = "HIRES"

// TextureFile is one texture image of a material set together with the
// attributes derived from its name.
//
// TextureFile values are produced by naming.ParseTextureFile and are never
// modified afterwards.
//
// Example:
//
//	tf := naming.ParseTextureFile("/tex/Wood_COLOR_VAR2_4K.jpg")
//	// tf.Size = "4K", tf.SizeValue = 4, tf.Variant = 2
type TextureFile struct {
	// Path is the full path to the file as listed.
	Path string

	// Name is the basename of Path.
	Name string

	// Size is the resolution tag, e.g. "2K" or "HIRES". Empty when absent.
	Size string

	// SizeValue is the numeric part of a "<N>K" tag, or 0.
	SizeValue int

	// SixteenBit is true when a pass token carries the "16" suffix.
	SixteenBit bool

	// Variant is the N of a VAR<N> marker, or 0 when the file has none.
	Variant int

	// Workflow is set when the name ends in a METALNESS or SPECULAR
	// workflow marker; empty otherwise.
	Workflow Workflow
}

// Dir returns the directory containing the file.
func (t TextureFile) Dir() string {
	return filepath.Dir(t.Path)
}

// HasVariant reports whether the file carries a VAR<N> marker.
func (t TextureFile) HasVariant() bool {
	return t.Variant > 0
}
