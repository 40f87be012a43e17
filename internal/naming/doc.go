// Package naming understands the texture file naming convention used by
// PBR material vendors:
//
//	<setname>[-_ ]<PASS>[16][-_ ]<VAR#>[-_ ]<size|HIRES>.<ext>
//
// Qualifiers may appear in any subset and order. A trailing METALNESS or
// SPECULAR before the extension marks the workflow of the whole set rather
// than a texture pass.
//
// # Parsing Filenames
//
//	tf := naming.ParseTextureFile("/tex/Wood_COL_VAR2_4K.jpg")
//	fmt.Println(tf.Size, tf.Variant) // 4K 2
//
// # Set Paths
//
// A set path is the shared filename prefix plus a size segment. It does
// not have to exist on disk:
//
//	prefix, size, err := naming.SplitSetPath("/tex/Wood_2K")
//	// prefix = "/tex/Wood", size = "2K"
//
// # Discovering Sets
//
// Discovery groups a directory listing into set paths:
//
//	sets := naming.NewDiscovery(nil).SetsFromFiles(files)
//
// All regular expressions live in Default, compiled once at start-up.
package naming
