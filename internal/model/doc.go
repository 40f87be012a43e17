// Package model defines the core data structures shared by the pbrset
// packages.
//
// # Pass Slots
//
// PassSlot enumerates the canonical texture roles of a PBR material
// (COLOR, NORMAL, ROUGHNESS, ...). Filenames often use shorter spellings;
// LookupPass resolves them through a static alias table:
//
//	slot, _ := model.LookupPass("NRM")     // model.PassNormal
//	slot, _ = model.LookupPass("normals")  // model.PassNormal
//
// LooseNames returns every spelling in the fixed order used when matching
// filenames.
//
// # Texture Files
//
// TextureFile holds one filename plus its derived attributes: resolution
// tag, 16-bit flag, variant number and workflow marker.
//
// # Material Sets
//
// MaterialSet is the immutable result of resolving one set path:
//
//	set.Workflow  // model.WorkflowMetalness
//	set.Size      // "2K"
//	set.Passes    // model.Passes{model.PassColor: "/tex/Wood_COLOR_2K.jpg", ...}
//	set.Status    // advisory messages, e.g. missing critical passes
package model
