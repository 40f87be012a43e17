package model

import (
	"fmt"
	"strings"
)

// PassSlot identifies one canonical texture role of a PBR material.
//
// Every texture file of a material set is assigned to at most one slot.
// Vendor naming conventions use several spellings for the same role
// (COL, COLOR); those spellings are aliases that resolve to the same slot
// through a static lookup table, see LookupPass.
type PassSlot int

const (
	// PassColor is the base color (albedo/diffuse) map.
	PassColor PassSlot = iota

	// PassDisplacement is the height map used for bump or true displacement.
	PassDisplacement

	// PassGloss is the glossiness map of the specular workflow.
	PassGloss

	// PassNormal is the tangent-space normal map.
	PassNormal

	// PassReflection is the specular reflection map.
	PassReflection

	// PassMetalness is the metalness map of the metalness workflow.
	PassMetalness

	// PassRoughness is the roughness map of the metalness workflow.
	PassRoughness

	// PassAO is the ambient occlusion map.
	PassAO

	// PassSSS is the subsurface scattering color map.
	PassSSS

	// PassAlphaMasked is a full color map carrying an alpha channel.
	PassAlphaMasked

	// PassAlpha is a black and white opacity mask.
	PassAlpha

	// PassTransmission is the transmission map.
	PassTransmission

	// PassDirt is a dirt overlay. Recognised but not used by the node graph.
	PassDirt

	// PassThumbnail is a preview render shipped alongside the set.
	PassThumbnail

	numPassSlots
)

var passNames = [numPassSlots]string{
	PassColor:        "COLOR",
	PassDisplacement: "DISPLACEMENT",
	PassGloss:        "GLOSS",
	PassNormal:       "NORMAL",
	PassReflection:   "REFLECTION",
	PassMetalness:    "METALNESS",
	PassRoughness:    "ROUGHNESS",
	PassAO:           "AO",
	PassSSS:          "SSS",
	PassAlphaMasked:  "ALPHAMASKED",
	PassAlpha:        "ALPHA",
	PassTransmission: "TRANSMISSION",
	PassDirt:         "DIRT",
	PassThumbnail:    "THUMBNAIL",
}

// passDisplayNames are the human readable names used in status messages.
var passDisplayNames = [numPassSlots]string{
	PassColor:        "Color",
	PassDisplacement: "Displacement",
	PassGloss:        "Gloss",
	PassNormal:       "Normal",
	PassReflection:   "Reflection",
	PassMetalness:    "Metalness",
	PassRoughness:    "Roughness",
	PassAO:           "AO",
	PassSSS:          "SSS",
	PassAlphaMasked:  "Alpha Masked",
	PassAlpha:        "Alpha",
	PassTransmission: "Transmission",
	PassDirt:         "Dirt",
	PassThumbnail:    "Thumbnail",
}

// passAliases lists the alternative spellings of each slot, in matching order.
var passAliases = [numPassSlots][]string{
	PassColor:        {"COL"},
	PassDisplacement: {"DISP"},
	PassNormal:       {"NRM", "NORMALS"},
	PassReflection:   {"REFL"},
	PassMetalness:    {"METAL"},
	PassAlpha:        {"MASK"},
	PassThumbnail:    {"THUMB", "PREVIEW", "ICON"},
}

var lookupTable = func() map[string]PassSlot {
	table := make(map[string]PassSlot)
	for slot := PassSlot(0); slot < numPassSlots; slot++ {
		table[passNames[slot]] = slot
		for _, alias := range passAliases[slot] {
			table[alias] = slot
		}
	}
	return table
}()

// String returns the canonical upper-case pass name, e.g. "COLOR".
func (p PassSlot) String() string {
	if p < 0 || p >= numPassSlots {
		return fmt.Sprintf("PassSlot(%d)", int(p))
	}
	return passNames[p]
}

// DisplayName returns the name used in status messages, e.g. "Color".
func (p PassSlot) DisplayName() string {
	if p < 0 || p >= numPassSlots {
		return p.String()
	}
	return passDisplayNames[p]
}

// Valid reports whether p is one of the defined slots.
func (p PassSlot) Valid() bool {
	return p >= 0 && p < numPassSlots
}

// MarshalText implements encoding.TextMarshaler so slots serialize by name.
func (p PassSlot) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid pass slot %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Aliases are accepted.
func (p *PassSlot) UnmarshalText(text []byte) error {
	slot, ok := LookupPass(string(text))
	if !ok {
		return fmt.Errorf("unknown pass name %q", string(text))
	}
	*p = slot
	return nil
}

// LookupPass resolves a canonical pass name or alias, case-insensitively.
//
// Example:
//
//	slot, ok := LookupPass("nrm") // PassNormal, true
func LookupPass(name string) (PassSlot, bool) {
	slot, ok := lookupTable[strings.ToUpper(name)]
	return slot, ok
}

// AllPassSlots returns every slot in enumeration order.
func AllPassSlots() []PassSlot {
	slots := make([]PassSlot, numPassSlots)
	for i := range slots {
		slots[i] = PassSlot(i)
	}
	return slots
}

// LooseName is one spelling that may appear in a texture filename together
// with the slot it resolves to.
type LooseName struct {
	Name string
	Slot PassSlot
}

// LooseNames returns every canonical name and alias in the fixed order used
// for filename matching: slots in enumeration order, each canonical name
// followed by its aliases.
func LooseNames() []LooseName {
	names := make([]LooseName, 0, len(lookupTable))
	for slot := PassSlot(0); slot < numPassSlots; slot++ {
		names = append(names, LooseName{Name: passNames[slot], Slot: slot})
		for _, alias := range passAliases[slot] {
			names = append(names, LooseName{Name: alias, Slot: slot})
		}
	}
	return names
}

// Workflow is the PBR parameterization family of a material set.
type Workflow string

const (
	// WorkflowMetalness is the metalness/roughness workflow.
	WorkflowMetalness Workflow = "METALNESS"

	// WorkflowSpecular is the specular/glossiness workflow.
	WorkflowSpecular Workflow = "SPECULAR"

	// WorkflowDielectric is the default for sets without workflow markers.
	WorkflowDielectric Workflow = "DIELECTRIC"
)

// Valid reports whether w is one of the three known workflows.
func (w Workflow) Valid() bool {
	switch w {
	case WorkflowMetalness, WorkflowSpecular, WorkflowDielectric:
		return true
	}
	return false
}
