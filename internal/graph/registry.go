package graph

import "fmt"

// NodeType describes one shader node type: its host identifier, the short
// kind used by the host API, and the names of its input and output sockets
// by index.
type NodeType struct {
	ID      string   `json:"type_id"`
	Kind    string   `json:"type"`
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
}

// HasInput reports whether index addresses an input socket.
func (t NodeType) HasInput(index int) bool {
	return index >= 0 && index < len(t.Inputs)
}

// HasOutput reports whether index addresses an output socket.
func (t NodeType) HasOutput(index int) bool {
	return index >= 0 && index < len(t.Outputs)
}

var principledInputs = []string{
	"Base Color", "Subsurface", "Subsurface Radius", "Subsurface Color",
	"Metallic", "Specular", "Specular Tint", "Roughness",
	"Anisotropic", "Anisotropic Rotation", "Sheen", "Sheen Tint",
	"Clearcoat", "Clearcoat Roughness", "IOR", "Transmission",
	"Transmission Roughness", "Normal", "Clearcoat Normal", "Tangent",
}

// Principled BSDF input indexes addressed by the builder.
const (
	principledBaseColor  = 0
	principledSubsurface = 1
	principledRoughness  = 7
	principledNormal     = 17
)

var nodeTypes = map[string]NodeType{
	"ShaderNodeMapping": {
		Kind:    "MAPPING",
		Inputs:  []string{"Vector"},
		Outputs: []string{"Vector"},
	},
	"ShaderNodeTexCoord": {
		Kind:    "TEX_COORD",
		Outputs: []string{"Generated", "Normal", "UV", "Object", "Camera", "Window", "Reflection"},
	},
	"ShaderNodeOutputMaterial": {
		Kind:   "OUTPUT_MATERIAL",
		Inputs: []string{"Surface", "Volume", "Displacement"},
	},
	"ShaderNodeBsdfPrincipled": {
		Kind:    "BSDF_PRINCIPLED",
		Inputs:  principledInputs,
		Outputs: []string{"BSDF"},
	},
	"ShaderNodeTexImage": {
		Kind:    "TEX_IMAGE",
		Inputs:  []string{"Vector"},
		Outputs: []string{"Color", "Alpha"},
	},
	"ShaderNodeMixRGB": {
		Kind:    "MIX_RGB",
		Inputs:  []string{"Fac", "Color1", "Color2"},
		Outputs: []string{"Color"},
	},
	"ShaderNodeInvert": {
		Kind:    "INVERT",
		Inputs:  []string{"Fac", "Color"},
		Outputs: []string{"Color"},
	},
	"ShaderNodeNormalMap": {
		Kind:    "NORMAL_MAP",
		Inputs:  []string{"Strength", "Color"},
		Outputs: []string{"Normal"},
	},
	"ShaderNodeBump": {
		Kind:    "BUMP",
		Inputs:  []string{"Strength", "Distance", "Height", "Normal"},
		Outputs: []string{"Normal"},
	},
	"ShaderNodeMixShader": {
		Kind:    "MIX_SHADER",
		Inputs:  []string{"Fac", "Shader", "Shader"},
		Outputs: []string{"Shader"},
	},
	"ShaderNodeBsdfTransparent": {
		Kind:    "TRANSPARENT",
		Inputs:  []string{"Color"},
		Outputs: []string{"BSDF"},
	},
}

// LookupNodeType returns the registered type for a host identifier such as
// "ShaderNodeTexImage".
//
// Returns ErrUnknownNodeType when the identifier is not registered.
func LookupNodeType(id string) (NodeType, error) {
	t, ok := nodeTypes[id]
	if !ok {
		return NodeType{}, fmt.Errorf("%w: %q", ErrUnknownNodeType, id)
	}
	t.ID = id
	return t, nil
}
