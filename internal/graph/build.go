package graph

import (
	"errors"
	"fmt"

	"github.com/handiism/pbrset/internal/model"
	"go.uber.org/zap"
)

// Node names of the cycles_principled template that the builder edits.
const (
	nodeMapping     = "Mapping"
	nodeTexCoord    = "Texture Coordinate"
	nodeOutput      = "Material Output"
	nodePrincipled  = "Principled BSDF"
	nodeAOMultiply  = "AO + COLOR (Multiply)"
	nodeInvert      = "Invert"
	nodeNormalMap   = "Normal Map"
	nodeBump        = "Bump"
	nodeAlphaMix    = "ALPHA MIX"
	nodeTransparent = "Transparent BSDF"
)

// Mapping modes.
const (
	MappingUV   = "uv_standard"
	MappingFlat = "flat_standard"
	MappingBox  = "box_standard"
)

// ImageSizer reports the pixel dimensions of an image file.
type ImageSizer interface {
	Dimensions(path string) (width, height int, err error)
}

// Options controls optional parts of the graph.
type Options struct {
	// Engine selects the bundled template. Empty means cycles_principled.
	Engine string

	// Mapping is one of MappingUV, MappingFlat or MappingBox.
	Mapping string

	// ConformUV scales the mapping node to the color image aspect ratio.
	// Requires Sizer.
	ConformUV bool

	// MicroDisp switches the material to true displacement and mutes the
	// normal map chain.
	MicroDisp bool

	// ExperimentalDisplacement sets the displacement method to TRUE, for
	// hosts running an experimental feature set.
	ExperimentalDisplacement bool

	// Sizer reads image dimensions for ConformUV.
	Sizer ImageSizer

	// Logger receives diagnostics. Nil discards them.
	Logger *zap.Logger
}

// DefaultOptions returns UV mapping with aspect conforming enabled.
func DefaultOptions() Options {
	return Options{
		Engine:    EngineCyclesPrincipled,
		Mapping:   MappingUV,
		ConformUV: true,
	}
}

// MaterialName returns the material name for a set under the given
// mapping mode: the set name, suffixed with "_flat" or "_box" for the
// projected mappings.
func MaterialName(set *model.MaterialSet, mapping string) string {
	switch mapping {
	case MappingBox:
		return set.Name() + "_box"
	case MappingFlat:
		return set.Name() + "_flat"
	}
	return set.Name()
}

// Build produces the shader graph for a resolved material set.
//
// The template is instantiated, images are assigned to the texture nodes
// and nodes for absent passes are muted, then the graph is reshaped for
// the workflow and the passes that are present. Every structural edit is
// returned as an EditResult in the order it was applied.
//
// Build does not stop at a failed edit. When any edit failed, the graph is
// still returned together with an error joining every failure, each of
// them an *EditError.
//
// Example:
//
//	g, edits, err := graph.Build(set, graph.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	data, _ := json.MarshalIndent(g, "", "  ")
func Build(set *model.MaterialSet, opts Options) (*Graph, []EditResult, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Engine == "" {
		opts.Engine = EngineCyclesPrincipled
	}
	if opts.Mapping == "" {
		opts.Mapping = MappingUV
	}

	tmpl, err := LoadTemplate(opts.Engine)
	if err != nil {
		return nil, nil, err
	}
	g, err := tmpl.Instantiate(MaterialName(set, opts.Mapping))
	if err != nil {
		return nil, nil, err
	}

	b := &builder{g: g, set: set, opts: opts, log: log}
	b.run()

	var errs []error
	for _, r := range b.results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	if len(errs) > 0 {
		return g, b.results, fmt.Errorf("build material %s: %w", g.Material, errors.Join(errs...))
	}
	return g, b.results, nil
}

type builder struct {
	g       *Graph
	set     *model.MaterialSet
	opts    Options
	log     *zap.Logger
	results []EditResult
}

func (b *builder) record(op, node string, err error) {
	if err != nil {
		b.log.Warn("graph edit failed", zap.String("op", op), zap.String("node", node), zap.Error(err))
	}
	b.results = append(b.results, EditResult{Op: op, Node: node, Err: err})
}

func (b *builder) remove(name string) {
	b.record("remove", name, b.g.RemoveNode(name))
}

func (b *builder) link(from string, fromSocket int, to string, toSocket int) {
	b.record("link", from+" -> "+to, b.g.Link(from, fromSocket, to, toSocket))
}

func (b *builder) has(slot model.PassSlot) bool {
	return b.set.Passes.Has(slot)
}

func (b *builder) run() {
	b.applyMapping()
	b.assignImages()

	b.record("property", nodeMapping, b.g.SetProperty(nodeMapping, "main_map", true))
	b.g.Settings.SampleAsLight = false

	if b.has(model.PassColor) || b.has(model.PassAlphaMasked) {
		b.record("activate", model.PassColor.String(), b.g.SetActive(model.PassColor.String()))
	}

	if b.has(model.PassSSS) {
		b.record("default", nodePrincipled, b.g.SetDefault(nodePrincipled, principledSubsurface, 0.005))
	} else {
		b.remove(model.PassSSS.String())
	}

	if b.set.Workflow == model.WorkflowMetalness {
		b.remove(model.PassReflection.String())
		b.remove(model.PassGloss.String())
		b.remove(nodeInvert)
		b.link(model.PassRoughness.String(), 0, nodePrincipled, principledRoughness)
	} else {
		b.remove(model.PassMetalness.String())
		b.remove(model.PassRoughness.String())
	}

	if b.opts.ConformUV {
		b.conformUV()
	}

	b.applyAlpha()

	if !b.has(model.PassTransmission) {
		b.remove(model.PassTransmission.String())
	}

	if b.opts.ExperimentalDisplacement {
		b.g.Settings.DisplacementMethod = "TRUE"
	}

	if !b.has(model.PassAO) {
		b.remove(model.PassAO.String())
		b.remove(nodeAOMultiply)
		b.link(model.PassColor.String(), 0, nodePrincipled, principledBaseColor)
	}

	if !b.has(model.PassDisplacement) {
		b.remove(model.PassDisplacement.String())
		b.remove(nodeBump)
		b.link(nodeNormalMap, 0, nodePrincipled, principledNormal)
	}

	if b.opts.MicroDisp {
		b.g.Settings.DisplacementMethod = "TRUE"
		b.g.Settings.UseMicroDisplacements = true
		b.record("mute", model.PassNormal.String(), b.g.Mute(model.PassNormal.String()))
		b.record("mute", nodeNormalMap, b.g.Mute(nodeNormalMap))
	}
}

// applyMapping switches the texture coordinate source for projected
// mappings. UV mapping keeps the template links.
func (b *builder) applyMapping() {
	switch b.opts.Mapping {
	case MappingFlat, MappingBox:
		b.link(nodeTexCoord, 0, nodeMapping, 0)
	}
}

// assignImages loads every resolved pass into the image node of the same
// name. ALPHAMASKED has no node of its own and replaces the COLOR image.
// Image nodes of absent passes are muted.
func (b *builder) assignImages() {
	colorNode := model.PassColor.String()
	masked, hasMasked := b.set.Passes.Get(model.PassAlphaMasked)

	for _, slot := range model.AllPassSlots() {
		name := slot.String()
		if slot == model.PassAlphaMasked {
			if hasMasked {
				b.record("image", colorNode, b.g.SetImage(colorNode, masked))
			}
			continue
		}
		if !b.g.Has(name) {
			b.log.Debug("image node not present in material", zap.String("pass", name))
			continue
		}

		path, ok := b.set.Passes.Get(slot)
		switch {
		case slot == model.PassColor && hasMasked:
			// ALPHAMASKED is assigned to this node instead.
		case ok:
			b.record("image", name, b.g.SetImage(name, path))
		default:
			b.log.Debug("image pass not set", zap.String("pass", name))
			b.record("mute", name, b.g.Mute(name))
		}

		if b.opts.Mapping == MappingBox {
			b.record("property", name, b.g.SetProperty(name, "projection", "BOX"))
			b.record("property", name, b.g.SetProperty(name, "projection_blend", 0.3))
		}
	}
}

// conformUV sets the mapping x scale to height/width of the color image,
// or the normal image when there is no color image.
func (b *builder) conformUV() {
	var path string
	for _, name := range []string{model.PassColor.String(), model.PassNormal.String()} {
		if n, err := b.g.Node(name); err == nil && n.Image != "" {
			path = n.Image
			break
		}
	}
	if path == "" || b.opts.Sizer == nil {
		b.log.Debug("no color or normal image, could not conform to UV")
		return
	}

	w, h, err := b.opts.Sizer.Dimensions(path)
	if err != nil || w <= 0 || h <= 0 {
		b.log.Debug("could not read image size for UV conform", zap.String("image", path), zap.Error(err))
		return
	}

	scale := []float64{float64(h) / float64(w), 1, 1}
	b.record("property", nodeMapping, b.g.SetProperty(nodeMapping, "scale", scale))
}

// applyAlpha wires transparency. Without any alpha pass the transparency
// nodes are dropped. ALPHAMASKED feeds the mix from the color alpha
// output; a separate ALPHA pass feeds it from its own node.
func (b *builder) applyAlpha() {
	alpha := model.PassAlpha.String()
	hasMasked := b.has(model.PassAlphaMasked)
	hasAlpha := b.has(model.PassAlpha)

	switch {
	case !hasMasked && !hasAlpha:
		b.remove(alpha)
		b.remove(nodeAlphaMix)
		b.remove(nodeTransparent)
		return
	case hasMasked:
		b.remove(alpha)
	}

	if hasMasked {
		b.link(model.PassColor.String(), 1, nodeAlphaMix, 0)
	} else {
		b.link(alpha, 0, nodeAlphaMix, 0)
	}
	b.link(nodePrincipled, 0, nodeAlphaMix, 2)
	b.link(nodeAlphaMix, 0, nodeOutput, 0)
}
