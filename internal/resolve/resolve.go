package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/handiism/pbrset/internal/model"
	"github.com/handiism/pbrset/internal/naming"
	"go.uber.org/zap"
)

// ErrInvalidSetPath is returned when the set path has no size segment.
var ErrInvalidSetPath = naming.ErrInvalidSetPath

// Options controls which passes are considered and how ties are broken.
//
// Example:
//
//	opts := resolve.DefaultOptions()
//	opts.UseSixteenBit = true // prefer NRM16 over NRM
//	set, err := resolve.Resolve("/tex/Wood_2K", opts)
type Options struct {
	// UseAO enables the ambient occlusion pass.
	UseAO bool

	// UseDisp enables the displacement pass.
	UseDisp bool

	// UseSixteenBit prefers 16-bit variants of a pass over 8-bit ones.
	UseSixteenBit bool

	// LegacyReflection adds Reflection to the critical passes of the
	// specular and dielectric workflows.
	LegacyReflection bool

	// Logger receives diagnostics. Nil discards them.
	Logger *zap.Logger
}

// DefaultOptions returns options with AO and displacement enabled and
// 16-bit preference disabled.
func DefaultOptions() Options {
	return Options{
		UseAO:   true,
		UseDisp: true,
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Resolve lists the files of a set and resolves workflow, size and passes.
//
// setPath is a size-qualified path such as "/tex/Wood/Wood_2K". When it
// names an existing directory, that directory is listed; otherwise its
// parent is listed and the set members are the siblings sharing the
// "Wood" prefix. Each call returns a new MaterialSet.
//
// Returns ErrInvalidSetPath when setPath has no size segment, or the
// directory listing error. An empty directory is not an error; the
// returned set then reports missing critical passes in its Status.
func Resolve(setPath string, opts Options) (*model.MaterialSet, error) {
	setPath = filepath.Clean(setPath)
	prefix, _, err := naming.SplitSetPath(setPath)
	if err != nil {
		return nil, err
	}

	dir := setPath
	if info, err := os.Stat(setPath); err != nil || !info.IsDir() {
		dir = filepath.Dir(prefix)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list set directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}

	return ResolveFiles(setPath, dir, names, opts)
}

// ResolveFiles resolves a set from an explicit directory listing.
//
// names are basenames of the files in dir. Only those starting with the
// set prefix of setPath are candidates; other names are ignored. No file
// system access is performed.
func ResolveFiles(setPath, dir string, names []string, opts Options) (*model.MaterialSet, error) {
	setPath = filepath.Clean(setPath)
	prefix, size, err := naming.SplitSetPath(setPath)
	if err != nil {
		return nil, err
	}
	log := opts.logger()

	setPresize := filepath.Base(prefix)
	var candidates []string
	for _, name := range names {
		if strings.HasPrefix(name, setPresize) {
			candidates = append(candidates, name)
		}
	}
	slices.Sort(candidates)

	log.Debug("material build parameters",
		zap.String("setname", filepath.Base(setPath)),
		zap.String("setpath", setPath),
		zap.String("size", size),
		zap.Int("candidates", len(candidates)))

	workflow, status := ClassifyWorkflow(candidates)
	log.Debug("detected workflow", zap.String("workflow", string(workflow)))

	assigned := AssignPasses(dir, candidates, workflow, strings.ToUpper(size), opts)

	missing := MissingCritical(workflow, assigned.Passes, opts.LegacyReflection)
	if len(missing) > 0 {
		status.Add(model.StatusMissingCritical, missing...)
		log.Warn("missing critical passes",
			zap.String("setpath", setPath),
			zap.Strings("passes", missing))
	}

	files := make([]string, len(candidates))
	for i, name := range candidates {
		files[i] = filepath.Join(dir, name)
	}

	return &model.MaterialSet{
		SetPath:   setPath,
		SetName:   filepath.Base(setPath),
		Dir:       dir,
		Workflow:  workflow,
		Size:      assigned.Size,
		Passes:    assigned.Passes,
		Files:     files,
		Unmatched: assigned.Unmatched,
		Status:    status,
	}, nil
}

// ClassifyWorkflow determines the workflow of a candidate list.
//
// Any name ending in a METALNESS marker makes the set METALNESS. Otherwise
// the set is SPECULAR when at least one name ends in a SPECULAR marker and
// no name is unmarked; an advisory status is recorded in that case.
// Everything else, including an empty list, is DIELECTRIC.
func ClassifyWorkflow(names []string) (model.Workflow, model.Status) {
	status := model.Status{}
	var specular, neutral int

	for _, name := range names {
		switch naming.WorkflowMarker(filepath.Base(name)) {
		case model.WorkflowMetalness:
			return model.WorkflowMetalness, status
		case model.WorkflowSpecular:
			specular++
		default:
			neutral++
		}
	}

	if specular > 0 && neutral == 0 {
		status.Add(model.StatusSpecularFound, "Download metalness workflow files instead")
		return model.WorkflowSpecular, status
	}
	return model.WorkflowDielectric, status
}

// MissingCritical returns the display names of the passes a material of
// the given workflow cannot do without.
//
// METALNESS needs Color (COLOR or ALPHAMASKED), Metalness, Normal and
// Roughness. SPECULAR and DIELECTRIC need Color, Gloss and Normal, plus
// Reflection when legacy is set.
func MissingCritical(workflow model.Workflow, passes model.Passes, legacy bool) []string {
	var missing []string
	if !passes.Has(model.PassColor) && !passes.Has(model.PassAlphaMasked) {
		missing = append(missing, model.PassColor.DisplayName())
	}

	var required []model.PassSlot
	if workflow == model.WorkflowMetalness {
		required = []model.PassSlot{model.PassMetalness, model.PassNormal, model.PassRoughness}
	} else {
		if legacy {
			required = append(required, model.PassReflection)
		}
		required = append(required, model.PassGloss, model.PassNormal)
	}

	for _, slot := range required {
		if !passes.Has(slot) {
			missing = append(missing, slot.DisplayName())
		}
	}
	return missing
}
