package resolve

import (
	"path/filepath"
	"slices"

	"github.com/handiism/pbrset/internal/model"
	"github.com/handiism/pbrset/internal/naming"
	"go.uber.org/zap"
)

// Assignment is the outcome of AssignPasses.
type Assignment struct {
	// Passes maps every filled slot to the full path of its winner.
	Passes model.Passes

	// Size is the smallest numeric resolution tag among all files that
	// matched a pass, including those that lost their slot, or HIRES when
	// only HIRES files matched, or empty.
	Size string

	// Unmatched lists the full paths of files that fit no pass.
	Unmatched []string
}

// AssignPasses assigns candidate files to pass slots.
//
// Files are visited in sorted order. For each file the loose pass names
// are tried in their fixed order and the first one whose token appears in
// the name claims the file, so a file fills at most one slot. When a slot
// already has a winner the tie-break rules decide between them:
//
//  1. a file whose size tag equals requestedSize beats one that does not
//  2. with UseSixteenBit, a plain (8-bit) file never replaces the winner
//  3. a VAR<N> file only replaces a winner with a larger VAR number
//  4. otherwise the later file wins
//
// Files whose trailing workflow marker contradicts workflow are rejected.
func AssignPasses(dir string, names []string, workflow model.Workflow, requestedSize string, opts Options) Assignment {
	log := opts.logger()

	sorted := slices.Clone(names)
	slices.Sort(sorted)

	winners := make(map[model.PassSlot]model.TextureFile)
	var matched []model.TextureFile
	var unmatched []string

	for _, name := range sorted {
		tf := naming.ParseTextureFile(filepath.Join(dir, name))

		if rejectsMarker(workflow, tf.Workflow) {
			log.Debug("workflow marker does not fit set, skipping",
				zap.String("file", name),
				zap.String("workflow", string(workflow)))
			unmatched = append(unmatched, tf.Path)
			continue
		}

		if !assignFile(tf, winners, workflow, requestedSize, opts, log) {
			log.Debug("no texture pass found", zap.String("file", name))
			unmatched = append(unmatched, tf.Path)
			continue
		}
		matched = append(matched, tf)
	}

	passes := make(model.Passes, len(winners))
	for slot, tf := range winners {
		passes[slot] = tf.Path
	}

	return Assignment{
		Passes:    passes,
		Size:      smallestSize(matched),
		Unmatched: unmatched,
	}
}

// assignFile tries every loose name against tf and reports whether tf
// matched a pass, regardless of whether it won the slot.
func assignFile(tf model.TextureFile, winners map[model.PassSlot]model.TextureFile, workflow model.Workflow, requestedSize string, opts Options, log *zap.Logger) bool {
	for _, ln := range model.LooseNames() {
		if ln.Slot == model.PassAO && !opts.UseAO {
			continue
		}
		if ln.Slot == model.PassDisplacement && !opts.UseDisp {
			continue
		}

		plain := naming.HasPassToken(tf.Name, ln.Name)
		if !plain && !naming.HasPassToken16(tf.Name, ln.Name) {
			continue
		}

		inc, filled := winners[ln.Slot]
		if !plain && filled && !opts.UseSixteenBit {
			continue
		}

		if ln.Slot == model.PassMetalness && !naming.IsMetalnessPass(tf.Name, ln.Name) {
			continue
		}

		if filled && !displaces(tf, inc, plain, requestedSize, opts) {
			log.Debug("keeping existing pass file",
				zap.String("pass", ln.Slot.String()),
				zap.String("kept", inc.Name),
				zap.String("candidate", tf.Name))
			return true
		}

		winners[ln.Slot] = tf
		log.Debug("assigned pass",
			zap.String("pass", ln.Slot.String()),
			zap.String("file", tf.Name))
		return true
	}
	return false
}

// displaces reports whether cand should replace the current winner inc.
func displaces(cand, inc model.TextureFile, plain bool, requestedSize string, opts Options) bool {
	if requestedSize != "" {
		candHit, incHit := cand.Size == requestedSize, inc.Size == requestedSize
		if candHit != incHit {
			return candHit
		}
	}
	if opts.UseSixteenBit && plain {
		return false
	}
	if cand.HasVariant() {
		return inc.HasVariant() && cand.Variant < inc.Variant
	}
	return true
}

func rejectsMarker(workflow, marker model.Workflow) bool {
	if workflow == model.WorkflowMetalness {
		return marker == model.WorkflowSpecular
	}
	return marker == model.WorkflowMetalness
}

func smallestSize(files []model.TextureFile) string {
	size, value, hires := "", 0, false
	for _, tf := range files {
		switch {
		case tf.SizeValue > 0:
			if value == 0 || tf.SizeValue < value {
				size, value = tf.Size, tf.SizeValue
			}
		case tf.Size == model.SizeHires:
			hires = true
		}
	}
	if size == "" && hires {
		return model.SizeHires
	}
	return size
}
