package model

import (
	"path/filepath"
	"sort"
)

// Status keys recorded by the resolver.
const (
	StatusMissingCritical = "Missing critical passes"
	StatusSpecularFound   = "Specular workflow found"
)

// Status holds advisory messages produced while resolving a set. Keys are
// stable strings (see the Status* constants); values list the details.
//
// Status never signals failure: a set with missing passes is still returned
// to the caller, who decides whether to warn.
type Status map[string][]string

// Add appends messages under key.
func (s Status) Add(key string, messages ...string) {
	s[key] = append(s[key], messages...)
}

// Has reports whether key has been recorded.
func (s Status) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Keys returns the recorded keys in sorted order.
func (s Status) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Passes maps each filled slot to the path of its winning file. Slots
// without a winner are absent.
type Passes map[PassSlot]string

// Get returns the winning path for slot and whether one exists.
func (p Passes) Get(slot PassSlot) (string, bool) {
	path, ok := p[slot]
	return path, ok && path != ""
}

// Has reports whether slot has a winning file.
func (p Passes) Has(slot PassSlot) bool {
	_, ok := p.Get(slot)
	return ok
}

// MaterialSet is the resolved result of one set path: the workflow, the
// resolution tag and the file chosen for each texture pass.
//
// A MaterialSet is built fresh for every resolve call and is not modified
// afterwards, so results can be shared between goroutines.
//
// Example:
//
//	set, err := resolve.Resolve("/textures/Wood/Wood_2K", resolve.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	color, ok := set.Passes.Get(model.PassColor)
type MaterialSet struct {
	// SetPath is the size-qualified path the set was resolved from,
	// e.g. "/textures/Wood/Wood_2K".
	SetPath string

	// SetName is the basename of SetPath, e.g. "Wood_2K".
	SetName string

	// Dir is the directory whose files were considered.
	Dir string

	// Workflow is the detected PBR workflow.
	Workflow Workflow

	// Size is the smallest resolution tag among the matched files,
	// or "HIRES", or empty when no file carried a tag.
	Size string

	// Passes maps slots to winning file paths.
	Passes Passes

	// Files lists every candidate file considered, sorted.
	Files []string

	// Unmatched lists candidate files not assigned to any pass.
	Unmatched []string

	// Status holds advisory messages such as missing critical passes.
	Status Status
}

// Name returns the material name used when the set is built into a graph.
func (m *MaterialSet) Name() string {
	return m.SetName
}

// PassFile returns the winning file for slot, or an empty string.
func (m *MaterialSet) PassFile(slot PassSlot) string {
	path, _ := m.Passes.Get(slot)
	return path
}

// FileNames returns the basenames of the winning files keyed by slot name.
// Used for compact display.
func (m *MaterialSet) FileNames() map[string]string {
	names := make(map[string]string, len(m.Passes))
	for slot, path := range m.Passes {
		if path == "" {
			continue
		}
		names[slot.String()] = filepath.Base(path)
	}
	return names
}

// MissingCritical returns the display names recorded under
// StatusMissingCritical, if any.
func (m *MaterialSet) MissingCritical() []string {
	if m.Status == nil {
		return nil
	}
	return m.Status[StatusMissingCritical]
}
