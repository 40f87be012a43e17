package dto

import (
	"fmt"

	"github.com/handiism/pbrset/internal/model"
)

// SetRecord is the serialized form of a resolved material set used in
// reports. Passes are keyed by canonical pass name so the output is
// readable and stable.
type SetRecord struct {
	SetPath   string              `json:"setpath" yaml:"setpath"`
	SetName   string              `json:"setname" yaml:"setname"`
	Dir       string              `json:"dir" yaml:"dir"`
	Workflow  string              `json:"workflow" yaml:"workflow"`
	Size      string              `json:"size" yaml:"size"`
	Passes    map[string]string   `json:"passes" yaml:"passes"`
	Files     []string            `json:"files,omitempty" yaml:"files,omitempty"`
	Unmatched []string            `json:"unmatched,omitempty" yaml:"unmatched,omitempty"`
	Status    map[string][]string `json:"status,omitempty" yaml:"status,omitempty"`
}

// FromMaterialSet converts a MaterialSet to its report record.
func FromMaterialSet(set *model.MaterialSet) SetRecord {
	passes := make(map[string]string, len(set.Passes))
	for slot, path := range set.Passes {
		if path != "" {
			passes[slot.String()] = path
		}
	}

	var status map[string][]string
	if len(set.Status) > 0 {
		status = make(map[string][]string, len(set.Status))
		for k, v := range set.Status {
			status[k] = append([]string(nil), v...)
		}
	}

	return SetRecord{
		SetPath:   set.SetPath,
		SetName:   set.SetName,
		Dir:       set.Dir,
		Workflow:  string(set.Workflow),
		Size:      set.Size,
		Passes:    passes,
		Files:     set.Files,
		Unmatched: set.Unmatched,
		Status:    status,
	}
}

// ToMaterialSet converts a record back to a MaterialSet.
//
// Returns an error for an unknown workflow or pass name. Pass aliases such
// as "NRM" are accepted.
func (r *SetRecord) ToMaterialSet() (*model.MaterialSet, error) {
	workflow := model.Workflow(r.Workflow)
	if !workflow.Valid() {
		return nil, fmt.Errorf("set %s: unknown workflow %q", r.SetPath, r.Workflow)
	}

	passes := make(model.Passes, len(r.Passes))
	for name, path := range r.Passes {
		slot, ok := model.LookupPass(name)
		if !ok {
			return nil, fmt.Errorf("set %s: unknown pass %q", r.SetPath, name)
		}
		passes[slot] = path
	}

	status := model.Status{}
	for k, v := range r.Status {
		status.Add(k, v...)
	}

	return &model.MaterialSet{
		SetPath:   r.SetPath,
		SetName:   r.SetName,
		Dir:       r.Dir,
		Workflow:  workflow,
		Size:      r.Size,
		Passes:    passes,
		Files:     r.Files,
		Unmatched: r.Unmatched,
		Status:    status,
	}, nil
}
