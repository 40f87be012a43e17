package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLookupPass(t *testing.T) {
	tests := []struct {
		input string
		want  PassSlot
		ok    bool
	}{
		{"COLOR", PassColor, true},
		{"COL", PassColor, true},
		{"col", PassColor, true},
		{"DISP", PassDisplacement, true},
		{"NRM", PassNormal, true},
		{"NORMALS", PassNormal, true},
		{"REFL", PassReflection, true},
		{"METAL", PassMetalness, true},
		{"MASK", PassAlpha, true},
		{"ALPHAMASKED", PassAlphaMasked, true},
		{"THUMB", PassThumbnail, true},
		{"SPECULAR", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := LookupPass(tt.input)
			if ok != tt.ok {
				t.Fatalf("LookupPass(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("LookupPass(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLooseNames_Order(t *testing.T) {
	names := LooseNames()

	if names[0].Name != "COLOR" || names[1].Name != "COL" {
		t.Fatalf("first loose names = %v, %v; want COLOR, COL", names[0], names[1])
	}

	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n.Name] {
			t.Errorf("duplicate loose name %q", n.Name)
		}
		seen[n.Name] = true

		slot, ok := LookupPass(n.Name)
		if !ok || slot != n.Slot {
			t.Errorf("loose name %q resolves to %v, listed as %v", n.Name, slot, n.Slot)
		}
	}

	for _, slot := range AllPassSlots() {
		if !seen[slot.String()] {
			t.Errorf("canonical name %q missing from loose names", slot)
		}
	}
}

func TestPassSlot_Strings(t *testing.T) {
	if got := PassAlphaMasked.String(); got != "ALPHAMASKED" {
		t.Errorf("String() = %q, want ALPHAMASKED", got)
	}
	if got := PassColor.DisplayName(); got != "Color" {
		t.Errorf("DisplayName() = %q, want Color", got)
	}
	if got := PassSlot(99).String(); got != "PassSlot(99)" {
		t.Errorf("String() of invalid slot = %q", got)
	}
	if len(AllPassSlots()) != 14 {
		t.Errorf("AllPassSlots() has %d slots, want 14", len(AllPassSlots()))
	}
}

func TestPasses_JSONKeys(t *testing.T) {
	passes := Passes{
		PassColor:  "/tex/Wood_COL_2K.jpg",
		PassNormal: "/tex/Wood_NRM_2K.jpg",
	}

	data, err := json.Marshal(passes)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded Passes
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if diff := cmp.Diff(passes, decoded); diff != "" {
		t.Errorf("passes mismatch (-want +got):\n%s", diff)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal raw: %v", err)
	}
	if _, ok := raw["COLOR"]; !ok {
		t.Errorf("expected COLOR key in %s", data)
	}
}

func TestPasses_GetIgnoresEmpty(t *testing.T) {
	passes := Passes{PassColor: ""}
	if passes.Has(PassColor) {
		t.Error("empty path should not count as a winner")
	}
}

func TestStatus(t *testing.T) {
	s := Status{}
	s.Add(StatusMissingCritical, "Color", "Normal")
	s.Add(StatusSpecularFound, "Download metalness workflow files instead")

	if !s.Has(StatusMissingCritical) {
		t.Error("Has() should report recorded key")
	}
	want := []string{StatusMissingCritical, StatusSpecularFound}
	if diff := cmp.Diff(want, s.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}

	set := &MaterialSet{Status: s}
	if diff := cmp.Diff([]string{"Color", "Normal"}, set.MissingCritical()); diff != "" {
		t.Errorf("MissingCritical() mismatch (-want +got):\n%s", diff)
	}
}

func TestMaterialSet_FileNames(t *testing.T) {
	set := &MaterialSet{
		SetName: "Wood_2K",
		Passes: Passes{
			PassColor:     "/tex/Wood_COLOR_2K.jpg",
			PassRoughness: "/tex/Wood_ROUGHNESS_2K.jpg",
		},
	}

	want := map[string]string{
		"COLOR":     "Wood_COLOR_2K.jpg",
		"ROUGHNESS": "Wood_ROUGHNESS_2K.jpg",
	}
	if diff := cmp.Diff(want, set.FileNames()); diff != "" {
		t.Errorf("FileNames() mismatch (-want +got):\n%s", diff)
	}
	if set.PassFile(PassNormal) != "" {
		t.Error("PassFile for an empty slot should be empty")
	}
	if set.Name() != "Wood_2K" {
		t.Errorf("Name() = %q, want Wood_2K", set.Name())
	}
}

func TestWorkflow_Valid(t *testing.T) {
	for _, w := range []Workflow{WorkflowMetalness, WorkflowSpecular, WorkflowDielectric} {
		if !w.Valid() {
			t.Errorf("%q should be valid", w)
		}
	}
	if Workflow("GLOSSY").Valid() {
		t.Error("unknown workflow should be invalid")
	}
}
