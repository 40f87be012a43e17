package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/handiism/pbrset/internal/model"
	"github.com/handiism/pbrset/internal/report/dto"
)

func createTestSets() []*model.MaterialSet {
	status := model.Status{}
	status.Add(model.StatusMissingCritical, "Gloss")

	return []*model.MaterialSet{
		{
			SetPath:  "/tex/Wood_2K",
			SetName:  "Wood_2K",
			Dir:      "/tex",
			Workflow: model.WorkflowDielectric,
			Size:     "2K",
			Passes: model.Passes{
				model.PassNormal: "/tex/Wood_NRM_2K.jpg",
				model.PassColor:  "/tex/Wood_COL_2K.jpg",
			},
			Files:  []string{"/tex/Wood_COL_2K.jpg", "/tex/Wood_NRM_2K.jpg"},
			Status: status,
		},
		{
			SetPath:  "/tex/Empty_4K",
			SetName:  "Empty_4K",
			Dir:      "/tex",
			Workflow: model.WorkflowDielectric,
			Passes:   model.Passes{},
			Status:   model.Status{},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"csv", FormatCSV, false},
		{"xml", FormatJSON, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestWriter_CSV(t *testing.T) {
	data, err := NewWriter(FormatCSV).Render(createTestSets())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := strings.Join([]string{
		"setpath,setname,workflow,size,pass,file",
		"/tex/Wood_2K,Wood_2K,DIELECTRIC,2K,COLOR,/tex/Wood_COL_2K.jpg",
		"/tex/Wood_2K,Wood_2K,DIELECTRIC,2K,NORMAL,/tex/Wood_NRM_2K.jpg",
		"/tex/Empty_4K,Empty_4K,DIELECTRIC,,,",
		"",
	}, "\n")
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestWriter_JSON(t *testing.T) {
	data, err := NewWriter(FormatJSON).Render(createTestSets())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	content := string(data)
	for _, want := range []string{`"setpath": "/tex/Wood_2K"`, `"COLOR": "/tex/Wood_COL_2K.jpg"`, `"Missing critical passes"`} {
		if !strings.Contains(content, want) {
			t.Errorf("JSON report should contain %s", want)
		}
	}
}

func TestWriter_ReadBack(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(format.Extension(), func(t *testing.T) {
			sets := createTestSets()
			data, err := NewWriter(format).Render(sets)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			got, err := Read(bytes.NewReader(data), format)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("expected 2 sets, got %d", len(got))
			}
			if diff := cmp.Diff(sets[0], got[0]); diff != "" {
				t.Errorf("set mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := Read(strings.NewReader(""), FormatCSV); err == nil {
		t.Error("expected error reading CSV")
	}
}

func TestSetRecord_ToMaterialSetErrors(t *testing.T) {
	bad := []dto.SetRecord{
		{SetPath: "/tex/A_2K", Workflow: "PBR"},
		{SetPath: "/tex/A_2K", Workflow: "DIELECTRIC", Passes: map[string]string{"EMISSION": "/tex/A_EMISSION_2K.png"}},
	}
	for _, r := range bad {
		if _, err := r.ToMaterialSet(); err == nil {
			t.Errorf("expected error for %+v", r)
		}
	}

	alias := dto.SetRecord{SetPath: "/tex/A_2K", Workflow: "METALNESS", Passes: map[string]string{"nrm": "/tex/A_NRM_2K.png"}}
	set, err := alias.ToMaterialSet()
	if err != nil {
		t.Fatal(err)
	}
	if !set.Passes.Has(model.PassNormal) {
		t.Error("alias should resolve to NORMAL")
	}
}
