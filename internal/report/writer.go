package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/handiism/pbrset/internal/model"
	"github.com/handiism/pbrset/internal/report/dto"
	"gopkg.in/yaml.v3"
)

// Format represents supported report file formats.
//
// Each format suits a different consumer:
//   - JSON: one document with every set, read back by graph --from-report
//   - YAML: same structure as JSON, easier to review by hand
//   - CSV: one row per assigned pass, for spreadsheets
type Format int

const (
	// FormatJSON creates .json reports.
	FormatJSON Format = iota

	// FormatYAML creates .yaml reports.
	FormatYAML

	// FormatCSV creates .csv reports with the columns
	// setpath,setname,workflow,size,pass,file.
	FormatCSV
)

// ParseFormat maps "json", "yaml"/"yml" or "csv" to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	}
	return FormatJSON, fmt.Errorf("unknown report format %q", name)
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatCSV:
		return ".csv"
	default:
		return ".json"
	}
}

// csvHeader is the first row of CSV reports.
var csvHeader = []string{"setpath", "setname", "workflow", "size", "pass", "file"}

// Document is the top level structure of JSON and YAML reports.
type Document struct {
	Sets []dto.SetRecord `json:"sets" yaml:"sets"`
}

// Writer renders resolved material sets as a report.
//
// Example:
//
//	w := NewWriter(FormatCSV)
//	data, err := w.Render(manager.Results())
//	os.WriteFile("library.csv", data, 0644)
//
//	// Result:
//	// setpath,setname,workflow,size,pass,file
//	// /tex/Wood_2K,Wood_2K,DIELECTRIC,2K,COLOR,/tex/Wood_COL_2K.jpg
type Writer struct {
	format Format
}

// NewWriter creates a new Writer for the given format.
func NewWriter(format Format) *Writer {
	return &Writer{format: format}
}

// Render returns the report for sets.
func (w *Writer) Render(sets []*model.MaterialSet) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.Write(&buf, sets); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write streams the report for sets to out.
func (w *Writer) Write(out io.Writer, sets []*model.MaterialSet) error {
	switch w.format {
	case FormatYAML:
		return w.writeYAML(out, sets)
	case FormatCSV:
		return w.writeCSV(out, sets)
	default:
		return w.writeJSON(out, sets)
	}
}

func newDocument(sets []*model.MaterialSet) Document {
	doc := Document{Sets: make([]dto.SetRecord, 0, len(sets))}
	for _, set := range sets {
		doc.Sets = append(doc.Sets, dto.FromMaterialSet(set))
	}
	return doc
}

func (w *Writer) writeJSON(out io.Writer, sets []*model.MaterialSet) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(newDocument(sets))
}

func (w *Writer) writeYAML(out io.Writer, sets []*model.MaterialSet) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(sets)); err != nil {
		return err
	}
	return enc.Close()
}

// writeCSV writes one row per assigned pass in slot order. A set without
// any pass still gets one row with empty pass and file columns.
func (w *Writer) writeCSV(out io.Writer, sets []*model.MaterialSet) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, set := range sets {
		prefix := []string{set.SetPath, set.SetName, string(set.Workflow), set.Size}
		rows := 0
		for _, slot := range model.AllPassSlots() {
			path, ok := set.Passes.Get(slot)
			if !ok {
				continue
			}
			if err := cw.Write(append(prefix[:4:4], slot.String(), path)); err != nil {
				return err
			}
			rows++
		}
		if rows == 0 {
			if err := cw.Write(append(prefix[:4:4], "", "")); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read parses a JSON or YAML report back into material sets.
func Read(in io.Reader, format Format) ([]*model.MaterialSet, error) {
	var doc Document
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(in).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(in).Decode(&doc)
	default:
		return nil, fmt.Errorf("reading %s reports is not supported", strings.TrimPrefix(format.Extension(), "."))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	sets := make([]*model.MaterialSet, 0, len(doc.Sets))
	for i := range doc.Sets {
		set, err := doc.Sets[i].ToMaterialSet()
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, nil
}
