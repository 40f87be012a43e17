package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/pbrset/internal/graph"
	"github.com/handiism/pbrset/internal/resolve"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Settings holds all configuration options.
type Settings struct {
	// Pass selection
	UseAO            bool `json:"use_ao" yaml:"use_ao"`
	UseDisp          bool `json:"use_disp" yaml:"use_disp"`
	UseSixteenBit    bool `json:"use_sixteenbit" yaml:"use_sixteenbit"`
	LegacyReflection bool `json:"legacy_reflection" yaml:"legacy_reflection"`

	// Node graph
	ConformUV                bool   `json:"conform_uv" yaml:"conform_uv"`
	MicroDisp                bool   `json:"microdisp" yaml:"microdisp"`
	ExperimentalDisplacement bool   `json:"experimental_displacement" yaml:"experimental_displacement"`
	Mapping                  string `json:"mapping" yaml:"mapping"` // uv_standard, flat_standard, box_standard

	// Thumbnails
	ThumbnailType string `json:"thumbnail_type" yaml:"thumbnail_type"` // sphere, flat, cube
	PreviewSize   int    `json:"preview_size" yaml:"preview_size"`

	// Library scan
	MaxConcurrentSets int    `json:"max_concurrent_sets" yaml:"max_concurrent_sets"`
	ReportFormat      string `json:"report_format" yaml:"report_format"` // json, yaml, csv

	// Dataset export
	DatasetName         string `json:"dataset_name" yaml:"dataset_name"`
	MaxConcurrentCopies int    `json:"max_concurrent_copies" yaml:"max_concurrent_copies"`
	StereoStep          int    `json:"stereo_step" yaml:"stereo_step"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		UseAO:            true,
		UseDisp:          true,
		UseSixteenBit:    false,
		LegacyReflection: false,

		ConformUV: true,
		MicroDisp: false,
		Mapping:   graph.MappingUV,

		ThumbnailType: resolve.ThumbnailSphere,
		PreviewSize:   256,

		MaxConcurrentSets: 8,
		ReportFormat:      "json",

		DatasetName:         "pbr_dataset",
		MaxConcurrentCopies: 16,
		StereoStep:          3,
	}
}

// Load reads settings from a JSON or YAML file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a JSON or YAML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks enumerated and numeric options.
func (s *Settings) Validate() error {
	if !resolve.ValidThumbnailKind(s.ThumbnailType) {
		return fmt.Errorf("invalid thumbnail_type %q", s.ThumbnailType)
	}
	switch s.Mapping {
	case graph.MappingUV, graph.MappingFlat, graph.MappingBox:
	default:
		return fmt.Errorf("invalid mapping %q", s.Mapping)
	}
	switch s.ReportFormat {
	case "json", "yaml", "csv":
	default:
		return fmt.Errorf("invalid report_format %q", s.ReportFormat)
	}
	if s.MaxConcurrentSets < 1 || s.MaxConcurrentCopies < 1 {
		return fmt.Errorf("concurrency limits must be at least 1")
	}
	if s.StereoStep < 1 {
		return fmt.Errorf("stereo_step must be at least 1")
	}
	return nil
}

// ToResolveOptions converts settings to resolve.Options.
func (s *Settings) ToResolveOptions(logger *zap.Logger) resolve.Options {
	return resolve.Options{
		UseAO:            s.UseAO,
		UseDisp:          s.UseDisp,
		UseSixteenBit:    s.UseSixteenBit,
		LegacyReflection: s.LegacyReflection,
		Logger:           logger,
	}
}

// ToGraphOptions converts settings to graph.Options.
func (s *Settings) ToGraphOptions(sizer graph.ImageSizer, logger *zap.Logger) graph.Options {
	return graph.Options{
		Engine:                   graph.EngineCyclesPrincipled,
		Mapping:                  s.Mapping,
		ConformUV:                s.ConformUV,
		MicroDisp:                s.MicroDisp,
		ExperimentalDisplacement: s.ExperimentalDisplacement,
		Sizer:                    sizer,
		Logger:                   logger,
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
