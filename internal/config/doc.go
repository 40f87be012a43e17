// Package config provides configuration management for pbrset.
//
// This package handles:
//   - Loading and saving settings from JSON or YAML files
//   - Default configuration values
//   - Conversion to resolve.Options and graph.Options for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// AO and displacement passes enabled
//	// 8-bit textures preferred
//	// UV mapping conformed to the color texture aspect ratio
//
// # Loading from File
//
// The format follows the file extension: ".yaml" and ".yml" are read as
// YAML, anything else as JSON.
//
//	settings, err := config.Load("/path/to/pbrset.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.UseSixteenBit = true
//	err := settings.Save("/path/to/pbrset.json")
//
// # Configuration Options
//
// Settings includes options for:
//   - Pass selection (AO, displacement, 16-bit, legacy reflection)
//   - Node graph building (UV conform, mapping mode, micro displacement)
//   - Preview thumbnails
//   - Library scan concurrency and report format
//   - Dataset export
package config
