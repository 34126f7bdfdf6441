// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConvertBackend identifies the conversion engine.
type ConvertBackend string

const (
	// BackendSiltex shells out to the external siltex binary per file.
	BackendSiltex ConvertBackend = "siltex"
	// BackendBuiltin decodes TEX containers in-process.
	BackendBuiltin ConvertBackend = "builtin"
)

// ConvertConfig holds settings for the batch conversion stage.
type ConvertConfig struct {
	// Backend selects the conversion engine: siltex or builtin.
	Backend ConvertBackend `json:"backend" yaml:"backend"`

	// SiltexBin is the name or path of the external converter binary.
	SiltexBin string `json:"siltex_bin" yaml:"siltex_bin"`

	// Jobs is the number of concurrent conversion workers (default 1,
	// i.e. strictly sequential).
	Jobs int `json:"jobs" yaml:"jobs"`

	// ManifestPath is the optional SQLite manifest database. When set,
	// files already recorded as converted with an unchanged size and
	// mtime are skipped on subsequent runs. Empty disables the manifest
	// and every discovered file gets exactly one conversion attempt.
	ManifestPath string `json:"manifest_path,omitempty" yaml:"manifest_path,omitempty"`
}

// AtlasConfig holds settings for atlas extraction.
type AtlasConfig struct {
	// OutputDir overrides the destination base directory. Empty means
	// the image map's grandparent directory, matching the packed-asset
	// layout the coords files are written against.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
}
