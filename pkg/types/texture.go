// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionStatus indicates the outcome of a single TEX-to-PNG conversion.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Texture holds the source and destination paths for one conversion unit.
type Texture struct {
	// RelPath is the source path relative to the input root, e.g.
	// "sprites/ui/button.tex". The output path mirrors it with the
	// extension swapped to .png.
	RelPath string `json:"rel_path" yaml:"rel_path"`

	// TexPath is the absolute (or caller-relative) path to the source file.
	TexPath string `json:"tex_path" yaml:"tex_path"`

	// PNGPath is the computed destination path under the output root.
	PNGPath string `json:"png_path" yaml:"png_path"`
}
