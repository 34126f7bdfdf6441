// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"github.com/pdiddy/texpng/internal/texfile"
)

// BuiltinConverter decodes TEX containers in-process instead of shelling
// out. It handles the same container formats as siltex and needs no
// external binary on PATH.
type BuiltinConverter struct{}

// NewBuiltinConverter returns the in-process backend.
func NewBuiltinConverter() *BuiltinConverter {
	return &BuiltinConverter{}
}

// Convert decodes the TEX file at texPath and writes an RGBA PNG to pngPath.
func (b *BuiltinConverter) Convert(texPath, pngPath string) error {
	img, err := texfile.DecodeFile(texPath)
	if err != nil {
		return err
	}
	return texfile.WritePNG(pngPath, img)
}
