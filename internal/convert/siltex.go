// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// defaultSiltexBin is the external converter looked up on PATH when no
// explicit binary is configured.
const defaultSiltexBin = "siltex"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec. Arguments are
// passed as an explicit vector; nothing goes through a shell, so file names
// with spaces or glob characters are safe.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

var defaultExec executor = &osExecutor{}

// SiltexConverter renders textures by spawning the external siltex binary
// once per file: `siltex tex2png -o <png> <tex>`. A non-zero exit reports
// the renderer's stderr in the returned error.
type SiltexConverter struct {
	bin  string
	exec executor
}

// NewSiltexConverter resolves the converter binary on PATH and returns a
// backend driving it. An empty bin falls back to "siltex".
func NewSiltexConverter(bin string) (*SiltexConverter, error) {
	return newSiltexConverter(bin, defaultExec)
}

func newSiltexConverter(bin string, exec executor) (*SiltexConverter, error) {
	if bin == "" {
		bin = defaultSiltexBin
	}
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("converter binary %q not found: %w", bin, err)
	}
	return &SiltexConverter{bin: bin, exec: exec}, nil
}

// Convert runs one tex2png invocation, blocking until the renderer exits.
func (s *SiltexConverter) Convert(texPath, pngPath string) error {
	if err := s.exec.Run(s.bin, "tex2png", "-o", pngPath, texPath); err != nil {
		return fmt.Errorf("%s tex2png: %w", s.bin, err)
	}
	return nil
}
