// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package atlas extracts individual sprites from a packed image map. A
// coords file names one region per line, `rel_path x y w h`, and each
// region is cropped out of the map and written to rel_path under the
// output base directory.
package atlas

import (
	"bufio"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/texpng/internal/texfile"
)

// Entry is one parsed coords line.
type Entry struct {
	RelPath string
	X, Y    int
	W, H    int
}

// Result tallies the outcome of an extraction run.
type Result struct {
	Extracted int
	Skipped   int
	Failed    int
}

// parseEntry splits a coords line into an Entry. Lines must hold exactly
// five fields; the last four must be integers.
func parseEntry(line string) (Entry, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return Entry{}, fmt.Errorf("want 5 fields, got %d", len(fields))
	}

	nums := make([]int, 4)
	for i, f := range fields[1:] {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Entry{}, fmt.Errorf("field %d: %w", i+2, err)
		}
		nums[i] = n
	}
	return Entry{RelPath: fields[0], X: nums[0], Y: nums[1], W: nums[2], H: nums[3]}, nil
}

// DefaultBaseDir returns the extraction destination implied by the map's
// location: its grandparent directory, which the coords rel_paths are
// written against in the packed-asset layout.
func DefaultBaseDir(mapPath string) string {
	return filepath.Dir(filepath.Dir(mapPath))
}

// Extract crops every coords entry out of the image map at mapPath and
// writes each crop as a PNG under baseDir, creating parent directories.
// Invalid lines and per-entry failures are logged to w and skipped; only
// failures to open the map or the coords file abort the run.
func Extract(mapPath, coordsPath, baseDir string, w io.Writer) (Result, error) {
	if baseDir == "" {
		baseDir = DefaultBaseDir(mapPath)
	}

	f, err := os.Open(mapPath)
	if err != nil {
		return Result{}, fmt.Errorf("opening image map: %w", err)
	}
	src, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return Result{}, fmt.Errorf("decoding image map %s: %w", mapPath, err)
	}

	coords, err := os.Open(coordsPath)
	if err != nil {
		return Result{}, fmt.Errorf("opening coords file: %w", err)
	}
	defer coords.Close()

	var result Result
	scanner := bufio.NewScanner(coords)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		entry, err := parseEntry(line)
		if err != nil {
			fmt.Fprintf(w, "skipping invalid line: %s (%v)\n", line, err)
			result.Skipped++
			continue
		}

		outPath := filepath.Join(baseDir, filepath.FromSlash(entry.RelPath))
		if err := extractEntry(src, entry, outPath); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", outPath, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "saved: %s (x:%d, y:%d, w:%d, h:%d)\n", outPath, entry.X, entry.Y, entry.W, entry.H)
		result.Extracted++
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("reading coords file: %w", err)
	}
	return result, nil
}

// extractEntry crops one region out of src and writes it to outPath.
// Regions reaching past the map's edge are zero-padded.
func extractEntry(src image.Image, entry Entry, outPath string) error {
	if entry.W <= 0 || entry.H <= 0 {
		return fmt.Errorf("non-positive crop size %dx%d", entry.W, entry.H)
	}

	crop := image.NewRGBA(image.Rect(0, 0, entry.W, entry.H))
	draw.Draw(crop, crop.Bounds(), src, image.Pt(entry.X, entry.Y), draw.Src)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return texfile.WritePNG(outPath, crop)
}
