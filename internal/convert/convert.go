// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements batch TEX-to-PNG conversion with pluggable
// backends. The batch walks an input tree, mirrors its structure under an
// output root, and drives one conversion per discovered file, continuing
// past individual failures.
package convert

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/texpng/pkg/types"
)

// texExt is the source extension matched during discovery.
const texExt = ".tex"

// Converter renders one TEX file into a PNG at the given destination.
// Backends (external siltex, builtin decoder) implement this interface.
type Converter interface {
	// Convert reads the TEX file at texPath and writes a PNG to pngPath.
	Convert(texPath, pngPath string) error
}

// Ledger answers skip queries and records conversion outcomes. The SQLite
// manifest implements it; a nil Ledger disables skipping entirely.
type Ledger interface {
	// ShouldSkip reports whether relPath was already converted from a
	// source with the same size and modification time.
	ShouldSkip(relPath string, size int64, modTime time.Time) bool

	// Record persists the outcome of one conversion attempt.
	Record(tex types.Texture, size int64, modTime time.Time, status types.ConversionStatus, cause error) error
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// BatchOptions tunes a batch run.
type BatchOptions struct {
	// Jobs is the number of concurrent workers. Values below 2 run the
	// batch strictly sequentially in discovery order.
	Jobs int

	// Ledger, when non-nil, lets unchanged already-converted files be
	// skipped and records every outcome.
	Ledger Ledger
}

// Discover walks inputRoot recursively and returns one Texture per *.tex
// file, with the destination path mirrored under outputRoot and the
// extension swapped to .png. Hidden directories are included. An empty
// result is not an error.
func Discover(inputRoot, outputRoot string) ([]types.Texture, error) {
	var textures []types.Texture
	err := filepath.WalkDir(inputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != texExt {
			return nil
		}
		rel, err := filepath.Rel(inputRoot, path)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", path, err)
		}
		textures = append(textures, types.Texture{
			RelPath: rel,
			TexPath: path,
			PNGPath: filepath.Join(outputRoot, strings.TrimSuffix(rel, texExt)+".png"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", inputRoot, err)
	}
	return textures, nil
}

// ConvertTexture converts a single file, writing a status line to w and
// returning the outcome. Directory-creation failures are treated like
// converter failures: logged, and the batch moves on.
func ConvertTexture(c Converter, tex types.Texture, opts BatchOptions, w io.Writer) types.ConversionStatus {
	var size int64
	var modTime time.Time
	if info, err := os.Stat(tex.TexPath); err == nil {
		size, modTime = info.Size(), info.ModTime()
	}

	if opts.Ledger != nil && opts.Ledger.ShouldSkip(tex.RelPath, size, modTime) {
		fmt.Fprintf(w, "skipped: %s (unchanged)\n", tex.RelPath)
		return types.ConversionNone
	}

	status, cause := types.ConversionDone, error(nil)
	if err := os.MkdirAll(filepath.Dir(tex.PNGPath), 0o755); err != nil {
		status, cause = types.ConversionFailed, err
	} else if err := c.Convert(tex.TexPath, tex.PNGPath); err != nil {
		status, cause = types.ConversionFailed, err
	}

	if status == types.ConversionFailed {
		fmt.Fprintf(w, "failed:  %s (%v)\n", tex.TexPath, cause)
	} else {
		fmt.Fprintf(w, "converted: %s\n", tex.RelPath)
	}

	if opts.Ledger != nil {
		if err := opts.Ledger.Record(tex, size, modTime, status, cause); err != nil {
			fmt.Fprintf(w, "manifest: %s (%v)\n", tex.RelPath, err)
		}
	}
	return status
}

// Batch converts every texture, printing per-file status to w and a summary
// line at the end. A single failing file never prevents the remaining files
// from being attempted. With Jobs > 1 the files are spread over a bounded
// worker pool; per-file isolation is unchanged.
func Batch(c Converter, textures []types.Texture, opts BatchOptions, w io.Writer) BatchResult {
	var result BatchResult
	if opts.Jobs > 1 {
		result = batchParallel(c, textures, opts, w)
	} else {
		for _, tex := range textures {
			result.tally(ConvertTexture(c, tex, opts, w))
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

func (r *BatchResult) tally(status types.ConversionStatus) {
	switch status {
	case types.ConversionDone:
		r.Converted++
	case types.ConversionNone:
		r.Skipped++
	case types.ConversionFailed:
		r.Failed++
	}
}

// batchParallel fans the texture list out to opts.Jobs workers. The status
// writer and the result tally share one mutex so output lines never
// interleave.
func batchParallel(c Converter, textures []types.Texture, opts BatchOptions, w io.Writer) BatchResult {
	var (
		result BatchResult
		mu     sync.Mutex
		wg     sync.WaitGroup
	)
	queue := make(chan types.Texture)

	sw := &syncWriter{w: w, mu: &mu}
	for i := 0; i < opts.Jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tex := range queue {
				status := ConvertTexture(c, tex, opts, sw)
				mu.Lock()
				result.tally(status)
				mu.Unlock()
			}
		}()
	}

	for _, tex := range textures {
		queue <- tex
	}
	close(queue)
	wg.Wait()
	return result
}

// syncWriter serializes writes from concurrent workers.
type syncWriter struct {
	w  io.Writer
	mu *sync.Mutex
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
