// FILE: fortidec/src/internal/service/batch.go
package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"fortidec/src/internal/sink"

	"golang.org/x/sync/errgroup"
)

// DecodeDir decodes every regular file in srcDir to a correspondingly
// named output file in dstDir, one worker per file up to the configured
// limit. Pre-existing outputs are skipped, never overwritten. On
// cancellation or output failure the in-flight output file is deleted
// rather than left as a misleading truncated artifact.
func (s *Service) DecodeDir(ctx context.Context, srcDir, dstDir string) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return fmt.Errorf("read source directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Batch.Workers)

	for _, de := range entries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return s.decodeToFile(ctx, filepath.Join(srcDir, name), dstDir, name)
		})
	}

	err = g.Wait()
	s.diag.Info("Batch done",
		"source", srcDir,
		"files", s.totalFiles.Load(),
		"skipped", s.skippedFiles.Load(),
		"entries", s.totalEntries.Load())
	return err
}

// decodeToFile decodes one archive into dstDir. Per-file failures are
// diagnosed and absorbed so one bad archive never ends the batch; only
// cancellation propagates.
func (s *Service) decodeToFile(ctx context.Context, srcPath, dstDir, name string) error {
	outPath := filepath.Join(dstDir, name+".csv")
	if s.cfg.Output.Gzip {
		outPath += ".gz"
	}

	out, err := sink.NewFileSink(outPath, s.cfg.Output.Gzip)
	if errors.Is(err, fs.ErrExist) {
		s.diag.Info("Skipped file - already exists in destination",
			"file", srcPath,
			"output", outPath)
		s.skippedFiles.Add(1)
		return nil
	}
	if err != nil {
		s.diag.Error("Skipped file - cannot create output",
			"file", srcPath,
			"output", outPath,
			"error", err)
		s.skippedFiles.Add(1)
		return nil
	}

	// Decode failures are already diagnosed inside DecodeFile and do not
	// end the batch; entries written before a mid-stream failure stand.
	_ = s.DecodeFile(srcPath, out)
	closeErr := out.Close()

	// A truncated output is worse than none
	if ctx.Err() != nil || closeErr != nil {
		if rmErr := os.Remove(outPath); rmErr == nil {
			s.diag.Info("Deleted incomplete output file",
				"output", outPath)
		}
		if closeErr != nil {
			s.diag.Error("Failed to write output file",
				"output", outPath,
				"error", closeErr)
		}
		return ctx.Err()
	}
	return nil
}
