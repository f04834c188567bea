// FILE: fortidec/src/internal/service/file.go
package service

import (
	"errors"

	"fortidec/src/internal/container"
	"fortidec/src/internal/record"
)

// ErrSkipped marks a file that was not decodable as a log archive.
// The batch driver counts these and moves on.
var ErrSkipped = errors.New("file skipped")

// DecodeFile decodes one archive into the sink. The input stream is
// closed on every path. A file that fails to open as a gz/zst archive
// is skipped with one info diagnostic; entries already written before a
// mid-stream failure stand.
func (s *Service) DecodeFile(path string, sink record.EntrySink) error {
	rc, err := container.Open(path)
	if err != nil {
		s.diag.Info("Skipped file - failed to open, not a gz/zst file?",
			"file", path,
			"error", err)
		s.skippedFiles.Add(1)
		return ErrSkipped
	}
	defer rc.Close()

	sc := record.NewScanner(rc, sink, s.diag, path)
	err = sc.Scan()
	s.totalEntries.Add(sc.Entries())
	if err != nil {
		s.diag.Error("Failed to read stream",
			"file", path,
			"error", err)
		return err
	}
	s.totalFiles.Add(1)
	return nil
}
