// FILE: fortidec/src/internal/service/service.go
package service

import (
	"sync/atomic"

	"fortidec/src/internal/config"
	"fortidec/src/internal/record"

	"github.com/lixenwraith/log"
)

// Service decodes appliance log archives into entry sinks. One Service
// handles one invocation: a single file or a directory batch. Decoding
// itself is sequential per file; batch mode fans files out to workers
// since no decode state is shared between files.
type Service struct {
	cfg    *config.Config
	logger *log.Logger
	diag   record.Diagnostics

	// Statistics
	totalEntries atomic.Uint64
	totalFiles   atomic.Uint64
	skippedFiles atomic.Uint64
}

// New creates a service with the logger as its diagnostics destination.
func New(cfg *config.Config, logger *log.Logger) *Service {
	return &Service{
		cfg:    cfg,
		logger: logger,
		diag:   record.NewLoggerDiagnostics(logger),
	}
}

// Stats summarizes a finished invocation.
type Stats struct {
	TotalEntries uint64
	TotalFiles   uint64
	SkippedFiles uint64
}

func (s *Service) GetStats() Stats {
	return Stats{
		TotalEntries: s.totalEntries.Load(),
		TotalFiles:   s.totalFiles.Load(),
		SkippedFiles: s.skippedFiles.Load(),
	}
}
