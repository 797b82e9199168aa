// Package backup copies the primary containers to their fixed backup
// locations.
package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"staffledger/internal/logging"

	"go.uber.org/zap"
)

// Pair is one source container and the backup it overwrites.
type Pair struct {
	Source      string
	Destination string
}

// Result is the outcome of backing up one Pair. Err is nil on success.
type Result struct {
	Pair
	Bytes    int64
	Checksum string
	Err      error
}

// Name is the source's base name, used in user-facing messages.
func (r Result) Name() string { return filepath.Base(r.Source) }

type Service struct {
	pairs  []Pair
	logger *zap.Logger
}

func NewService(pairs []Pair, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{pairs: pairs, logger: logger.Named("backup")}
}

// Backup copies every pair in order. A failed pair does not stop the rest;
// each outcome is reported in its own Result.
func (s *Service) Backup(ctx context.Context) []Result {
	log := logging.For(ctx, s.logger)
	results := make([]Result, 0, len(s.pairs))
	for _, p := range s.pairs {
		res := Result{Pair: p}
		res.Bytes, res.Checksum, res.Err = copyVerified(p.Source, p.Destination)
		if res.Err != nil {
			log.Warn("backup failed",
				zap.String("source", p.Source),
				zap.String("destination", p.Destination),
				zap.Error(res.Err),
			)
		} else {
			log.Info("backup completed",
				zap.String("source", p.Source),
				zap.String("destination", p.Destination),
				zap.Int64("bytes", res.Bytes),
				zap.String("sha256", res.Checksum),
			)
		}
		results = append(results, res)
	}
	return results
}

// copyVerified overwrites dst with the contents of src and confirms the copy
// hashes the same as the source.
func copyVerified(src, dst string) (int64, string, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, "", fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, "", fmt.Errorf("ensure backup dir: %w", err)
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, "", fmt.Errorf("open backup: %w", err)
	}

	srcHash := newHasher()
	n, err := io.Copy(io.MultiWriter(out, srcHash), in)
	if err != nil {
		_ = out.Close()
		return n, "", fmt.Errorf("copy: %w", err)
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return n, "", fmt.Errorf("sync backup: %w", err)
	}
	if err := out.Close(); err != nil {
		return n, "", fmt.Errorf("close backup: %w", err)
	}

	want := srcHash.Sum()
	got, err := FileChecksum(dst)
	if err != nil {
		return n, "", fmt.Errorf("verify backup: %w", err)
	}
	if got != want {
		return n, "", fmt.Errorf("verify backup: checksum mismatch (source %s, backup %s)", want, got)
	}
	return n, want, nil
}
