package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Store persists an ordered sequence of records of one kind in a single
// container file.
//
// The container holds a JSON array. Every Append rewrites the whole array;
// writes are atomic (temp file + fsync + rename + dir fsync), so an
// interrupted append leaves the previous contents in place.
type Store[T any] struct {
	path   string
	logger *zap.Logger
}

// New binds a Store to the container at path.
func New[T any](path string, logger *zap.Logger) (*Store[T], error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("container path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store[T]{path: filepath.Clean(path), logger: logger.Named("store")}, nil
}

func (s *Store[T]) Path() string { return s.path }

// Name is the container's base name, used in user-facing messages.
func (s *Store[T]) Name() string { return filepath.Base(s.path) }

// Load returns every record in insertion order.
//
// A container that does not exist, cannot be read or does not decode into
// []T is treated as empty. The cause is logged, never returned.
func (s *Store[T]) Load() []T {
	var out []T
	if err := decodeContainer(s.path, &out); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("container unreadable, treating as empty",
				zap.String("container", s.path),
				zap.Error(err),
			)
		}
		return []T{}
	}
	if out == nil {
		return []T{}
	}
	return out
}

// Append adds record to the end of the container and rewrites it.
//
// The container is replaced as a whole, so an append that fails at any step
// (including encoding) leaves the records written by earlier appends intact.
func (s *Store[T]) Append(record T) error {
	items := append(s.Load(), record)

	data, err := encodeContainer(items)
	if err != nil {
		return &ContainerError{Container: s.path, Op: "marshal", Err: err}
	}
	if err := replaceContainer(s.path, data); err != nil {
		return &ContainerError{Container: s.path, Op: "write", Err: err}
	}
	s.logger.Debug("record appended",
		zap.String("container", s.path),
		zap.Int("records", len(items)),
	)
	return nil
}

// encodeContainer renders records as an indented JSON array with a trailing
// newline, the layout operators expect when they open a container by hand.
func encodeContainer[T any](items []T) ([]byte, error) {
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// decodeContainer reads a container written by encodeContainer. Unknown
// fields and anything after the array make the container unreadable, so a
// hand-edited or foreign file loads as empty instead of half-parsed.
func decodeContainer(path string, dst any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("container has content after the record array")
	}
	return nil
}

// replaceContainer swaps the container for data. The new records are staged
// in a sibling file and renamed over the container, so the backup service and
// the next session only ever see the old record list or the new one.
func replaceContainer(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	staged, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	stagedName := staged.Name()
	renamed := false
	defer func() {
		_ = staged.Close()
		if !renamed {
			_ = os.Remove(stagedName)
		}
	}()

	if _, err := staged.Write(data); err != nil {
		return err
	}
	if err := staged.Chmod(0o644); err != nil {
		return err
	}
	// Flush before the rename; otherwise a crash can publish an empty container.
	if err := staged.Sync(); err != nil {
		return err
	}
	if err := staged.Close(); err != nil {
		return err
	}
	if err := os.Rename(stagedName, path); err != nil {
		return err
	}
	renamed = true

	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}

// ContainerError reports a failed write to a named container.
type ContainerError struct {
	Container string
	Op        string
	Err       error
}

func (e *ContainerError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Container, e.Err)
}

func (e *ContainerError) Unwrap() error { return e.Err }
