package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"
)

type hasher struct {
	h hash.Hash
}

func newHasher() *hasher { return &hasher{h: sha256.New()} }

func (h *hasher) Write(p []byte) (int, error) { return h.h.Write(p) }

// Sum returns the hex-encoded sha256 of everything written so far.
func (h *hasher) Sum() string { return hex.EncodeToString(h.h.Sum(nil)) }

// FileChecksum returns the hex-encoded sha256 of the file at path.
func FileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := newHasher()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return h.Sum(), nil
}
