package upload

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Scoped writes data to a uniquely named file in dir, calls fn with the file's
// path, and removes the file before returning, whether fn succeeded or not.
// A failed removal is logged and never returned to the caller.
func Scoped(dir string, data []byte, ext string, fn func(path string) error) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(dir, uuid.NewString()+ext)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer remove(path)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	log.Debug().
		Str("path", path).
		Int("size_bytes", len(data)).
		Msg("Upload staged to temp file")

	return fn(path)
}

func remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", path).Msg("Failed to remove temp file")
		return
	}
	log.Debug().Str("path", path).Msg("Temp file removed")
}
