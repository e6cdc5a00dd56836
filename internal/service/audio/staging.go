package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lethub/voice-gateway/internal/domain"
)

// Formats Whisper accepts. Anything else is rejected before it touches disk.
var supportedMimeTypes = map[string]bool{
	"audio/flac": true,
	"audio/m4a":  true,
	"audio/mp3":  true,
	"audio/mp4":  true,
	"audio/mpeg": true,
	"audio/mpga": true,
	"audio/oga":  true,
	"audio/ogg":  true,
	"audio/wav":  true,
	"audio/webm": true,
}

// Staging persists uploaded audio under a scratch directory for the duration
// of one pipeline run. File names carry a random suffix so concurrent uploads
// cannot collide.
type Staging struct {
	dir string
	log *zap.Logger
}

func NewStaging(dir string, log *zap.Logger) (*Staging, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory %s: %w", dir, err)
	}
	return &Staging{dir: dir, log: log}, nil
}

// Dir returns the scratch directory path.
func (s *Staging) Dir() string {
	return s.dir
}

// Store writes an uploaded audio stream to a uniquely named scratch file and
// returns its handle. The caller owns the file and must Remove it when the
// pipeline run ends, success or failure.
func (s *Staging) Store(originalName, mimeType string, r io.Reader) (*domain.StagedAudio, error) {
	if !supportedMimeTypes[mimeType] {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, mimeType)
	}

	name := fmt.Sprintf("audio-%s%s", uuid.NewString(), filepath.Ext(originalName))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch file: %w", err)
	}

	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write scratch file: %w", err)
	}

	s.log.Debug("Staged uploaded audio",
		zap.String("path", path),
		zap.String("mime_type", mimeType),
		zap.Int64("size", size),
	)

	return &domain.StagedAudio{
		Path:         path,
		OriginalName: originalName,
		MimeType:     mimeType,
		Size:         size,
	}, nil
}

// StoreArtifact writes generated audio bytes to a scratch file for file-send
// delivery and returns its path.
func (s *Staging) StoreArtifact(data []byte) (string, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("output-%s.mp3", uuid.NewString()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write audio artifact: %w", err)
	}
	return path, nil
}

// Remove deletes a staged upload. Safe to call with nil.
func (s *Staging) Remove(a *domain.StagedAudio) {
	if a == nil {
		return
	}
	s.RemovePath(a.Path)
}

// RemovePath deletes a scratch file by path. Removal failures are logged, not
// returned; by then the response is already decided.
func (s *Staging) RemovePath(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Warn("Failed to remove scratch file", zap.String("path", path), zap.Error(err))
	}
}
