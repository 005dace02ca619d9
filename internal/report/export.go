package report

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Exporter turns a base64-encoded artifact payload into a saved PDF file
// under a fixed export directory.
type Exporter struct {
	dir    string
	logger *zap.Logger
}

// NewExporter builds an exporter writing into dir.
func NewExporter(dir string, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{dir: dir, logger: logger.Named("export")}
}

// Export decodes the payload and saves it under filename, returning the
// final path. An absent or empty payload is a DomainError (the backend
// suppressed the document), not a transport failure. The bytes land via a
// temp file renamed into place; the temp handle is released on every exit
// path so repeated exports never leak files.
func (e *Exporter) Export(payload, filename string) (string, error) {
	data, err := DecodeArtifact(payload)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	tmp, err := os.CreateTemp(e.dir, filename+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("sync artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close artifact: %w", err)
	}

	final := filepath.Join(e.dir, filename)
	if err := os.Rename(tmpName, final); err != nil {
		return "", fmt.Errorf("place artifact: %w", err)
	}
	committed = true

	e.logger.Info("artifact exported",
		zap.String("file", final),
		zap.Int("bytes", len(data)),
	)
	return final, nil
}

// DecodeArtifact strips an optional data-URI prefix (everything through the
// first comma) and decodes the remaining base64 text exactly: the returned
// length always matches the padding-adjusted length of the input.
func DecodeArtifact(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, &DomainError{Reason: NoMovementsMessage}
	}
	if i := strings.IndexByte(payload, ','); i >= 0 {
		payload = payload[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode artifact payload: %w", err)
	}
	return data, nil
}
