package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Saver persists an artifact and returns where it was written.
type Saver interface {
	Save(ctx context.Context, artifact Artifact) (string, error)
}

// SaverFunc adapts a function to the Saver interface.
type SaverFunc func(ctx context.Context, artifact Artifact) (string, error)

func (f SaverFunc) Save(ctx context.Context, artifact Artifact) (string, error) {
	return f(ctx, artifact)
}

// DirSaver writes artifacts into Dir using the artifact filename.
type DirSaver struct {
	Dir string
}

func (s DirSaver) Save(ctx context.Context, artifact Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if artifact.Filename == "" {
		return "", errors.New("export: artifact filename is required")
	}

	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create output dir: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(artifact.Filename))
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return "", fmt.Errorf("export: write artifact: %w", err)
	}
	return path, nil
}

// WriterSaver streams the artifact to W, for example stdout.
type WriterSaver struct {
	W io.Writer
}

func (s WriterSaver) Save(ctx context.Context, artifact Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.W == nil {
		return "", errors.New("export: writer is required")
	}
	if _, err := s.W.Write(artifact.Data); err != nil {
		return "", fmt.Errorf("export: write artifact: %w", err)
	}
	return artifact.Filename, nil
}
