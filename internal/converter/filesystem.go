package converter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

//go:generate mockgen -destination=../../mocks/mock_filesystem.go -package=mocks . FileSystem

// FileSystem is the storage the converter reads markdown from and writes components to.
type FileSystem interface {
	MkdirAll(path string) error
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	CopyFile(src, dst string) error
}

// OSFileSystem writes to the local disk.
type OSFileSystem struct{}

func (OSFileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OSFileSystem) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func (OSFileSystem) CopyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return nil
}

// DryRunFileSystem reads from disk but only logs what would be written.
type DryRunFileSystem struct {
	logger *slog.Logger
}

func NewDryRunFileSystem(logger *slog.Logger) *DryRunFileSystem {
	return &DryRunFileSystem{logger: logger}
}

func (d *DryRunFileSystem) MkdirAll(string) error {
	return nil
}

func (d *DryRunFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (d *DryRunFileSystem) WriteFile(path string, data []byte) error {
	d.logger.Info("dry run: skipping write", "path", path, "bytes", len(data))
	return nil
}

func (d *DryRunFileSystem) CopyFile(src, dst string) error {
	d.logger.Info("dry run: skipping copy", "from", src, "to", dst)
	return nil
}
