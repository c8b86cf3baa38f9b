// Package filesystem contains filesystem-backed adapters.
package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/example/budgetctl/internal/core/fault"
)

// BackupArchive implements secondary.BackupArchive on a directory of
// timestamped database copies.
type BackupArchive struct {
	dir string
	now func() time.Time
}

// NewBackupArchive creates an archive rooted at dir, creating it if
// needed.
func NewBackupArchive(dir string) (*BackupArchive, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to create backup dir")
	}
	return &BackupArchive{dir: dir, now: time.Now}, nil
}

// Write copies the database file at srcPath into the archive under a
// timestamped name and returns that name and the size in KB.
func (a *BackupArchive) Write(srcPath string) (string, float64, error) {
	name := fmt.Sprintf("budget_%s.db", a.now().Format("20060102_150405"))
	dst := filepath.Join(a.dir, name)

	size, err := copyFile(srcPath, dst)
	if err != nil {
		return "", 0, fault.Wrap(fault.KindStorage, err, "failed to write backup")
	}

	return name, float64(size) / 1024.0, nil
}

// Resolve returns the absolute path of an archived file.
func (a *BackupArchive) Resolve(name string) (string, error) {
	return filepath.Abs(filepath.Join(a.dir, name))
}

// Exists reports whether an archived file is present.
func (a *BackupArchive) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(a.dir, name))
	return err == nil
}

// Remove deletes an archived file.
func (a *BackupArchive) Remove(name string) error {
	if err := os.Remove(filepath.Join(a.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return fault.New(fault.KindNotFound, "Fichier de sauvegarde %s introuvable", name)
		}
		return fault.Wrap(fault.KindStorage, err, "failed to remove backup")
	}
	return nil
}

func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	n, err := io.Copy(out, in)
	if err != nil {
		return 0, err
	}
	return n, out.Sync()
}
