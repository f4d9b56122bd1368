package costbasis

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// LoadHistory opens and decodes a single history file. The history is named
// after the file, without its .jsonl extension.
func LoadHistory(path string) (*History, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open history file %q", path)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), ".jsonl")
	return DecodeHistory(name, f)
}

// LoadHistories decodes every file in paths concurrently and merges them
// into a single history. Actions at the same timestamp keep the order of
// paths. It fails on the first error.
func LoadHistories(paths ...string) (*History, error) {
	histories := make([]*History, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			h, err := LoadHistory(path)
			if err != nil {
				return err
			}
			histories[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	name := "history"
	if len(histories) == 1 {
		name = histories[0].Name()
	}
	return Merge(name, histories...), nil
}

// FindHistories returns the paths of every .jsonl file under root, sorted.
func FindHistories(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ".jsonl") {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not scan %q", root)
	}
	return paths, nil
}

// SaveHistory writes history to path, creating parent directories as needed.
func SaveHistory(path string, history *History) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "could not create directory for history %q", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "error opening history file %q for writing", path)
	}
	if err := EncodeHistory(f, history); err != nil {
		f.Close()
		return errors.Wrapf(err, "could not write history %q", path)
	}
	// a failed close may have lost the end of the file.
	return errors.Wrapf(f.Close(), "could not close history %q", path)
}
