// Package project locates the cube and view documents of a project on disk.
package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapcube/internal/config"
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/document"
	"golang.org/x/sync/errgroup"
)

// readConcurrency bounds the number of files read at once.
const readConcurrency = 8

// Layout is the resolved on-disk layout of a project.
type Layout struct {
	Root     string
	CubesDir string
	ViewsDir string
}

// NewLayout resolves the cube and view directories of cfg against root.
// Empty directories fall back to the defaults; absolute ones are kept.
func NewLayout(root string, cfg *core.ProjectConfig) Layout {
	cubes, views := config.DefaultCubesDir, config.DefaultViewsDir
	if cfg != nil {
		if cfg.CubesDir != "" {
			cubes = cfg.CubesDir
		}
		if cfg.ViewsDir != "" {
			views = cfg.ViewsDir
		}
	}
	return Layout{
		Root:     root,
		CubesDir: resolve(root, cubes),
		ViewsDir: resolve(root, views),
	}
}

// Open loads the project configuration in root, if there is one, and
// returns the project layout it describes.
func Open(root string) (Layout, *core.ProjectConfig, error) {
	cfg, err := config.LoadFromDir(root)
	if err != nil {
		return Layout{}, nil, fmt.Errorf("failed to load project config: %w", err)
	}
	if cfg == nil {
		cfg = &core.ProjectConfig{}
		config.ApplyDefaults(cfg)
	}
	return NewLayout(root, cfg), cfg, nil
}

func resolve(root, dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(root, dir)
}

// Dirs returns the directories scanned for documents, cubes first.
func (l Layout) Dirs() []string {
	if l.CubesDir == l.ViewsDir {
		return []string{l.CubesDir}
	}
	return []string{l.CubesDir, l.ViewsDir}
}

// File is one document found in the project.
type File struct {
	// Name is the path relative to the project root, with forward slashes.
	Name string
	// Path is the full path on disk.
	Path string
}

// IsDefinitionFile reports whether name has a YAML extension.
func IsDefinitionFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// Collect walks the cube directory and then the view directory recursively,
// returning every YAML file in lexical order within each directory. A
// missing directory contributes no files; any other I/O failure is returned.
func (l Layout) Collect() ([]File, error) {
	var files []File
	seen := make(map[string]bool)

	for _, dir := range l.Dirs() {
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() || !IsDefinitionFile(d.Name()) || seen[path] {
				return nil
			}
			seen[path] = true

			name, err := filepath.Rel(l.Root, path)
			if err != nil {
				name = path
			}
			files = append(files, File{Name: filepath.ToSlash(name), Path: path})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
		}
	}

	return files, nil
}

// Read loads the content of files concurrently, preserving their order.
func Read(ctx context.Context, files []File) ([]document.Source, error) {
	sources := make([]document.Source, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(f.Path) //nolint:gosec // G304: path comes from Collect
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", f.Name, err)
			}
			sources[i] = document.Source{Name: f.Name, Content: content}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}

// Load collects and reads every document of the project.
func (l Layout) Load(ctx context.Context) ([]document.Source, error) {
	files, err := l.Collect()
	if err != nil {
		return nil, err
	}
	return Read(ctx, files)
}
