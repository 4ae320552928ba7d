package commands

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed all:templates
var templateFS embed.FS

// scaffoldedFile is one file of a project template, relative to the target
// directory with forward slashes.
type scaffoldedFile struct {
	Path    string
	Skipped bool
}

// copyTemplate writes the embedded template into targetDir. Existing files
// are kept unless force is set and are reported as skipped.
func copyTemplate(templateName, targetDir string, force bool) ([]scaffoldedFile, error) {
	root := path.Join("templates", templateName)
	var written []scaffoldedFile

	err := fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}

		rel := targetName(strings.TrimPrefix(p, root+"/"))
		target := filepath.Join(targetDir, filepath.FromSlash(rel))

		if d.IsDir() {
			return os.MkdirAll(target, 0750)
		}

		if !force {
			if _, err := os.Stat(target); err == nil {
				written = append(written, scaffoldedFile{Path: rel, Skipped: true})
				return nil
			} else if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}

		content, err := templateFS.ReadFile(p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, content, 0600); err != nil {
			return err
		}
		written = append(written, scaffoldedFile{Path: rel})
		return nil
	})

	return written, err
}

// targetName maps template file names to their on-disk names. Dotfiles are
// stored without the dot so they survive embedding.
func targetName(rel string) string {
	dir, base := path.Split(rel)
	if base == "gitignore" {
		return dir + ".gitignore"
	}
	return rel
}

// groupTemplateFiles splits files into config, cubes and views for display.
func groupTemplateFiles(files []scaffoldedFile) map[string][]scaffoldedFile {
	groups := make(map[string][]scaffoldedFile, 3)
	for _, f := range files {
		group := "config"
		if top, _, nested := strings.Cut(f.Path, "/"); nested && (top == "cubes" || top == "views") {
			group = top
		}
		groups[group] = append(groups[group], f)
	}
	return groups
}
