package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/openkraft/rulegate/internal/domain"
)

var skipDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
	".git":         true,
}

// FileScanner implements domain.InventoryScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan inventories projectPath. Directories named in exclusions, or in the
// built-in skip list, are pruned at any depth. Unreadable subdirectories are
// skipped; only an unreadable root is an error.
func (s *FileScanner) Scan(projectPath string, exclusions ...string) (*domain.Inventory, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", projectPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scanning %s: not a directory", projectPath)
	}

	// Merge extra excludes with built-in skip dirs.
	extraSkip := make(map[string]bool, len(exclusions))
	for _, p := range exclusions {
		extraSkip[strings.Trim(p, "/")] = true
	}

	inv := &domain.Inventory{Root: absPath}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == absPath {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == absPath {
			return nil
		}

		if d.IsDir() {
			if skipDirs[d.Name()] || extraSkip[d.Name()] {
				return filepath.SkipDir
			}
			rel, _ := filepath.Rel(absPath, path)
			inv.Dirs = append(inv.Dirs, filepath.ToSlash(rel))
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		rel, _ := filepath.Rel(absPath, path)
		rel = filepath.ToSlash(rel)
		inv.Files = append(inv.Files, domain.FileRecord{
			AbsPath:  path,
			RelPath:  rel,
			Ext:      filepath.Ext(d.Name()),
			Category: domain.CategorizeFile(rel),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", projectPath, err)
	}

	sort.Slice(inv.Files, func(i, j int) bool { return inv.Files[i].RelPath < inv.Files[j].RelPath })
	sort.Strings(inv.Dirs)
	return inv, nil
}
