package structure

import (
	"path"
	"sort"
	"strings"

	"github.com/openkraft/rulegate/internal/domain"
)

// tree indexes the part of an inventory below the source root. Keys are
// relative to the source root; "" is the source root itself.
type tree struct {
	root     string
	dirs     map[string]bool
	files    map[string]domain.FileRecord
	children map[string][]string
	order    []string
}

func newTree(inv *domain.Inventory, sourceRoot string) *tree {
	t := &tree{
		root:     strings.Trim(sourceRoot, "/"),
		dirs:     map[string]bool{"": true},
		files:    make(map[string]domain.FileRecord),
		children: make(map[string][]string),
	}

	for _, d := range inv.Dirs {
		rel, ok := t.rel(d)
		if !ok || rel == "" {
			continue
		}
		t.dirs[rel] = true
		t.order = append(t.order, rel)
		parent := parentOf(rel)
		t.children[parent] = append(t.children[parent], path.Base(rel))
	}
	for _, f := range inv.Files {
		rel, ok := t.rel(f.RelPath)
		if !ok {
			continue
		}
		t.files[rel] = f
		parent := parentOf(rel)
		t.children[parent] = append(t.children[parent], path.Base(rel))
	}
	sort.Strings(t.order)
	return t
}

// rel converts a project-relative path to a source-root-relative one.
func (t *tree) rel(p string) (string, bool) {
	if t.root == "" || t.root == "." {
		return p, true
	}
	if p == t.root {
		return "", true
	}
	if strings.HasPrefix(p, t.root+"/") {
		return strings.TrimPrefix(p, t.root+"/"), true
	}
	return "", false
}

// display converts a source-root-relative path back to a project-relative one.
func (t *tree) display(rel string) string {
	if t.root == "" || t.root == "." {
		return rel
	}
	if rel == "" {
		return t.root
	}
	return t.root + "/" + rel
}

func (t *tree) hasFile(rel string) bool {
	_, ok := t.files[rel]
	return ok
}

func (t *tree) hasDir(rel string) bool { return t.dirs[rel] }

func (t *tree) empty(dir string) bool { return len(t.children[dir]) == 0 }

// filesUnder returns the files below dir at any depth, sorted by path.
func (t *tree) filesUnder(dir string) []string {
	prefix := dir + "/"
	if dir == "" {
		prefix = ""
	}
	var out []string
	for rel := range t.files {
		if strings.HasPrefix(rel, prefix) {
			out = append(out, rel)
		}
	}
	sort.Strings(out)
	return out
}

// directFiles returns the files directly inside dir, sorted by path.
func (t *tree) directFiles(dir string) []string {
	var out []string
	for _, rel := range t.filesUnder(dir) {
		if parentOf(rel) == dir {
			out = append(out, rel)
		}
	}
	return out
}

func parentOf(rel string) string {
	d := path.Dir(rel)
	if d == "." {
		return ""
	}
	return d
}

func join(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
