// Package manifest reads named command shortcuts from a package.json file.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
)

// Reader implements domain.ShortcutReader for package.json manifests.
type Reader struct{}

func New() *Reader { return &Reader{} }

type packageJSON struct {
	Scripts map[string]string `json:"scripts"`
}

// Shortcuts returns the "scripts" map. A manifest without scripts yields an
// empty map.
func (r *Reader) Shortcuts(manifestPath string) (map[string]string, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", manifestPath, err)
	}
	if pkg.Scripts == nil {
		pkg.Scripts = map[string]string{}
	}
	return pkg.Scripts, nil
}
