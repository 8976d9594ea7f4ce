package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest lists the race files of a season
type Manifest struct {
	Name  string   `yaml:"name"`
	Races []string `yaml:"races"`
}

func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// Files returns the race files resolved against the manifest directory
func (m *Manifest) Files(manifestPath string) []string {
	dir := filepath.Dir(manifestPath)
	ret := make([]string, 0, len(m.Races))
	for _, r := range m.Races {
		if r == "" {
			continue
		}
		if !filepath.IsAbs(r) {
			r = filepath.Join(dir, r)
		}
		ret = append(ret, filepath.Clean(r))
	}
	return ret
}
