// Package export renders member listings as CSV. Column definitions and
// named column profiles live in an embedded YAML registry.
package export

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Column pairs a CSV header label with the member field it renders.
type Column struct {
	Label string `yaml:"label"`
	Field string `yaml:"field"`
}

type profileDef struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
}

type registryFile struct {
	Columns  []Column     `yaml:"columns"`
	Profiles []profileDef `yaml:"profiles"`
}

// Registry resolves column labels and named profiles to column lists.
type Registry struct {
	byLabel  map[string]Column
	profiles map[string][]Column
	mu       sync.RWMutex
}

// NewRegistry loads the embedded column registry.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/columns.yaml")
	if err != nil {
		return nil, fmt.Errorf("read column registry: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal column registry: %w", err)
	}

	r := &Registry{
		byLabel:  make(map[string]Column, len(file.Columns)),
		profiles: make(map[string][]Column, len(file.Profiles)),
	}
	for _, col := range file.Columns {
		r.byLabel[col.Label] = col
	}
	for _, p := range file.Profiles {
		cols, err := r.resolve(p.Columns)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", p.Name, err)
		}
		r.profiles[p.Name] = cols
	}

	return r, nil
}

func (r *Registry) resolve(labels []string) ([]Column, error) {
	cols := make([]Column, 0, len(labels))
	for _, label := range labels {
		col, ok := r.byLabel[label]
		if !ok {
			return nil, fmt.Errorf("unknown column %q", label)
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// Profile returns the columns of a named profile.
func (r *Registry) Profile(name string) ([]Column, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cols, ok := r.profiles[name]
	if !ok {
		return nil, fmt.Errorf("unknown export profile %q", name)
	}
	return cols, nil
}

// Columns resolves an explicit list of column labels.
func (r *Registry) Columns(labels []string) ([]Column, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.resolve(labels)
}
