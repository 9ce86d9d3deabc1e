// Package manifest loads the optional YAML file that adjusts a migration run
// without code changes: where the exports live, what each file is called,
// and which entity types to load.
//
//	dir: ./exports
//	only: [businesses, offers]
//	files:
//	  offers: "Offers (3).csv"
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is the decoded manifest file.
type Manifest struct {
	// Dir holds the export files. Relative paths resolve against the
	// manifest's own directory. Empty keeps the configured directory.
	Dir string `yaml:"dir"`

	// Only restricts the run to these entity keys.
	Only []string `yaml:"only,omitempty"`

	// Files maps entity keys to export file names.
	Files map[string]string `yaml:"files,omitempty"`
}

// Load reads and validates the manifest at path against the known entity keys.
func Load(path string, known []string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	m, err := Parse(data, known)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	if m.Dir != "" && !filepath.IsAbs(m.Dir) {
		m.Dir = filepath.Join(filepath.Dir(path), m.Dir)
	}
	return m, nil
}

// Parse decodes a manifest document. Unknown fields, unknown entity keys and
// empty file names are reported together in one error. YAML syntax errors
// stop the parse on their own.
func Parse(data []byte, known []string) (*Manifest, error) {
	var m Manifest
	var errs []string

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		// Type errors, unknown fields included, leave the rest decoded.
		var typeErr *yaml.TypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
		errs = append(errs, typeErr.Errors...)
	}

	if err := m.validate(known, errs); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate(known []string, errs []string) error {
	valid := make(map[string]bool, len(known))
	for _, k := range known {
		valid[k] = true
	}

	for _, k := range m.Only {
		if !valid[k] {
			errs = append(errs, fmt.Sprintf("only: unknown entity %q", k))
		}
	}

	keys := make([]string, 0, len(m.Files))
	for k := range m.Files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !valid[k] {
			errs = append(errs, fmt.Sprintf("files: unknown entity %q", k))
		} else if strings.TrimSpace(m.Files[k]) == "" {
			errs = append(errs, fmt.Sprintf("files: empty file name for %q", k))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid manifest:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
