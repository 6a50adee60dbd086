package versioncheck

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// The baseline is the caller-persisted record of known-good fingerprints: a
// YAML mapping from schema name to fingerprint string. This package only
// parses and encodes it; storing it next to the consuming project's tests
// is the caller's job.

// ParseBaseline decodes a baseline mapping from YAML.
func ParseBaseline(data []byte) (map[string]string, error) {
	baseline := make(map[string]string)
	if err := yaml.Unmarshal(data, &baseline); err != nil {
		return nil, fmt.Errorf("versioncheck: parse baseline: %w", err)
	}
	return baseline, nil
}

// LoadBaseline reads and decodes a baseline mapping from the provided
// filesystem.
func LoadBaseline(fsys fs.FS, path string) (map[string]string, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("versioncheck: load baseline %s: %w", path, err)
	}
	return ParseBaseline(data)
}

// EncodeBaseline renders a fingerprint mapping as YAML, keys sorted.
func EncodeBaseline(hashes map[string]string) ([]byte, error) {
	data, err := yaml.Marshal(hashes)
	if err != nil {
		return nil, fmt.Errorf("versioncheck: encode baseline: %w", err)
	}
	return data, nil
}
