package resolver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadStaticFile reads a list of static clients. Files ending in .yaml or .yml
// are decoded as YAML, everything else as JSON.
func LoadStaticFile(path string) ([]Descriptor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read static clients: %w", err)
	}

	var clients []Descriptor

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &clients)
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		err = dec.Decode(&clients)
	}
	if err != nil {
		return nil, fmt.Errorf("decode static clients %s: %w", path, err)
	}

	return clients, nil
}
