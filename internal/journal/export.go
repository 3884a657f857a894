// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// WriteYAML writes entries to w as a YAML sequence.
func WriteYAML(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteJSON writes entries to w as an indented JSON array.
func WriteJSON(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
