package app

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case outputJSON, outputYAML:
		return nil
	default:
		return errors.Errorf("unsupported output format %q (use json or yaml)", format)
	}
}

// writeOutput renders data in the requested format. Everything goes through
// JSON first so both formats use the API's field names.
func writeOutput(w io.Writer, format string, data any) error {
	raw, ok := data.(json.RawMessage)
	if !ok {
		b, err := json.Marshal(data)
		if err != nil {
			return errors.Wrap(err, "encoding output")
		}
		raw = b
	}
	if len(raw) == 0 {
		return nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		// Not JSON; print as received.
		_, err := w.Write(append(raw, '\n'))
		return err
	}

	if format == outputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return writeJSON(w, v)
}

// writeJSON encodes data as indented JSON.
func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
