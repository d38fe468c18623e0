// Package save writes reconciled records to files or writers.
package save

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/biorefs/pkg/constants"
	"github.com/agentstation/biorefs/pkg/errors"
	"github.com/agentstation/biorefs/pkg/parsers/fasta"
	"github.com/agentstation/biorefs/pkg/sequences"
)

// RecordView is the JSON/YAML rendering of a record.
type RecordView struct {
	ID          string                  `json:"id" yaml:"id"`
	Name        string                  `json:"name,omitempty" yaml:"name,omitempty"`
	Description string                  `json:"description,omitempty" yaml:"description,omitempty"`
	Length      int                     `json:"length" yaml:"length"`
	Sequence    string                  `json:"sequence,omitempty" yaml:"sequence,omitempty"`
	Source      sequences.ReferenceFile `json:"source" yaml:"source"`
	Annotations sequences.Annotations   `json:"annotations" yaml:"annotations"`
}

// Views converts records for structured output.
func Views(records []*sequences.Record) []RecordView {
	views := make([]RecordView, 0, len(records))
	for _, rec := range records {
		v := RecordView{
			ID:          rec.ID,
			Name:        rec.Name,
			Description: rec.Description,
			Length:      rec.Len(),
			Source:      rec.Source,
			Annotations: rec.Annotations,
		}
		if rec.Content.IsKnown() {
			v.Sequence = rec.Content.String()
		}
		views = append(views, v)
	}
	return views
}

// Records encodes records and writes them to the configured writer, or to
// the configured path. Parent directories of the path are created. The file
// is only replaced once encoding has succeeded.
func Records(records []*sequences.Record, opts ...Option) error {
	options := Defaults().Apply(opts...)
	if !options.Format().IsValid() {
		return errors.NewValidationError("format", options.Format(), "unsupported save format")
	}

	var buf bytes.Buffer
	if err := encode(&buf, records, options); err != nil {
		return err
	}

	if w := options.Writer(); w != nil {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return errors.WrapIO("write", "", err)
		}
		return nil
	}

	path := options.Path()
	if path == "" {
		return errors.NewValidationError("path", path, "a path or writer is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

func encode(w io.Writer, records []*sequences.Record, options Options) error {
	switch options.Format() {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Views(records))
	case FormatYAML:
		data, err := yaml.MarshalWithOptions(Views(records), yaml.Indent(2), yaml.IndentSequence(false))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fasta.Write(w, records, options.Width())
	}
}
