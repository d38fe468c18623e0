// Package manifest reads YAML files that list reference paths for a load.
//
// A manifest looks like:
//
//	paths:
//	  - genome.fasta
//	  - annotations/*.gb
//	exclude:
//	  - "*.draft.gb"
//
// Relative paths resolve against the manifest's directory. Entries with glob
// characters expand in sorted order. A directory entry expands to every file
// below it with a recognized reference extension, in lexical order. Exclude
// globs match base names and also prune directories.
package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/karrick/godirwalk"

	"github.com/agentstation/biorefs/internal/fileio"
	"github.com/agentstation/biorefs/internal/matcher"
	"github.com/agentstation/biorefs/pkg/errors"
	"github.com/agentstation/biorefs/pkg/formats"
	"github.com/agentstation/biorefs/pkg/logging"
	"github.com/agentstation/biorefs/pkg/sequences"
)

// Manifest lists reference files.
type Manifest struct {
	Paths   []string `yaml:"paths" json:"paths"`
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`

	// dir is the directory relative paths resolve against
	dir string
}

// Parse decodes manifest data. Relative paths resolve against dir.
func Parse(data []byte, dir string) (*Manifest, error) {
	var m Manifest
	if err := yaml.UnmarshalWithOptions(data, &m, yaml.Strict()); err != nil {
		return nil, errors.NewParseError("yaml", "", yaml.FormatError(err, false, false), err)
	}
	for i, p := range m.Paths {
		if strings.TrimSpace(p) == "" {
			return nil, errors.NewValidationError(fmt.Sprintf("paths[%d]", i), p, "path cannot be empty")
		}
	}
	m.dir = dir
	return &m, nil
}

// Load reads and parses the manifest at path.
func Load(ctx context.Context, path string) (*Manifest, error) {
	var m *Manifest
	err := fileio.With(ctx, path, func(data []byte) error {
		var err error
		m, err = Parse(data, filepath.Dir(path))
		if pe, ok := err.(*errors.ParseError); ok {
			pe.File = path
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}
	logging.FromContext(ctx).Debug().
		Str("manifest", path).
		Int("entries", len(m.Paths)).
		Msg("Loaded manifest")
	return m, nil
}

// Resolve expands the manifest into concrete paths in listed order.
// A glob that matches nothing is an error; a literal path is kept as is so
// that a missing file surfaces when the load opens it.
func (m *Manifest) Resolve() ([]string, error) {
	exclude, err := matcher.NewMultiMatcher(m.Exclude, matcher.Glob, &matcher.Options{BaseName: true})
	if err != nil {
		return nil, errors.NewValidationError("exclude", m.Exclude, err.Error())
	}

	var out []string
	for _, entry := range m.Paths {
		path := entry
		if !filepath.IsAbs(path) && m.dir != "" {
			path = filepath.Join(m.dir, path)
		}

		if !hasMeta(path) {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				found, err := walkDir(path, exclude)
				if err != nil {
					return nil, err
				}
				if len(found) == 0 {
					return nil, &errors.NotFoundError{Resource: "reference files in directory", ID: entry}
				}
				out = append(out, found...)
				continue
			}
			if !exclude.Match(path) {
				out = append(out, path)
			}
			continue
		}

		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, errors.NewValidationError("paths", entry, err.Error())
		}
		if len(matches) == 0 {
			return nil, &errors.NotFoundError{Resource: "reference files matching", ID: entry}
		}
		for _, match := range matches {
			if !exclude.Match(match) {
				out = append(out, match)
			}
		}
	}
	return out, nil
}

// walkDir lists reference files below root.
func walkDir(root string, exclude *matcher.MultiMatcher) ([]string, error) {
	var out []string
	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path != root && exclude.Match(path) {
				if de.IsDir() {
					return godirwalk.SkipThis
				}
				return nil
			}
			if de.IsDir() || formats.Classify(path) == sequences.FormatUnknown {
				return nil
			}
			out = append(out, path)
			return nil
		},
	})
	if err != nil {
		return nil, errors.WrapIO("walk", root, err)
	}
	return out, nil
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, `*?[`)
}
