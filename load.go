package biorefs

import (
	"context"
	"fmt"

	"github.com/agentstation/biorefs/pkg/errors"
	"github.com/agentstation/biorefs/pkg/formats"
	"github.com/agentstation/biorefs/pkg/logging"
	"github.com/agentstation/biorefs/pkg/parsers"
	"github.com/agentstation/biorefs/pkg/reconciler"
	"github.com/agentstation/biorefs/pkg/sequences"
)

// Load parses and reconciles the reference files at paths.
//
// Every path must be unique and carry a recognized extension; both are
// checked before any file is opened. FASTA files are read first to build the
// sequence index, then GenBank and GFF files are read and their records
// without residues are filled in from the index.
func (l *loader) Load(ctx context.Context, paths ...string) (*reconciler.Result, error) {
	ctx = logging.WithOperation(ctx, "load_references")
	logger := logging.FromContext(ctx)

	// Step 1: Validate and classify every path up front
	files, err := classifyPaths(paths)
	if err != nil {
		return nil, fmt.Errorf("load references: %w", err)
	}

	// Step 2: Index sequence-only files
	index := reconciler.NewFastaIndex()
	for _, file := range files {
		if file.Format != sequences.FormatFasta {
			continue
		}
		records, err := l.parse(ctx, file)
		if err != nil {
			return nil, fmt.Errorf("load references: %w", err)
		}
		for _, rec := range records {
			if err := index.Add(rec); err != nil {
				return nil, fmt.Errorf("load references: %w", err)
			}
		}
	}

	// Step 3: Collect annotated records
	var annotated []*sequences.Record
	for _, file := range files {
		if !file.Format.IsAnnotated() {
			continue
		}
		records, err := l.parse(ctx, file)
		if err != nil {
			return nil, fmt.Errorf("load references: %w", err)
		}
		annotated = append(annotated, records...)
	}

	// Step 4: Reconcile
	opts := append([]reconciler.Option{
		reconciler.WithAttachHook(l.hooks.triggerSequenceAttached),
	}, l.config.reconcilerOptions...)
	r, err := reconciler.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("load references: %w", err)
	}
	result, err := r.Reconcile(ctx, reconciler.Input{
		Paths:     paths,
		Annotated: annotated,
		Index:     index,
	})
	if err != nil {
		return nil, fmt.Errorf("load references: %w", err)
	}

	for _, file := range files {
		result.Metadata.Stats.FilesByFormat[file.Format.String()]++
	}

	logger.Info().
		Int("files", len(files)).
		Int("records", len(result.Records)).
		Int("attached", result.Metadata.Stats.Attached).
		Int("leftover", result.Metadata.Stats.Leftover).
		Dur("duration", result.Metadata.Duration).
		Msg("Loaded references")

	return result, nil
}

// Classify validates paths and reports the format of each.
func (l *loader) Classify(paths ...string) ([]sequences.ReferenceFile, error) {
	files, err := classifyPaths(paths)
	if err != nil {
		return nil, fmt.Errorf("classify references: %w", err)
	}
	return files, nil
}

func classifyPaths(paths []string) ([]sequences.ReferenceFile, error) {
	if err := validatePaths(paths); err != nil {
		return nil, err
	}

	files := make([]sequences.ReferenceFile, 0, len(paths))
	for _, path := range paths {
		file, err := formats.ClassifyFile(path)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

// parse runs the registered parser for file and fires the parsed hooks.
func (l *loader) parse(ctx context.Context, file sequences.ReferenceFile) ([]*sequences.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := l.registry.Get(file.Format)
	if err != nil {
		return nil, err
	}

	fctx := logging.WithFormat(logging.WithPath(ctx, file.Path), file.Format.String())
	records, err := parsers.Run(fctx, p, file)
	if err != nil {
		return nil, err
	}
	l.hooks.triggerFileParsed(file, records)
	return records, nil
}

// validatePaths rejects empty paths and paths given more than once.
func validatePaths(paths []string) error {
	counts := make(map[string]int, len(paths))
	for i, path := range paths {
		if path == "" {
			return &errors.ValidationError{
				Field:   fmt.Sprintf("paths[%d]", i),
				Value:   path,
				Message: "path cannot be empty",
			}
		}
		counts[path]++
	}
	if len(counts) == len(paths) {
		return nil
	}
	for _, path := range paths {
		if counts[path] > 1 {
			return &errors.DuplicatePathError{Path: path, Count: counts[path]}
		}
	}
	return nil
}
