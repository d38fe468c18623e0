// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/agentstation/biorefs/pkg/constants"
	"github.com/agentstation/biorefs/pkg/sequences"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

var printer = message.NewPrinter(language.English)

// RecordsToTableData converts records to table format.
func RecordsToTableData(records []*sequences.Record, showDetails bool) Data {
	headers := []string{"ID", "Length", "Features", "Source"}
	align := []Align{AlignLeft, AlignRight, AlignRight, AlignLeft}
	if showDetails {
		headers = append(headers, "Sequence", "Description")
		align = append(align, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := []string{
			rec.ID,
			FormatLength(rec.Len()),
			strconv.Itoa(len(rec.Annotations.Features)),
			FormatSource(rec.Source),
		}
		if showDetails {
			row = append(row, Preview(rec.Content, constants.TablePreviewLength), dashIfEmpty(rec.Description))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// FilesToTableData converts classified files to table format.
func FilesToTableData(files []sequences.ReferenceFile) Data {
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{f.Path, f.Format.String()})
	}
	return Data{Headers: []string{"Path", "Format"}, Rows: rows}
}

// FormatLength renders a residue count with thousands separators.
func FormatLength(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatSource renders where a record was parsed from.
func FormatSource(src sequences.ReferenceFile) string {
	if src.Path == "" {
		return "-"
	}
	return filepath.Base(src.Path) + " (" + src.Format.String() + ")"
}

// Preview shortens sequence content to max letters.
func Preview(c sequences.Content, max int) string {
	if !c.IsKnown() {
		return "-"
	}
	s := c.String()
	if max > 3 && len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

func dashIfEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
