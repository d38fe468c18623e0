package output

import (
	"io"

	"github.com/agentstation/biorefs/internal/cmd/table"
	"github.com/agentstation/biorefs/pkg/save"
	"github.com/agentstation/biorefs/pkg/sequences"
)

// FormatRecords writes records to w in format. width applies to FASTA output.
func FormatRecords(w io.Writer, records []*sequences.Record, format Format, width int) error {
	switch format {
	case FormatFasta:
		return (&FastaFormatter{Width: width}).Format(w, records)
	case FormatJSON, FormatYAML:
		return NewFormatter(format).Format(w, save.Views(records))
	default:
		td := table.RecordsToTableData(records, format == FormatWide)
		return NewFormatter(format).Format(w, fromTable(td))
	}
}

// FormatFiles writes classified files to w in format.
func FormatFiles(w io.Writer, files []sequences.ReferenceFile, format Format) error {
	switch format {
	case FormatJSON, FormatYAML:
		return NewFormatter(format).Format(w, files)
	case FormatFasta:
		// files carry no residues
		return NewFormatter(FormatTable).Format(w, fromTable(table.FilesToTableData(files)))
	default:
		return NewFormatter(format).Format(w, fromTable(table.FilesToTableData(files)))
	}
}

func fromTable(td table.Data) Data {
	return Data{
		Headers:         td.Headers,
		Rows:            td.Rows,
		ColumnAlignment: td.ColumnAlignment,
	}
}
