// Package classify provides the classify command.
package classify

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/biorefs"
	"github.com/agentstation/biorefs/internal/cmd/output"
	"github.com/agentstation/biorefs/pkg/formats"
	"github.com/agentstation/biorefs/pkg/sequences"
)

// AppContext defines the interface that the classify command needs from the app.
type AppContext interface {
	Loader() (biorefs.Loader, error)
	OutputFormat() string
}

// NewCommand creates the classify command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var only string

	cmd := &cobra.Command{
		Use:     "classify paths...",
		GroupID: "core",
		Short:   "Report the format of reference files",
		Long: `Classify reports the format each path would be read as, based on its
extension. No file is opened. Every path is validated even when --format
limits the listing to one format.`,
		Example: `  biorefs classify genome.gbk genes.gff3 reads.fa
  biorefs classify --format gff *.gff3 *.fa`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			loader, err := app.Loader()
			if err != nil {
				return err
			}
			files, err := loader.Classify(args...)
			if err != nil {
				return err
			}
			if only != "" {
				want, err := formats.Parse(only)
				if err != nil {
					return err
				}
				files = filterFiles(files, want)
			}
			return output.FormatFiles(cmd.OutOrStdout(), files, output.DetectFormat(string(format)))
		},
	}

	cmd.Flags().StringVar(&only, "format", "", "Only list files of this format (fasta, genbank, gff or an extension)")
	return cmd
}

func filterFiles(files []sequences.ReferenceFile, format sequences.Format) []sequences.ReferenceFile {
	out := files[:0]
	for _, f := range files {
		if f.Format == format {
			out = append(out, f)
		}
	}
	return out
}
