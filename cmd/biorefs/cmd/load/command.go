// Package load provides the load command.
package load

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/biorefs"
	"github.com/agentstation/biorefs/internal/cmd/output"
	"github.com/agentstation/biorefs/pkg/logging"
	"github.com/agentstation/biorefs/pkg/manifest"
	"github.com/agentstation/biorefs/pkg/save"
)

// AppContext defines the interface that the load command needs from the app.
type AppContext interface {
	Loader() (biorefs.Loader, error)
	Logger() *zerolog.Logger
	OutputFormat() string
	FastaWidth() int
	Manifest() string
}

// NewCommand creates the load command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var (
		manifestPath string
		savePath     string
		width        int
	)

	cmd := &cobra.Command{
		Use:     "load [paths...]",
		GroupID: "core",
		Short:   "Load and reconcile reference files",
		Long: `Load parses FASTA, GenBank and GFF files and reconciles them into one
set of records.

Annotated records without residues receive the sequence of the FASTA record
with the same ID and length. FASTA records that were not used are listed after
the annotated ones.`,
		Example: `  biorefs load genome.gb genome.fasta        # Attach FASTA to GenBank records
  biorefs load --manifest refs.yaml -o json   # Load files listed in a manifest
  biorefs load a.gff a.fa -o fasta --width 80 # Write reconciled FASTA
  biorefs load a.gb a.fa --save out/refs.json # Also save the records as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())

			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			format = output.DetectFormat(string(format))

			if manifestPath == "" {
				manifestPath = app.Manifest()
			}
			paths := args
			if manifestPath != "" {
				m, err := manifest.Load(ctx, manifestPath)
				if err != nil {
					return err
				}
				listed, err := m.Resolve()
				if err != nil {
					return fmt.Errorf("resolving manifest %s: %w", manifestPath, err)
				}
				paths = append(listed, args...)
			}

			loader, err := app.Loader()
			if err != nil {
				return err
			}
			result, err := loader.Load(ctx, paths...)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("width") {
				width = app.FastaWidth()
			}
			if savePath != "" {
				saveFormat, err := save.FormatForPath(savePath)
				if err != nil {
					return err
				}
				if err := save.Records(result.Records,
					save.WithPath(savePath),
					save.WithFormat(saveFormat),
					save.WithWidth(width),
				); err != nil {
					return err
				}
				app.Logger().Info().Str("path", savePath).Int("records", len(result.Records)).Msg("Saved records")
			}
			if err := output.FormatRecords(cmd.OutOrStdout(), result.Records, format, width); err != nil {
				return err
			}
			if format == output.FormatTable || format == output.FormatWide {
				fmt.Fprintln(cmd.ErrOrStderr(), result.Summary())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "YAML manifest listing reference paths")
	cmd.Flags().StringVar(&savePath, "save", "", "also write the records to a .fasta, .json or .yaml file")
	cmd.Flags().IntVar(&width, "width", 0, "residues per line for fasta output (default 60)")

	return cmd
}
