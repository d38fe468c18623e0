package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/biorefs/pkg/constants"
)

// Execute runs the biorefs CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.CommandTimeout)
	defer cancel()

	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "biorefs",
		Short:   "Genomic reference file loader",
		Version: a.version,
		Long: `biorefs reads FASTA, GenBank and GFF reference files and reconciles them
into one set of sequence records.

Annotation records that carry no residues are completed from the FASTA
record with the same identifier and length.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	// Flags start empty so that only explicit values override config
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.biorefs.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("output", "o", "", "output format: table, wide, json, yaml, fasta, markdown")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("biorefs {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if configFile := mustGetString(cmd, "config"); configFile != "" {
		config, err := loadConfig(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		mustGetString(cmd, "output"),
		mustGetString(cmd, "log-level"),
	)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// ExitOnError prints err to stderr and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
