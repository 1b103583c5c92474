package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kalbasit/cdc"
)

type options struct {
	threshold  uint64
	bufferSize int
	summary    bool
	verbose    bool
}

// newRootCommand builds the cdcscan command. A nil logger is replaced by one
// configured from the --verbose flag.
func newRootCommand(logger *zap.Logger) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "cdcscan [file...]",
		Short: "Print the content-defined chunk boundaries of files.",
		Long: `Print the content-defined chunk boundaries of files.

Each file (or stdin, when no file or "-" is given) is split with the MII
run-counter algorithm: a chunk ends after --threshold consecutive bytes that
are each greater than the byte before them. One line is printed per chunk with
the file name, the chunk offset and the chunk length. With --summary only the
chunk count and size statistics are printed.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger
			if log == nil {
				var err error
				if log, err = newLogger(opts.verbose); err != nil {
					return errors.Wrap(err, "create logger")
				}
				defer log.Sync() //nolint:errcheck
			}

			if len(args) == 0 {
				args = []string{"-"}
			}

			s := &scanner{
				out:    cmd.OutOrStdout(),
				stdin:  cmd.InOrStdin(),
				opts:   []cdc.Option{cdc.WithThreshold(opts.threshold), cdc.WithBufferSize(opts.bufferSize)},
				detail: !opts.summary,
				log:    log,
			}

			for _, path := range args {
				if err := s.scanPath(path); err != nil {
					log.Error("scan failed", zap.String("path", path), zap.Error(err))

					return err
				}
			}

			return nil
		},
	}

	addFlags(cmd.Flags(), opts)

	return cmd
}

func addFlags(flags *pflag.FlagSet, opts *options) {
	flags.Uint64VarP(&opts.threshold, "threshold", "w", cdc.DefaultThreshold,
		"Number of consecutive increasing bytes that end a chunk. Larger values give larger chunks; 0 never cuts.")
	flags.IntVar(&opts.bufferSize, "buffer-size", cdc.DefaultBufferSize,
		"Initial read buffer size in bytes. The buffer grows when a chunk does not fit.")
	flags.BoolVar(&opts.summary, "summary", false, "Print only per-file chunk statistics.")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every chunk at debug level.")
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)

	return cfg.Build()
}
