// 15 Oct 2026
// embedsub takes a random subset of the sequences named in a
// bio_embeddings pipeline configuration and runs the pipeline on that
// subset only.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/andrew-torda/embedsub/pkg/embed"
	"github.com/andrew-torda/embedsub/pkg/logger"
	"github.com/andrew-torda/embedsub/pkg/seq/common"
	"github.com/andrew-torda/embedsub/pkg/subsample"
)

// usageError marks a mistake on the command line.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

func newRootCmd(v *viper.Viper, stdout, stderr io.Writer) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "embedsub [flags] /path/to/pipeline_definition.yml",
		Short: "Embeds random subset of a sequence file.",
		Long: `Embeds random subset of a sequence file.

The configuration's global section names the sequences (sequences_file).
Sequences whose length lies strictly between min_len (default 50) and
max_len (default 100) are candidates. Up to max_number_of_sequences
(default 250) of them are picked at random and the pipeline is run on
those alone. Every other setting goes to the pipeline unchanged.

Flags can also be set through the environment, for example
EMBEDSUB_SEED=7 or EMBEDSUB_EXECUTOR=/opt/bin/bio_embeddings.
EMBEDSUB_EXECUTOR_ARG is split at white space; an --executor-arg on
the command line replaces it.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError{fmt.Errorf("expected one configuration file, got %d arguments", len(args))}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			xargs, err := cmd.Flags().GetStringArray("executor-arg")
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("executor-arg") {
				xargs = v.GetStringSlice("executor-arg")
			}
			return runEmbed(cmd.Context(), v, args[0], xargs, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	f := cmd.Flags()
	f.Int64("seed", 0, "random number seed, for a reproducible sample")
	f.String("executor", embed.DefaultCommand, "pipeline program, given the config file as its last argument")
	f.StringArray("executor-arg", nil, "extra argument for the pipeline program, before the config file (repeatable)")
	f.Bool("streaming", false, "sample while reading, without holding all candidates in memory")
	f.Bool("dry-run", false, "pick and write the sample, but do not run the pipeline")
	f.String("log-level", "info", "debug, info, warn or error")
	f.String("log-format", "console", "console or json")

	v.SetEnvPrefix("EMBEDSUB")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(f); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}
	return cmd, nil
}

func runEmbed(ctx context.Context, v *viper.Viper, cfgFname string, xargs []string, stdout, stderr io.Writer) error {
	log, err := logger.New(logger.Config{
		Level:  v.GetString("log-level"),
		Format: v.GetString("log-format"),
		Out:    stderr,
	})
	if err != nil {
		return usageError{err}
	}
	defer log.Sync()

	cfg, err := embed.Load(cfgFname)
	if err != nil {
		return err
	}
	opts := subsample.Options{
		Executor: &embed.CommandExecutor{
			Path:   v.GetString("executor"),
			Args:   xargs,
			Stdout: stdout,
			Stderr: stderr,
			Logger: log,
		},
		Streaming: v.GetBool("streaming"),
		DryRun:    v.GetBool("dry-run"),
		Logger:    log,
	}
	if v.IsSet("seed") {
		s := v.GetInt64("seed")
		opts.Seed = &s
	}
	res, err := subsample.Run(ctx, cfg, opts)
	if err != nil {
		return err
	}
	log.Debug("done", zap.String("run_id", res.RunID), zap.Int("n_sampled", len(res.Sampled)))
	return nil
}

// mymain runs the command and turns the outcome into an exit status.
func mymain(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd, err := newRootCmd(viper.New(), stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "Fatal:", err)
		return common.ExitFailure
	}
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Fatal:", err)
		var uerr usageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(stderr, cmd.UsageString())
			return common.ExitUsageError
		}
		return common.ExitFailure
	}
	return common.ExitSuccess
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := mymain(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
