package embed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Executor runs the embedding pipeline on a configuration and blocks
// until it is finished.
type Executor interface {
	Execute(ctx context.Context, cfg Config) error
}

// ExecutorFunc lets an ordinary function be an Executor.
type ExecutorFunc func(ctx context.Context, cfg Config) error

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, cfg Config) error { return f(ctx, cfg) }

// DefaultCommand is the bio_embeddings command line tool. It takes the
// path to a configuration file as its only argument.
const DefaultCommand = "bio_embeddings"

// CommandExecutor runs the pipeline as an external program. The
// configuration is written to a temporary YAML file, whose name is
// the last argument on the command line.
type CommandExecutor struct {
	Path   string   // program to run, DefaultCommand if empty
	Args   []string // put before the config file name
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
}

// Execute writes cfg and runs the program. A non-zero exit comes back
// as an *exec.ExitError, wrapped with the command name.
func (c *CommandExecutor) Execute(ctx context.Context, cfg Config) (err error) {
	path := c.Path
	if path == "" {
		path = DefaultCommand
	}
	log := c.Logger
	if log == nil {
		log = zap.NewNop()
	}
	b, err := yaml.Marshal(map[string]any(cfg))
	if err != nil {
		return fmt.Errorf("encoding pipeline config: %w", err)
	}
	dir, err := os.MkdirTemp("", "embedsub-cfg")
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, os.RemoveAll(dir)) }()
	cfgFname := filepath.Join(dir, "pipeline.yml")
	if err := os.WriteFile(cfgFname, b, 0o600); err != nil {
		return err
	}

	args := append(append([]string(nil), c.Args...), cfgFname)
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	log.Debug("running pipeline", zap.String("cmd", path), zap.Strings("args", args))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Invoke hands the pipeline a copy of cfg that reads its sequences
// from seqFname. Whatever the executor returns is returned as it is.
func Invoke(ctx context.Context, ex Executor, cfg Config, seqFname string) error {
	out, err := cfg.WithSequencesFile(seqFname)
	if err != nil {
		return err
	}
	return ex.Execute(ctx, out)
}
