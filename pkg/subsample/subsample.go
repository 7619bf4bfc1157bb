// Package subsample picks a random subset of a sequence collection and
// runs the embedding pipeline on it.
//
// The steps are strictly one after the other: read, filter by length,
// sample, estimate cost, write the sample to a scratch file, run the
// pipeline. The scratch file is gone when Run returns, whatever happened.
package subsample

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andrew-torda/embedsub/pkg/embed"
	"github.com/andrew-torda/embedsub/pkg/numseq"
	"github.com/andrew-torda/embedsub/pkg/sample"
	"github.com/andrew-torda/embedsub/pkg/scratch"
	"github.com/andrew-torda/embedsub/pkg/seq"
	"github.com/andrew-torda/embedsub/pkg/seqcalc"
	"github.com/andrew-torda/embedsub/pkg/seqlen"
)

// DefaultScratchPrefix starts the name of every scratch directory.
const DefaultScratchPrefix = "embedsub-"

// Options are the choices passed in from the caller.
type Options struct {
	Executor      embed.Executor // runs the pipeline, needed unless DryRun
	Seed          *int64         // nil means a different sample every time
	Streaming     bool           // reservoir sample while reading
	DryRun        bool           // do everything except run the pipeline
	Logger        *zap.Logger
	ScratchPrefix string
}

// Result says what was done.
type Result struct {
	RunID       string
	NSource     int // records in the file, -1 if they could not be counted
	NRead       int
	NCandidates int // records inside the length window
	Sampled     []seq.Seq
	Cost        seqcalc.Cost
	SubsetPath  string // where the sample was written; removed by now
}

// Run samples the collection named in cfg and hands the pipeline a copy
// of cfg pointing at the sample. cfg is not changed. An error from the
// executor is returned as it is.
func Run(ctx context.Context, cfg embed.Config, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Executor == nil && !opts.DryRun {
		return nil, errors.New("subsample: no pipeline executor")
	}
	prefix := opts.ScratchPrefix
	if prefix == "" {
		prefix = DefaultScratchPrefix
	}
	gl, err := cfg.Globals()
	if err != nil {
		return nil, err
	}

	res := &Result{RunID: uuid.NewString(), NSource: -1}
	log = log.With(zap.String("run_id", res.RunID))
	if gl.Window.Empty() {
		log.Warn("length window lets no sequence through",
			zap.Int("min_len", gl.Window.Min), zap.Int("max_len", gl.Window.Max))
	}

	if err := pick(ctx, gl, opts, res, log); err != nil {
		return nil, err
	}

	res.Cost = seqcalc.Estimate(res.Sampled)
	log.Info(fmt.Sprintf("Total AA=%d.", res.Cost.TotalResidues), zap.Int("total_aa", res.Cost.TotalResidues))
	log.Info(fmt.Sprintf("Total per-AA embedding size=%gMB", res.Cost.EstimatedMB), zap.Float64("embedding_mb", res.Cost.EstimatedMB))
	if ce := log.Check(zap.DebugLevel, "residue composition"); ce != nil {
		ce.Write(zap.Stringer("composition", seqcalc.Composition(res.Sampled)))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	err = scratch.Do(prefix, func(dir string) error {
		fname, err := scratch.WriteSeqs(dir, res.Sampled)
		if err != nil {
			return err
		}
		res.SubsetPath = fname
		if opts.DryRun {
			log.Info("dry run, pipeline not started", zap.String("sequences_file", fname))
			return nil
		}
		log.Info("------ Starting pipeline execution...")
		if err := embed.Invoke(ctx, opts.Executor, cfg, fname); err != nil {
			return err
		}
		log.Info("------ Finished pipeline execution.")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// pick reads, filters and samples, filling in res.
func pick(ctx context.Context, gl embed.Globals, opts Options, res *Result, log *zap.Logger) error {
	f, err := seq.Open(gl.SequencesFile)
	if err != nil {
		return err
	}
	defer f.Close()
	// Second pass over the file, only for the log line below.
	if n, err := numseq.Count(gl.SequencesFile); err != nil {
		log.Warn("could not count sequences", zap.Error(err))
	} else {
		res.NSource = n
	}
	log.Info("reading sequences", zap.String("sequences_file", gl.SequencesFile), zap.Int("n_seq", res.NSource))

	rnd := sample.NewRand(opts.Seed)
	var keep func(seq.Seq) error
	var draw func() ([]seq.Seq, error)
	if opts.Streaming {
		rsv, err := sample.NewReservoir[seq.Seq](rnd, gl.MaxNSeq)
		if err != nil {
			return err
		}
		keep = func(s seq.Seq) error { rsv.Add(s); return nil }
		draw = func() ([]seq.Seq, error) { return rsv.Items(), nil }
	} else {
		var cands []seq.Seq
		keep = func(s seq.Seq) error { cands = append(cands, s); return nil }
		draw = func() ([]seq.Seq, error) { return sample.Sample(rnd, cands, gl.MaxNSeq) }
	}

	next := func() (seq.Seq, error) {
		if err := ctx.Err(); err != nil {
			return seq.Seq{}, err
		}
		return f.Next()
	}
	if res.NRead, res.NCandidates, err = seqlen.Filter(next, gl.Window, keep); err != nil {
		if ctx.Err() != nil {
			return err
		}
		return fmt.Errorf("%s: %w", gl.SequencesFile, err)
	}
	if res.NCandidates < gl.MaxNSeq {
		log.Info("fewer sequences than asked for pass the length filter, taking all of them",
			zap.Int("n_candidates", res.NCandidates), zap.Int("max_number_of_sequences", gl.MaxNSeq))
	}
	if res.Sampled, err = draw(); err != nil {
		return err
	}
	log.Debug("sampled", zap.Int("n_read", res.NRead), zap.Int("n_candidates", res.NCandidates),
		zap.Int("n_sampled", len(res.Sampled)))
	return nil
}
