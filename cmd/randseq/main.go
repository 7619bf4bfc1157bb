// 31 July 2020

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/embedsub/pkg/randseq"
	"github.com/andrew-torda/embedsub/pkg/seq/common"
)

const iseed int64 = 1637

func newCmd(stdout io.Writer) *cobra.Command {
	var args randseq.RandSeqArgs
	cmd := &cobra.Command{
		Use:           "randseq [flags] file nseq minlen maxlen",
		Short:         "Write random protein sequences in fasta format",
		Args:          cobra.ExactArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, pos []string) error {
			const emsg = "failed converting %s to a non-negative integer"
			var nums [3]int
			for i, s := range pos[1:] {
				n, err := strconv.ParseUint(s, 10, 31)
				if err != nil {
					return fmt.Errorf(emsg, s)
				}
				nums[i] = int(n)
			}
			args.Nseq, args.MinLen, args.MaxLen = nums[0], nums[1], nums[2]

			fname := pos[0]
			if fname == "-" || fname == "" {
				args.Wrtr = stdout
				return randseq.RandSeqMain(&args)
			}
			ft, err := os.Create(fname)
			if err != nil {
				return fmt.Errorf("file for output: %w", err)
			}
			args.Wrtr = ft
			if err := randseq.RandSeqMain(&args); err != nil {
				ft.Close()
				return err
			}
			return ft.Close()
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&args.Gaps, "gaps", "g", false, "put gaps in sequences")
	f.BoolVarP(&args.White, "white", "w", false, "add random white space")
	f.Int64VarP(&args.Iseed, "seed", "r", iseed, "random number seed")
	f.StringVarP(&args.Cmmt, "comment", "c", "random sequence", "comment after each identifier")
	return cmd
}

func main() {
	cmd := newCmd(os.Stdout)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(common.ExitFailure)
	}
	os.Exit(common.ExitSuccess)
}
