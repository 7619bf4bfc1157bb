package numseq_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrew-torda/embedsub/pkg/numseq"
	"github.com/andrew-torda/embedsub/pkg/randseq"
	"github.com/andrew-torda/embedsub/pkg/seq/common"
)

var smalltestArg = randseq.RandSeqArgs{
	Cmmt:   "test seq",
	Nseq:   10000,
	MinLen: 20,
	MaxLen: 2000,
	White:  true,
}

func makeTestData(t testing.TB) string {
	args := smalltestArg
	fname := filepath.Join(t.TempDir(), "rand.fa")
	f_tmp, err := os.Create(fname)
	require.NoError(t, err)
	defer f_tmp.Close()
	args.Wrtr = f_tmp
	require.NoError(t, randseq.RandSeqMain(&args))
	return fname
}

func TestCount(t *testing.T) {
	n, err := numseq.Count(makeTestData(t))
	require.NoError(t, err)
	assert.Equal(t, smalltestArg.Nseq, n)
}

func TestCountOddHeaders(t *testing.T) {
	fname, err := common.WrtTemp(">a>b>c\nAA\n>d\n\n>e")
	require.NoError(t, err)
	defer os.Remove(fname)
	n, err := numseq.Count(fname)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCountEmpty(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "empty.fa")
	require.NoError(t, os.WriteFile(fname, nil, 0o644))
	n, err := numseq.Count(fname)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCountMissing(t *testing.T) {
	_, err := numseq.Count(filepath.Join(t.TempDir(), "none.fa"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func BenchmarkCount(b *testing.B) {
	fname := makeTestData(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := numseq.Count(fname); err != nil {
			b.Fatal(err)
		}
	}
}
