package scratch_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrew-torda/embedsub/pkg/scratch"
	"github.com/andrew-torda/embedsub/pkg/seq"
)

func TestDoRemoves(t *testing.T) {
	var kept string
	err := scratch.Do("embedsub-test", func(dir string) error {
		kept = dir
		_, err := scratch.WriteSeqs(dir, seq.Str2Seqs([]string{"MKV"}))
		return err
	})
	require.NoError(t, err)
	assert.NoDirExists(t, kept)
}

func TestDoRemovesOnError(t *testing.T) {
	boom := errors.New("boom")
	var kept string
	err := scratch.Do("embedsub-test", func(dir string) error {
		kept = dir
		require.NoError(t, os.WriteFile(filepath.Join(dir, "x"), []byte("x"), 0o644))
		return boom
	})
	assert.Equal(t, boom, err, "the error from fn comes back as it is")
	assert.NoDirExists(t, kept)
}

func TestDoRemovesOnPanic(t *testing.T) {
	var kept string
	assert.Panics(t, func() {
		_ = scratch.Do("embedsub-test", func(dir string) error {
			kept = dir
			panic("oops")
		})
	})
	assert.NoDirExists(t, kept)
}

func TestWriteSeqsRoundTrip(t *testing.T) {
	want := seq.Str2Seqs([]string{"MKVLAAGII", "WWW", "ACDEFGHIKLMNPQRSTVWYACDEFGHIKLMNPQRSTVWYACDEFGHIKLMNPQRSTVWYACDEF"}, "rec")
	dir := t.TempDir()
	fname, err := scratch.WriteSeqs(dir, want)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, scratch.SeqFname), fname)

	got, err := seq.Readfile(fname)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID(), got[i].ID())
		assert.Equal(t, string(want[i].GetSeq()), string(got[i].GetSeq()))
	}

	_, err = scratch.WriteSeqs(dir, want)
	assert.ErrorIs(t, err, scratch.ErrMaterialize, "an existing file is not overwritten")
}

func TestWriteSeqsFails(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("needs a directory we cannot write to")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	defer os.Chmod(dir, 0o700)
	_, err := scratch.WriteSeqs(dir, seq.Str2Seqs([]string{"MKV"}))
	assert.ErrorIs(t, err, scratch.ErrMaterialize)

	_, err = scratch.WriteSeqs(filepath.Join(dir, "missing"), nil)
	assert.ErrorIs(t, err, scratch.ErrMaterialize)
}
