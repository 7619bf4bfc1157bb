package seq_test

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrew-torda/embedsub/pkg/brokenio"
	"github.com/andrew-torda/embedsub/pkg/seq"
	"github.com/andrew-torda/embedsub/pkg/seq/common"
)

// Put funny characters into the comment lines
var trickyComments = []string{
	"a☺b☻c☹d",
	">>",
	"",
	" a comment can end in an umlautÜ",
}

func readString(t *testing.T, s string) []seq.Seq {
	t.Helper()
	seqs, err := seq.ReadAll(seq.NewReader(strings.NewReader(s)))
	require.NoError(t, err)
	return seqs
}

// TestComment is to check that comments are read exactly, correctly
func TestComment(t *testing.T) {
	c0 := "testcomment no space"
	c1 := " testcomment with space at start"
	s := "aaa\n"
	seqs := readString(t, ">"+c0+"\n"+s+">"+c1+"\n"+s)
	require.Len(t, seqs, 2)
	assert.Equal(t, c0, seqs[0].GetCmmt())
	assert.Equal(t, c1, seqs[1].GetCmmt())
	assert.Equal(t, "testcomment", seqs[0].ID())
	assert.Equal(t, "testcomment", seqs[1].ID())
}

// TestDiffLen checks if we can read sequences of different lengths
// spread over lines with white space in them.
func TestDiffLen(t *testing.T) {
	s := ">s1\na\n> s2\na a\n\n>s3\r\naa\r\n a\t\n>s4\n"
	seqs := readString(t, s)
	require.Len(t, seqs, 4)
	assert.Equal(t, "a", string(seqs[0].GetSeq()))
	assert.Equal(t, "aa", string(seqs[1].GetSeq()))
	assert.Equal(t, "aaa", string(seqs[2].GetSeq()))
	assert.Equal(t, 0, seqs[3].Len())
	assert.Equal(t, "s3", seqs[2].ID())
}

// TestDiffLenLong has sequences on single lines much longer than the
// reader's buffer.
func TestDiffLenLong(t *testing.T) {
	ll := []int{10000, 20000, 50000}
	s := ">\n" + strings.Repeat("a", ll[0]) + "\n> s2\n" + strings.Repeat("c", ll[1]) +
		"\n> s3\n" + strings.Repeat("d", ll[2])
	seqs := readString(t, s)
	require.Len(t, seqs, 3)
	for i, l := range ll {
		assert.Equal(t, l, seqs[i].Len())
	}
	assert.Equal(t, "", seqs[0].ID())
}

func TestLeadingBlankLines(t *testing.T) {
	seqs := readString(t, "\n  \n>x\nMKV\n")
	require.Len(t, seqs, 1)
	assert.Equal(t, "MKV", string(seqs[0].GetSeq()))
}

func TestDataBeforeHeader(t *testing.T) {
	r := seq.NewReader(strings.NewReader("\nMKV\n>x\nMKV\n"))
	_, err := r.Next()
	require.ErrorIs(t, err, seq.ErrParse)
	assert.Contains(t, err.Error(), "line 2")
	_, err = r.Next() // the error sticks
	require.ErrorIs(t, err, seq.ErrParse)
}

func TestEmptyInput(t *testing.T) {
	r := seq.NewReader(strings.NewReader(""))
	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

// TestReadError breaks the input part way through a record. The error
// must come back, not a short record.
func TestReadError(t *testing.T) {
	src := ">a\n" + strings.Repeat("ACDEFGHIKL\n", 50) + ">b\nMKV\n"
	r := brokenio.NewReader(strings.NewReader(src), 1)
	r.SetFailAfter(200)
	seqs, err := seq.ReadAll(seq.NewReader(r))
	require.ErrorIs(t, err, brokenio.ErrBroken)
	assert.Empty(t, seqs)
}

func TestWriteError(t *testing.T) {
	w := brokenio.NewWriter(io.Discard, 10)
	err := seq.WriteFasta(w, seq.Str2Seqs([]string{strings.Repeat("A", 100)}))
	assert.ErrorIs(t, err, brokenio.ErrBroken)
}

func TestOpenNotFound(t *testing.T) {
	_, err := seq.Open(filepath.Join(t.TempDir(), "nothing.fa"))
	require.ErrorIs(t, err, seq.ErrNotFound)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOpenEmptyFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "empty.fa")
	require.NoError(t, os.WriteFile(fname, nil, 0o644))
	f, err := seq.Open(fname)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.Next()
	assert.Equal(t, io.EOF, err)
}

func TestOpenDirectory(t *testing.T) {
	_, err := seq.Open(t.TempDir())
	require.ErrorIs(t, err, seq.ErrParse)
}

// TestMappedSurvivesClose checks that records are copied out of the
// mapping.
func TestMappedSurvivesClose(t *testing.T) {
	fname, err := common.WrtTemp(">a first\nMKVL\nAG\n>b\nWW")
	require.NoError(t, err)
	defer os.Remove(fname)

	f, err := seq.Open(fname)
	require.NoError(t, err)
	s1, err := f.Next()
	require.NoError(t, err)
	s2, err := f.Next()
	require.NoError(t, err)
	_, err = f.Next()
	require.Equal(t, io.EOF, err)
	require.NoError(t, f.Close())

	assert.Equal(t, "MKVLAG", string(s1.GetSeq()))
	assert.Equal(t, "a first", s1.GetCmmt())
	assert.Equal(t, "WW", string(s2.GetSeq()))
}

// TestRoundTrip writes sequences with tricky comments and long
// residue strings, then reads them back from the mapped file.
func TestRoundTrip(t *testing.T) {
	lengths := []int{1, 59, 60, 61, 1000}
	var want []seq.Seq
	for i, l := range lengths {
		cmmt := trickyComments[i%len(trickyComments)]
		want = append(want, seq.New(cmmt, bytes.Repeat([]byte("ACDEFGHIKLMNPQRSTVWY"), l)[:l]))
	}
	want = append(want, seq.New("empty one", nil))

	fname := filepath.Join(t.TempDir(), "out.fa")
	require.NoError(t, seq.WriteToF(fname, want))
	got, err := seq.Readfile(fname)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].GetCmmt(), got[i].GetCmmt())
		assert.Equal(t, want[i].ID(), got[i].ID())
		assert.Equal(t, string(want[i].GetSeq()), string(got[i].GetSeq()))
	}
}

func TestWriteFastaLineWidth(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, seq.WriteFasta(&sb, seq.Str2Seqs([]string{strings.Repeat("A", 130)})))
	lines := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, ">s0", lines[0])
	assert.Len(t, lines[1], 60)
	assert.Len(t, lines[2], 60)
	assert.Len(t, lines[3], 10)
}

func TestStr2Seqs(t *testing.T) {
	seqs := seq.Str2Seqs([]string{"AA", "C"}, "p")
	require.Len(t, seqs, 2)
	assert.Equal(t, "p1", seqs[1].ID())
	assert.Equal(t, ">p0\nAA", seqs[0].String())
}
