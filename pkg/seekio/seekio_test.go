package seekio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempFile(t *testing.T, content []byte) *os.File {
	t.Helper()
	name := filepath.Join(t.TempDir(), "seekio.bin")
	require.NoError(t, os.WriteFile(name, content, 0o666))
	f, err := os.OpenFile(name, os.O_RDWR, 0)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestRun_WriteSeekRead(t *testing.T) {
	f := tempFile(t, nil)
	var out bytes.Buffer

	err := Run(f, []string{"whello", "s0", "r5", "R5"}, &out)
	require.NoError(t, err)

	want := "whello: wrote 5 bytes\n" +
		"s0: seek succeeded\n" +
		"r5: hello\n" +
		"R5: end-of-file\n"
	require.Equal(t, want, out.String())
}

func TestRun_HexDisplay(t *testing.T) {
	f := tempFile(t, []byte{0x68, 0x69, 0x00})
	var out bytes.Buffer

	require.NoError(t, Run(f, []string{"R3"}, &out))
	require.Equal(t, "R3: 68 69 00 \n", out.String())
}

func TestRun_TextDisplayMasksUnprintableBytes(t *testing.T) {
	f := tempFile(t, []byte{'a', 0x01, 'b', 0x00, 0x7f})
	var out bytes.Buffer

	require.NoError(t, Run(f, []string{"r5"}, &out))
	require.Equal(t, "r5: a?b??\n", out.String())
}

func TestRun_SeekPastEndCreatesHoleOnWrite(t *testing.T) {
	f := tempFile(t, nil)
	var out bytes.Buffer

	require.NoError(t, Run(f, []string{"s5", "wX"}, &out))
	require.NoError(t, f.Sync())

	content, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 'X'}, content)
}

func TestRun_ReadAtEndOfFile(t *testing.T) {
	f := tempFile(t, []byte("ab"))
	var out bytes.Buffer

	require.NoError(t, Run(f, []string{"s2", "r4"}, &out))
	require.Equal(t, "s2: seek succeeded\nr4: end-of-file\n", out.String())
}

func TestRun_RejectsMalformedOps(t *testing.T) {
	tests := []struct {
		name string
		ops  []string
		want string
	}{
		{"unknown op letter", []string{"x5"}, "must start with"},
		{"bad read length", []string{"rfoo"}, "invalid length"},
		{"negative read length", []string{"r-1"}, "invalid length"},
		{"bad seek offset", []string{"sabc"}, "invalid offset"},
		{"empty op", []string{""}, "must start with"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tempFile(t, []byte("data"))
			var out bytes.Buffer

			err := Run(f, tt.ops, &out)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRun_RejectsMalformedOpsBeforeAnyIO(t *testing.T) {
	f := tempFile(t, []byte("abcdef"))
	var out bytes.Buffer

	// The malformed op comes last, but parsing happens up front: no
	// operation output and no file changes.
	err := Run(f, []string{"w999", "zzz"}, &out)
	require.Error(t, err)
	require.Empty(t, out.String())

	content, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	require.Equal(t, []byte("abcdef"), content)
}
