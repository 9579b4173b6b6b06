package sparsepack

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unpackToTempFile(t *testing.T, archive []byte, opts ...Option) (string, int64, int64, error) {
	t.Helper()
	name := filepath.Join(t.TempDir(), "unpacked.bin")
	f, err := os.Create(name)
	require.NoError(t, err)
	defer f.Close()

	written, skipped, err := Unpack(f, bytes.NewReader(archive), opts...)
	return name, written, skipped, err
}

// archiveWith wraps a raw record body in a valid header and zstd stream,
// for tests that need malformed record contents.
func archiveWith(t *testing.T, body []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString(Magic)
	buf.WriteByte(Version)

	zw, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = zw.Write(body)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func record(tag byte, size uint64, payload []byte) []byte {
	b := make([]byte, 9, 9+len(payload))
	b[0] = tag
	binary.BigEndian.PutUint64(b[1:], size)
	return append(b, payload...)
}

func TestPackUnpack_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
	}{
		{name: "empty", src: []byte{}},
		{name: "data only", src: []byte("plain content, no holes")},
		{name: "holes only", src: make([]byte, 200_000)},
		{name: "leading hole", src: append(make([]byte, 70_000), []byte("tail")...)},
		{name: "trailing hole", src: append([]byte("head"), make([]byte, 70_000)...)},
		{name: "hole between data", src: bytes.Join([][]byte{[]byte("head"), []byte("tail")}, make([]byte, 130_000))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var archive bytes.Buffer
			data, holes, err := Pack(&archive, bytes.NewReader(tt.src))
			require.NoError(t, err)
			require.Equal(t, int64(len(tt.src)), data+holes)

			name, written, skipped, err := unpackToTempFile(t, archive.Bytes())
			require.NoError(t, err)

			content, err := os.ReadFile(name)
			require.NoError(t, err)
			require.True(t, bytes.Equal(tt.src, content), "content mismatch after unpack")
			assert.Equal(t, data, written)
			assert.Equal(t, holes, skipped)
		})
	}
}

func TestPack_ArchiveRecognizableWithoutDecoder(t *testing.T) {
	var archive bytes.Buffer
	_, _, err := Pack(&archive, bytes.NewReader([]byte("abc")))
	require.NoError(t, err)

	require.GreaterOrEqual(t, archive.Len(), len(Magic)+1)
	assert.Equal(t, []byte(Magic), archive.Bytes()[:len(Magic)])
	assert.Equal(t, byte(Version), archive.Bytes()[len(Magic)])
}

func TestPack_ShrinksSparseInput(t *testing.T) {
	src := make([]byte, 4_000_000)
	copy(src, "a little data up front")

	var archive bytes.Buffer
	data, holes, err := Pack(&archive, bytes.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, int64(22), data)
	assert.Equal(t, int64(len(src)-22), holes)
	// Holes are stored as 9-byte records, so the archive stays tiny.
	assert.Less(t, archive.Len(), 4096)
}

func TestPack_CustomLevelRoundTrips(t *testing.T) {
	src := bytes.Repeat([]byte("compress me "), 10_000)

	var archive bytes.Buffer
	_, _, err := Pack(&archive, bytes.NewReader(src), WithLevel(9))
	require.NoError(t, err)

	name, _, _, err := unpackToTempFile(t, archive.Bytes())
	require.NoError(t, err)

	content, err := os.ReadFile(name)
	require.NoError(t, err)
	require.True(t, bytes.Equal(src, content))
}

func TestUnpack_TrailingHoleRestoresLength(t *testing.T) {
	src := append([]byte("head"), make([]byte, 100_000)...)

	var archive bytes.Buffer
	_, _, err := Pack(&archive, bytes.NewReader(src))
	require.NoError(t, err)

	name, _, _, err := unpackToTempFile(t, archive.Bytes())
	require.NoError(t, err)

	info, err := os.Stat(name)
	require.NoError(t, err)
	assert.Equal(t, int64(len(src)), info.Size())
}

func TestUnpack_RejectsBadMagic(t *testing.T) {
	archive := archiveWith(t, nil)
	archive[0] = 'X'

	_, _, _, err := unpackToTempFile(t, archive)
	require.ErrorContains(t, err, "bad magic")
}

func TestUnpack_RejectsUnknownVersion(t *testing.T) {
	archive := archiveWith(t, nil)
	archive[len(Magic)] = 99

	_, _, _, err := unpackToTempFile(t, archive)
	require.ErrorContains(t, err, "unsupported archive version 99")
}

func TestUnpack_RejectsTruncatedHeader(t *testing.T) {
	_, _, _, err := unpackToTempFile(t, []byte(Magic[:4]))
	require.ErrorContains(t, err, "reading archive header")
}

func TestUnpack_RejectsUnknownTag(t *testing.T) {
	archive := archiveWith(t, record('x', 4, []byte("oops")))

	_, _, _, err := unpackToTempFile(t, archive)
	require.ErrorContains(t, err, "unknown record tag")
}

func TestUnpack_RejectsTruncatedDataRecord(t *testing.T) {
	// Promises ten payload bytes, delivers four.
	archive := archiveWith(t, record(tagData, 10, []byte("stub")))

	_, _, _, err := unpackToTempFile(t, archive)
	require.ErrorContains(t, err, "truncated data record")
}

func TestUnpack_RejectsTruncatedRecordHeader(t *testing.T) {
	// A lone tag byte with no length after it.
	archive := archiveWith(t, []byte{tagData})

	_, _, _, err := unpackToTempFile(t, archive)
	require.ErrorContains(t, err, "truncated record header")
}

func TestUnpack_KeepsRegionsSplitByScanBuffer(t *testing.T) {
	src := []byte{0, 0, 0, 0, 0, 0, 1, 2, 3, 4, 5}

	var archive bytes.Buffer
	data, holes, err := Pack(&archive, bytes.NewReader(src), WithBufferSize(4))
	require.NoError(t, err)
	require.Equal(t, int64(5), data)
	require.Equal(t, int64(6), holes)

	name, _, _, err := unpackToTempFile(t, archive.Bytes())
	require.NoError(t, err)

	content, err := os.ReadFile(name)
	require.NoError(t, err)
	require.Equal(t, src, content)
}
