// Package blockmap summarizes where the data lives inside a file: a bitmap
// with one bit per fixed-size block, plus region tallies from a content
// scan. The bitmap renders as braille characters, eight blocks per cell.
package blockmap

import (
	"io"

	"github.com/sparsetools/sparsecp/pkg/sparsefile"
)

// Map records which blocks of a byte stream contain data. The exported
// counters are filled in by Scan; adjacent regions of the same kind are
// counted once even when the scan buffer split them.
type Map struct {
	bits      []uint8
	blocks    int
	blockSize int64
	size      int64

	DataRegions int
	HoleRegions int
	DataBytes   int64
	HoleBytes   int64
}

// New returns a Map for a stream of the given size, sized so that the
// rendered form is at most cells characters wide. Block size is rounded up
// so the whole stream fits.
func New(size int64, cells int) *Map {
	if cells <= 0 {
		cells = 1
	}
	m := &Map{size: size}
	if size <= 0 {
		return m
	}
	maxBlocks := int64(cells) * 8
	m.blockSize = (size + maxBlocks - 1) / maxBlocks
	m.blocks = int((size + m.blockSize - 1) / m.blockSize)
	m.bits = make([]uint8, (m.blocks+7)/8)
	return m
}

// BlockSize returns the bytes covered by one bit.
func (m *Map) BlockSize() int64 { return m.blockSize }

// Blocks returns the number of blocks tracked.
func (m *Map) Blocks() int { return m.blocks }

// Mark flags every block overlapping [offset, offset+length) as holding data.
func (m *Map) Mark(offset, length int64) {
	if length <= 0 || m.blockSize <= 0 {
		return
	}
	first := offset / m.blockSize
	last := (offset + length - 1) / m.blockSize
	for b := first; b <= last; b++ {
		m.set(int(b))
	}
}

func (m *Map) set(idx int) {
	if idx < 0 || idx >= m.blocks {
		return
	}
	m.bits[idx/8] |= 1 << uint(idx%8)
}

// Occupied returns true if block idx holds any data bytes.
func (m *Map) Occupied(idx int) bool {
	if idx < 0 || idx >= m.blocks {
		return false
	}
	return (m.bits[idx/8]>>uint(idx%8))&1 == 1
}

// braillePattern returns the Unicode Braille Pattern character for a given
// byte mask.
func braillePattern(mask byte) rune {
	base := rune(0x2800)
	return base + rune(mask)
}

func (m *Map) String() string {
	res := make([]rune, 0, len(m.bits)+2)
	res = append(res, '[')
	for _, mask := range m.bits {
		res = append(res, braillePattern(mask))
	}
	res = append(res, ']')
	return string(res)
}

// Scan classifies src into data and hole regions, marking data blocks and
// accumulating the region tallies. size is the apparent length of src and
// cells bounds the rendered map width.
func Scan(src io.Reader, size int64, cells int) (*Map, error) {
	const (
		kindNone = iota
		kindHole
		kindData
	)

	m := New(size, cells)
	r := sparsefile.NewReader(src)
	var offset int64
	last := kindNone
	for {
		region, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if region.IsHole() {
			if last != kindHole {
				m.HoleRegions++
			}
			m.HoleBytes += region.Size()
			last = kindHole
		} else {
			if last != kindData {
				m.DataRegions++
			}
			m.DataBytes += region.Size()
			m.Mark(offset, region.Size())
			last = kindData
		}
		offset += region.Size()
	}
	return m, nil
}
