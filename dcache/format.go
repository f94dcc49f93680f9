package dcache

import (
	"encoding/binary"
	"fmt"
)

// magic identifies a derangement-cache file; see the layout table in
// SPEC_FULL.md / spec.md §6.2.
var magic = [4]byte{'L', 'R', 'C', 'C'}

// version is the only cache format version this build knows how to read or
// write. Future additions (compressed derangements, extended indices) must
// bump this and refuse to load older/newer files rather than migrate them
// silently.
const version = uint32(1)

const (
	headerSize = 64
	reserved   = 32

	offMagic        = 0
	offVersion      = 4
	offN            = 8
	offCount        = 12
	offOffsetDerang = 16
	offOffsetSigns  = 20
	offOffsetPV     = 24
	offCRC32        = 28
	offReserved     = 32
)

// header mirrors the little-endian on-disk layout exactly; it is never used
// as an in-memory working structure beyond encode/decode.
type header struct {
	version            uint32
	n                  uint32
	count              uint32
	offsetDerangements uint32
	offsetSigns        uint32
	offsetPVIndex      uint32
	crc32              uint32
}

func (h header) encode() []byte {
	buf := make([]byte, headerSize)
	copy(buf[offMagic:], magic[:])
	binary.LittleEndian.PutUint32(buf[offVersion:], h.version)
	binary.LittleEndian.PutUint32(buf[offN:], h.n)
	binary.LittleEndian.PutUint32(buf[offCount:], h.count)
	binary.LittleEndian.PutUint32(buf[offOffsetDerang:], h.offsetDerangements)
	binary.LittleEndian.PutUint32(buf[offOffsetSigns:], h.offsetSigns)
	binary.LittleEndian.PutUint32(buf[offOffsetPV:], h.offsetPVIndex)
	binary.LittleEndian.PutUint32(buf[offCRC32:], h.crc32)
	// buf[offReserved:headerSize] stays zero.
	return buf
}

func decodeHeader(buf []byte) (header, error) {
	if len(buf) < headerSize {
		return header{}, fmt.Errorf("dcache: short header (%d bytes): %w", len(buf), ErrCorrupt)
	}
	if string(buf[offMagic:offMagic+4]) != string(magic[:]) {
		return header{}, fmt.Errorf("dcache: bad magic: %w", ErrCorrupt)
	}
	h := header{
		version:            binary.LittleEndian.Uint32(buf[offVersion:]),
		n:                  binary.LittleEndian.Uint32(buf[offN:]),
		count:              binary.LittleEndian.Uint32(buf[offCount:]),
		offsetDerangements: binary.LittleEndian.Uint32(buf[offOffsetDerang:]),
		offsetSigns:        binary.LittleEndian.Uint32(buf[offOffsetSigns:]),
		offsetPVIndex:      binary.LittleEndian.Uint32(buf[offOffsetPV:]),
		crc32:              binary.LittleEndian.Uint32(buf[offCRC32:]),
	}
	if h.version != version {
		return header{}, fmt.Errorf("dcache: version %d (want %d): %w", h.version, version, ErrUnsupportedVersion)
	}
	return h, nil
}

// pvWordsPerMask returns how many 8-byte words one position-value bitmask
// occupies for the given derangement count, matching bitset.Mask's word
// packing so the on-disk bytes can be reinterpreted directly.
func pvWordsPerMask(count int) int {
	return (count + 63) / 64
}
