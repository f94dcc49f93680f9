package dcache

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/ravgal/latinrect/derangement"
)

// FileName returns the canonical cache file name for dimension n, per
// spec.md §6.2: smart_derangements_n{n}.bin.
func FileName(n int) string {
	return fmt.Sprintf("smart_derangements_n%d.bin", n)
}

// Build constructs the derangement cache for n entirely in memory — it does
// not touch disk. Use BuildToDir to also persist it. Returns ErrTooLarge if
// n exceeds MaxN; the len(entries) > math.MaxUint32 check below is an
// additional defensive guard against the format's 32-bit count field, not
// the primary limit (MaxN is already chosen to stay under it).
func Build(n int) (*Cache, error) {
	buf, err := buildBytes(n)
	if err != nil {
		return nil, err
	}
	return parse(buf, nil)
}

// BuildToDir builds the cache for n and writes it atomically (temp file in
// the same directory, then rename) to dir/FileName(n), then returns a Cache
// parsed from the in-memory bytes that were just written — no re-read from
// disk is needed since the bytes are already in hand.
func BuildToDir(dir string, n int) (*Cache, error) {
	buf, err := buildBytes(n)
	if err != nil {
		return nil, err
	}
	if err := writeAtomic(dir, FileName(n), buf); err != nil {
		return nil, err
	}
	return parse(buf, nil)
}

func buildBytes(n int) ([]byte, error) {
	if n < 0 || n > MaxN {
		return nil, ErrTooLarge
	}
	entries := derangement.Generate(n)
	if len(entries) > math.MaxUint32 {
		return nil, ErrTooLarge
	}
	count := len(entries)

	derangementsSize := count * n
	signsSize := count
	words := pvWordsPerMask(count)
	maskBytes := words * 8
	pvSize := n * n * maskBytes

	offDerang := uint32(headerSize)
	offSigns := offDerang + uint32(derangementsSize)
	offPV := offSigns + uint32(signsSize)
	payloadSize := int(offPV) - headerSize + pvSize

	buf := make([]byte, headerSize+payloadSize)

	derangSection := buf[offDerang : offDerang+uint32(derangementsSize)]
	for i, e := range entries {
		copy(derangSection[i*n:(i+1)*n], e.Row)
	}

	signSection := buf[offSigns : offSigns+uint32(signsSize)]
	for i, e := range entries {
		signSection[i] = byte(e.Sign)
	}

	pvSection := buf[offPV:]
	for pos := 0; pos < n; pos++ {
		for v := 1; v <= n; v++ {
			maskOff := (pos*n + (v - 1)) * maskBytes
			dst := pvSection[maskOff : maskOff+maskBytes]
			for idx, e := range entries {
				if int(e.Row[pos]) == v {
					byteIdx := idx / 8
					bitIdx := uint(idx % 8)
					dst[byteIdx] |= 1 << bitIdx
				}
			}
		}
	}

	h := header{
		version:            version,
		n:                  uint32(n),
		count:              uint32(count),
		offsetDerangements: offDerang,
		offsetSigns:        offSigns,
		offsetPVIndex:      offPV,
	}
	h.crc32 = crc32Of(buf[headerSize:])
	copy(buf[:headerSize], h.encode())
	// patch the CRC field in place (encode() above wrote it already, this
	// line is a defensive re-assert in case of future field reordering).
	binary.LittleEndian.PutUint32(buf[offCRC32:], h.crc32)

	return buf, nil
}

// writeAtomic writes data to dir/name via a temp file in the same directory
// followed by a rename, so a reader never observes a partially written file.
func writeAtomic(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("dcache: %v: %w", err, ErrIo)
	}
	tmp, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("dcache: %v: %w", err, ErrIo)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("dcache: %v: %w", err, ErrIo)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("dcache: %v: %w", err, ErrIo)
	}
	if err := os.Rename(tmpPath, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("dcache: %v: %w", err, ErrIo)
	}
	return nil
}
