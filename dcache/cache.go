package dcache

import (
	"encoding/binary"

	"github.com/ravgal/latinrect/bitset"
)

// Cache is an immutable, read-only handle onto a built-and-loaded
// derangement cache for one dimension n. Every field is populated once at
// load/build time and never mutated afterward, so a *Cache can be shared
// freely across worker goroutines without locking (per the ownership rule
// in the data model: "Multiple concurrent workers for the same n share a
// single immutable in-memory instance").
type Cache struct {
	n     int
	count int

	// raw backs derangements with a zero-copy slice; closing the cache
	// (unmapping, if mmap'd) invalidates it. signs and pvIndex are decoded
	// into their own memory at parse time. Callers must not retain slices
	// from a Cache past Close.
	raw []byte
	closer func() error

	derangements []uint8      // count*n bytes, row-major
	signs        []int8       // count bytes
	pvIndex      []bitset.Mask // n*n masks, row-major (pos, value-1)
}

// N returns the dimension this cache serves.
func (c *Cache) N() int { return c.n }

// Count returns D(n), the number of derangements in the cache.
func (c *Cache) Count() int { return c.count }

// Derangement returns row i (a copy, values 1..n) and its sign.
//
// Complexity: O(n) time (copies the row so callers can't corrupt the shared
// backing array), O(1) otherwise.
func (c *Cache) Derangement(i int) ([]uint8, int8) {
	row := make([]uint8, c.n)
	copy(row, c.derangements[i*c.n:(i+1)*c.n])
	return row, c.signs[i]
}

// DerangementView returns row i without copying. The returned slice aliases
// the cache's backing storage and must not be mutated or retained past the
// cache's lifetime; it exists for the enumerator's hot loop, which only
// reads.
func (c *Cache) DerangementView(i int) []uint8 {
	return c.derangements[i*c.n : (i+1)*c.n]
}

// Sign returns the sign of derangement i.
func (c *Cache) Sign(i int) int8 { return c.signs[i] }

// ConflictMask returns the set of derangement indices whose value at
// position p (0-based) equals v (1-based) — i.e. the indices that conflict
// with "value v already placed at position p" by an earlier row. This is the
// same bitmask the data model calls position_value_index; the two names
// describe one structure read for two purposes (see SPEC_FULL.md §4.3).
//
// The returned Mask aliases cache storage; callers must not mutate it.
func (c *Cache) ConflictMask(p, v int) bitset.Mask {
	return c.pvIndex[p*c.n+(v-1)]
}

// CompatibleWith returns, as a freshly allocated Mask, the set of derangement
// indices consistent with the given prefix (prefix[k] is the required value,
// 1-based, at position k). For len(prefix) <= 2 this is a direct one- or
// two-mask lookup (the "single/pair prefix index" shortcut from the data
// model, computed on demand rather than stored as a separate on-disk
// section); for longer prefixes it falls back to intersecting one
// conflict mask per fixed position, exactly as spec.md §4.3 permits.
//
// Complexity: O(len(prefix) * count/64).
func (c *Cache) CompatibleWith(prefix []int) bitset.Mask {
	words := pvWordsPerMask(c.count)
	out := make(bitset.Mask, words)
	if len(prefix) == 0 {
		for i := range out {
			out[i] = ^uint64(0)
		}
		out.Trim(c.count)
		return out
	}
	copy(out, c.ConflictMask(0, prefix[0]))
	for pos := 1; pos < len(prefix); pos++ {
		out.And(c.ConflictMask(pos, prefix[pos]))
	}
	return out
}

// Close releases any resources (an mmap, most notably) backing the cache.
// After Close, no method on c may be called and no slice previously obtained
// from it may be read.
func (c *Cache) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

// parse builds a *Cache view over buf (the full file payload, header
// included). buf is retained by reference — callers that mmap'd it must keep
// the mapping alive exactly as long as the returned Cache is in use.
func parse(buf []byte, closer func() error) (*Cache, error) {
	h, err := decodeHeader(buf)
	if err != nil {
		return nil, err
	}
	n := int(h.n)
	count := int(h.count)

	payload := buf[headerSize:]
	if crc32Of(payload) != h.crc32 {
		return nil, ErrCorrupt
	}

	derangStart := int(h.offsetDerangements) - headerSize
	signsStart := int(h.offsetSigns) - headerSize
	pvStart := int(h.offsetPVIndex) - headerSize
	if derangStart < 0 || signsStart < 0 || pvStart < 0 {
		return nil, ErrCorrupt
	}

	derangEnd := derangStart + count*n
	signsEnd := signsStart + count
	if derangEnd > len(payload) || signsEnd > len(payload) {
		return nil, ErrCorrupt
	}

	derangements := payload[derangStart:derangEnd]
	signsBytes := payload[signsStart:signsEnd]
	signs := make([]int8, count)
	for i, b := range signsBytes {
		signs[i] = int8(b)
	}

	words := pvWordsPerMask(count)
	maskBytes := words * 8
	pvIndex := make([]bitset.Mask, n*n)
	cursor := pvStart
	for i := 0; i < n*n; i++ {
		end := cursor + maskBytes
		if end > len(payload) {
			return nil, ErrCorrupt
		}
		pvIndex[i] = bytesToMask(payload[cursor:end], words)
		cursor = end
	}

	return &Cache{
		n:            n,
		count:        count,
		raw:          buf,
		closer:       closer,
		derangements: derangements,
		signs:        signs,
		pvIndex:      pvIndex,
	}, nil
}

func bytesToMask(b []byte, words int) bitset.Mask {
	m := make(bitset.Mask, words)
	for w := 0; w < words; w++ {
		off := w * 8
		end := off + 8
		if end > len(b) {
			// Last word may be short if maskBytes rounded beyond the slice;
			// parse() already guarantees full-width slices, so this is
			// defensive only.
			var tmp [8]byte
			copy(tmp[:], b[off:])
			m[w] = binary.LittleEndian.Uint64(tmp[:])
			continue
		}
		m[w] = binary.LittleEndian.Uint64(b[off:end])
	}
	return m
}
