package recs

import "math/bits"

// bitset is a growable set of component ids. Each entity slot keeps one so
// that destroying an entity only visits the pools it actually has entries in.
// Unlike a fixed-width mask it places no upper bound on the number of
// component types a World can hold.
type bitset []uint64

// set enables the bit for id, growing the set when needed.
func (m *bitset) set(id ComponentID) {
	i := int(id >> 6) // (id / 64) to find the word index
	o := id & 63      // (id % 64) to find the bit offset
	if i >= len(*m) {
		*m = extendSlice(*m, i+1-len(*m))
	}
	(*m)[i] |= uint64(1) << o
}

// unset disables the bit for id.
func (m bitset) unset(id ComponentID) {
	i := int(id >> 6)
	if i >= len(m) {
		return
	}
	m[i] &^= uint64(1) << (id & 63)
}

// has reports whether the bit for id is set.
func (m bitset) has(id ComponentID) bool {
	i := int(id >> 6)
	if i >= len(m) {
		return false
	}
	return m[i]&(uint64(1)<<(id&63)) != 0
}

// clear disables every bit, keeping the backing array.
func (m bitset) clear() {
	for i := range m {
		m[i] = 0
	}
}

// each calls fn for every set bit in ascending order. fn may unset bits of
// m while iterating.
func (m bitset) each(fn func(id ComponentID)) {
	for i := range m {
		w := m[i]
		for w != 0 {
			o := bits.TrailingZeros64(w)
			w &= w - 1
			fn(ComponentID(i<<6 + o))
		}
	}
}
