// Package mask provides fixed-width bit masks that track which puzzle
// pieces make up a tile. Width is chosen once per puzzle from the piece
// count; all operations are value-based so masks can be passed down the
// solver recursion without sharing.
package mask

// Bits is the constraint satisfied by every mask width. The type
// parameter is self-referential so that operations stay monomorphic in
// the solver's inner loop.
type Bits[M any] interface {
	// With returns a copy of the mask with the given bit set.
	With(bit uint) M
	// Union returns the bitwise OR of both masks.
	Union(other M) M
	// Intersects reports whether the masks share any bit.
	Intersects(other M) bool
	// Members returns the indices of all set bits, ascending.
	Members() []int
}

// M32 masks puzzles of up to 32 pieces.
type M32 uint32

func (m M32) With(bit uint) M32 { return m | 1<<bit }

func (m M32) Union(other M32) M32 { return m | other }

func (m M32) Intersects(other M32) bool { return m&other != 0 }

func (m M32) Members() []int { return appendMembers(uint64(m), 0, nil) }

// M64 masks puzzles of up to 64 pieces.
type M64 uint64

func (m M64) With(bit uint) M64 { return m | 1<<bit }

func (m M64) Union(other M64) M64 { return m | other }

func (m M64) Intersects(other M64) bool { return m&other != 0 }

func (m M64) Members() []int { return appendMembers(uint64(m), 0, nil) }

// M128 masks puzzles of up to 128 pieces.
type M128 [2]uint64

func (m M128) With(bit uint) M128 {
	m[bit/64] |= 1 << (bit % 64)
	return m
}

func (m M128) Union(other M128) M128 {
	m[0] |= other[0]
	m[1] |= other[1]
	return m
}

func (m M128) Intersects(other M128) bool {
	return m[0]&other[0] != 0 ||
		m[1]&other[1] != 0
}

func (m M128) Members() []int {
	var out []int
	for n, w := range m {
		out = appendMembers(w, n*64, out)
	}
	return out
}

// M256 masks puzzles of up to 256 pieces.
type M256 [4]uint64

func (m M256) With(bit uint) M256 {
	m[bit/64] |= 1 << (bit % 64)
	return m
}

func (m M256) Union(other M256) M256 {
	m[0] |= other[0]
	m[1] |= other[1]
	m[2] |= other[2]
	m[3] |= other[3]
	return m
}

func (m M256) Intersects(other M256) bool {
	return m[0]&other[0] != 0 ||
		m[1]&other[1] != 0 ||
		m[2]&other[2] != 0 ||
		m[3]&other[3] != 0
}

func (m M256) Members() []int {
	var out []int
	for n, w := range m {
		out = appendMembers(w, n*64, out)
	}
	return out
}

// M512 masks puzzles of up to 512 pieces.
type M512 [8]uint64

func (m M512) With(bit uint) M512 {
	m[bit/64] |= 1 << (bit % 64)
	return m
}

func (m M512) Union(other M512) M512 {
	m[0] |= other[0]
	m[1] |= other[1]
	m[2] |= other[2]
	m[3] |= other[3]
	m[4] |= other[4]
	m[5] |= other[5]
	m[6] |= other[6]
	m[7] |= other[7]
	return m
}

func (m M512) Intersects(other M512) bool {
	return m[0]&other[0] != 0 ||
		m[1]&other[1] != 0 ||
		m[2]&other[2] != 0 ||
		m[3]&other[3] != 0 ||
		m[4]&other[4] != 0 ||
		m[5]&other[5] != 0 ||
		m[6]&other[6] != 0 ||
		m[7]&other[7] != 0
}

func (m M512) Members() []int {
	var out []int
	for n, w := range m {
		out = appendMembers(w, n*64, out)
	}
	return out
}

func appendMembers(w uint64, base int, out []int) []int {
	for bit := 0; w != 0; bit++ {
		if w&1 != 0 {
			out = append(out, base+bit)
		}
		w >>= 1
	}
	return out
}
