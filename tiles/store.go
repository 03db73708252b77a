package tiles

import (
	"cmp"
	"slices"
	"sync"

	"github.com/rblankley/solver2/mask"
)

// maxDenseKeys bounds the key space a directly indexed store may use.
// Larger key spaces fall back to a map.
const maxDenseKeys = 1 << 22

// Store indexes tile rotations by lookup key. Every tile is registered
// under its own key and, for each non-border left/top edge, under the
// matching wildcard key, so a placement with unplaced neighbors finds
// every candidate in a single bucket.
//
// Writes are serialized by a per-store lock; reads are lock-free and
// must not overlap writes (stores are built fully before solving).
type Store[M mask.Bits[M]] struct {
	geo Geometry

	mu    sync.Mutex
	tiles []*Tile[M]
	index bucketIndex[M]
}

// NewStore creates an empty store for tiles of the given geometry,
// picking the densest index the key space allows.
func NewStore[M mask.Bits[M]](g Geometry) *Store[M] {
	s := &Store[M]{geo: g}
	if n := g.MaxKeys(); n <= maxDenseKeys {
		s.index = make(denseIndex[M], n)
	} else {
		s.index = make(mapIndex[M])
	}
	return s
}

// Geometry returns the tile geometry the store was built for.
func (s *Store[M]) Geometry() Geometry { return s.geo }

// Len returns the number of tiles held.
func (s *Store[M]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tiles)
}

// At returns the bucket of tiles registered under key, or nil.
func (s *Store[M]) At(key uint64) []*Tile[M] {
	return s.index.at(key)
}

// Insert registers a tile under its own key and under the up to three
// wildcard variants of that key.
func (s *Store[M]) Insert(t Tile[M]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tp := &t
	s.tiles = append(s.tiles, tp)

	key := t.Key(s.geo)
	s.index.add(key, tp)

	left := key&s.geo.MaskLeft != 0
	top := key&s.geo.MaskTop != 0
	if left {
		s.index.add(key|s.geo.MaskLeft, tp)
	}
	if top {
		s.index.add(key|s.geo.MaskTop, tp)
	}
	if left && top {
		s.index.add(key|s.geo.MaskLeft|s.geo.MaskTop, tp)
	}
}

// InsertAll inserts a run of tiles, used when only a subset of a
// piece's rotations is admitted.
func (s *Store[M]) InsertAll(ts []Tile[M]) {
	for _, t := range ts {
		s.Insert(t)
	}
}

// Randomize assigns every tile a fresh random tie-breaker and reorders
// each bucket by it, breaking adversarial input orderings.
func (s *Store[M]) Randomize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	rng := newSeededRand()
	for _, t := range s.tiles {
		t.random = rng.Uint64()
	}
	s.index.sortBuckets()
}

// bucketIndex is the key to bucket mapping behind a store.
type bucketIndex[M mask.Bits[M]] interface {
	at(key uint64) []*Tile[M]
	add(key uint64, t *Tile[M])
	sortBuckets()
}

// denseIndex holds buckets in a contiguous slice indexed by key.
type denseIndex[M mask.Bits[M]] [][]*Tile[M]

func (d denseIndex[M]) at(key uint64) []*Tile[M] { return d[key] }

func (d denseIndex[M]) add(key uint64, t *Tile[M]) { d[key] = append(d[key], t) }

func (d denseIndex[M]) sortBuckets() {
	for _, bucket := range d {
		sortBucket(bucket)
	}
}

// mapIndex holds buckets in a map, for the super-tile classes whose key
// space is too large to preallocate.
type mapIndex[M mask.Bits[M]] map[uint64][]*Tile[M]

func (m mapIndex[M]) at(key uint64) []*Tile[M] { return m[key] }

func (m mapIndex[M]) add(key uint64, t *Tile[M]) { m[key] = append(m[key], t) }

func (m mapIndex[M]) sortBuckets() {
	for _, bucket := range m {
		sortBucket(bucket)
	}
}

func sortBucket[M mask.Bits[M]](bucket []*Tile[M]) {
	slices.SortFunc(bucket, func(a, b *Tile[M]) int {
		return cmp.Compare(a.random, b.random)
	})
}
