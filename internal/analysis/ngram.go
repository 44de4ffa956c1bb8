package analysis

import (
	"slices"
	"sort"

	"github.com/SeamusWaldron/cubesolver"
)

// NGram is a move sequence that occurs more than once in a solution.
type NGram struct {
	N        int      `json:"n"`
	Sequence []string `json:"sequence"`
	Count    int      `json:"count"`
	// Starts holds the first occurrences, at most maxOccurrences.
	Starts []int `json:"starts"`
}

const maxOccurrences = 10

// token packs a move into a byte: two values per layer.
func token(m cubesolver.Move) uint8 {
	t := uint8(m.Layer[0]) << 1
	if m.Turn == cubesolver.CCW {
		t |= 1
	}
	return t
}

// rollingHash is a Rabin-Karp hash over a fixed window of tokens.
type rollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1) for removal
	window []uint8
	n      int
}

func newRollingHash(n int) *rollingHash {
	rh := &rollingHash{
		base:   31,
		n:      n,
		window: make([]uint8, 0, n),
		pow:    1,
	}
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}
	return rh
}

// roll drops the oldest token once the window is full and adds t.
func (rh *rollingHash) roll(t uint8) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, t)
		rh.hash = rh.hash*rh.base + uint64(t)
		return
	}
	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(t)
	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = t
}

func (rh *rollingHash) ready() bool {
	return len(rh.window) == rh.n
}

type ngramEntry struct {
	tokens []uint8
	first  int
	count  int
	starts []int
}

// MineNGrams returns, for each n in [minN, maxN], up to topK sequences of
// n moves that occur at least twice, most frequent first. Overlapping
// occurrences count.
func MineNGrams(moves []cubesolver.Move, minN, maxN, topK int) map[int][]NGram {
	out := make(map[int][]NGram)
	if minN < 1 {
		minN = 1
	}
	for n := minN; n <= maxN && n <= len(moves); n++ {
		if grams := mineN(moves, n, topK); len(grams) > 0 {
			out[n] = grams
		}
	}
	return out
}

func mineN(moves []cubesolver.Move, n, topK int) []NGram {
	buckets := make(map[uint64][]*ngramEntry)
	var order []*ngramEntry
	rh := newRollingHash(n)

	for i, m := range moves {
		rh.roll(token(m))
		if !rh.ready() {
			continue
		}
		start := i - n + 1

		var entry *ngramEntry
		// Hash collisions share a bucket.
		for _, e := range buckets[rh.hash] {
			if slices.Equal(e.tokens, rh.window) {
				entry = e
				break
			}
		}
		if entry == nil {
			entry = &ngramEntry{tokens: slices.Clone(rh.window), first: start}
			buckets[rh.hash] = append(buckets[rh.hash], entry)
			order = append(order, entry)
		}
		entry.count++
		if len(entry.starts) < maxOccurrences {
			entry.starts = append(entry.starts, start)
		}
	}

	var repeated []*ngramEntry
	for _, e := range order {
		if e.count >= 2 {
			repeated = append(repeated, e)
		}
	}
	sort.SliceStable(repeated, func(i, j int) bool {
		return repeated[i].count > repeated[j].count
	})
	if topK > 0 && len(repeated) > topK {
		repeated = repeated[:topK]
	}

	result := make([]NGram, len(repeated))
	for i, e := range repeated {
		result[i] = NGram{
			N:        n,
			Sequence: cubesolver.Notations(moves[e.first : e.first+n]),
			Count:    e.count,
			Starts:   e.starts,
		}
	}
	return result
}
