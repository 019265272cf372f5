package lookup

import "github.com/vctt94/pokerlut/pkg/poker"

// maxN and maxK bound the precomputed binomial table.
const (
	maxN = poker.DeckSize
	maxK = poker.HandSize
)

// binomials[n][k] = C(n, k) for n <= maxN, k <= maxK.
var binomials [maxN + 1][maxK + 1]uint64

func init() {
	for n := 0; n <= maxN; n++ {
		binomials[n][0] = 1
		for k := 1; k <= maxK && k <= n; k++ {
			binomials[n][k] = binomials[n-1][k-1]
			if k <= n-1 {
				binomials[n][k] += binomials[n-1][k]
			}
		}
	}
}

// Binomial returns C(n, k), the number of k-element subsets of an n-element
// set. It is zero when k > n or either argument is negative.
func Binomial(n, k int) uint64 {
	if n < 0 || k < 0 || k > n {
		return 0
	}
	if n <= maxN && k <= maxK {
		return binomials[n][k]
	}
	if k > n-k {
		k = n - k
	}
	var c uint64 = 1
	for i := 1; i <= k; i++ {
		c = c * uint64(n-k+i) / uint64(i)
	}
	return c
}

// Enumerator walks every k-element subset of {0, ..., n-1} exactly once, in
// lexicographic order of the ascending index tuples. It keeps only the
// current tuple, so the walk is iterative and needs no recursion.
type Enumerator struct {
	n, k    int
	lo      int // lowest position Next may advance
	idx     []int
	started bool
	done    bool
	emitted uint64
}

// NewEnumerator returns an enumerator over all C(n, k) subsets.
func NewEnumerator(n, k int) *Enumerator {
	e := &Enumerator{n: n, k: k, idx: make([]int, max(k, 0))}
	if k <= 0 || k > n {
		e.done = true
		return e
	}
	for i := range e.idx {
		e.idx[i] = i
	}
	return e
}

// NewPartition returns an enumerator over the C(n-1-first, k-1) subsets
// whose smallest index is first. In lexicographic order these form one
// contiguous block starting at PartitionStart(n, k, first); the blocks for
// first = 0..n-k tile the whole enumeration.
func NewPartition(n, k, first int) *Enumerator {
	e := &Enumerator{n: n, k: k, lo: 1, idx: make([]int, max(k, 0))}
	if k <= 0 || first < 0 || first+k > n {
		e.done = true
		return e
	}
	for i := range e.idx {
		e.idx[i] = first + i
	}
	return e
}

// PartitionStart returns the lexicographic position of the first subset
// whose smallest index is first.
func PartitionStart(n, k, first int) uint64 {
	var start uint64
	for f := 0; f < first; f++ {
		start += Binomial(n-1-f, k-1)
	}
	return start
}

// Next advances to the next subset and reports whether there is one.
func (e *Enumerator) Next() bool {
	if e.done {
		return false
	}
	if !e.started {
		e.started = true
		e.emitted++
		return true
	}

	// Find the rightmost index that can still move up.
	i := e.k - 1
	for i >= e.lo && e.idx[i] == e.n-e.k+i {
		i--
	}
	if i < e.lo {
		e.done = true
		return false
	}

	e.idx[i]++
	for j := i + 1; j < e.k; j++ {
		e.idx[j] = e.idx[j-1] + 1
	}
	e.emitted++
	return true
}

// Indices returns the current subset in ascending order. The slice is
// reused by Next.
func (e *Enumerator) Indices() []int {
	return e.idx
}

// Emitted returns how many subsets Next has produced so far.
func (e *Enumerator) Emitted() uint64 {
	return e.emitted
}

// Rank returns the lexicographic position of the ascending index tuple idx
// among all C(n, len(idx)) subsets, in O(len(idx)). It is the inverse of
// the enumeration order: the m-th subset produced by NewEnumerator(n, k)
// has rank m-1.
//
// Mirroring each index through n-1 reverses lexicographic order into
// colexicographic order, whose rank is a plain sum of binomials.
func Rank(n int, idx []int) uint64 {
	k := len(idx)
	var colex uint64
	for i, c := range idx {
		colex += Binomial(n-1-c, k-i)
	}
	return Binomial(n, k) - 1 - colex
}
