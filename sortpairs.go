package grasp

// Pair is a (cost, i, j) triple: cost is the sort key, i and j are the matrix
// cell it was drawn from. The constructor builds these from F and D entries
// and sorts them to find promising (facility, location) candidates.
type Pair struct {
	Cost int64
	I, J int
}

// heapSortAscending sorts a in place by ascending Cost using a binary heap,
// not sort.Slice: the constructor also needs a paired variant that permutes a
// companion slice in lockstep, which sort.Slice cannot express, so every sort
// here is a hand-rolled binary heap for consistency.
func heapSortAscending(a []Pair) {
	n := len(a)
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(a, i, n, ascending)
	}
	for end := n - 1; end > 0; end-- {
		a[0], a[end] = a[end], a[0]
		siftDown(a, 0, end, ascending)
	}
}

// heapSortDescending sorts a in place by descending Cost.
func heapSortDescending(a []Pair) {
	n := len(a)
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(a, i, n, descending)
	}
	for end := n - 1; end > 0; end-- {
		a[0], a[end] = a[end], a[0]
		siftDown(a, 0, end, descending)
	}
}

type sortOrder int

const (
	ascending sortOrder = iota
	descending
)

// siftDown restores the heap property of a[0:n] rooted at i. For ascending
// order it builds a max-heap (so repeated root extraction yields ascending
// order); for descending, a min-heap.
func siftDown(a []Pair, i, n int, order sortOrder) {
	for {
		largest := i
		l, r := 2*i+1, 2*i+2
		if l < n && worse(a[largest], a[l], order) {
			largest = l
		}
		if r < n && worse(a[largest], a[r], order) {
			largest = r
		}
		if largest == i {
			return
		}
		a[i], a[largest] = a[largest], a[i]
		i = largest
	}
}

func worse(a, b Pair, order sortOrder) bool {
	if order == ascending {
		return a.Cost < b.Cost
	}
	return a.Cost > b.Cost
}

// HeapSortTopK heapifies all of a, then runs only k extraction steps instead
// of len(a)-1, leaving the k best elements under order sorted into the tail
// positions len(a)-k..len(a)-1 and the remaining elements in unspecified
// heap order. Mirrors the original's heap_sortn_* family, which takes the
// same n (heapify bound) and k (extraction bound) split.
func HeapSortTopK(a []Pair, order sortOrder, k int) {
	n := len(a)
	if k > n {
		k = n
	}
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(a, i, n, order)
	}
	for end := n - 1; end >= n-k && end > 0; end-- {
		a[0], a[end] = a[end], a[0]
		siftDown(a, 0, end, order)
	}
}

// heapSortPairedAscending sorts a and companion jointly, ascending by the
// product a[k].Cost*companion[k].Cost, keeping the two slices paired by
// index. Used by the constructor's phase1 to rank (facility, location)
// candidates by their flow*distance cross-product; see SPEC_FULL.md's
// resolved Open Question on why ascending-front selection replaces the
// original's reverse-tail indexing.
func heapSortPairedAscending(a, companion []Pair) {
	n := len(a)
	less := func(i, j int) bool {
		return a[i].Cost*companion[i].Cost < a[j].Cost*companion[j].Cost
	}
	swap := func(i, j int) {
		a[i], a[j] = a[j], a[i]
		companion[i], companion[j] = companion[j], companion[i]
	}
	siftDownPaired := func(i, n int) {
		for {
			largest := i
			l, r := 2*i+1, 2*i+2
			if l < n && less(largest, l) {
				largest = l
			}
			if r < n && less(largest, r) {
				largest = r
			}
			if largest == i {
				return
			}
			swap(i, largest)
			i = largest
		}
	}
	for i := n/2 - 1; i >= 0; i-- {
		siftDownPaired(i, n)
	}
	for end := n - 1; end > 0; end-- {
		swap(0, end)
		siftDownPaired(0, end)
	}
}
