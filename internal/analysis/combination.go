package analysis

import (
	"sort"

	"github.com/user/kst_rating_go/internal/constraint"
)

// Enumerate lists every candidate locking combination of set. Planes can
// contribute three rows on their own, so sets with planes try subsets of
// 2..5 constraints; pins and lines contribute two, so 3..5; points only
// ever form a locking set in groups of 5.
//
// The result is ordered lexicographically by zero-padded tuple, which puts a
// prefix ahead of its extensions: (1,2,0,0,0) before (1,2,3,0,0).
func Enumerate(set *constraint.Set) []Combination {
	n := set.Total()
	minSize := 5
	switch {
	case set.HasPlanes():
		minSize = 2
	case set.HasPinsOrLines():
		minSize = 3
	}

	var out []Combination
	for size := minSize; size <= 5; size++ {
		out = appendSubsets(out, n, size)
	}
	sort.Slice(out, func(i, j int) bool { return lessCombination(out[i], out[j]) })
	return out
}

// appendSubsets appends every size-element subset of 1..n in ascending order.
func appendSubsets(out []Combination, n, size int) []Combination {
	if size > n || size <= 0 {
		return out
	}
	idx := make([]int, size)
	for i := range idx {
		idx[i] = i + 1
	}
	for {
		var c Combination
		copy(c[:], idx)
		out = append(out, c)

		i := size - 1
		for i >= 0 && idx[i] == n-size+i+1 {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < size; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

func lessCombination(a, b Combination) bool {
	for k := range a {
		if a[k] != b[k] {
			return a[k] < b[k]
		}
	}
	return false
}

// Binomial returns C(n, k), the number of k-subsets of n items.
func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}
	return r
}
