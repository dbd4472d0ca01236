package market

// PrefList is one member's ordered preference list over the opposite side,
// most preferred first. Partners absent from the list are unacceptable: the
// member prefers to remain unmatched over any of them.
type PrefList []ID

// TrimSentinel converts a raw preference row as it appears in input
// documents (1-based IDs, terminated by 0 meaning "prefer to remain
// unmatched") into a PrefList. Entries after the first 0 are dropped; a row
// without a sentinel is taken whole.
func TrimSentinel(raw []int) PrefList {
	prefs := make(PrefList, 0, len(raw))
	for _, v := range raw {
		if v == 0 {
			break
		}
		prefs = append(prefs, ID(v))
	}
	return prefs
}

// RankIndex is a constant-time rank lookup built from a preference list.
// Rank 1 is the most preferred partner; "remain unmatched" ranks one past
// the end of the list; partners absent from the list rank worse than
// remaining unmatched. Used by deferred acceptance to compare two
// candidates in O(1).
type RankIndex struct {
	ranks     []int // indexed by partner ID, 0 = unused slot
	unmatched int
}

// NewRankIndex builds a RankIndex for a member whose opposite side has the
// given number of partners. IDs outside 1..partners are ignored.
func NewRankIndex(prefs PrefList, partners int) RankIndex {
	x := RankIndex{
		ranks:     make([]int, partners+1),
		unmatched: len(prefs) + 1,
	}
	for i := range x.ranks {
		x.ranks[i] = x.unmatched + 1
	}
	for i, p := range prefs {
		if p >= 1 && int(p) <= partners {
			x.ranks[p] = i + 1
		}
	}
	return x
}

// Rank returns the rank of partner p, 1 = most preferred. Partners not on
// the underlying list rank worse than UnmatchedRank.
func (x RankIndex) Rank(p ID) int {
	if p < 1 || int(p) >= len(x.ranks) {
		return x.unmatched + 1
	}
	return x.ranks[p]
}

// UnmatchedRank returns the rank of remaining unmatched: one position past
// the real list.
func (x RankIndex) UnmatchedRank() int {
	return x.unmatched
}

// Acceptable reports whether the member would rather take p than remain
// unmatched.
func (x RankIndex) Acceptable(p ID) bool {
	return x.Rank(p) < x.unmatched
}
