package market

import (
	"reflect"
	"testing"
)

func TestTrimSentinel(t *testing.T) {
	tests := []struct {
		name string
		raw  []int
		want PrefList
	}{
		{"terminated", []int{2, 1, 0}, PrefList{2, 1}},
		{"no sentinel", []int{3, 1, 2}, PrefList{3, 1, 2}},
		{"leading sentinel", []int{0, 1, 2}, PrefList{}},
		{"mid sentinel drops tail", []int{1, 0, 2}, PrefList{1}},
		{"empty", nil, PrefList{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimSentinel(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TrimSentinel(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRankIndex(t *testing.T) {
	// Member prefers 3, then 1; 2 and 4 are unacceptable.
	x := NewRankIndex(PrefList{3, 1}, 4)

	if got := x.Rank(3); got != 1 {
		t.Errorf("Rank(3) = %d, want 1", got)
	}
	if got := x.Rank(1); got != 2 {
		t.Errorf("Rank(1) = %d, want 2", got)
	}
	if got := x.UnmatchedRank(); got != 3 {
		t.Errorf("UnmatchedRank = %d, want 3", got)
	}

	// Absent partners rank worse than remaining unmatched.
	if x.Rank(2) <= x.UnmatchedRank() {
		t.Errorf("Rank(2) = %d, should be worse than unmatched rank %d", x.Rank(2), x.UnmatchedRank())
	}
	if x.Acceptable(2) || x.Acceptable(4) {
		t.Error("partners off the list must be unacceptable")
	}
	if !x.Acceptable(3) || !x.Acceptable(1) {
		t.Error("listed partners must be acceptable")
	}

	// Out-of-range IDs never panic and rank as unacceptable.
	if x.Acceptable(0) || x.Acceptable(99) {
		t.Error("out-of-range IDs must be unacceptable")
	}
}

func TestRankIndexEmptyList(t *testing.T) {
	x := NewRankIndex(nil, 3)
	if got := x.UnmatchedRank(); got != 1 {
		t.Errorf("UnmatchedRank = %d, want 1", got)
	}
	for p := ID(1); p <= 3; p++ {
		if x.Acceptable(p) {
			t.Errorf("member with empty list should accept no one, accepts %d", p)
		}
	}
}
