package billing

import "testing"

func TestNextSequence_FillsLowestGap(t *testing.T) {
	cases := []struct {
		name     string
		issued   []int
		expected int
	}{
		{"empty", nil, 1},
		{"contiguous", []int{1, 2, 3}, 4},
		{"gap in middle", []int{1, 2, 4, 5}, 3},
		{"gap at front", []int{2, 3}, 1},
		{"unsorted", []int{5, 1, 3, 2}, 4},
		{"duplicates", []int{1, 1, 2, 2}, 3},
		{"garbage ignored", []int{0, -3, 1, 2}, 3},
	}
	for _, tc := range cases {
		if got := NextSequence(tc.issued); got != tc.expected {
			t.Fatalf("%s: NextSequence(%v) expected %d, got %d", tc.name, tc.issued, tc.expected, got)
		}
	}
}

func TestNextSequence_DoesNotMutateInput(t *testing.T) {
	issued := []int{3, 1, 2}
	NextSequence(issued)
	if issued[0] != 3 || issued[1] != 1 || issued[2] != 2 {
		t.Fatalf("input slice was reordered: %v", issued)
	}
}
