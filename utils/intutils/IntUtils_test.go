package intutils

import "testing"

func TestMax(t *testing.T) {
	tests := []struct {
		ints []int
		want int
	}{
		{[]int{3}, 3},
		{[]int{0, 1}, 1},
		{[]int{-3, 1}, 1},
		{[]int{7, -2, 5}, 7},
	}

	for _, test := range tests {
		if have := Max(test.ints...); have != test.want {
			t.Errorf("Max(%v) = %d, want %d", test.ints, have, test.want)
		}
	}
}
