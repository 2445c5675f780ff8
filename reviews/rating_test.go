package reviews

import "testing"

func TestMeanRating(t *testing.T) {
	cases := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"no reviews", nil, 0},
		{"single", []int{5}, 5.0},
		{"four and two averages to three", []int{4, 2}, 3.0},
		{"rounds to one decimal", []int{5, 4, 4}, 4.3},
		{"rounds half up", []int{4, 3}, 3.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MeanRating(tc.ratings); got != tc.want {
				t.Fatalf("MeanRating(%v) = %v, want %v", tc.ratings, got, tc.want)
			}
		})
	}
}
