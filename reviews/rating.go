package reviews

import "math"

// MeanRating averages ratings rounded to one decimal place. Zero reviews
// yield a zero rating.
func MeanRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10
}
