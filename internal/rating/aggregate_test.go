// AngelaMos | 2026
// aggregate_test.go

package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundAverage(t *testing.T) {
	tests := []struct {
		name string
		avg  float64
		want float64
	}{
		{"no ratings", 0, 0},
		{"whole number", 4.0, 4.0},
		{"half", 4.5, 4.5},
		{"rounds down", 3.6666666666666665, 3.7},
		{"rounds up", 2.25, 2.3},
		{"one third", 4.333333333333333, 4.3},
		{"max", 5.0, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundAverage(tt.avg), 1e-9)
		})
	}
}

func mean(scores ...int) float64 {
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return float64(sum) / float64(len(scores))
}

func TestRoundAverage_StoreScenarios(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   float64
	}{
		{"two ratings", []int{5, 4}, 4.5},
		{"third rating lowers the average", []int{5, 4, 3}, 4.0},
		{"deleting the low rating restores it", []int{5, 4}, 4.5},
		{"single rating", []int{3}, 3.0},
		{"repeating decimal", []int{5, 4, 4}, 4.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundAverage(mean(tt.scores...)), 1e-9)
		})
	}
}
