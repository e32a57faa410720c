package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeSpecialPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{"twenty percent off", 100, 20, 80},
		{"no discount", 100, 0, 100},
		{"ten percent off", 500, 10, 450},
		{"full discount", 250, 100, 0},
		{"fractional discount", 99.99, 15, 84.9915},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ComputeSpecialPrice(tt.price, tt.discount), 1e-9)
		})
	}
}
