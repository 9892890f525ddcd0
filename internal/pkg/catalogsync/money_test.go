package catalogsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   int64
	}{
		{"zero", 0, 0},
		{"whole dollars", 12, 1200},
		{"simple cents", 12.50, 1250},
		{"single decimal", 9.9, 990},
		{"two decimals", 19.99, 1999},
		{"half up on third digit", 9.995, 1000},
		{"rounds down below half", 9.994, 999},
		{"rounds up at exactly half", 0.005, 1},
		{"float artifact 29.99", 29.99, 2999},
		{"float artifact 0.29", 0.29, 29},
		{"large amount", 1234.56, 123456},
		{"negative", -12.50, -1250},
		{"negative half up", -9.995, -1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MinorUnits(tt.amount))
		})
	}
}
