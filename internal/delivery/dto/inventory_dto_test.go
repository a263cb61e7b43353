package dto

import (
	"testing"

	"github.com/dhanashrishah1306-svg/SAMVED/pkg/validator"
)

func TestAdjustStockRequest_DeltaBounds(t *testing.T) {
	v := validator.NewValidator()
	tests := []struct {
		delta int
		valid bool
	}{
		{delta: 250, valid: true},
		{delta: -40, valid: true},
		{delta: 1000000, valid: true},
		{delta: -1000000, valid: true},
		{delta: 0, valid: false},
		{delta: 1000001, valid: false},
		{delta: -1000001, valid: false},
		{delta: 1 << 40, valid: false},
	}

	for _, tt := range tests {
		err := v.Validate(&AdjustStockRequest{Delta: tt.delta})
		if (err == nil) != tt.valid {
			t.Errorf("delta %d: expected valid=%v, got %v", tt.delta, tt.valid, err)
		}
	}
}
