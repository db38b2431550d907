package services

import (
	"testing"
)

func TestValidateWager(t *testing.T) {
	tests := []struct {
		amount int
		ok     bool
	}{
		{5, true},
		{25, true},
		{1000, true},
		{0, false},    // wager is mandatory
		{-5, false},   // negative
		{3, false},    // below minimum
		{7, false},    // not a multiple of 5
		{999, false},  // not a multiple of 5
		{1005, false}, // above maximum
	}

	for _, tt := range tests {
		err := ValidateWager(tt.amount)
		if tt.ok && err != nil {
			t.Errorf("ValidateWager(%d) = %v, want ok", tt.amount, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("ValidateWager(%d) = nil, want error", tt.amount)
		}
	}
}

func TestValidateStake(t *testing.T) {
	// A stake is optional: zero passes, everything else follows wager rules.
	if err := ValidateStake(0); err != nil {
		t.Errorf("ValidateStake(0) = %v, want ok", err)
	}
	if err := ValidateStake(50); err != nil {
		t.Errorf("ValidateStake(50) = %v, want ok", err)
	}
	if err := ValidateStake(4); err == nil {
		t.Error("ValidateStake(4) = nil, want error")
	}
	if err := ValidateStake(-10); err == nil {
		t.Error("ValidateStake(-10) = nil, want error")
	}
	if err := ValidateStake(1001); err == nil {
		t.Error("ValidateStake(1001) = nil, want error")
	}
}
