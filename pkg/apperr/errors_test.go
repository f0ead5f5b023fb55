package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		// 課金判定関連
		{"ErrNoBuckets", ErrNoBuckets, "No service buckets found"},
		{"ErrQuotaZero", ErrQuotaZero, "Data quota is zero"},
		{"ErrNoEligibleBalance", ErrNoEligibleBalance, "No eligible balance"},
		{"ErrQuotaExhausted", ErrQuotaExhausted, "Quota exhausted"},
		{"ErrBucketSwitch", ErrBucketSwitch, "Bucket switched"},
		// インフラ関連
		{"ErrValkeyConnection", ErrValkeyConnection, "valkey connection error"},
		{"ErrValkeyCommand", ErrValkeyCommand, "valkey command error"},
		{"ErrDatabase", ErrDatabase, "database error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("%s.Error() = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestDisconnectReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"direct", ErrQuotaZero, "Data quota is zero"},
		{"wrapped", fmt.Errorf("start: %w", ErrNoBuckets), "No service buckets found"},
		{"no eligible", ErrNoEligibleBalance, "No eligible balance"},
		{"unknown", errors.New("boom"), "Session terminated"},
		{"nil", nil, "Session terminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisconnectReason(tt.err); got != tt.want {
				t.Errorf("DisconnectReason() = %q, want %q", got, tt.want)
			}
		})
	}
}
