package balance

import (
	"testing"
	"time"

	"github.com/oyaguma3/prepaid-acct-server/pkg/model"
)

func TestFromBucket(t *testing.T) {
	expiry := testNow.Add(48 * time.Hour)
	limit := int64(1000)
	window := int64(6)
	rec := &model.Bucket{
		BucketID:               "b1",
		ServiceID:              "s1",
		Rule:                   "DATA",
		Priority:               2,
		InitialBalance:         5000,
		CurrentBalance:         -3,
		Status:                 "ACTIVE",
		ServiceStartDate:       testNow,
		ExpiryDate:             &expiry,
		PlanID:                 "plan-1",
		TimeWindow:             "0-24",
		ConsumptionLimit:       &limit,
		ConsumptionLimitWindow: &window,
		BucketUser:             "group-7",
	}

	b := FromBucket(rec)
	if b.Quota != 0 {
		t.Errorf("Quota = %d, want 0 (clamped)", b.Quota)
	}
	if b.OwnerUsername != "group-7" {
		t.Errorf("OwnerUsername = %q, want %q", b.OwnerUsername, "group-7")
	}
	if b.ServiceExpiry == nil || !b.ServiceExpiry.Equal(expiry) {
		t.Errorf("ServiceExpiry = %v, want %v", b.ServiceExpiry, expiry)
	}
	if b.ServiceExpiry == rec.ExpiryDate {
		t.Error("ServiceExpiry should be copied, not shared")
	}
	if b.ConsumptionLimitWindow != 6 {
		t.Errorf("ConsumptionLimitWindow = %d, want 6", b.ConsumptionLimitWindow)
	}
	if b.ConsumptionLimit == nil || *b.ConsumptionLimit != 1000 {
		t.Errorf("ConsumptionLimit = %v, want 1000", b.ConsumptionLimit)
	}
}

func TestCharge(t *testing.T) {
	tests := []struct {
		name        string
		quota       int64
		delta       int64
		wantQuota   int64
		wantHistory int
	}{
		{"normal", 1000, 250, 750, 1},
		{"exhaust", 100, 250, 0, 1},
		{"zero delta", 100, 0, 100, 0},
		{"negative delta", 100, -50, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := activeBalance("b", 1, tt.quota)
			got := b.Charge(tt.delta, testNow, 10)
			if got != tt.wantQuota || b.Quota != tt.wantQuota {
				t.Errorf("Charge(%d) = %d (Quota %d), want %d", tt.delta, got, b.Quota, tt.wantQuota)
			}
			if len(b.UsageHistory) != tt.wantHistory {
				t.Errorf("len(UsageHistory) = %d, want %d", len(b.UsageHistory), tt.wantHistory)
			}
		})
	}
}

func TestChargeHistoryLimit(t *testing.T) {
	b := activeBalance("b", 1, 1000)
	for i := 0; i < 5; i++ {
		b.Charge(int64(i+1), testNow.Add(time.Duration(i)*time.Minute), 3)
	}
	if len(b.UsageHistory) != 3 {
		t.Fatalf("len(UsageHistory) = %d, want 3", len(b.UsageHistory))
	}
	if b.UsageHistory[0].Bytes != 3 || b.UsageHistory[2].Bytes != 5 {
		t.Errorf("UsageHistory = %+v, want newest 3 records", b.UsageHistory)
	}
}

func TestClone(t *testing.T) {
	b := activeBalance("b", 1, 100)
	b.ServiceExpiry = ptrTime(testNow)
	b.ConsumptionLimit = ptrInt(10)
	b.UsageHistory = []UsageRecord{{At: testNow, Bytes: 1}}

	c := b.Clone()
	c.UsageHistory[0].Bytes = 99
	*c.ConsumptionLimit = 99
	*c.ServiceExpiry = testNow.Add(time.Hour)

	if b.UsageHistory[0].Bytes != 1 || *b.ConsumptionLimit != 10 || !b.ServiceExpiry.Equal(testNow) {
		t.Error("Clone() should not share mutable state with the original")
	}
}

func TestTotalQuotaAndIndexOf(t *testing.T) {
	balances := []Balance{activeBalance("a", 1, 100), activeBalance("b", 1, 50)}
	if got := TotalQuota(balances); got != 150 {
		t.Errorf("TotalQuota() = %d, want 150", got)
	}
	if got := IndexOf(balances, "b"); got != 1 {
		t.Errorf("IndexOf(b) = %d, want 1", got)
	}
	if got := IndexOf(balances, "z"); got != -1 {
		t.Errorf("IndexOf(z) = %d, want -1", got)
	}
}

func TestIsOwnedBy(t *testing.T) {
	b := Balance{OwnerUsername: "alice"}
	if !b.IsOwnedBy("alice") || b.IsOwnedBy("bob") {
		t.Error("IsOwnedBy mismatch for explicit owner")
	}
	empty := Balance{}
	if !empty.IsOwnedBy("anyone") {
		t.Error("empty owner should be treated as the subscriber's own balance")
	}
}
