package domain

import (
	"testing"
	"time"
)

func TestCloseIfPast(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name        string
		status      string
		closingDate *time.Time
		wantChanged bool
		wantStatus  string
	}{
		{"open past closing date", StatusOpen, &past, true, StatusClosed},
		{"open before closing date", StatusOpen, &future, false, StatusOpen},
		{"open without closing date", StatusOpen, nil, false, StatusOpen},
		{"already closed", StatusClosed, &past, false, StatusClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Career{Status: tt.status, ClosingDate: tt.closingDate}
			changed := c.CloseIfPast(now)
			if changed != tt.wantChanged {
				t.Errorf("CloseIfPast() = %v, want %v", changed, tt.wantChanged)
			}
			if c.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", c.Status, tt.wantStatus)
			}
		})
	}
}

func TestValidType(t *testing.T) {
	for _, typ := range []string{TypeFullTime, TypePartTime, TypeContract, TypeInternship} {
		if !ValidType(typ) {
			t.Errorf("ValidType(%q) = false, want true", typ)
		}
	}
	if ValidType("Freelance") {
		t.Error("ValidType(\"Freelance\") = true, want false")
	}
	if ValidType("") {
		t.Error("ValidType(\"\") = true, want false")
	}
}
