package domain

import "testing"

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		threshold int
		want      string
	}{
		{"zero stock", 0, 50, StatusOutOfStock},
		{"negative stock", -3, 50, StatusOutOfStock},
		{"at threshold", 50, 50, StatusLowStock},
		{"below threshold", 45, 50, StatusLowStock},
		{"one above threshold", 51, 50, StatusInStock},
		{"well stocked", 1000, 50, StatusInStock},
		{"zero threshold still flags empty", 0, 0, StatusOutOfStock},
		{"zero threshold with stock", 1, 0, StatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(tt.stock, tt.threshold); got != tt.want {
				t.Errorf("DeriveStatus(%d, %d) = %q, want %q", tt.stock, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	p := &Product{Stock: 45, LowStockThreshold: 50, Status: StatusInStock}
	p.Refresh()
	if p.Status != StatusLowStock {
		t.Errorf("Status = %q, want %q", p.Status, StatusLowStock)
	}

	p.Stock = 0
	p.Refresh()
	if p.Status != StatusOutOfStock {
		t.Errorf("Status = %q, want %q", p.Status, StatusOutOfStock)
	}
}
