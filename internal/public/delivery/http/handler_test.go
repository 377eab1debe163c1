package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	branchdomain "github.com/kipharma/pharmacy-platform/internal/branch/domain"
	careerdomain "github.com/kipharma/pharmacy-platform/internal/career/domain"
	partnerdomain "github.com/kipharma/pharmacy-platform/internal/partner/domain"
	productdomain "github.com/kipharma/pharmacy-platform/internal/product/domain"
	teamdomain "github.com/kipharma/pharmacy-platform/internal/team/domain"
)

// Partial fakes: the embedded interface covers the methods a test never
// touches.

type fakeProducts struct {
	productdomain.ProductRepository
	active int64
}

func (f *fakeProducts) CountActive() (int64, error) { return f.active, nil }

type fakeBranches struct {
	branchdomain.BranchRepository
	active int64
}

func (f *fakeBranches) CountByStatus(string) (int64, error) { return f.active, nil }

type fakeTeam struct {
	teamdomain.TeamRepository
	active int64
}

func (f *fakeTeam) CountByStatus(string) (int64, error) { return f.active, nil }

type fakePartners struct {
	partnerdomain.PartnerRepository
	active int64
}

func (f *fakePartners) CountByStatus(string) (int64, error) { return f.active, nil }

type fakeCareers struct {
	careerdomain.CareerRepository
	careers map[uint]*careerdomain.Career
	open    int64
}

func (f *fakeCareers) FindByID(id uint) (*careerdomain.Career, error) {
	c, ok := f.careers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCareers) CountByStatus(string) (int64, error) { return f.open, nil }

func publicRouter(careers *fakeCareers) *mux.Router {
	handler := NewPublicHandler(
		&fakeProducts{active: 120},
		&fakeBranches{active: 4},
		&fakeTeam{active: 9},
		&fakePartners{active: 6},
		careers,
	)
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func TestPublicStats(t *testing.T) {
	router := publicRouter(&fakeCareers{open: 3})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/public/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Success bool             `json:"success"`
		Data    map[string]int64 `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := map[string]int64{
		"products":      120,
		"branches":      4,
		"team":          9,
		"partners":      6,
		"openPositions": 3,
	}
	for key, n := range want {
		if resp.Data[key] != n {
			t.Errorf("stats[%q] = %d, want %d", key, resp.Data[key], n)
		}
	}
}

func TestPublicGetCareer(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	careers := &fakeCareers{careers: map[uint]*careerdomain.Career{
		1: {ID: 1, Title: "Pharmacist", Status: careerdomain.StatusOpen, ClosingDate: &future},
		2: {ID: 2, Title: "Cashier", Status: careerdomain.StatusClosed},
		3: {ID: 3, Title: "Driver", Status: careerdomain.StatusOpen, ClosingDate: &past},
	}}
	router := publicRouter(careers)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"open posting", "/api/public/careers/1", http.StatusOK},
		{"closed posting", "/api/public/careers/2", http.StatusNotFound},
		{"past closing date still marked open", "/api/public/careers/3", http.StatusNotFound},
		{"unknown posting", "/api/public/careers/404", http.StatusNotFound},
		{"bad id", "/api/public/careers/abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("GET %s = %d, want %d", tt.path, rec.Code, tt.want)
			}
		})
	}
}
