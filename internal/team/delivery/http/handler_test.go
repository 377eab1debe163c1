package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/kipharma/pharmacy-platform/internal/team/domain"
	"github.com/kipharma/pharmacy-platform/pkg/auth"
)

type fakeTeamRepo struct {
	domain.TeamRepository
	departments []string
}

func (f *fakeTeamRepo) Departments() ([]string, error) { return f.departments, nil }

func TestListDepartments(t *testing.T) {
	repo := &fakeTeamRepo{departments: []string{"Operations", "Pharmacy", "Sales"}}
	router := mux.NewRouter()
	NewTeamHandler(repo).RegisterRoutes(router)

	token, err := auth.GenerateToken(1, "staff@kipharma.com", auth.RoleStaff, 0)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/team/departments/list", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Departments []string `json:"departments"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data.Departments) != 3 || resp.Data.Departments[1] != "Pharmacy" {
		t.Errorf("departments = %v", resp.Data.Departments)
	}
}

func TestListDepartmentsRequiresAuth(t *testing.T) {
	router := mux.NewRouter()
	NewTeamHandler(&fakeTeamRepo{}).RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/team/departments/list", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
