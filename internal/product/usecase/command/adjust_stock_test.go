package command

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/kipharma/pharmacy-platform/internal/product/domain"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/auth"
)

type fakeProductRepo struct {
	products map[uint]*domain.Product

	// last UpdateStock call
	updatedID     uint
	updatedStock  int
	updatedStatus string
	updateCalls   int
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uint]*domain.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *fakeProductRepo) Create(p *domain.Product) error { r.products[p.ID] = p; return nil }

func (r *fakeProductRepo) FindByID(id uint) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProductRepo) FindAll(domain.Filter) ([]domain.Product, error) { return nil, nil }
func (r *fakeProductRepo) Update(*domain.Product) error                    { return nil }

func (r *fakeProductRepo) UpdateStock(id uint, stock int, status string) error {
	r.updatedID = id
	r.updatedStock = stock
	r.updatedStatus = status
	r.updateCalls++
	return nil
}

func (r *fakeProductRepo) Delete(uint) error                            { return nil }
func (r *fakeProductRepo) Count() (int64, error)                        { return int64(len(r.products)), nil }
func (r *fakeProductRepo) CountActive() (int64, error)                  { return int64(len(r.products)), nil }
func (r *fakeProductRepo) CountByBranch(uint) (int64, error)            { return 0, nil }
func (r *fakeProductRepo) StatusCounts() (*domain.StatusCounts, error)  { return &domain.StatusCounts{}, nil }
func (r *fakeProductRepo) Categories() ([]string, error)                { return nil, nil }

func intPtr(v int) *int { return &v }

func testProduct() *domain.Product {
	return &domain.Product{
		ID:                1,
		Name:              "Paracetamol 500mg",
		Stock:             60,
		LowStockThreshold: 50,
		Status:            domain.StatusInStock,
		BranchID:          2,
	}
}

func TestAdjustStockAbsoluteSet(t *testing.T) {
	repo := newFakeProductRepo(testProduct())
	handler := NewAdjustStockHandler(repo)

	product, err := handler.Handle(context.Background(), AdjustStockCommand{
		ProductID: 1,
		Stock:     intPtr(45),
		ActorRole: auth.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if product.Stock != 45 {
		t.Errorf("Stock = %d, want 45", product.Stock)
	}
	if product.Status != domain.StatusLowStock {
		t.Errorf("Status = %q, want %q", product.Status, domain.StatusLowStock)
	}
	if repo.updatedID != 1 || repo.updatedStock != 45 || repo.updatedStatus != domain.StatusLowStock {
		t.Errorf("UpdateStock persisted (%d, %d, %q)", repo.updatedID, repo.updatedStock, repo.updatedStatus)
	}
}

func TestAdjustStockRelative(t *testing.T) {
	tests := []struct {
		name       string
		start      int
		adjustment int
		direction  string
		wantStock  int
		wantStatus string
	}{
		{"incoming delivery", 0, 1000, AdjustmentIn, 1000, domain.StatusInStock},
		{"outgoing sale", 60, 15, AdjustmentOut, 45, domain.StatusLowStock},
		{"outgoing to empty", 45, 45, AdjustmentOut, 0, domain.StatusOutOfStock},
		{"outgoing clamps at zero", 10, 25, AdjustmentOut, 0, domain.StatusOutOfStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProduct()
			p.Stock = tt.start
			p.Refresh()
			repo := newFakeProductRepo(p)
			handler := NewAdjustStockHandler(repo)

			product, err := handler.Handle(context.Background(), AdjustStockCommand{
				ProductID:  1,
				Adjustment: intPtr(tt.adjustment),
				Type:       tt.direction,
				ActorRole:  auth.RoleAdmin,
			})
			if err != nil {
				t.Fatalf("Handle: %v", err)
			}
			if product.Stock != tt.wantStock {
				t.Errorf("Stock = %d, want %d", product.Stock, tt.wantStock)
			}
			if product.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", product.Status, tt.wantStatus)
			}
		})
	}
}

func TestAdjustStockAdjustmentWinsOverAbsolute(t *testing.T) {
	repo := newFakeProductRepo(testProduct())
	handler := NewAdjustStockHandler(repo)

	product, err := handler.Handle(context.Background(), AdjustStockCommand{
		ProductID:  1,
		Stock:      intPtr(999),
		Adjustment: intPtr(10),
		Type:       AdjustmentIn,
		ActorRole:  auth.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if product.Stock != 70 {
		t.Errorf("Stock = %d, want 70 (adjustment applied, absolute ignored)", product.Stock)
	}
}

func TestAdjustStockManagerBranchScope(t *testing.T) {
	repo := newFakeProductRepo(testProduct())
	handler := NewAdjustStockHandler(repo)

	_, err := handler.Handle(context.Background(), AdjustStockCommand{
		ProductID:     1,
		Stock:         intPtr(10),
		ActorRole:     auth.RoleManager,
		ActorBranchID: 9,
	})
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
	if repo.updateCalls != 0 {
		t.Error("a forbidden adjustment must not write")
	}

	// Same manager, own branch
	if _, err := handler.Handle(context.Background(), AdjustStockCommand{
		ProductID:     1,
		Stock:         intPtr(10),
		ActorRole:     auth.RoleManager,
		ActorBranchID: 2,
	}); err != nil {
		t.Fatalf("own branch adjustment failed: %v", err)
	}
}

func TestAdjustStockValidation(t *testing.T) {
	tests := []struct {
		name string
		cmd  AdjustStockCommand
	}{
		{"missing id", AdjustStockCommand{Stock: intPtr(5)}},
		{"negative absolute", AdjustStockCommand{ProductID: 1, Stock: intPtr(-1)}},
		{"negative adjustment", AdjustStockCommand{ProductID: 1, Adjustment: intPtr(-5), Type: AdjustmentIn}},
		{"unknown direction", AdjustStockCommand{ProductID: 1, Adjustment: intPtr(5), Type: "sideways"}},
		{"neither field", AdjustStockCommand{ProductID: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeProductRepo(testProduct())
			handler := NewAdjustStockHandler(repo)

			_, err := handler.Handle(context.Background(), tt.cmd)
			if !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("err = %v, want validation", err)
			}
			if repo.updateCalls != 0 {
				t.Error("invalid command must not write")
			}
		})
	}
}

func TestAdjustStockUnknownProduct(t *testing.T) {
	repo := newFakeProductRepo()
	handler := NewAdjustStockHandler(repo)

	_, err := handler.Handle(context.Background(), AdjustStockCommand{
		ProductID: 404,
		Stock:     intPtr(5),
	})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
