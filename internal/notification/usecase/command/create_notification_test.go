package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	branchdomain "github.com/kipharma/pharmacy-platform/internal/branch/domain"
	"github.com/kipharma/pharmacy-platform/internal/notification/domain"
	productdomain "github.com/kipharma/pharmacy-platform/internal/product/domain"
	"github.com/kipharma/pharmacy-platform/kafka"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
)

type fakeNotificationRepo struct {
	notifications map[uint]*domain.Notification
	nextID        uint

	markedID   uint
	markedBy   uint
	markedAt   time.Time
	markCalls  int
	deletedIDs []uint
}

func newFakeNotificationRepo(existing ...*domain.Notification) *fakeNotificationRepo {
	repo := &fakeNotificationRepo{notifications: make(map[uint]*domain.Notification), nextID: 1}
	for _, n := range existing {
		repo.notifications[n.ID] = n
		if n.ID >= repo.nextID {
			repo.nextID = n.ID + 1
		}
	}
	return repo
}

func (r *fakeNotificationRepo) Create(n *domain.Notification) error {
	n.ID = r.nextID
	r.nextID++
	stored := *n
	r.notifications[n.ID] = &stored
	return nil
}

func (r *fakeNotificationRepo) FindByID(id uint) (*domain.Notification, error) {
	n, ok := r.notifications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *n
	return &copied, nil
}

func (r *fakeNotificationRepo) FindVisible(domain.Scope, domain.ListFilter) ([]domain.Notification, error) {
	return nil, nil
}

func (r *fakeNotificationRepo) CountUnread(domain.Scope) (int64, error) { return 0, nil }

func (r *fakeNotificationRepo) MarkRead(id uint, by uint, at time.Time) error {
	r.markedID = id
	r.markedBy = by
	r.markedAt = at
	r.markCalls++
	if n, ok := r.notifications[id]; ok {
		n.Read = true
		n.ReadAt = &at
		n.ReadBy = by
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(domain.Scope, uint, time.Time) error { return nil }

func (r *fakeNotificationRepo) Delete(id uint) error {
	delete(r.notifications, id)
	r.deletedIDs = append(r.deletedIDs, id)
	return nil
}

type fakeProductSource struct {
	products map[uint]*productdomain.Product
}

func (s *fakeProductSource) FindByID(id uint) (*productdomain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

type fakeBranchSource struct {
	branches map[uint]*branchdomain.Branch
}

func (s *fakeBranchSource) FindByID(id uint) (*branchdomain.Branch, error) {
	b, ok := s.branches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

type fakePublisher struct {
	events []kafka.LowStockAlertEvent
	err    error
}

func (p *fakePublisher) PublishLowStockAlert(_ context.Context, event kafka.LowStockAlertEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func fixtures() (*fakeProductSource, *fakeBranchSource) {
	products := &fakeProductSource{products: map[uint]*productdomain.Product{
		10: {ID: 10, Name: "Amoxicillin 250mg", Stock: 12, BranchID: 3},
	}}
	branches := &fakeBranchSource{branches: map[uint]*branchdomain.Branch{
		3: {ID: 3, Name: "Kigali Main"},
	}}
	return products, branches
}

func TestCreateLowStockNotification(t *testing.T) {
	repo := newFakeNotificationRepo()
	products, branches := fixtures()
	publisher := &fakePublisher{}
	handler := NewCreateNotificationHandler(repo, products, branches, publisher)

	n, err := handler.Handle(context.Background(), CreateNotificationCommand{
		Type:      domain.TypeLowStock,
		ProductID: 10,
		ActorID:   5,
		ActorName: "Jean",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if n.Title != "Low stock: Amoxicillin 250mg" {
		t.Errorf("Title = %q", n.Title)
	}
	if n.ProductName != "Amoxicillin 250mg" || n.CurrentStock != 12 {
		t.Errorf("product snapshot = (%q, %d)", n.ProductName, n.CurrentStock)
	}
	if n.BranchID != 3 || n.BranchName != "Kigali Main" {
		t.Errorf("branch fell back wrong: (%d, %q)", n.BranchID, n.BranchName)
	}
	if n.Priority != domain.PriorityMedium || n.ForRole != domain.ForAdmin {
		t.Errorf("defaults = (%q, %q)", n.Priority, n.ForRole)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.events))
	}
	event := publisher.events[0]
	if event.NotificationID != n.ID || event.ProductID != 10 || event.CurrentStock != 12 {
		t.Errorf("event = %+v", event)
	}
	if event.ManagerID != 5 || event.ManagerName != "Jean" {
		t.Errorf("event actor = (%d, %q)", event.ManagerID, event.ManagerName)
	}
}

func TestCreateNotificationPublishFailureKeepsRecord(t *testing.T) {
	repo := newFakeNotificationRepo()
	products, branches := fixtures()
	publisher := &fakePublisher{err: errors.New("broker down")}
	handler := NewCreateNotificationHandler(repo, products, branches, publisher)

	n, err := handler.Handle(context.Background(), CreateNotificationCommand{
		Type:      domain.TypeLowStock,
		ProductID: 10,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if _, err := repo.FindByID(n.ID); err != nil {
		t.Errorf("notification not stored after publish failure: %v", err)
	}
}

func TestCreateNotificationWithoutPublisher(t *testing.T) {
	repo := newFakeNotificationRepo()
	products, branches := fixtures()
	handler := NewCreateNotificationHandler(repo, products, branches, nil)

	if _, err := handler.Handle(context.Background(), CreateNotificationCommand{
		Type:      domain.TypeLowStock,
		ProductID: 10,
	}); err != nil {
		t.Fatalf("Handle without publisher: %v", err)
	}
}

func TestCreateNotificationValidation(t *testing.T) {
	repo := newFakeNotificationRepo()
	products, branches := fixtures()
	handler := NewCreateNotificationHandler(repo, products, branches, nil)

	tests := []struct {
		name string
		cmd  CreateNotificationCommand
		want error
	}{
		{"unknown type", CreateNotificationCommand{Type: "urgent"}, apperrors.ErrValidation},
		{"low stock without product", CreateNotificationCommand{Type: domain.TypeLowStock}, apperrors.ErrValidation},
		{"general without title", CreateNotificationCommand{Type: domain.TypeGeneral, Message: "hi"}, apperrors.ErrValidation},
		{"unknown product", CreateNotificationCommand{Type: domain.TypeLowStock, ProductID: 404}, apperrors.ErrNotFound},
		{"unknown branch", CreateNotificationCommand{Type: domain.TypeGeneral, Title: "t", Message: "m", BranchID: 404}, apperrors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := handler.Handle(context.Background(), tt.cmd); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreateGeneralNotificationSkipsPublish(t *testing.T) {
	repo := newFakeNotificationRepo()
	products, branches := fixtures()
	publisher := &fakePublisher{}
	handler := NewCreateNotificationHandler(repo, products, branches, publisher)

	if _, err := handler.Handle(context.Background(), CreateNotificationCommand{
		Type:    domain.TypeGeneral,
		Title:   "Maintenance window",
		Message: "System down Sunday 02:00",
		ForRole: domain.ForAll,
	}); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(publisher.events) != 0 {
		t.Errorf("published %d events for a general notification", len(publisher.events))
	}
}
