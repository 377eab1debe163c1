package query

import (
	"context"
	"testing"
	"time"

	"github.com/kipharma/pharmacy-platform/internal/notification/domain"
	"github.com/kipharma/pharmacy-platform/pkg/auth"
)

// scopedRepo serves a fixed visible set and filters it in memory the way
// the SQL layer would.
type scopedRepo struct {
	visible []domain.Notification
}

func (r *scopedRepo) Create(*domain.Notification) error              { return nil }
func (r *scopedRepo) FindByID(uint) (*domain.Notification, error)    { return nil, nil }
func (r *scopedRepo) MarkRead(uint, uint, time.Time) error           { return nil }
func (r *scopedRepo) MarkAllRead(domain.Scope, uint, time.Time) error { return nil }
func (r *scopedRepo) Delete(uint) error                              { return nil }

func (r *scopedRepo) FindVisible(_ domain.Scope, filter domain.ListFilter) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range r.visible {
		if filter.Read != nil && n.Read != *filter.Read {
			continue
		}
		out = append(out, n)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *scopedRepo) CountUnread(domain.Scope) (int64, error) {
	var count int64
	for _, n := range r.visible {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func TestListNotificationsUnreadCountIgnoresFilter(t *testing.T) {
	repo := &scopedRepo{visible: []domain.Notification{
		{ID: 1, Read: true},
		{ID: 2, Read: false},
		{ID: 3, Read: false},
	}}
	handler := NewListNotificationsHandler(repo)

	read := true
	result, err := handler.Handle(context.Background(), ListNotificationsQuery{
		Scope:  domain.ScopeFor(auth.RoleAdmin, 1),
		Filter: domain.ListFilter{Read: &read},
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(result.Notifications) != 1 {
		t.Errorf("filtered page has %d notifications, want 1", len(result.Notifications))
	}
	if result.UnreadCount != 2 {
		t.Errorf("UnreadCount = %d, want 2 (full visible set)", result.UnreadCount)
	}
}

func TestListNotificationsLimit(t *testing.T) {
	repo := &scopedRepo{visible: []domain.Notification{{ID: 1}, {ID: 2}, {ID: 3}}}
	handler := NewListNotificationsHandler(repo)

	result, err := handler.Handle(context.Background(), ListNotificationsQuery{
		Scope:  domain.ScopeFor(auth.RoleAdmin, 1),
		Filter: domain.ListFilter{Limit: 2},
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(result.Notifications) != 2 {
		t.Errorf("page has %d notifications, want 2", len(result.Notifications))
	}
}
