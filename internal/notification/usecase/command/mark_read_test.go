package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kipharma/pharmacy-platform/internal/notification/domain"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/auth"
)

func TestMarkRead(t *testing.T) {
	repo := newFakeNotificationRepo(&domain.Notification{ID: 1, ForRole: domain.ForAdmin})
	handler := NewMarkReadHandler(repo)

	n, err := handler.Handle(context.Background(), MarkReadCommand{
		NotificationID: 1,
		Scope:          domain.ScopeFor(auth.RoleAdmin, 7),
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if !n.Read || n.ReadBy != 7 || n.ReadAt == nil {
		t.Errorf("read stamp = (%v, %d, %v)", n.Read, n.ReadBy, n.ReadAt)
	}
	if repo.markedID != 1 || repo.markedBy != 7 {
		t.Errorf("repo stamped (%d, %d)", repo.markedID, repo.markedBy)
	}
}

func TestMarkReadAgainRestamps(t *testing.T) {
	earlier := time.Now().Add(-time.Hour)
	repo := newFakeNotificationRepo(&domain.Notification{
		ID:      1,
		ForRole: domain.ForAdmin,
		Read:    true,
		ReadAt:  &earlier,
		ReadBy:  3,
	})
	handler := NewMarkReadHandler(repo)

	n, err := handler.Handle(context.Background(), MarkReadCommand{
		NotificationID: 1,
		Scope:          domain.ScopeFor(auth.RoleAdmin, 7),
	})
	if err != nil {
		t.Fatalf("re-marking a read notification: %v", err)
	}
	if n.ReadBy != 7 {
		t.Errorf("ReadBy = %d, want restamped reader 7", n.ReadBy)
	}
	if !n.ReadAt.After(earlier) {
		t.Errorf("ReadAt = %v, want later than %v", n.ReadAt, earlier)
	}
	if repo.markCalls != 1 {
		t.Errorf("markCalls = %d, want 1", repo.markCalls)
	}
}

func TestMarkReadOutOfScope(t *testing.T) {
	repo := newFakeNotificationRepo(&domain.Notification{ID: 1, ForRole: domain.ForAdmin, ManagerID: 2})
	handler := NewMarkReadHandler(repo)

	_, err := handler.Handle(context.Background(), MarkReadCommand{
		NotificationID: 1,
		Scope:          domain.ScopeFor(auth.RoleStaff, 9),
	})
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
	if repo.markCalls != 0 {
		t.Error("out of scope mark must not write")
	}
}

func TestMarkReadUnknown(t *testing.T) {
	repo := newFakeNotificationRepo()
	handler := NewMarkReadHandler(repo)

	_, err := handler.Handle(context.Background(), MarkReadCommand{
		NotificationID: 404,
		Scope:          domain.ScopeFor(auth.RoleAdmin, 1),
	})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestDeleteNotificationScope(t *testing.T) {
	repo := newFakeNotificationRepo(&domain.Notification{ID: 1, ForRole: domain.ForManager})
	handler := NewDeleteNotificationHandler(repo)

	if err := handler.Handle(context.Background(), DeleteNotificationCommand{
		NotificationID: 1,
		Scope:          domain.ScopeFor(auth.RoleStaff, 9),
	}); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}

	if err := handler.Handle(context.Background(), DeleteNotificationCommand{
		NotificationID: 1,
		Scope:          domain.ScopeFor(auth.RoleManager, 5),
	}); err != nil {
		t.Fatalf("in-scope delete: %v", err)
	}
	if len(repo.deletedIDs) != 1 || repo.deletedIDs[0] != 1 {
		t.Errorf("deletedIDs = %v", repo.deletedIDs)
	}
}
