package command

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	branchdomain "github.com/kipharma/pharmacy-platform/internal/branch/domain"
	"github.com/kipharma/pharmacy-platform/internal/notification/domain"
	productdomain "github.com/kipharma/pharmacy-platform/internal/product/domain"
	"github.com/kipharma/pharmacy-platform/kafka"
	"github.com/kipharma/pharmacy-platform/pkg/apperrors"
	"github.com/kipharma/pharmacy-platform/pkg/logger"
)

// ProductSource resolves products for snapshotting. Satisfied by the
// product repository.
type ProductSource interface {
	FindByID(id uint) (*productdomain.Product, error)
}

// BranchSource resolves branches for snapshotting. Satisfied by the
// branch repository.
type BranchSource interface {
	FindByID(id uint) (*branchdomain.Branch, error)
}

// AlertPublisher emits integration events for raised alerts. Satisfied by
// the Kafka publisher; may be nil when no broker is configured.
type AlertPublisher interface {
	PublishLowStockAlert(ctx context.Context, event kafka.LowStockAlertEvent) error
}

// CreateNotificationCommand raises an alert. For low stock alerts the
// product and branch names and the current stock are snapshotted at
// creation time.
type CreateNotificationCommand struct {
	Type      string
	Title     string
	Message   string
	ProductID uint
	BranchID  uint
	Priority  string
	ForRole   string

	// Acting principal, recorded as the raising manager
	ActorID   uint
	ActorName string
}

// CreateNotificationHandler handles notification creation
type CreateNotificationHandler struct {
	repo      domain.NotificationRepository
	products  ProductSource
	branches  BranchSource
	publisher AlertPublisher
}

// NewCreateNotificationHandler creates a new create notification handler
func NewCreateNotificationHandler(
	repo domain.NotificationRepository,
	products ProductSource,
	branches BranchSource,
	publisher AlertPublisher,
) *CreateNotificationHandler {
	return &CreateNotificationHandler{repo: repo, products: products, branches: branches, publisher: publisher}
}

func validType(t string) bool {
	switch t {
	case domain.TypeLowStock, domain.TypeNewOrder, domain.TypeUserAction, domain.TypeSystem, domain.TypeGeneral:
		return true
	}
	return false
}

// Handle executes the create notification command. The notification row
// and the Kafka event are independent sequential writes; a publish
// failure leaves the stored alert intact and is not rolled back.
func (h *CreateNotificationHandler) Handle(ctx context.Context, cmd CreateNotificationCommand) (*domain.Notification, error) {
	if !validType(cmd.Type) {
		return nil, apperrors.Validation("unknown notification type %q", cmd.Type)
	}

	n := &domain.Notification{
		Type:        cmd.Type,
		Title:       cmd.Title,
		Message:     cmd.Message,
		ManagerID:   cmd.ActorID,
		ManagerName: cmd.ActorName,
		Priority:    cmd.Priority,
		ForRole:     cmd.ForRole,
	}
	if n.Priority == "" {
		n.Priority = domain.PriorityMedium
	}
	if n.ForRole == "" {
		n.ForRole = domain.ForAdmin
	}

	if cmd.ProductID != 0 {
		product, err := h.products.FindByID(cmd.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("product %d", cmd.ProductID)
			}
			return nil, err
		}
		n.ProductID = product.ID
		n.ProductName = product.Name
		n.CurrentStock = product.Stock
		if cmd.BranchID == 0 {
			cmd.BranchID = product.BranchID
		}
	}

	if cmd.BranchID != 0 {
		branch, err := h.branches.FindByID(cmd.BranchID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("branch %d", cmd.BranchID)
			}
			return nil, err
		}
		n.BranchID = branch.ID
		n.BranchName = branch.Name
	}

	if cmd.Type == domain.TypeLowStock {
		if n.ProductID == 0 {
			return nil, apperrors.Validation("low stock alert requires a product")
		}
		if n.Title == "" {
			n.Title = fmt.Sprintf("Low stock: %s", n.ProductName)
		}
		if n.Message == "" {
			n.Message = fmt.Sprintf("%s is down to %d units at %s", n.ProductName, n.CurrentStock, n.BranchName)
		}
	}
	if n.Title == "" || n.Message == "" {
		return nil, apperrors.Validation("title and message are required")
	}

	if err := h.repo.Create(n); err != nil {
		return nil, err
	}

	if cmd.Type == domain.TypeLowStock && h.publisher != nil {
		event := kafka.LowStockAlertEvent{
			NotificationID: n.ID,
			ProductID:      n.ProductID,
			ProductName:    n.ProductName,
			BranchID:       n.BranchID,
			BranchName:     n.BranchName,
			ManagerID:      n.ManagerID,
			ManagerName:    n.ManagerName,
			CurrentStock:   n.CurrentStock,
			Priority:       n.Priority,
		}
		if err := h.publisher.PublishLowStockAlert(ctx, event); err != nil {
			// Best effort: the alert is stored either way
			logger.Warn(ctx).Err(err).Uint("notification_id", n.ID).Msg("Low stock event not published")
		}
	}

	return n, nil
}
