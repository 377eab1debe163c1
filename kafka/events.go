package kafka

import "time"

// LowStockAlertEvent is the integration event emitted when a low stock
// alert is raised. Names and stock are the snapshots carried by the
// notification record.
type LowStockAlertEvent struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	NotificationID uint      `json:"notification_id"`
	ProductID      uint      `json:"product_id"`
	ProductName    string    `json:"product_name"`
	BranchID       uint      `json:"branch_id"`
	BranchName     string    `json:"branch_name"`
	ManagerID      uint      `json:"manager_id"`
	ManagerName    string    `json:"manager_name"`
	CurrentStock   int       `json:"current_stock"`
	Priority       string    `json:"priority"`
	Timestamp      time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeLowStockAlert = "stock.low"
)

// Kafka topics
const (
	TopicLowStockAlerts = "low-stock-alerts"
)
