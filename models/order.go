package models

import "time"

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// DeliveryMethod describes how the customer receives the order
type DeliveryMethod string

const (
	DeliveryDineIn   DeliveryMethod = "dine_in"
	DeliveryTakeaway DeliveryMethod = "takeaway"
	DeliveryDelivery DeliveryMethod = "delivery"
)

// Payment types a cashier can select for a walk-in order
const (
	PaymentCash    = "cash"
	PaymentEDC     = "edc"
	PaymentEwallet = "ewallet"
)

type Order struct {
	ID             uint                 `json:"id" gorm:"primaryKey"`
	TableID        *uint                `json:"table_id"` // nil for walk-in orders
	Table          *DiningTable         `json:"table,omitempty" gorm:"foreignKey:TableID"`
	Status         OrderStatus          `json:"status" gorm:"not null;default:'pending'"`
	TotalAmount    float64              `json:"total_amount"` // computed once at creation
	CustomerName   string               `json:"customer_name"`
	Phone          string               `json:"phone"`
	DeliveryMethod DeliveryMethod       `json:"delivery_method" gorm:"not null;default:'dine_in'"`
	Notes          string               `json:"notes"`
	PaymentType    string               `json:"payment_type"`
	TransactionID  string               `json:"transaction_id"`
	Items          []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory  []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// OrderItem carries a snapshot of the menu item at order-creation time.
// Later menu edits must never change a recorded order.
type OrderItem struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	OrderID    uint    `json:"order_id" gorm:"not null"`
	MenuItemID uint    `json:"menu_item_id" gorm:"not null"`
	Name       string  `json:"name"`                       // snapshot name
	UnitPrice  float64 `json:"unit_price" gorm:"not null"` // snapshot price
	Quantity   int     `json:"quantity" gorm:"not null"`
	Subtotal   float64 `json:"subtotal" gorm:"not null"`
	Notes      string  `json:"notes"`
	Takeaway   bool    `json:"takeaway" gorm:"default:false"`
}

// OrderStatusHistory tracks every status change for audit and receipts
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	Actor      string      `json:"actor"` // "system", "cashier" or "admin"
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
