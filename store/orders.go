// Package store is the write/read boundary for order records. Every
// successful write publishes a change notification so queue projections can
// refetch; the notification carries no row data on purpose.
package store

import (
	"context"
	"errors"
	"log"

	"resto-qr-pos/models"
	"resto-qr-pos/notify"

	"gorm.io/gorm"
)

// OrdersChannel is the notification channel for any order insert/update.
const OrdersChannel = "orders.changed"

var ErrOrderNotFound = errors.New("order not found")

// activeStatuses are everything except the terminal states
var activeStatuses = []models.OrderStatus{
	models.StatusPending,
	models.StatusPaid,
	models.StatusPreparing,
	models.StatusReady,
}

type OrderItemInput struct {
	MenuItemID uint
	Name       string
	UnitPrice  float64
	Quantity   int
	Notes      string
	Takeaway   bool
}

type CreateOrderParams struct {
	TableID        *uint // nil for walk-in orders
	Items          []OrderItemInput
	CustomerName   string
	Phone          string
	DeliveryMethod models.DeliveryMethod
	Notes          string
	Status         models.OrderStatus // empty means pending
	PaymentType    string
	Actor          string
}

type OrderStore struct {
	db  *gorm.DB
	bus notify.Publisher
}

func NewOrderStore(db *gorm.DB, bus notify.Publisher) *OrderStore {
	return &OrderStore{db: db, bus: bus}
}

// CreateOrder persists an order with snapshot line items. The total is
// computed here, once, and never recomputed afterwards.
func (s *OrderStore) CreateOrder(ctx context.Context, p CreateOrderParams) (uint, error) {
	status := p.Status
	if status == "" {
		status = models.StatusPending
	}
	method := p.DeliveryMethod
	if method == "" {
		method = models.DeliveryDineIn
	}

	var items []models.OrderItem
	var total float64
	for _, in := range p.Items {
		subtotal := in.UnitPrice * float64(in.Quantity)
		total += subtotal
		items = append(items, models.OrderItem{
			MenuItemID: in.MenuItemID,
			Name:       in.Name,
			UnitPrice:  in.UnitPrice,
			Quantity:   in.Quantity,
			Subtotal:   subtotal,
			Notes:      in.Notes,
			Takeaway:   in.Takeaway,
		})
	}

	order := models.Order{
		TableID:        p.TableID,
		Status:         status,
		TotalAmount:    total,
		CustomerName:   p.CustomerName,
		Phone:          p.Phone,
		DeliveryMethod: method,
		Notes:          p.Notes,
		PaymentType:    p.PaymentType,
		Items:          items,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:  order.ID,
			ToStatus: status,
			Actor:    p.Actor,
			Note:     "order created",
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return 0, err
	}

	s.publish(ctx, "created")
	return order.ID, nil
}

// GetOrder loads one order with its items.
func (s *OrderStore) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus overwrites the status field and records the change.
// Transition validity is the caller's concern; this is a plain intended-state
// write so that a later legitimate transition always supersedes an earlier
// one.
func (s *OrderStore) UpdateOrderStatus(ctx context.Context, id uint, to models.OrderStatus, actor, note string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if err := tx.Model(&order).Update("status", to).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:    id,
			FromStatus: order.Status,
			ToStatus:   to,
			Actor:      actor,
			Note:       note,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return err
	}

	s.publish(ctx, "updated")
	return nil
}

// UpdateOrderPayment applies a settlement result: status plus the provider's
// payment method label and transaction reference. A plain overwrite, so
// applying the same notification twice is harmless.
func (s *OrderStore) UpdateOrderPayment(ctx context.Context, id uint, to models.OrderStatus, paymentType, transactionID string) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":         to,
		"payment_type":   paymentType,
		"transaction_id": transactionID,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}

	s.publish(ctx, "payment")
	return nil
}

// ListActiveOrders returns every non-terminal order, oldest first, so the
// queue serves first-in-first-served.
func (s *OrderStore) ListActiveOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("status IN ?", activeStatuses).
		Order("created_at asc").
		Order("id asc"). // deterministic tie-break for same-instant orders
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderStore) publish(ctx context.Context, payload string) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, OrdersChannel, payload); err != nil {
		// Writers must not fail because the notification fan-out is down;
		// projections recover on their next refetch.
		log.Printf("notify publish failed: %v", err)
	}
}
