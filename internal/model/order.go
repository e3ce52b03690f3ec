package model

import "time"

type OrderStatus string

const (
	OrderPlaced     OrderStatus = "placed"
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

func ValidOrderStatus(status string) bool {
	switch OrderStatus(status) {
	case OrderPlaced, OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

const (
	PaymentCard      = "card"
	PaymentEasypaisa = "easypaisa"
	PaymentCOD       = "cod"
)

func ValidPaymentMethod(method string) bool {
	return method == PaymentCard || method == PaymentEasypaisa || method == PaymentCOD
}

const (
	DeliveryInTransit = "In Transit"
	DeliveryDelivered = "Delivered"
)

// ShippingAddress is embedded into Order; fields stay individually updatable
// so admin edits can patch a subset.
type ShippingAddress struct {
	Name    string `gorm:"size:128" json:"name"`
	Email   string `gorm:"size:128" json:"email"`
	Phone   string `gorm:"size:32" json:"phone"`
	Address string `gorm:"size:256" json:"address"`
	City    string `gorm:"size:64" json:"city"`
	Country string `gorm:"size:64" json:"country"`
	Zip     string `gorm:"size:16" json:"zip"`
}

type Order struct {
	ID     string `gorm:"primaryKey;size:64;not null"`
	UserID string `gorm:"size:64;index;not null"`

	Items []OrderItem `gorm:"foreignKey:OrderID"`

	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_"`

	PaymentMethod string `gorm:"size:16;not null"`
	// method-specific details; card keeps only the last 4 digits
	CardLast4       string `gorm:"size:4"`
	CardExpiry      string `gorm:"size:8"`
	EasypaisaNumber string `gorm:"size:32"`

	// computed by the caller and stored as submitted
	Subtotal   float64 `gorm:"not null"`
	Shipping   float64 `gorm:"not null"`
	Tax        float64 `gorm:"not null"`
	GrandTotal float64 `gorm:"not null"`

	Status string `gorm:"size:16;index;not null;default:'placed'"`

	// paid/delivered are tracked outside the status timeline
	IsPaid         bool `gorm:"not null;default:false"`
	PaidAt         *time.Time
	UnpaidAt       *time.Time
	IsDelivered    bool   `gorm:"not null;default:false"`
	DeliveryStatus string `gorm:"size:16;not null;default:'In Transit'"`
	DeliveredAt    *time.Time

	TrackingNumber string `gorm:"size:64"`
	AdminNotes     string `gorm:"type:text"`

	StatusHistory []OrderStatusEntry `gorm:"foreignKey:OrderID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem snapshots name and price at creation time, decoupled from the
// live product record.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey"`
	OrderID   string  `gorm:"size:64;index;not null"`
	ProductID string  `gorm:"size:64;index;not null"`
	Name      string  `gorm:"size:128;not null"`
	Quantity  int     `gorm:"not null"`
	Price     float64 `gorm:"not null"`

	CreatedAt time.Time
}

// OrderStatusEntry is the append-only status transition log.
type OrderStatusEntry struct {
	ID      uint   `gorm:"primaryKey"`
	OrderID string `gorm:"size:64;index;not null"`
	Status  string `gorm:"size:16;not null"`

	CreatedAt time.Time
}
