package dto

import "time"

// -------- auth --------

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// -------- catalog --------

type ProductRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Images        []string `json:"images"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Category      string   `json:"category"`
	InStock       int      `json:"in_stock"`
	IsOrganic     bool     `json:"is_organic"`
	IsFeatured    bool     `json:"is_featured"`
	IsBestSeller  bool     `json:"is_best_seller"`
	IsNewArrival  bool     `json:"is_new_arrival"`
}

type ProductFilter struct {
	Category     string `query:"category"`
	IsOrganic    *bool  `query:"is_organic"`
	IsFeatured   *bool  `query:"is_featured"`
	IsBestSeller *bool  `query:"is_best_seller"`
	IsNewArrival *bool  `query:"is_new_arrival"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

type FAQRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// -------- cart --------

type CartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CartItemView struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// -------- orders --------

type OrderItemRequest struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type ShippingAddressRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Zip     string `json:"zip"`
}

// PaymentDetails is a loose bag on the wire; the validator narrows it per
// payment method before anything is stored.
type PaymentDetails struct {
	CardNumber      string `json:"card_number,omitempty"`
	Expiry          string `json:"expiry,omitempty"`
	EasypaisaNumber string `json:"easypaisa_number,omitempty"`
}

type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	Tax        float64 `json:"tax"`
	GrandTotal float64 `json:"grand_total"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest     `json:"items"`
	ShippingAddress ShippingAddressRequest `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
	PaymentDetails  PaymentDetails         `json:"payment_details"`
	Totals          Totals                 `json:"totals"`
}

type OrderItemView struct {
	ProductID      string  `json:"product_id"`
	Name           string  `json:"name"`
	Quantity       int     `json:"quantity"`
	Price          float64 `json:"price"`
	ReturnEligible bool    `json:"return_eligible"`
}

// OrderView adds the display fields the storefront renders for "my orders".
type OrderView struct {
	ID                   string          `json:"id"`
	Items                []OrderItemView `json:"items"`
	ItemCountLabel       string          `json:"item_count_label"`
	PaymentMethodDisplay string          `json:"payment_method_display"`
	Totals               Totals          `json:"totals"`
	Status               string          `json:"status"`
	IsPaid               bool            `json:"is_paid"`
	IsDelivered          bool            `json:"is_delivered"`
	DeliveryStatus       string          `json:"delivery_status"`
	TrackingNumber       string          `json:"tracking_number,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
}

// -------- admin orders --------

type ShippingAddressPatch struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	Country *string `json:"country,omitempty"`
	Zip     *string `json:"zip,omitempty"`
}

type AdminOrderUpdateRequest struct {
	Status          *string               `json:"status,omitempty"`
	TrackingNumber  *string               `json:"tracking_number,omitempty"`
	AdminNotes      *string               `json:"admin_notes,omitempty"`
	ShippingAddress *ShippingAddressPatch `json:"shipping_address,omitempty"`
}

type PaymentToggleRequest struct {
	IsPaid bool `json:"is_paid"`
}

type DeliveryStatusRequest struct {
	DeliveryStatus string `json:"delivery_status"`
}

type SalesSummary struct {
	TotalOrders    int64            `json:"total_orders"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	PaidRevenue    string           `json:"paid_revenue"`
}

// -------- reviews --------

type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
