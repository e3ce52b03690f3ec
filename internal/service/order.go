package service

import (
	"context"
	"errors"
	"fmt"
	"greenmart-api/internal/dto"
	"greenmart-api/internal/model"
	"greenmart-api/internal/repository"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const returnWindow = 7 * 24 * time.Hour

// statuses an order can be cancelled from by its owner
var cancellableStatuses = []string{
	string(model.OrderPending),
	string(model.OrderProcessing),
}

type OrderService interface {
	Create(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*model.Order, error)
	ListMine(ctx context.Context, userID string) ([]*dto.OrderView, error)
	Cancel(ctx context.Context, userID, orderID string) (*model.Order, error)
}

type orderServiceImpl struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) OrderService {
	return &orderServiceImpl{
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// Create validates the submitted payload against the user's persisted cart
// and the live product records, then creates the order, decrements stock and
// clears the cart inside a single transaction.
func (s *orderServiceImpl) Create(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}

	addr := req.ShippingAddress
	if addr.Name == "" || addr.Email == "" || addr.Phone == "" {
		return nil, fmt.Errorf("%w: shipping address requires name, email and phone", ErrValidation)
	}

	order := &model.Order{
		ID:     uuid.NewString(),
		UserID: userID,
		ShippingAddress: model.ShippingAddress{
			Name:    addr.Name,
			Email:   addr.Email,
			Phone:   addr.Phone,
			Address: addr.Address,
			City:    addr.City,
			Country: addr.Country,
			Zip:     addr.Zip,
		},
		PaymentMethod:  req.PaymentMethod,
		Subtotal:       req.Totals.Subtotal,
		Shipping:       req.Totals.Shipping,
		Tax:            req.Totals.Tax,
		GrandTotal:     req.Totals.GrandTotal,
		Status:         string(model.OrderPlaced),
		DeliveryStatus: model.DeliveryInTransit,
	}

	if err := applyPaymentDetails(order, req.PaymentMethod, req.PaymentDetails); err != nil {
		return nil, err
	}

	if err := validateTotals(req.Totals); err != nil {
		return nil, err
	}

	cartItems, err := s.userRepo.GetCartItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	cartByProduct := make(map[string]*model.CartItem, len(cartItems))
	for _, item := range cartItems {
		cartByProduct[item.ProductID] = item
	}

	productIDs := make([]string, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.FindMany(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	productByID := make(map[string]*model.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	order.Items = make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %q has invalid quantity", ErrValidation, item.Name)
		}

		product, ok := productByID[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product for item %q no longer exists", ErrValidation, item.Name)
		}

		cartItem, ok := cartByProduct[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: item %q is not in your cart", ErrValidation, item.Name)
		}
		if cartItem.Quantity != item.Quantity {
			return nil, fmt.Errorf("%w: quantity for item %q does not match your cart", ErrValidation, item.Name)
		}

		// name and price must match the live product record, not the payload
		if product.Name != item.Name {
			return nil, fmt.Errorf("%w: name for item %q does not match the catalog", ErrValidation, item.Name)
		}
		if product.Price != item.Price {
			return nil, fmt.Errorf("%w: price for item %q has changed, refresh your cart", ErrValidation, item.Name)
		}

		if product.InStock < item.Quantity {
			return nil, fmt.Errorf("%w: insufficient stock for item %q", ErrValidation, item.Name)
		}

		order.Items[i] = model.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}

		for _, item := range order.Items {
			applied, err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			if !applied {
				// a concurrent order took the remaining stock since validation
				return fmt.Errorf("%w: insufficient stock for item %q", ErrValidation, item.Name)
			}
		}

		if err := s.userRepo.ClearCart(ctx, tx, userID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func applyPaymentDetails(order *model.Order, method string, details dto.PaymentDetails) error {
	switch method {
	case model.PaymentCard:
		if details.CardNumber == "" || details.Expiry == "" {
			return fmt.Errorf("%w: card payments require card number and expiry", ErrValidation)
		}
		order.CardLast4 = lastN(details.CardNumber, 4)
		order.CardExpiry = details.Expiry
	case model.PaymentEasypaisa:
		if details.EasypaisaNumber == "" {
			return fmt.Errorf("%w: easypaisa payments require an account number", ErrValidation)
		}
		order.EasypaisaNumber = details.EasypaisaNumber
	case model.PaymentCOD:
		// no details
	default:
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, method)
	}

	return nil
}

func validateTotals(totals dto.Totals) error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"subtotal", totals.Subtotal},
		{"shipping", totals.Shipping},
		{"tax", totals.Tax},
		{"grand_total", totals.GrandTotal},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: total %q is not a finite number", ErrValidation, f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%w: total %q must not be negative", ErrValidation, f.name)
		}
	}

	return nil
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func (s *orderServiceImpl) ListMine(ctx context.Context, userID string) ([]*dto.OrderView, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]*dto.OrderView, len(orders))
	for i, order := range orders {
		views[i] = orderView(order, time.Now())
	}

	return views, nil
}

func orderView(order *model.Order, now time.Time) *dto.OrderView {
	view := &dto.OrderView{
		ID:                   order.ID,
		ItemCountLabel:       itemCountLabel(len(order.Items)),
		PaymentMethodDisplay: paymentMethodDisplay(order.PaymentMethod),
		Totals: dto.Totals{
			Subtotal:   order.Subtotal,
			Shipping:   order.Shipping,
			Tax:        order.Tax,
			GrandTotal: order.GrandTotal,
		},
		Status:         order.Status,
		IsPaid:         order.IsPaid,
		IsDelivered:    order.IsDelivered,
		DeliveryStatus: order.DeliveryStatus,
		TrackingNumber: order.TrackingNumber,
		CreatedAt:      order.CreatedAt,
	}

	returnEligible := order.Status == string(model.OrderDelivered) &&
		order.DeliveredAt != nil &&
		now.Sub(*order.DeliveredAt) <= returnWindow

	view.Items = make([]dto.OrderItemView, len(order.Items))
	for i, item := range order.Items {
		view.Items[i] = dto.OrderItemView{
			ProductID:      item.ProductID,
			Name:           item.Name,
			Quantity:       item.Quantity,
			Price:          item.Price,
			ReturnEligible: returnEligible,
		}
	}

	return view
}

func itemCountLabel(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d items", n)
}

func paymentMethodDisplay(method string) string {
	switch method {
	case model.PaymentCard:
		return "Credit/Debit Card"
	case model.PaymentEasypaisa:
		return "Easypaisa"
	case model.PaymentCOD:
		return "Cash on Delivery"
	}
	return method
}

// Cancel flips an order to cancelled and restores stock for every item.
// Only the order's owner may cancel, and only while it is pending or
// processing. No status history entry is written on this path.
func (s *orderServiceImpl) Cancel(ctx context.Context, userID, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		applied, err := s.orderRepo.MarkCancelled(ctx, tx, order.ID, cancellableStatuses)
		if err != nil {
			return err
		}
		if !applied {
			return fmt.Errorf("%w: order can only be cancelled while pending or processing", ErrValidation)
		}

		for _, item := range order.Items {
			if err := s.productRepo.RestoreStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return fmt.Errorf("restore stock: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = string(model.OrderCancelled)
	return order, nil
}
