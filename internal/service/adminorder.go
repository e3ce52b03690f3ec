package service

import (
	"context"
	"errors"
	"fmt"
	"greenmart-api/internal/dto"
	"greenmart-api/internal/model"
	"greenmart-api/internal/repository"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AdminOrderService interface {
	List(ctx context.Context) ([]*model.Order, error)
	Get(ctx context.Context, orderID string) (*model.Order, error)
	Update(ctx context.Context, orderID string, req *dto.AdminOrderUpdateRequest) (*model.Order, error)
	SetPayment(ctx context.Context, orderID string, isPaid bool) (*model.Order, error)
	SetDeliveryStatus(ctx context.Context, orderID, deliveryStatus string) (*model.Order, error)
	Delete(ctx context.Context, orderID string) error
	SalesSummary(ctx context.Context) (*dto.SalesSummary, error)
}

type adminOrderServiceImpl struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
}

func NewAdminOrderService(db *gorm.DB, orderRepo repository.OrderRepository) AdminOrderService {
	return &adminOrderServiceImpl{
		db:        db,
		orderRepo: orderRepo,
	}
}

func (s *adminOrderServiceImpl) List(ctx context.Context) ([]*model.Order, error) {
	return s.orderRepo.ListAll(ctx)
}

func (s *adminOrderServiceImpl) Get(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, err
	}

	return order, nil
}

// Update applies admin edits: status (validated against the closed enum,
// appending a history entry only when it actually changes), tracking number,
// notes, and a shallow merge over shipping address fields.
func (s *adminOrderServiceImpl) Update(ctx context.Context, orderID string, req *dto.AdminOrderUpdateRequest) (*model.Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	statusChanged := false

	if req.Status != nil {
		if !model.ValidOrderStatus(*req.Status) {
			return nil, fmt.Errorf("%w: invalid order status %q", ErrValidation, *req.Status)
		}
		if *req.Status != order.Status {
			fields["status"] = *req.Status
			statusChanged = true
		}
	}
	if req.TrackingNumber != nil {
		fields["tracking_number"] = *req.TrackingNumber
	}
	if req.AdminNotes != nil {
		fields["admin_notes"] = *req.AdminNotes
	}
	if req.ShippingAddress != nil {
		mergeShippingPatch(fields, req.ShippingAddress)
	}

	if len(fields) == 0 {
		return order, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.UpdateFields(ctx, tx, orderID, fields); err != nil {
			return err
		}
		if statusChanged {
			return s.orderRepo.AppendStatusEntry(ctx, tx, orderID, *req.Status)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, orderID)
}

func mergeShippingPatch(fields map[string]interface{}, patch *dto.ShippingAddressPatch) {
	if patch.Name != nil {
		fields["shipping_name"] = *patch.Name
	}
	if patch.Email != nil {
		fields["shipping_email"] = *patch.Email
	}
	if patch.Phone != nil {
		fields["shipping_phone"] = *patch.Phone
	}
	if patch.Address != nil {
		fields["shipping_address"] = *patch.Address
	}
	if patch.City != nil {
		fields["shipping_city"] = *patch.City
	}
	if patch.Country != nil {
		fields["shipping_country"] = *patch.Country
	}
	if patch.Zip != nil {
		fields["shipping_zip"] = *patch.Zip
	}
}

// SetPayment toggles the paid flag with its side timestamps. The status
// timeline is untouched: paid/unpaid lives outside statusHistory.
func (s *adminOrderServiceImpl) SetPayment(ctx context.Context, orderID string, isPaid bool) (*model.Order, error) {
	now := time.Now()
	fields := map[string]interface{}{
		"is_paid": isPaid,
	}
	if isPaid {
		fields["paid_at"] = now
	} else {
		fields["unpaid_at"] = now
	}

	if err := s.updateOrNotFound(ctx, orderID, fields); err != nil {
		return nil, err
	}

	return s.Get(ctx, orderID)
}

// SetDeliveryStatus updates the delivery flag pair; no statusHistory entry.
func (s *adminOrderServiceImpl) SetDeliveryStatus(ctx context.Context, orderID, deliveryStatus string) (*model.Order, error) {
	if deliveryStatus != model.DeliveryInTransit && deliveryStatus != model.DeliveryDelivered {
		return nil, fmt.Errorf("%w: invalid delivery status %q", ErrValidation, deliveryStatus)
	}

	fields := map[string]interface{}{
		"delivery_status": deliveryStatus,
		"is_delivered":    deliveryStatus == model.DeliveryDelivered,
	}
	if deliveryStatus == model.DeliveryDelivered {
		fields["delivered_at"] = time.Now()
	}

	if err := s.updateOrNotFound(ctx, orderID, fields); err != nil {
		return nil, err
	}

	return s.Get(ctx, orderID)
}

func (s *adminOrderServiceImpl) updateOrNotFound(ctx context.Context, orderID string, fields map[string]interface{}) error {
	err := s.orderRepo.UpdateFields(ctx, s.db, orderID, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: order", ErrNotFound)
	}
	return err
}

// Delete is a destructive removal; stock is deliberately not restored.
func (s *adminOrderServiceImpl) Delete(ctx context.Context, orderID string) error {
	err := s.orderRepo.Delete(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: order", ErrNotFound)
	}
	return err
}

func (s *adminOrderServiceImpl) SalesSummary(ctx context.Context) (*dto.SalesSummary, error) {
	counts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	grandTotals, err := s.orderRepo.PaidGrandTotals(ctx)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	for _, t := range grandTotals {
		revenue = revenue.Add(decimal.NewFromFloat(t))
	}

	return &dto.SalesSummary{
		TotalOrders:    total,
		OrdersByStatus: counts,
		PaidRevenue:    revenue.StringFixed(2),
	}, nil
}
