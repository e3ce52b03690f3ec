package repository

import (
	"context"
	"greenmart-api/internal/model"
	"time"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	FindForUser(ctx context.Context, orderID, userID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
	ListAll(ctx context.Context) ([]*model.Order, error)

	UpdateFields(ctx context.Context, tx *gorm.DB, orderID string, fields map[string]interface{}) error
	AppendStatusEntry(ctx context.Context, tx *gorm.DB, orderID, status string) error

	// MarkCancelled flips the order to cancelled only while it is still in
	// one of allowedFrom; the boolean reports whether the update applied.
	MarkCancelled(ctx context.Context, tx *gorm.DB, orderID string, allowedFrom []string) (bool, error)

	Delete(ctx context.Context, orderID string) error

	UserHasProductInStatus(ctx context.Context, userID, productID string, statuses []string) (bool, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	PaidGrandTotals(ctx context.Context) ([]float64, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_status_entries.id asc")
		}).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindForUser(ctx context.Context, orderID, userID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) ListAll(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at desc").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) UpdateFields(ctx context.Context, tx *gorm.DB, orderID string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()

	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(fields)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *orderRepoImpl) AppendStatusEntry(ctx context.Context, tx *gorm.DB, orderID, status string) error {
	return tx.WithContext(ctx).Create(&model.OrderStatusEntry{
		OrderID: orderID,
		Status:  status,
	}).Error
}

func (r *orderRepoImpl) MarkCancelled(ctx context.Context, tx *gorm.DB, orderID string, allowedFrom []string) (bool, error) {
	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where(`
			id = ?
			AND status IN ?
		`,
			orderID,
			allowedFrom,
		).
		Updates(map[string]interface{}{
			"status":     string(model.OrderCancelled),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// Delete removes the order with its items and history. Stock is not
// restored on this path.
func (r *orderRepoImpl) Delete(ctx context.Context, orderID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).
			Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", orderID).
			Delete(&model.OrderStatusEntry{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", orderID).Delete(&model.Order{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *orderRepoImpl) UserHasProductInStatus(ctx context.Context, userID, productID string, statuses []string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ?", userID).
		Where("order_items.product_id = ?", productID).
		Where("orders.status IN ?", statuses).
		Count(&count).Error

	return count > 0, err
}

func (r *orderRepoImpl) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}

	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("status, count(*) as total").
		Group("status").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}

	return counts, nil
}

func (r *orderRepoImpl) PaidGrandTotals(ctx context.Context) ([]float64, error) {
	var totals []float64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("is_paid = ?", true).
		Pluck("grand_total", &totals).Error

	if err != nil {
		return nil, err
	}

	return totals, nil
}
