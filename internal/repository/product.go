package repository

import (
	"context"
	"greenmart-api/internal/dto"
	"greenmart-api/internal/model"
	"time"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, productID string) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error)
	List(ctx context.Context, filter *dto.ProductFilter) ([]*model.Product, error)

	// DecrementStock takes qty off the product's stock only when enough is
	// available; the boolean reports whether the guarded update applied.
	DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) (bool, error)
	RestoreStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Product{}).
			Where("id = ?", product.ID).
			Updates(map[string]interface{}{
				"name":           product.Name,
				"description":    product.Description,
				"price":          product.Price,
				"original_price": product.OriginalPrice,
				"category":       product.Category,
				"in_stock":       product.InStock,
				"is_organic":     product.IsOrganic,
				"is_featured":    product.IsFeatured,
				"is_best_seller": product.IsBestSeller,
				"is_new_arrival": product.IsNewArrival,
				"updated_at":     time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		// replace images wholesale
		if err := tx.Where("product_id = ?", product.ID).
			Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}
		images := make([]model.ProductImage, len(product.Images))
		for i, img := range product.Images {
			images[i] = model.ProductImage{ProductID: product.ID, URL: img.URL}
		}
		return tx.Create(&images).Error
	})
}

func (r *productRepoImpl) Delete(ctx context.Context, productID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).
			Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", productID).Delete(&model.Product{}).Error
	})
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) List(ctx context.Context, filter *dto.ProductFilter) ([]*model.Product, error) {
	q := r.db.WithContext(ctx).Preload("Images")

	if filter != nil {
		if filter.Category != "" {
			q = q.Where("category = ?", filter.Category)
		}
		if filter.IsOrganic != nil {
			q = q.Where("is_organic = ?", *filter.IsOrganic)
		}
		if filter.IsFeatured != nil {
			q = q.Where("is_featured = ?", *filter.IsFeatured)
		}
		if filter.IsBestSeller != nil {
			q = q.Where("is_best_seller = ?", *filter.IsBestSeller)
		}
		if filter.IsNewArrival != nil {
			q = q.Where("is_new_arrival = ?", *filter.IsNewArrival)
		}
	}

	var products []*model.Product
	err := q.Order("created_at desc").Find(&products).Error
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) DecrementStock(ctx context.Context, tx *gorm.DB, productID string, qty int) (bool, error) {
	result := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND in_stock >= ?", productID, qty).
		Update("in_stock", gorm.Expr("in_stock - ?", qty))

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *productRepoImpl) RestoreStock(ctx context.Context, tx *gorm.DB, productID string, qty int) error {
	return tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Update("in_stock", gorm.Expr("in_stock + ?", qty)).Error
}
