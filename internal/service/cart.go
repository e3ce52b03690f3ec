package service

import (
	"context"
	"errors"
	"fmt"
	"greenmart-api/internal/dto"
	"greenmart-api/internal/model"
	"greenmart-api/internal/repository"

	"gorm.io/gorm"
)

type CartService interface {
	Get(ctx context.Context, userID string) ([]*dto.CartItemView, error)
	SetItem(ctx context.Context, userID string, req *dto.CartItemRequest) error
	RemoveItem(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}

type cartServiceImpl struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
}

func NewCartService(db *gorm.DB, userRepo repository.UserRepository, productRepo repository.ProductRepository) CartService {
	return &cartServiceImpl{
		db:          db,
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

func (s *cartServiceImpl) Get(ctx context.Context, userID string) ([]*dto.CartItemView, error) {
	items, err := s.userRepo.GetCartItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return []*dto.CartItemView{}, nil
	}

	productIDs := make([]string, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.FindMany(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productByID := make(map[string]*model.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	views := make([]*dto.CartItemView, 0, len(items))
	for _, item := range items {
		product, ok := productByID[item.ProductID]
		if !ok {
			// product removed from the catalog since it was carted
			continue
		}
		views = append(views, &dto.CartItemView{
			ProductID: item.ProductID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
	}

	return views, nil
}

func (s *cartServiceImpl) SetItem(ctx context.Context, userID string, req *dto.CartItemRequest) error {
	if req.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}

	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product", ErrNotFound)
		}
		return err
	}

	return s.userRepo.UpsertCartItem(ctx, &model.CartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, productID string) error {
	return s.userRepo.RemoveCartItem(ctx, userID, productID)
}

func (s *cartServiceImpl) Clear(ctx context.Context, userID string) error {
	return s.userRepo.ClearCart(ctx, s.db, userID)
}
