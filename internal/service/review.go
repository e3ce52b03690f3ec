package service

import (
	"context"
	"errors"
	"fmt"
	"greenmart-api/internal/dto"
	"greenmart-api/internal/model"
	"greenmart-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// an order must have reached one of these before its items count as a
// verified purchase
var verifyingStatuses = []string{
	string(model.OrderShipped),
	string(model.OrderDelivered),
}

type ReviewService interface {
	Create(ctx context.Context, userID, productID string, req *dto.ReviewRequest) (*model.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]*model.Review, error)
}

type reviewServiceImpl struct {
	reviewRepo  repository.ReviewRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) ReviewService {
	return &reviewServiceImpl{
		reviewRepo:  reviewRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// Create stores the review regardless of purchase history; a qualifying
// shipped/delivered order containing the product only flips the verified
// flag, it never gates submission.
func (s *reviewServiceImpl) Create(ctx context.Context, userID, productID string, req *dto.ReviewRequest) (*model.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product", ErrNotFound)
		}
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	verified, err := s.orderRepo.UserHasProductInStatus(ctx, userID, productID, verifyingStatuses)
	if err != nil {
		return nil, err
	}

	review := &model.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    userID,
		UserName:  user.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Verified:  verified,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

func (s *reviewServiceImpl) ListByProduct(ctx context.Context, productID string) ([]*model.Review, error) {
	return s.reviewRepo.ListByProduct(ctx, productID)
}
