package service

import (
	"context"
	"greenmart-api/internal/dto"
	"greenmart-api/internal/model"
	"greenmart-api/internal/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewEnv(t *testing.T) (*orderTestEnv, ReviewService) {
	env := newOrderTestEnv(t)
	reviewRepo := repository.NewReviewRepository(env.db)
	return env, NewReviewService(reviewRepo, env.orderRepo, env.productRepo, env.userRepo)
}

func TestReview_VerifiedWithDeliveredOrder(t *testing.T) {
	env, svc := newReviewEnv(t)
	ctx := context.Background()

	user, product, order := placeOrder(t, env, 5, 2)

	require.NoError(t, env.db.Model(&model.Order{}).
		Where("id = ?", order.ID).
		Update("status", string(model.OrderDelivered)).Error)

	review, err := svc.Create(ctx, user.ID, product.ID, &dto.ReviewRequest{
		Rating:  5,
		Comment: "Crisp and fresh",
	})
	require.NoError(t, err)

	assert.True(t, review.Verified)
	assert.Equal(t, user.Name, review.UserName)
}

func TestReview_VerifiedWithShippedOrder(t *testing.T) {
	env, svc := newReviewEnv(t)
	ctx := context.Background()

	user, product, order := placeOrder(t, env, 5, 2)

	require.NoError(t, env.db.Model(&model.Order{}).
		Where("id = ?", order.ID).
		Update("status", string(model.OrderShipped)).Error)

	review, err := svc.Create(ctx, user.ID, product.ID, &dto.ReviewRequest{Rating: 4})
	require.NoError(t, err)

	assert.True(t, review.Verified)
}

func TestReview_UnverifiedWithoutQualifyingOrder(t *testing.T) {
	env, svc := newReviewEnv(t)
	ctx := context.Background()

	// order exists but never left "placed"
	user, product, _ := placeOrder(t, env, 5, 2)

	review, err := svc.Create(ctx, user.ID, product.ID, &dto.ReviewRequest{
		Rating:  2,
		Comment: "Arrived bruised",
	})
	require.NoError(t, err)

	// stored all the same, merely flagged differently
	assert.False(t, review.Verified)

	reviews, err := svc.ListByProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.False(t, reviews[0].Verified)
}

func TestReview_NoPurchaseAtAll(t *testing.T) {
	env, svc := newReviewEnv(t)
	ctx := context.Background()

	user := env.seedUser(t)
	product := env.seedProduct(t, "Organic Apples", 10, 5)

	review, err := svc.Create(ctx, user.ID, product.ID, &dto.ReviewRequest{Rating: 3})
	require.NoError(t, err)
	assert.False(t, review.Verified)
}

func TestReview_RatingBounds(t *testing.T) {
	env, svc := newReviewEnv(t)
	ctx := context.Background()

	user := env.seedUser(t)
	product := env.seedProduct(t, "Organic Apples", 10, 5)

	_, err := svc.Create(ctx, user.ID, product.ID, &dto.ReviewRequest{Rating: 0})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, user.ID, product.ID, &dto.ReviewRequest{Rating: 6})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReview_UnknownProduct(t *testing.T) {
	env, svc := newReviewEnv(t)

	user := env.seedUser(t)

	_, err := svc.Create(context.Background(), user.ID, "missing", &dto.ReviewRequest{Rating: 3})
	assert.ErrorIs(t, err, ErrNotFound)
}
