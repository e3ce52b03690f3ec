package service

import (
	"context"
	"fmt"
	"greenmart-api/internal/client"
	"greenmart-api/internal/dto"
	"greenmart-api/internal/model"
	"greenmart-api/internal/repository"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, client.AutoMigrate(db))

	return db
}

type orderTestEnv struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	svc         OrderService
}

func newOrderTestEnv(t *testing.T) *orderTestEnv {
	db := newTestDB(t)
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)

	return &orderTestEnv{
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		svc:         NewOrderService(db, orderRepo, productRepo, userRepo),
	}
}

func (e *orderTestEnv) seedUser(t *testing.T) *model.User {
	t.Helper()

	user := &model.User{
		ID:    uuid.NewString(),
		Name:  "Test Buyer",
		Email: uuid.NewString() + "@example.com",
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *orderTestEnv) seedProduct(t *testing.T, name string, price float64, stock int) *model.Product {
	t.Helper()

	product := &model.Product{
		ID:       uuid.NewString(),
		Name:     name,
		Price:    price,
		Category: "fruits",
		InStock:  stock,
		Images:   []model.ProductImage{{URL: "https://img.example.com/" + name + ".jpg"}},
	}
	require.NoError(t, e.db.Create(product).Error)
	return product
}

func (e *orderTestEnv) seedCartItem(t *testing.T, userID, productID string, qty int) {
	t.Helper()

	require.NoError(t, e.db.Create(&model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  qty,
	}).Error)
}

func (e *orderTestEnv) productStock(t *testing.T, productID string) int {
	t.Helper()

	var product model.Product
	require.NoError(t, e.db.Where("id = ?", productID).First(&product).Error)
	return product.InStock
}

func (e *orderTestEnv) cartSize(t *testing.T, userID string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, e.db.Model(&model.CartItem{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func (e *orderTestEnv) orderCount(t *testing.T) int64 {
	t.Helper()

	var count int64
	require.NoError(t, e.db.Model(&model.Order{}).Count(&count).Error)
	return count
}

func validOrderRequest(product *model.Product, qty int) *dto.CreateOrderRequest {
	price := product.Price
	subtotal := price * float64(qty)
	return &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: product.ID, Name: product.Name, Quantity: qty, Price: price},
		},
		ShippingAddress: dto.ShippingAddressRequest{
			Name:    "Test Buyer",
			Email:   "buyer@example.com",
			Phone:   "03001234567",
			Address: "12 Canal Road",
			City:    "Lahore",
			Country: "PK",
			Zip:     "54000",
		},
		PaymentMethod: model.PaymentCOD,
		Totals: dto.Totals{
			Subtotal:   subtotal,
			Shipping:   5,
			Tax:        1,
			GrandTotal: subtotal + 6,
		},
	}
}

func TestCreateOrder_Success(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t)
	product := env.seedProduct(t, "Organic Apples", 10, 5)
	env.seedCartItem(t, user.ID, product.ID, 2)

	order, err := env.svc.Create(ctx, user.ID, validOrderRequest(product, 2))
	require.NoError(t, err)

	assert.Equal(t, string(model.OrderPlaced), order.Status)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, 26.0, order.GrandTotal)

	assert.Equal(t, 3, env.productStock(t, product.ID))
	assert.Zero(t, env.cartSize(t, user.ID))

	stored, err := env.orderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.UserID)
	// creation does not seed the status history
	assert.Empty(t, stored.StatusHistory)
}

func TestCreateOrder_CardDetailsStored(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t)
	product := env.seedProduct(t, "Raw Honey", 15, 3)
	env.seedCartItem(t, user.ID, product.ID, 1)

	req := validOrderRequest(product, 1)
	req.PaymentMethod = model.PaymentCard
	req.PaymentDetails = dto.PaymentDetails{CardNumber: "4242424242424242", Expiry: "12/27"}

	order, err := env.svc.Create(ctx, user.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "4242", order.CardLast4)
	assert.Equal(t, "12/27", order.CardExpiry)
}

func TestCreateOrder_CardMissingExpiry(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t)
	product := env.seedProduct(t, "Raw Honey", 15, 3)
	env.seedCartItem(t, user.ID, product.ID, 1)

	req := validOrderRequest(product, 1)
	req.PaymentMethod = model.PaymentCard
	req.PaymentDetails = dto.PaymentDetails{CardNumber: "4242424242424242"}

	_, err := env.svc.Create(ctx, user.ID, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	env := newOrderTestEnv(t)

	user := env.seedUser(t)
	req := &dto.CreateOrderRequest{}

	_, err := env.svc.Create(context.Background(), user.ID, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrder_CartQuantityMismatch_NoWrites(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t)
	product := env.seedProduct(t, "Organic Apples", 10, 5)
	env.seedCartItem(t, user.ID, product.ID, 1)

	// payload claims qty 2, persisted cart says 1
	_, err := env.svc.Create(ctx, user.ID, validOrderRequest(product, 2))
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Organic Apples")

	assert.Equal(t, 5, env.productStock(t, product.ID))
	assert.Equal(t, int64(1), env.cartSize(t, user.ID))
	assert.Zero(t, env.orderCount(t))
}

func TestCreateOrder_PriceChangedSinceCarting(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t)
	product := env.seedProduct(t, "Organic Apples", 10, 5)
	env.seedCartItem(t, user.ID, product.ID, 2)

	req := validOrderRequest(product, 2)
	req.Items[0].Price = 8 // stale price in the payload

	_, err := env.svc.Create(ctx, user.ID, req)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "price")

	assert.Equal(t, 5, env.productStock(t, product.ID))
	assert.Zero(t, env.orderCount(t))
}

func TestCreateOrder_ItemNotInCart(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t)
	product := env.seedProduct(t, "Organic Apples", 10, 5)

	_, err := env.svc.Create(ctx, user.ID, validOrderRequest(product, 2))
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "cart")
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t)
	product := env.seedProduct(t, "Organic Apples", 10, 1)
	env.seedCartItem(t, user.ID, product.ID, 2)

	_, err := env.svc.Create(ctx, user.ID, validOrderRequest(product, 2))
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "stock")

	assert.Equal(t, 1, env.productStock(t, product.ID))
	assert.Zero(t, env.orderCount(t))
}

func TestCreateOrder_NonFiniteTotals(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t)
	product := env.seedProduct(t, "Organic Apples", 10, 5)
	env.seedCartItem(t, user.ID, product.ID, 2)

	req := validOrderRequest(product, 2)
	req.Totals.GrandTotal = math.NaN()

	_, err := env.svc.Create(ctx, user.ID, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCancelOrder_PendingRestoresStock(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t)
	product := env.seedProduct(t, "Organic Apples", 10, 5)
	env.seedCartItem(t, user.ID, product.ID, 2)

	order, err := env.svc.Create(ctx, user.ID, validOrderRequest(product, 2))
	require.NoError(t, err)
	require.Equal(t, 3, env.productStock(t, product.ID))

	require.NoError(t, env.db.Model(&model.Order{}).
		Where("id = ?", order.ID).
		Update("status", string(model.OrderPending)).Error)

	cancelled, err := env.svc.Cancel(ctx, user.ID, order.ID)
	require.NoError(t, err)

	assert.Equal(t, string(model.OrderCancelled), cancelled.Status)
	assert.Equal(t, 5, env.productStock(t, product.ID))
}

func TestCancelOrder_ShippedRejected(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t)
	product := env.seedProduct(t, "Organic Apples", 10, 5)
	env.seedCartItem(t, user.ID, product.ID, 2)

	order, err := env.svc.Create(ctx, user.ID, validOrderRequest(product, 2))
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&model.Order{}).
		Where("id = ?", order.ID).
		Update("status", string(model.OrderShipped)).Error)

	_, err = env.svc.Cancel(ctx, user.ID, order.ID)
	require.ErrorIs(t, err, ErrValidation)

	stored, err := env.orderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, string(model.OrderShipped), stored.Status)
	assert.Equal(t, 3, env.productStock(t, product.ID))
}

func TestCancelOrder_NotOwner(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t)
	other := env.seedUser(t)
	product := env.seedProduct(t, "Organic Apples", 10, 5)
	env.seedCartItem(t, user.ID, product.ID, 2)

	order, err := env.svc.Create(ctx, user.ID, validOrderRequest(product, 2))
	require.NoError(t, err)

	_, err = env.svc.Cancel(ctx, other.ID, order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListMine_DerivedFields(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t)
	product := env.seedProduct(t, "Organic Apples", 10, 5)
	env.seedCartItem(t, user.ID, product.ID, 2)

	_, err := env.svc.Create(ctx, user.ID, validOrderRequest(product, 2))
	require.NoError(t, err)

	views, err := env.svc.ListMine(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)

	assert.Equal(t, "Cash on Delivery", views[0].PaymentMethodDisplay)
	assert.Equal(t, "1 item", views[0].ItemCountLabel)
	require.Len(t, views[0].Items, 1)
	// never delivered, so nothing is return-eligible
	assert.False(t, views[0].Items[0].ReturnEligible)
}
