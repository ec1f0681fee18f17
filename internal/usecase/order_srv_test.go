package usecase

import (
	"context"
	"testing"

	"storefront/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderFromCartSnapshotsAndClears(t *testing.T) {
	env := newTestEnv()
	seller := env.addUser(entity.RoleSeller, "seller@example.com", "secret123")
	product := env.addProduct(seller.ID, "Mug", 10)
	buyer := env.addUser(entity.RoleBuyer, "buyer@example.com", "secret123")

	cartSvc := NewCartService(env.repo, env.log)
	_, err := cartSvc.Add(context.Background(), buyer.ID, product.ID, 3)
	require.NoError(t, err)

	svc := NewOrderService(env.repo, env.mailer, env.log)
	order, err := svc.CreateFromCart(context.Background(), buyer.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.InDelta(t, 30.0, order.Total, 0.001)
	require.Len(t, order.Items, 1)
	assert.Equal(t, seller.ID.String(), order.Items[0].SellerID)
	assert.Equal(t, "Mug", order.Items[0].Name)

	cart, err := cartSvc.Get(context.Background(), buyer.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 0, "successful checkout empties the cart")
}

func TestOrderFromEmptyCart(t *testing.T) {
	env := newTestEnv()
	buyer := env.addUser(entity.RoleBuyer, "buyer@example.com", "secret123")
	svc := NewOrderService(env.repo, env.mailer, env.log)

	_, err := svc.CreateFromCart(context.Background(), buyer.ID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrderSnapshotSurvivesCatalogEdits(t *testing.T) {
	env := newTestEnv()
	seller := env.addUser(entity.RoleSeller, "seller@example.com", "secret123")
	product := env.addProduct(seller.ID, "Mug", 10)
	buyer := env.addUser(entity.RoleBuyer, "buyer@example.com", "secret123")

	cartSvc := NewCartService(env.repo, env.log)
	_, err := cartSvc.Add(context.Background(), buyer.ID, product.ID, 1)
	require.NoError(t, err)

	svc := NewOrderService(env.repo, env.mailer, env.log)
	order, err := svc.CreateFromCart(context.Background(), buyer.ID)
	require.NoError(t, err)

	// Later catalog edits must not reach the order snapshot
	product.Name = "Renamed Mug"
	product.Price = 99
	require.NoError(t, env.products.Update(context.Background(), product))

	orders, err := svc.ListForUser(context.Background(), buyer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, order.ID, orders[0].ID)
	assert.Equal(t, "Mug", orders[0].Items[0].Name)
	assert.InDelta(t, 10.0, orders[0].Items[0].Price, 0.001)
}

func TestOrderBuyNow(t *testing.T) {
	env := newTestEnv()
	seller := env.addUser(entity.RoleSeller, "seller@example.com", "secret123")
	product := env.addProduct(seller.ID, "Mug", 10)
	buyer := env.addUser(entity.RoleBuyer, "buyer@example.com", "secret123")

	cartSvc := NewCartService(env.repo, env.log)
	_, err := cartSvc.Add(context.Background(), buyer.ID, product.ID, 5)
	require.NoError(t, err)

	svc := NewOrderService(env.repo, env.mailer, env.log)
	order, err := svc.CreateSingle(context.Background(), buyer.ID, product.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleted, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 1, order.Items[0].Quantity)

	cart, err := cartSvc.Get(context.Background(), buyer.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1, "buy-now leaves the cart untouched")
}

func TestOrderBuyNowUnknownProduct(t *testing.T) {
	env := newTestEnv()
	buyer := env.addUser(entity.RoleBuyer, "buyer@example.com", "secret123")
	svc := NewOrderService(env.repo, env.mailer, env.log)

	_, err := svc.CreateSingle(context.Background(), buyer.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderListForSeller(t *testing.T) {
	env := newTestEnv()
	sellerA := env.addUser(entity.RoleSeller, "a@example.com", "secret123")
	sellerB := env.addUser(entity.RoleSeller, "b@example.com", "secret123")
	productA := env.addProduct(sellerA.ID, "Mug", 10)
	env.addProduct(sellerB.ID, "Plate", 20)
	buyer := env.addUser(entity.RoleBuyer, "buyer@example.com", "secret123")

	cartSvc := NewCartService(env.repo, env.log)
	_, err := cartSvc.Add(context.Background(), buyer.ID, productA.ID, 1)
	require.NoError(t, err)

	svc := NewOrderService(env.repo, env.mailer, env.log)
	_, err = svc.CreateFromCart(context.Background(), buyer.ID)
	require.NoError(t, err)

	ordersA, err := svc.ListForSeller(context.Background(), sellerA.ID)
	require.NoError(t, err)
	assert.Len(t, ordersA, 1)

	ordersB, err := svc.ListForSeller(context.Background(), sellerB.ID)
	require.NoError(t, err)
	assert.Len(t, ordersB, 0, "seller B sold nothing")
}
