package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	catalogdomain "github.com/wyfcoding/ecommerce/internal/catalog/domain"
	"github.com/wyfcoding/ecommerce/internal/order/application"
	"github.com/wyfcoding/ecommerce/internal/order/domain"
	stockdomain "github.com/wyfcoding/ecommerce/internal/stock/domain"
	userdomain "github.com/wyfcoding/ecommerce/internal/user/domain"
)

type fakeUserDirectory struct {
	users map[string]*userdomain.User
}

func (f *fakeUserDirectory) GetByUsername(_ context.Context, username string) (*userdomain.User, error) {
	return f.users[username], nil
}

type fakeProductCatalog struct {
	products map[uint]*catalogdomain.Product
}

func (f *fakeProductCatalog) GetByID(_ context.Context, id uint) (*catalogdomain.Product, error) {
	return f.products[id], nil
}

type fakeStockLedger struct {
	rows []*stockdomain.Stock
}

func (f *fakeStockLedger) ListByProductForUpdate(_ context.Context, productID uint) ([]*stockdomain.Stock, error) {
	var out []*stockdomain.Stock
	for _, row := range f.rows {
		if row.ProductID == productID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeStockLedger) Save(_ context.Context, _ *stockdomain.Stock) error {
	return nil
}

func (f *fakeStockLedger) quantities() map[uint]int {
	out := make(map[uint]int, len(f.rows))
	for _, row := range f.rows {
		out[row.ID] = row.Quantity
	}
	return out
}

func (f *fakeStockLedger) restore(snapshot map[uint]int) {
	for _, row := range f.rows {
		row.Quantity = snapshot[row.ID]
	}
}

type fakeOrderRepository struct {
	saved  []*domain.Order
	nextID uint
}

func (f *fakeOrderRepository) Save(_ context.Context, order *domain.Order) error {
	f.nextID++
	order.ID = f.nextID
	f.saved = append(f.saved, order)
	return nil
}

func (f *fakeOrderRepository) GetByID(_ context.Context, id uint) (*domain.Order, error) {
	for _, o := range f.saved {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepository) ListByUser(_ context.Context, userID uint) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range f.saved {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// fakeTxManager 模拟回滚语义：fn 失败时恢复库存数量与已存订单。
type fakeTxManager struct {
	stocks *fakeStockLedger
	orders *fakeOrderRepository
}

func (f *fakeTxManager) WithTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	stockSnapshot := f.stocks.quantities()
	orderCount := len(f.orders.saved)
	if err := fn(ctx); err != nil {
		f.stocks.restore(stockSnapshot)
		f.orders.saved = f.orders.saved[:orderCount]
		return err
	}
	return nil
}

type fakeEventPublisher struct {
	events []*domain.OrderCreatedEvent
}

func (f *fakeEventPublisher) PublishOrderCreated(_ context.Context, event *domain.OrderCreatedEvent) error {
	f.events = append(f.events, event)
	return nil
}

type orderFixture struct {
	users     *fakeUserDirectory
	products  *fakeProductCatalog
	stocks    *fakeStockLedger
	orders    *fakeOrderRepository
	publisher *fakeEventPublisher
	service   *application.OrderCommandService
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newOrderFixture() *orderFixture {
	users := &fakeUserDirectory{users: map[string]*userdomain.User{
		"alice": {Model: gorm.Model{ID: 1}, Username: "alice", Email: "alice@example.com"},
	}}
	products := &fakeProductCatalog{products: map[uint]*catalogdomain.Product{
		10: {Model: gorm.Model{ID: 10}, Name: "widget", Price: price("9.99")},
		11: {Model: gorm.Model{ID: 11}, Name: "gadget", Price: price("25.50")},
	}}
	stocks := &fakeStockLedger{rows: []*stockdomain.Stock{
		{Model: gorm.Model{ID: 1}, ProductID: 10, Location: "warehouse-a", Quantity: 5},
		{Model: gorm.Model{ID: 2}, ProductID: 10, Location: "warehouse-b", Quantity: 10},
		{Model: gorm.Model{ID: 3}, ProductID: 11, Location: "warehouse-a", Quantity: 3},
	}}
	orders := &fakeOrderRepository{}
	publisher := &fakeEventPublisher{}

	service := application.NewOrderCommandService(
		orders, users, products, stocks,
		&fakeTxManager{stocks: stocks, orders: orders},
		publisher, nil,
	)
	return &orderFixture{
		users: users, products: products, stocks: stocks,
		orders: orders, publisher: publisher, service: service,
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	f := newOrderFixture()

	order, err := f.service.PlaceOrder(context.Background(), "alice", []application.OrderLineInput{
		{ProductID: 10, Quantity: 3},
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, uint(1), order.UserID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(price("29.97")),
		"total = %s", order.TotalAmount)

	require.Len(t, order.Details, 1)
	assert.Equal(t, uint(10), order.Details[0].ProductID)
	assert.Equal(t, 3, order.Details[0].Quantity)
	assert.True(t, order.Details[0].Price.Equal(price("9.99")))

	// 首个库存位扣减，后面的不动
	assert.Equal(t, 2, f.stocks.rows[0].Quantity)
	assert.Equal(t, 10, f.stocks.rows[1].Quantity)
	require.Len(t, f.orders.saved, 1)
}

func TestPlaceOrderFirstFitAcrossLocations(t *testing.T) {
	f := newOrderFixture()

	order, err := f.service.PlaceOrder(context.Background(), "alice", []application.OrderLineInput{
		{ProductID: 10, Quantity: 8},
	})
	require.NoError(t, err)

	// warehouse-a 的 5 件耗尽后，剩余 3 件从 warehouse-b 扣
	assert.Equal(t, 0, f.stocks.rows[0].Quantity)
	assert.Equal(t, 7, f.stocks.rows[1].Quantity)
	assert.True(t, order.TotalAmount.Equal(price("79.92")))
}

func TestPlaceOrderMultipleLines(t *testing.T) {
	f := newOrderFixture()

	order, err := f.service.PlaceOrder(context.Background(), "alice", []application.OrderLineInput{
		{ProductID: 10, Quantity: 2},
		{ProductID: 11, Quantity: 1},
	})
	require.NoError(t, err)

	// 2×9.99 + 1×25.50
	assert.True(t, order.TotalAmount.Equal(price("45.48")),
		"total = %s", order.TotalAmount)
	require.Len(t, order.Details, 2)
	assert.Equal(t, 3, f.stocks.rows[0].Quantity)
	assert.Equal(t, 2, f.stocks.rows[2].Quantity)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	f := newOrderFixture()

	// 商品 11 总库存 3
	order, err := f.service.PlaceOrder(context.Background(), "alice", []application.OrderLineInput{
		{ProductID: 11, Quantity: 4},
	})
	require.Error(t, err)
	assert.Nil(t, order)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "gadget", insufficient.Product)

	// 回滚后库存不变，无订单落库
	assert.Equal(t, 3, f.stocks.rows[2].Quantity)
	assert.Empty(t, f.orders.saved)
	assert.Empty(t, f.publisher.events)
}

func TestPlaceOrderRollsBackEarlierLines(t *testing.T) {
	f := newOrderFixture()

	// 第一行可满足，第二行库存不足：整单回滚，第一行的扣减也要恢复
	_, err := f.service.PlaceOrder(context.Background(), "alice", []application.OrderLineInput{
		{ProductID: 10, Quantity: 3},
		{ProductID: 11, Quantity: 99},
	})
	require.Error(t, err)

	assert.Equal(t, 5, f.stocks.rows[0].Quantity)
	assert.Equal(t, 3, f.stocks.rows[2].Quantity)
	assert.Empty(t, f.orders.saved)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	f := newOrderFixture()

	_, err := f.service.PlaceOrder(context.Background(), "alice", []application.OrderLineInput{
		{ProductID: 999, Quantity: 1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalogdomain.ErrProductNotFound)
	assert.Empty(t, f.orders.saved)
}

func TestPlaceOrderUnknownUser(t *testing.T) {
	f := newOrderFixture()

	_, err := f.service.PlaceOrder(context.Background(), "mallory", []application.OrderLineInput{
		{ProductID: 10, Quantity: 1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, userdomain.ErrUserNotFound)
	assert.Equal(t, 5, f.stocks.rows[0].Quantity)
}

func TestPlaceOrderEmptyLines(t *testing.T) {
	f := newOrderFixture()

	_, err := f.service.PlaceOrder(context.Background(), "alice", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)
}

func TestPlaceOrderNonPositiveQuantity(t *testing.T) {
	f := newOrderFixture()

	for _, qty := range []int{0, -1} {
		_, err := f.service.PlaceOrder(context.Background(), "alice", []application.OrderLineInput{
			{ProductID: 10, Quantity: qty},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
	assert.Empty(t, f.orders.saved)
}

func TestPlaceOrderPriceSnapshot(t *testing.T) {
	f := newOrderFixture()

	order, err := f.service.PlaceOrder(context.Background(), "alice", []application.OrderLineInput{
		{ProductID: 10, Quantity: 1},
	})
	require.NoError(t, err)

	// 下单后改价，历史明细保持下单时的单价
	f.products.products[10].Price = price("19.99")
	assert.True(t, order.Details[0].Price.Equal(price("9.99")))
	assert.True(t, order.TotalAmount.Equal(price("9.99")))
}

func TestPlaceOrderPublishesEvent(t *testing.T) {
	f := newOrderFixture()

	order, err := f.service.PlaceOrder(context.Background(), "alice", []application.OrderLineInput{
		{ProductID: 10, Quantity: 2},
	})
	require.NoError(t, err)

	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, order.ID, event.OrderID)
	assert.Equal(t, order.UserID, event.UserID)
	assert.True(t, event.TotalAmount.Equal(order.TotalAmount))
	assert.Equal(t, 1, event.LineCount)
}

func TestPlaceOrderPublisherFailureDoesNotFailOrder(t *testing.T) {
	f := newOrderFixture()
	failing := &failingPublisher{}
	service := application.NewOrderCommandService(
		f.orders, f.users, f.products, f.stocks,
		&fakeTxManager{stocks: f.stocks, orders: f.orders},
		failing, nil,
	)

	order, err := service.PlaceOrder(context.Background(), "alice", []application.OrderLineInput{
		{ProductID: 10, Quantity: 1},
	})
	require.NoError(t, err)
	require.NotNil(t, order)
	require.Len(t, f.orders.saved, 1)
}

type failingPublisher struct{}

func (failingPublisher) PublishOrderCreated(context.Context, *domain.OrderCreatedEvent) error {
	return errors.New("broker unavailable")
}
