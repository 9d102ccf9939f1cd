package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wyfcoding/ecommerce/internal/order/application"
	"github.com/wyfcoding/ecommerce/internal/order/domain"
	userdomain "github.com/wyfcoding/ecommerce/internal/user/domain"
)

func TestGetOrdersByUserEmpty(t *testing.T) {
	users := &fakeUserDirectory{users: map[string]*userdomain.User{
		"alice": {Model: gorm.Model{ID: 1}, Username: "alice"},
	}}
	service := application.NewOrderQueryService(&fakeOrderRepository{}, users)

	orders, err := service.GetOrdersByUser(context.Background(), "alice")
	require.NoError(t, err)
	// 无订单返回空切片而非 nil，序列化为 [] 而不是 null
	require.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestGetOrdersByUserUnknownUser(t *testing.T) {
	service := application.NewOrderQueryService(&fakeOrderRepository{}, &fakeUserDirectory{users: map[string]*userdomain.User{}})

	_, err := service.GetOrdersByUser(context.Background(), "mallory")
	require.Error(t, err)
	assert.ErrorIs(t, err, userdomain.ErrUserNotFound)
}

func TestGetOrdersByUserFiltersOwner(t *testing.T) {
	users := &fakeUserDirectory{users: map[string]*userdomain.User{
		"alice": {Model: gorm.Model{ID: 1}, Username: "alice"},
		"bob":   {Model: gorm.Model{ID: 2}, Username: "bob"},
	}}
	repo := &fakeOrderRepository{}
	require.NoError(t, repo.Save(context.Background(), &domain.Order{UserID: 1}))
	require.NoError(t, repo.Save(context.Background(), &domain.Order{UserID: 2}))
	require.NoError(t, repo.Save(context.Background(), &domain.Order{UserID: 1}))

	service := application.NewOrderQueryService(repo, users)
	orders, err := service.GetOrdersByUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, uint(1), o.UserID)
	}
}

func TestGetOrderByID(t *testing.T) {
	users := &fakeUserDirectory{users: map[string]*userdomain.User{}}
	repo := &fakeOrderRepository{}
	require.NoError(t, repo.Save(context.Background(), &domain.Order{UserID: 1}))

	service := application.NewOrderQueryService(repo, users)

	order, err := service.GetOrderByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), order.ID)

	_, err = service.GetOrderByID(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
