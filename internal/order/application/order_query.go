package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/ecommerce/internal/order/domain"
	userdomain "github.com/wyfcoding/ecommerce/internal/user/domain"
)

// OrderQueryService 订单读服务
type OrderQueryService struct {
	orders domain.OrderRepository
	users  UserDirectory
}

// NewOrderQueryService 创建订单读服务
func NewOrderQueryService(orders domain.OrderRepository, users UserDirectory) *OrderQueryService {
	return &OrderQueryService{orders: orders, users: users}
}

// GetOrdersByUser 返回 username 的全部订单；用户无订单时返回空切片。
func (s *OrderQueryService) GetOrdersByUser(ctx context.Context, username string) ([]*domain.Order, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", username, userdomain.ErrUserNotFound)
	}

	orders, err := s.orders.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}

// GetOrderByID 返回订单详情
func (s *OrderQueryService) GetOrderByID(ctx context.Context, id uint) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrOrderNotFound)
	}
	return order, nil
}
