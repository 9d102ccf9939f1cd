// Package application 实现下单与订单查询的用例逻辑。
//
// 下单是跨上下文的核心写路径：校验用户与商品、按库存位顺序扣减库存、
// 以当前单价生成明细快照并计算总额，全部步骤在同一数据库事务中完成，
// 任一步失败即整体回滚。
package application

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/wyfcoding/ecommerce/internal/catalog/domain"
	"github.com/wyfcoding/ecommerce/internal/order/domain"
	stockdomain "github.com/wyfcoding/ecommerce/internal/stock/domain"
	userdomain "github.com/wyfcoding/ecommerce/internal/user/domain"
	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/metrics"
)

// TxManager 在单个事务中执行 fn；fn 返回错误时整体回滚。
type TxManager interface {
	WithTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

// UserDirectory 订单用例对用户上下文的只读依赖
type UserDirectory interface {
	// GetByUsername 返回用户；不存在时返回 (nil, nil)
	GetByUsername(ctx context.Context, username string) (*userdomain.User, error)
}

// ProductCatalog 订单用例对商品目录的只读依赖
type ProductCatalog interface {
	// GetByID 返回商品；不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id uint) (*catalogdomain.Product, error)
}

// StockLedger 订单用例对库存上下文的依赖。
// ListByProductForUpdate 必须按主键升序返回并对行加锁，
// 保证并发下单时扣减顺序一致且不会超卖。
type StockLedger interface {
	ListByProductForUpdate(ctx context.Context, productID uint) ([]*stockdomain.Stock, error)
	Save(ctx context.Context, stock *stockdomain.Stock) error
}

// OrderLineInput 下单请求中的一行
type OrderLineInput struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// OrderCommandService 订单写服务
type OrderCommandService struct {
	orders    domain.OrderRepository
	users     UserDirectory
	products  ProductCatalog
	stocks    StockLedger
	tx        TxManager
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
}

// NewOrderCommandService 创建订单写服务；publisher 与 m 可为 nil。
func NewOrderCommandService(
	orders domain.OrderRepository,
	users UserDirectory,
	products ProductCatalog,
	stocks StockLedger,
	tx TxManager,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
) *OrderCommandService {
	return &OrderCommandService{
		orders:    orders,
		users:     users,
		products:  products,
		stocks:    stocks,
		tx:        tx,
		publisher: publisher,
		metrics:   m,
	}
}

// PlaceOrder 以 username 身份创建订单。
//
// 每一明细行以商品当前单价计价；库存按该商品全部库存位的主键升序
// 依次扣减，前面的库存位耗尽后再使用后面的，直到满足需求数量。
// 任一行对应商品不存在、或全部库存位总量不足时，订单整体失败，
// 已做的扣减随事务回滚。
func (s *OrderCommandService) PlaceOrder(ctx context.Context, username string, lines []OrderLineInput) (*domain.Order, error) {
	if len(lines) == 0 {
		s.countFailure("empty_order")
		return nil, domain.ErrEmptyOrder
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.countFailure("user_not_found")
		return nil, fmt.Errorf("user %q: %w", username, userdomain.ErrUserNotFound)
	}

	var order *domain.Order
	err = s.tx.WithTx(ctx, func(txCtx context.Context) error {
		total := decimal.Zero
		details := make([]domain.OrderDetail, 0, len(lines))

		for _, line := range lines {
			if line.Quantity <= 0 {
				s.countFailure("invalid_quantity")
				return fmt.Errorf("product %d: %w", line.ProductID, domain.ErrInvalidQuantity)
			}

			product, err := s.products.GetByID(txCtx, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				s.countFailure("product_not_found")
				return fmt.Errorf("product %d: %w", line.ProductID, catalogdomain.ErrProductNotFound)
			}

			if err := s.consumeStock(txCtx, product, line.Quantity); err != nil {
				return err
			}

			details = append(details, domain.OrderDetail{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price,
			})
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		order = domain.NewOrder(user.ID, total, details)
		return s.orders.Save(txCtx, order)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Order placed",
		"order_id", order.ID,
		"user_id", order.UserID,
		"total_amount", order.TotalAmount.String(),
		"lines", len(order.Details))

	if s.metrics != nil {
		s.metrics.OrdersPlacedTotal.Inc()
		amount, _ := order.TotalAmount.Float64()
		s.metrics.OrderAmount.Observe(amount)
	}

	if s.publisher != nil {
		event := &domain.OrderCreatedEvent{
			OrderID:     order.ID,
			UserID:      order.UserID,
			TotalAmount: order.TotalAmount,
			LineCount:   len(order.Details),
			CreatedAt:   order.OrderDate,
		}
		if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
			logger.Warn(ctx, "Failed to publish order created event", "order_id", order.ID, "error", err)
		}
	}

	return order, nil
}

// consumeStock 对单个商品执行首适应扣减。
// 扣减写入在事务上下文中执行，失败由外层回滚兜底。
func (s *OrderCommandService) consumeStock(ctx context.Context, product *catalogdomain.Product, quantity int) error {
	rows, err := s.stocks.ListByProductForUpdate(ctx, product.ID)
	if err != nil {
		return err
	}

	remaining := quantity
	for _, row := range rows {
		if remaining == 0 {
			break
		}
		if row.Quantity <= 0 {
			continue
		}

		take := row.Quantity
		if take > remaining {
			take = remaining
		}
		row.Quantity -= take
		remaining -= take

		if err := s.stocks.Save(ctx, row); err != nil {
			return err
		}
		if s.metrics != nil {
			s.metrics.StockDecrementsTotal.Inc()
		}
	}

	if remaining > 0 {
		s.countFailure("insufficient_stock")
		return &domain.InsufficientStockError{Product: product.Name}
	}
	return nil
}

func (s *OrderCommandService) countFailure(reason string) {
	if s.metrics != nil {
		s.metrics.OrdersFailedTotal.WithLabelValues(reason).Inc()
	}
}
