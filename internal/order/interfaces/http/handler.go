package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/wyfcoding/ecommerce/internal/catalog/domain"
	"github.com/wyfcoding/ecommerce/internal/order/application"
	"github.com/wyfcoding/ecommerce/internal/order/domain"
	userdomain "github.com/wyfcoding/ecommerce/internal/user/domain"
	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/middleware"
	"github.com/wyfcoding/ecommerce/pkg/response"
)

// Handler 订单 HTTP 处理器
type Handler struct {
	commands *application.OrderCommandService
	queries  *application.OrderQueryService
}

func NewHandler(commands *application.OrderCommandService, queries *application.OrderQueryService) *Handler {
	return &Handler{commands: commands, queries: queries}
}

// RegisterRoutes 注册路由；全部订单端点要求认证。
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	r := protected.Group("/orders")
	{
		r.POST("/create", h.CreateOrder)
		r.GET("/user", h.ListMyOrders)
		r.GET("/:id", h.GetOrder)
	}
}

func writeError(c *gin.Context, err error) {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.Is(err, userdomain.ErrUserNotFound),
		errors.Is(err, catalogdomain.ErrProductNotFound),
		errors.Is(err, domain.ErrOrderNotFound):
		response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
	case errors.As(err, &insufficient),
		errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrInvalidQuantity):
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
	default:
		logger.Error(c.Request.Context(), "Order request failed", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
	}
}

// CreateOrder 下单；请求体为明细行数组。
func (h *Handler) CreateOrder(c *gin.Context) {
	var lines []application.OrderLineInput
	if err := c.ShouldBindJSON(&lines); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	username := c.GetString(middleware.UsernameKey)
	order, err := h.commands.PlaceOrder(c.Request.Context(), username, lines)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, order)
}

// ListMyOrders 返回当前用户的全部订单
func (h *Handler) ListMyOrders(c *gin.Context) {
	username := c.GetString(middleware.UsernameKey)
	orders, err := h.queries.GetOrdersByUser(c.Request.Context(), username)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, orders)
}

// GetOrder 返回订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid id", "")
		return
	}
	order, err := h.queries.GetOrderByID(c.Request.Context(), uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, order)
}
