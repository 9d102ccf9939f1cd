package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/ecommerce/internal/stock/application"
	"github.com/wyfcoding/ecommerce/internal/stock/domain"
	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/response"
)

// Handler 库存 HTTP 处理器
type Handler struct {
	stocks *application.StockService
}

func NewHandler(stocks *application.StockService) *Handler {
	return &Handler{stocks: stocks}
}

// RegisterRoutes 注册路由；读操作公开，写操作要求认证。
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	r := public.Group("/stocks")
	{
		r.GET("", h.ListStocks)
		r.GET("/:id", h.GetStock)
		r.GET("/product/:productId", h.ListByProduct)
		r.GET("/product/:productId/location/:location", h.GetByProductAndLocation)
	}
	w := protected.Group("/stocks")
	{
		w.POST("", h.CreateStock)
		w.PUT("/:id", h.UpdateStock)
		w.DELETE("/:id", h.DeleteStock)
	}
}

// StockRequest 库存创建/更新请求

type StockRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Location  string `json:"location" binding:"required"`
	Quantity  int    `json:"quantity" binding:"gte=0"`
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrStockNotFound) {
		response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
		return
	}
	logger.Error(c.Request.Context(), "Stock request failed", "error", err)
	response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid "+name, "")
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) ListStocks(c *gin.Context) {
	stocks, err := h.stocks.ListStocks(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, stocks)
}

func (h *Handler) GetStock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	stock, err := h.stocks.GetStock(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if stock == nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "stock not found", "")
		return
	}
	response.Success(c, stock)
}

func (h *Handler) ListByProduct(c *gin.Context) {
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}
	stocks, err := h.stocks.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, stocks)
}

func (h *Handler) GetByProductAndLocation(c *gin.Context) {
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}
	location := c.Param("location")
	stock, err := h.stocks.GetByProductAndLocation(c.Request.Context(), productID, location)
	if err != nil {
		writeError(c, err)
		return
	}
	if stock == nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "stock not found", "")
		return
	}
	response.Success(c, stock)
}

func (h *Handler) CreateStock(c *gin.Context) {
	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	stock, err := h.stocks.CreateStock(c.Request.Context(), req.ProductID, req.Location, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, stock)
}

func (h *Handler) UpdateStock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	stock, err := h.stocks.UpdateStock(c.Request.Context(), id, req.ProductID, req.Location, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, stock)
}

func (h *Handler) DeleteStock(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.stocks.DeleteStock(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}
