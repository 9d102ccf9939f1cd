package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/ecommerce/internal/catalog/application"
	"github.com/wyfcoding/ecommerce/internal/catalog/domain"
	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/response"
)

// Handler 商品目录 HTTP 处理器
type Handler struct {
	products   *application.ProductService
	brands     *application.BrandService
	categories *application.CategoryService
}

func NewHandler(products *application.ProductService, brands *application.BrandService, categories *application.CategoryService) *Handler {
	return &Handler{products: products, brands: brands, categories: categories}
}

// RegisterRoutes 注册路由；读操作公开，写操作要求认证。
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	products := public.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/search", h.SearchProducts)
		products.GET("/:id", h.GetProduct)
	}
	productsW := protected.Group("/products")
	{
		productsW.POST("", h.CreateProduct)
		productsW.PUT("/:id", h.UpdateProduct)
		productsW.DELETE("/:id", h.DeleteProduct)
	}

	brands := public.Group("/brands")
	{
		brands.GET("", h.ListBrands)
		brands.GET("/:id", h.GetBrand)
	}
	brandsW := protected.Group("/brands")
	{
		brandsW.POST("", h.CreateBrand)
		brandsW.PUT("/:id", h.UpdateBrand)
		brandsW.DELETE("/:id", h.DeleteBrand)
	}

	categories := public.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategory)
	}
	categoriesW := protected.Group("/categories")
	{
		categoriesW.POST("", h.CreateCategory)
		categoriesW.PUT("/:id", h.UpdateCategory)
		categoriesW.DELETE("/:id", h.DeleteCategory)
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "invalid id", "")
		return 0, false
	}
	return uint(id), true
}

// writeError 将目录领域错误映射为 HTTP 状态码
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrBrandNotFound),
		errors.Is(err, domain.ErrCategoryNotFound):
		response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, domain.ErrProductExists),
		errors.Is(err, domain.ErrBrandExists),
		errors.Is(err, domain.ErrCategoryExists):
		response.ErrorWithStatus(c, http.StatusConflict, err.Error(), "")
	default:
		logger.Error(c.Request.Context(), "Catalog request failed", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
	}
}

// ProductRequest 商品创建/更新请求

type ProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	BrandID     uint            `json:"brand_id"`
	CategoryID  uint            `json:"category_id"`
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.products.ListProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	product, err := h.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if product == nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "product not found", "")
		return
	}
	response.Success(c, product)
}

// SearchProducts 按名称子串、分类名、价格区间检索，条件以 AND 组合
func (h *Handler) SearchProducts(c *gin.Context) {
	filter := domain.ProductFilter{
		Name:         c.Query("name"),
		CategoryName: c.Query("category"),
	}
	if raw := c.Query("minPrice"); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, "invalid minPrice", "")
			return
		}
		filter.MinPrice = &p
	}
	if raw := c.Query("maxPrice"); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, "invalid maxPrice", "")
			return
		}
		filter.MaxPrice = &p
	}

	products, err := h.products.SearchProducts(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, products)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	product, err := h.products.CreateProduct(c.Request.Context(), req.Name, req.Description, req.Price, req.BrandID, req.CategoryID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	product, err := h.products.UpdateProduct(c.Request.Context(), id, req.Name, req.Description, req.Price, req.BrandID, req.CategoryID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.products.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}

// NamedRequest 品牌/分类创建与更新请求

type NamedRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *Handler) ListBrands(c *gin.Context) {
	brands, err := h.brands.ListBrands(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, brands)
}

func (h *Handler) GetBrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	brand, err := h.brands.GetBrand(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if brand == nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "brand not found", "")
		return
	}
	response.Success(c, brand)
}

func (h *Handler) CreateBrand(c *gin.Context) {
	var req NamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	brand, err := h.brands.CreateBrand(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, brand)
}

func (h *Handler) UpdateBrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req NamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	brand, err := h.brands.UpdateBrand(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, brand)
}

func (h *Handler) DeleteBrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.brands.DeleteBrand(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, categories)
}

func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	category, err := h.categories.GetCategory(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if category == nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "category not found", "")
		return
	}
	response.Success(c, category)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req NamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	category, err := h.categories.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, category)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req NamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	category, err := h.categories.UpdateCategory(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.categories.DeleteCategory(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": id})
}
