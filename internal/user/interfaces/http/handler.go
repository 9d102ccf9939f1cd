package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/ecommerce/internal/user/application"
	"github.com/wyfcoding/ecommerce/internal/user/domain"
	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/metrics"
	"github.com/wyfcoding/ecommerce/pkg/response"
)

// Handler 用户 HTTP 处理器（注册与登录）
type Handler struct {
	users   *application.UserService
	metrics *metrics.Metrics
}

// NewHandler 创建用户处理器；m 可为 nil。
func NewHandler(users *application.UserService, m *metrics.Metrics) *Handler {
	return &Handler{users: users, metrics: m}
}

// RegisterRoutes 注册路由；注册与登录均为公开端点。
func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.POST("/users/register", h.Register)
	public.POST("/auth/login", h.Login)
}

// RegisterRequest 注册请求

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"required,email"`
}

// LoginRequest 登录请求

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUsernameExists) || errors.Is(err, domain.ErrEmailExists) {
			response.ErrorWithStatus(c, http.StatusConflict, err.Error(), "")
			return
		}
		logger.Error(c.Request.Context(), "Failed to register user", "username", req.Username, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	if h.metrics != nil {
		h.metrics.UserRegistrationsTotal.Inc()
	}
	response.Created(c, user)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	token, expiresAt, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			response.ErrorWithStatus(c, http.StatusUnauthorized, "invalid credentials", "")
			return
		}
		logger.Error(c.Request.Context(), "Failed to login", "username", req.Username, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"type":       "Bearer",
		"expires_at": expiresAt.Unix(),
	})
}
