// 电商后端服务入口。
// 装配配置、日志、数据库、Redis、Kafka 与四个业务上下文，
// 启动 HTTP 服务并支持优雅停机。
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/wyfcoding/ecommerce/internal/catalog/application"
	catalogdomain "github.com/wyfcoding/ecommerce/internal/catalog/domain"
	catalogmysql "github.com/wyfcoding/ecommerce/internal/catalog/infrastructure/persistence/mysql"
	cataloghttp "github.com/wyfcoding/ecommerce/internal/catalog/interfaces/http"
	orderapp "github.com/wyfcoding/ecommerce/internal/order/application"
	orderdomain "github.com/wyfcoding/ecommerce/internal/order/domain"
	"github.com/wyfcoding/ecommerce/internal/order/infrastructure/messaging"
	ordermysql "github.com/wyfcoding/ecommerce/internal/order/infrastructure/persistence/mysql"
	orderhttp "github.com/wyfcoding/ecommerce/internal/order/interfaces/http"
	stockapp "github.com/wyfcoding/ecommerce/internal/stock/application"
	stockdomain "github.com/wyfcoding/ecommerce/internal/stock/domain"
	stockmysql "github.com/wyfcoding/ecommerce/internal/stock/infrastructure/persistence/mysql"
	stockhttp "github.com/wyfcoding/ecommerce/internal/stock/interfaces/http"
	userapp "github.com/wyfcoding/ecommerce/internal/user/application"
	userdomain "github.com/wyfcoding/ecommerce/internal/user/domain"
	usermysql "github.com/wyfcoding/ecommerce/internal/user/infrastructure/persistence/mysql"
	userhttp "github.com/wyfcoding/ecommerce/internal/user/interfaces/http"
	"github.com/wyfcoding/ecommerce/pkg/auth"
	"github.com/wyfcoding/ecommerce/pkg/cache"
	"github.com/wyfcoding/ecommerce/pkg/config"
	"github.com/wyfcoding/ecommerce/pkg/db"
	"github.com/wyfcoding/ecommerce/pkg/logger"
	"github.com/wyfcoding/ecommerce/pkg/metrics"
	"github.com/wyfcoding/ecommerce/pkg/middleware"
	"github.com/wyfcoding/ecommerce/pkg/mq"
	"github.com/wyfcoding/ecommerce/pkg/ratelimit"
)

func main() {
	configPath := flag.String("config", "configs/config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	logger.Info(ctx, "Starting service",
		"service", cfg.ServiceName, "version", cfg.Version, "environment", cfg.Environment)

	database, err := db.Init(db.Config{
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		logger.Fatal(ctx, "Failed to init database", "error", err)
	}
	defer database.Close()

	if cfg.Database.AutoMigrate {
		err := database.AutoMigrate(
			&userdomain.Role{},
			&userdomain.User{},
			&catalogdomain.Brand{},
			&catalogdomain.Category{},
			&catalogdomain.Product{},
			&stockdomain.Stock{},
			&orderdomain.Order{},
			&orderdomain.OrderDetail{},
		)
		if err != nil {
			logger.Fatal(ctx, "Failed to migrate database schema", "error", err)
		}
	}

	var redisCache *cache.RedisCache
	redisCache, err = cache.New(cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxPoolSize:  cfg.Redis.MaxPoolSize,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		// 缓存与限流降级，服务仍可工作
		logger.Warn(ctx, "Redis unavailable, cache and rate limiting disabled", "error", err)
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.ServiceName)
		if err := m.Register(); err != nil {
			logger.Fatal(ctx, "Failed to register metrics", "error", err)
		}
		if err := metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
			logger.Fatal(ctx, "Failed to start metrics server", "error", err)
		}
	}

	var publisher orderdomain.EventPublisher
	var producer *mq.KafkaProducer
	if cfg.Kafka.Enabled {
		producer, err = mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Fatal(ctx, "Failed to create kafka producer", "error", err)
		}
		defer producer.Close()
		publisher = messaging.NewKafkaEventPublisher(producer, cfg.Kafka.OrderTopic)
	}

	tokens := auth.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpireHours)

	// 仓储
	userRepo := usermysql.NewUserRepository(database.DB)
	roleRepo := usermysql.NewRoleRepository(database.DB)
	productRepo := catalogmysql.NewProductRepository(database.DB)
	brandRepo := catalogmysql.NewBrandRepository(database.DB)
	categoryRepo := catalogmysql.NewCategoryRepository(database.DB)
	stockRepo := stockmysql.NewStockRepository(database.DB)
	orderRepo := ordermysql.NewOrderRepository(database.DB)

	// 应用服务
	var productCache catalogapp.ProductCache
	if redisCache != nil {
		productCache = redisCache
	}
	userService := userapp.NewUserService(userRepo, roleRepo, database, tokens)
	productService := catalogapp.NewProductService(productRepo, productCache)
	brandService := catalogapp.NewBrandService(brandRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	stockService := stockapp.NewStockService(stockRepo)
	orderCommands := orderapp.NewOrderCommandService(orderRepo, userRepo, productRepo, stockRepo, database, publisher, m)
	orderQueries := orderapp.NewOrderQueryService(orderRepo, userRepo)

	// HTTP 路由
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinLoggingMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	if m != nil {
		router.Use(middleware.MetricsMiddleware(m))
	}
	if cfg.RateLimit.Enabled && redisCache != nil {
		limiter := ratelimit.NewRedisRateLimiter(redisCache.GetClient())
		router.Use(middleware.RateLimitMiddleware(limiter, cfg.RateLimit))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.ServiceName})
	})

	public := router.Group("/api")
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(tokens))

	userhttp.NewHandler(userService, m).RegisterRoutes(public)
	cataloghttp.NewHandler(productService, brandService, categoryService).RegisterRoutes(public, protected)
	stockhttp.NewHandler(stockService).RegisterRoutes(public, protected)
	orderhttp.NewHandler(orderCommands, orderQueries).RegisterRoutes(protected)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info(ctx, "HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "HTTP server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Server forced to shutdown", "error", err)
	}
	logger.Info(ctx, "Server exited")
}
