package router

import (
	"fmt"
	"net/http"

	appcart "github.com/boilerparts/backend/internal/application/cart"
	appcatalog "github.com/boilerparts/backend/internal/application/catalog"
	appidentity "github.com/boilerparts/backend/internal/application/identity"
	"github.com/boilerparts/backend/internal/infrastructure/auth"
	"github.com/boilerparts/backend/internal/infrastructure/config"
	"github.com/boilerparts/backend/internal/infrastructure/logger"
	"github.com/boilerparts/backend/internal/infrastructure/telemetry"
	"github.com/boilerparts/backend/internal/interfaces/http/dto"
	"github.com/boilerparts/backend/internal/interfaces/http/handler"
	"github.com/boilerparts/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Deps are the collaborators NewEngine wires into handlers and middleware
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Version  string
	Database handler.Pinger

	JWT       *auth.JWTService
	Blacklist auth.TokenBlacklist

	// Metrics enables the metrics middleware and GET /metrics when set
	Metrics *telemetry.HTTPMetrics
	// TracerProvider overrides the global provider for HTTP spans
	TracerProvider trace.TracerProvider

	Users   *appidentity.UserService
	Auth    *appidentity.AuthService
	Catalog *appcatalog.BoilerPartService
	Cart    *appcart.CartService
}

// Engine is the configured gin engine. Close stops the background cleanup
// of its rate limiters.
type Engine struct {
	*gin.Engine
	limiters []*middleware.RateLimiter
}

// Close releases resources held by the middleware chain
func (e *Engine) Close() {
	for _, l := range e.limiters {
		l.Stop()
	}
}

// NewEngine builds the HTTP engine serving the whole API
func NewEngine(deps Deps) (*Engine, error) {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}
	e := &Engine{Engine: engine}

	security := middleware.DefaultSecurityConfig()
	security.HSTSEnabled = cfg.IsProduction()

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			Enabled:        cfg.Telemetry.Enabled,
			TracerProvider: deps.TracerProvider,
		}),
		middleware.SpanEnricher(),
		logger.GinMiddleware(log),
	)
	if deps.Metrics != nil {
		engine.Use(middleware.Metrics(deps.Metrics))
	}
	engine.Use(
		middleware.SecureWithConfig(security),
		middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.HTTP)),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		e.limiters = append(e.limiters, limiter)
		engine.Use(middleware.RateLimit(limiter))
	}
	engine.Use(middleware.Timeout(cfg.HTTP.RequestTimeout))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", c.GetString(middleware.RequestIDKey)))
	})

	health := handler.NewHealthHandler(deps.Database, deps.Version)
	engine.GET("/health", health.Health)
	if deps.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	requireAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     deps.JWT,
		TokenBlacklist: deps.Blacklist,
		Logger:         log,
	})

	var loginLimit []gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		e.limiters = append(e.limiters, limiter)
		loginLimit = append(loginLimit, middleware.RateLimit(limiter))
	}

	users := handler.NewUserHandler(deps.Users, deps.Auth)
	parts := handler.NewBoilerPartHandler(deps.Catalog)
	cart := handler.NewShoppingCartHandler(deps.Cart)

	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Register(userRoutes(users, requireAuth, loginLimit))
	r.Register(boilerPartRoutes(parts))
	r.Register(shoppingCartRoutes(cart, requireAuth))
	r.Setup()

	return e, nil
}

func userRoutes(h *handler.UserHandler, requireAuth gin.HandlerFunc, loginLimit []gin.HandlerFunc) *DomainGroup {
	g := NewDomainGroup("users", "/users")
	g.POST("/signup", h.Signup)
	g.POST("/login", append(loginLimit, h.Login)...)
	g.POST("/refresh", h.Refresh)
	g.POST("/logout", requireAuth, h.Logout)
	g.GET("/login-check", requireAuth, h.LoginCheck)
	return g
}

func boilerPartRoutes(h *handler.BoilerPartHandler) *DomainGroup {
	g := NewDomainGroup("boiler-parts", "/boiler-parts")
	g.GET("", h.PaginateAndFilter)
	g.GET("/bestsellers", h.Bestsellers)
	g.GET("/new", h.New)
	g.GET("/find/:id", h.FindOne)
	g.POST("/search", h.Search)
	g.POST("/name", h.FindByName)
	return g
}

func shoppingCartRoutes(h *handler.ShoppingCartHandler, requireAuth gin.HandlerFunc) *DomainGroup {
	g := NewDomainGroup("shopping-cart", "/shopping-cart").Use(requireAuth)
	g.GET("/:id", h.FindAll)
	g.POST("/add", h.Add)
	g.PATCH("/count/:id", h.UpdateCount)
	g.PATCH("/total-price/:id", h.UpdateTotalPrice)
	g.DELETE("/one/:id", h.RemoveOne)
	g.DELETE("/all/:id", h.RemoveAll)
	return g
}
