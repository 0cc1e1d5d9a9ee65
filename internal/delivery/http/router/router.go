// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/config"
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config         *config.Config
	AuthHandler    *handler.AuthHandler
	ProductHandler *handler.ProductHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg            *config.Config
	authHandler    *handler.AuthHandler
	productHandler *handler.ProductHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:            params.Config,
		authHandler:    params.AuthHandler,
		productHandler: params.ProductHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Auth routes; rate limited to slow down credential guessing.
	authGroup := api.Group("/auth")
	if r.cfg.RateLimit != nil && r.cfg.RateLimit.Enabled {
		authGroup.Use(echomw.RateLimiterWithConfig(middleware.NewAuthRateLimiter(r.cfg)))
	}
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	}

	// Catalog routes: reads are public, mutations require a valid session.
	productGroup := api.Group("/products")
	{
		productGroup.GET("", r.productHandler.List)
		productGroup.GET("/count", r.productHandler.Count)
		productGroup.GET("/featured/:count", r.productHandler.Featured)
		productGroup.GET("/:id", r.productHandler.Get)

		productGroup.POST("", r.productHandler.Create, r.authMiddleware.Authenticate)
		productGroup.PUT("/:id", r.productHandler.Update, r.authMiddleware.Authenticate)
		productGroup.DELETE("/:id", r.productHandler.Delete, r.authMiddleware.Authenticate)
		productGroup.PUT("/:id/rate", r.productHandler.Rate, r.authMiddleware.Authenticate)
	}
}
