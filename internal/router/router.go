package router // package router wires HTTP routes to their handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/dkowalski/wardrobe-api/internal/config"
	"github.com/dkowalski/wardrobe-api/internal/handler"
	"github.com/dkowalski/wardrobe-api/internal/middleware"
	"github.com/dkowalski/wardrobe-api/internal/repository"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, used by load balancers and
// monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Register and login
// live under /v1/auth and require no session; /v1/me sits behind the token
// middleware as a protected identity probe. There is no logout endpoint:
// sessions are self-contained bearer tokens that the client discards.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, users *repository.UserRepo) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.TokenAuth(a.Cfg.JWTSecret, users))
	auth.GET("/me", a.Me)
}

// RegisterItems registers the clothing item CRUD endpoints. All of them
// require a valid access token; the response cache runs after the token
// gate so cached entries are keyed by the resolved user.
func RegisterItems(e *echo.Echo, h *handler.ItemHandler, jwtSecret string, users *repository.UserRepo, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/v1/items")
	g.Use(middleware.TokenAuth(jwtSecret, users))
	g.Use(middleware.ResponseCache(cacheCfg, rdb))

	g.POST("", h.CreateItem)
	g.GET("", h.ListItems)
	g.GET("/:id", h.GetItem)
	g.PUT("/:id", h.UpdateItem)
	g.DELETE("/:id", h.DeleteItem)
}
