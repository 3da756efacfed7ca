package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/sharvari/wardrobe-backend/internal/repository"
	"github.com/sharvari/wardrobe-backend/internal/token"
	"github.com/sharvari/wardrobe-backend/internal/transport/http/handler"
	"github.com/sharvari/wardrobe-backend/internal/transport/http/middleware"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, wishlistHandler *handler.WishlistHandler, userRepo repository.UserRepository, tokens *token.Service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	guard := middleware.Auth(tokens, userRepo, logger)

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/register", authHandler.Signup) // alias kept for older clients
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", guard, authHandler.Me)
	auth.POST("/logout", guard, authHandler.Logout)

	wishlist := api.Group("/wishlist", guard)
	wishlist.GET("", wishlistHandler.List)
	wishlist.POST("", wishlistHandler.Add)
	wishlist.DELETE("/:productId", wishlistHandler.Remove)

	return r
}
