package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "kursusku_backend/internals/features/users/auth/controller"
	rateLimiter "kursusku_backend/internals/middlewares"
)

// AuthPublicRoutes mounts the unauthenticated auth endpoints with their
// per-route rate limiters.
func AuthPublicRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)
	auth := router.Group("/auth")

	auth.Post("/register", rateLimiter.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", rateLimiter.LoginRateLimiter(), ctrl.Login)
	auth.Post("/login-google", rateLimiter.LoginRateLimiter(), ctrl.LoginGoogle)
	auth.Post("/refresh-token", ctrl.RefreshToken)
}

// AuthUserRoutes mounts the endpoints that need a live access token.
func AuthUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	router.Post("/auth/logout", ctrl.Logout)
	router.Get("/users/me", ctrl.Me)
}
