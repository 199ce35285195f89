package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	checkoutRoutes "kursusku_backend/internals/features/billing/checkout/routes"
	subscriptionRoutes "kursusku_backend/internals/features/billing/subscription/routes"
	webhookRoutes "kursusku_backend/internals/features/billing/webhook/routes"
	certificateRoutes "kursusku_backend/internals/features/courses/certificate/routes"
	courseRoutes "kursusku_backend/internals/features/courses/course/routes"
	enrollmentRoutes "kursusku_backend/internals/features/courses/enrollment/routes"
	progressRoutes "kursusku_backend/internals/features/courses/progress/routes"
	authRoutes "kursusku_backend/internals/features/users/auth/routes"
	authMiddleware "kursusku_backend/internals/middlewares/auth"
)

var startTime time.Time

// SetupRoutes wires the three route groups:
//
//	/api/public — no auth required; a valid token still personalizes responses
//	/api/u      — requires a live access token
//	/api/a      — requires a live access token with the admin role
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	log.Println("[INFO] Setting up AuthRoutes...")
	authRoutes.AuthPublicRoutes(app.Group("/api"), db)

	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public", authMiddleware.OptionalAuthMiddleware(db))
	courseRoutes.CoursePublicRoutes(public, db)
	certificateRoutes.CertificatePublicRoutes(public, db)
	webhookRoutes.WebhookRoutes(public, db)
	checkoutRoutes.CheckoutPublicRoutes(public, db)

	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware(db))
	authRoutes.AuthUserRoutes(private, db)
	subscriptionRoutes.SubscriptionUserRoutes(private, db)
	checkoutRoutes.CheckoutUserRoutes(private, db)
	enrollmentRoutes.EnrollmentUserRoutes(private, db)
	progressRoutes.ProgressUserRoutes(private, db)
	certificateRoutes.CertificateUserRoutes(private, db)

	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a", authMiddleware.AuthMiddleware(db), authMiddleware.IsAdmin())
	courseRoutes.CourseAdminRoutes(admin, db)

	BaseRoutes(app, db)
}
