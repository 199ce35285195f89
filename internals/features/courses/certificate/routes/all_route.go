package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	certificateController "kursusku_backend/internals/features/courses/certificate/controller"
)

// CertificateUserRoutes mounts the authenticated certificate listing.
func CertificateUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := certificateController.NewCertificateController(db)

	router.Get("/certificates", ctrl.ListMyCertificates)
}

// CertificatePublicRoutes mounts the unauthenticated verification lookup.
func CertificatePublicRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := certificateController.NewCertificateController(db)

	router.Get("/certificates/:serial", ctrl.VerifyCertificate)
}
