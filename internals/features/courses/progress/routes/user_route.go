package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	progressController "kursusku_backend/internals/features/courses/progress/controller"
)

// ProgressUserRoutes mounts the authenticated progress endpoints.
func ProgressUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := progressController.NewProgressController(db)

	router.Put("/lessons/:lesson_id/progress", ctrl.SetLessonProgress)
}
