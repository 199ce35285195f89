package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseController "kursusku_backend/internals/features/courses/course/controller"
)

// CoursePublicRoutes mounts the catalog. The detail endpoint is viewer-aware
// when the optional auth middleware has populated locals.
func CoursePublicRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := courseController.NewCourseController(db)
	courses := router.Group("/courses")

	courses.Get("/", ctrl.ListCourses)
	courses.Get("/:slug", ctrl.GetCourseBySlug)
}
