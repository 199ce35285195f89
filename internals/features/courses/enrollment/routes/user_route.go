package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	enrollmentController "kursusku_backend/internals/features/courses/enrollment/controller"
)

// EnrollmentUserRoutes mounts the authenticated enrollment endpoints.
func EnrollmentUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := enrollmentController.NewEnrollmentController(db)

	router.Post("/courses/:course_id/enroll", ctrl.EnrollCourse)
	router.Get("/my-courses", ctrl.ListMyCourses)
}
