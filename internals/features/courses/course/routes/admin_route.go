package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseController "kursusku_backend/internals/features/courses/course/controller"
)

// CourseAdminRoutes mounts the back-office catalog management endpoints.
func CourseAdminRoutes(router fiber.Router, db *gorm.DB) {
	courseCtrl := courseController.NewCourseAdminController(db)
	chapterCtrl := courseController.NewChapterAdminController(db)
	lessonCtrl := courseController.NewLessonAdminController(db)

	courses := router.Group("/courses")
	courses.Get("/", courseCtrl.ListAllCourses)
	courses.Post("/", courseCtrl.CreateCourse)
	courses.Patch("/:course_id", courseCtrl.UpdateCourse)
	courses.Put("/:course_id/cover", courseCtrl.UploadCourseCover)
	courses.Delete("/:course_id", courseCtrl.DeleteCourse)
	courses.Post("/:course_id/chapters", chapterCtrl.CreateChapter)

	chapters := router.Group("/chapters")
	chapters.Patch("/:chapter_id", chapterCtrl.UpdateChapter)
	chapters.Delete("/:chapter_id", chapterCtrl.DeleteChapter)
	chapters.Post("/:chapter_id/lessons", lessonCtrl.CreateLesson)

	lessons := router.Group("/lessons")
	lessons.Patch("/:lesson_id", lessonCtrl.UpdateLesson)
	lessons.Delete("/:lesson_id", lessonCtrl.DeleteLesson)
}
