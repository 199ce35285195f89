package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	courseDTO "kursusku_backend/internals/features/courses/course/dto"
	courseService "kursusku_backend/internals/features/courses/course/service"
	enrollmentDTO "kursusku_backend/internals/features/courses/enrollment/dto"
	enrollmentModel "kursusku_backend/internals/features/courses/enrollment/model"
	enrollmentService "kursusku_backend/internals/features/courses/enrollment/service"
	progressService "kursusku_backend/internals/features/courses/progress/service"
	helper "kursusku_backend/internals/helpers"
)

type EnrollmentController struct {
	DB *gorm.DB
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db}
}

/* =========================================================
   ENROLL
   POST /api/u/courses/:course_id/enroll
   ========================================================= */
func (ctrl *EnrollmentController) EnrollCourse(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	courseID, err := uuid.Parse(strings.TrimSpace(c.Params("course_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course ID")
	}

	isAdmin := helper.GetUserRoleFromToken(c) == constants.RoleAdmin

	course, err := courseService.FindCourseByID(ctrl.DB, courseID)
	if err != nil {
		if errors.Is(err, courseService.ErrCourseNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Course not found")
		}
		log.Println("[ERROR] failed to load course:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to enroll")
	}
	// Unpublished courses do not exist for non-admins.
	if !course.CourseIsPublished && !isAdmin {
		return fiber.NewError(fiber.StatusNotFound, "Course not found")
	}

	row, err := enrollmentService.Enroll(ctrl.DB, userID, course, isAdmin)
	if err != nil {
		if errors.Is(err, enrollmentService.ErrAccessDenied) {
			return fiber.NewError(fiber.StatusForbidden, "Your plan does not grant access to this course")
		}
		log.Println("[ERROR] enrollment failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to enroll")
	}

	return helper.JsonCreated(c, "Enrolled successfully", enrollmentDTO.FromEnrollmentModel(*row))
}

/* =========================================================
   MY COURSES
   GET /api/u/my-courses?state=not_started|in_progress|completed
   ========================================================= */
func (ctrl *EnrollmentController) ListMyCourses(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var enrollments []enrollmentModel.EnrollmentModel
	if err := ctrl.DB.Preload("Course").
		Where("enrollment_user_id = ?", userID).
		Order("enrollment_created_at DESC").
		Find(&enrollments).Error; err != nil {
		log.Println("[ERROR] failed to list enrollments:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list courses")
	}

	stateFilter := strings.TrimSpace(c.Query("state"))

	items := make([]enrollmentDTO.MyCourseResponse, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Course == nil {
			continue
		}

		percent, err := progressService.CourseCompletionPercentage(ctrl.DB, userID, e.EnrollmentCourseID)
		if err != nil {
			log.Println("[ERROR] failed to compute completion:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list courses")
		}

		state := progressService.CompletionState(percent)
		if stateFilter != "" && state != stateFilter {
			continue
		}

		items = append(items, enrollmentDTO.MyCourseResponse{
			Course:            courseDTO.FromCourseModel(*e.Course),
			EnrolledAt:        e.CreatedAt,
			CompletionPercent: percent,
			CompletionState:   state,
		})
	}

	return helper.JsonOK(c, "My courses fetched successfully", items)
}
