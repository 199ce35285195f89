package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	progressDTO "kursusku_backend/internals/features/courses/progress/dto"
	progressService "kursusku_backend/internals/features/courses/progress/service"
	helper "kursusku_backend/internals/helpers"
)

type ProgressController struct {
	DB *gorm.DB
}

func NewProgressController(db *gorm.DB) *ProgressController {
	return &ProgressController{DB: db}
}

/* =========================================================
   SET PROGRESS
   PUT /api/u/lessons/:lesson_id/progress
   Body: {"completed": true|false}
   ========================================================= */
func (ctrl *ProgressController) SetLessonProgress(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	lessonID, err := uuid.Parse(strings.TrimSpace(c.Params("lesson_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lesson ID")
	}

	var req progressDTO.SetProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	row, err := progressService.SetLessonProgress(ctrl.DB, userID, lessonID, *req.Completed)
	if err != nil {
		switch {
		case errors.Is(err, progressService.ErrLessonNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Lesson not found")
		case errors.Is(err, progressService.ErrNotEnrolled):
			return fiber.NewError(fiber.StatusForbidden, "You are not enrolled in this course")
		default:
			log.Println("[ERROR] failed to save lesson progress:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save progress")
		}
	}

	return helper.JsonUpdated(c, "Progress saved successfully", progressDTO.FromLessonProgressModel(*row))
}
