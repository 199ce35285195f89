package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseDTO "kursusku_backend/internals/features/courses/course/dto"
	courseModel "kursusku_backend/internals/features/courses/course/model"
	helper "kursusku_backend/internals/helpers"
)

type LessonAdminController struct {
	DB *gorm.DB
}

func NewLessonAdminController(db *gorm.DB) *LessonAdminController {
	return &LessonAdminController{DB: db}
}

/* =========================================================
   CREATE
   POST /api/a/chapters/:chapter_id/lessons
   ========================================================= */
func (ctrl *LessonAdminController) CreateLesson(c *fiber.Ctx) error {
	chapterID, err := uuid.Parse(strings.TrimSpace(c.Params("chapter_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid chapter ID")
	}

	var chapter courseModel.ChapterModel
	if err := ctrl.DB.Where("chapter_id = ?", chapterID).First(&chapter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Chapter not found")
		}
		log.Println("[ERROR] failed to load chapter:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create lesson")
	}

	var req courseDTO.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	req.Title = strings.TrimSpace(req.Title)

	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel(chapterID)
	if err := ctrl.DB.Create(&m).Error; err != nil {
		log.Println("[ERROR] failed to create lesson:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create lesson")
	}

	// Admins always see content fields on their own create response.
	return helper.JsonCreated(c, "Lesson created successfully", courseDTO.FromLessonModel(m, true))
}

/* =========================================================
   UPDATE
   PATCH /api/a/lessons/:lesson_id
   ========================================================= */
func (ctrl *LessonAdminController) UpdateLesson(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(strings.TrimSpace(c.Params("lesson_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lesson ID")
	}

	var req courseDTO.UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var m courseModel.LessonModel
	if err := ctrl.DB.Where("lesson_id = ?", lessonID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Lesson not found")
		}
		log.Println("[ERROR] failed to load lesson:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update lesson")
	}

	req.ApplyTo(&m)
	if err := ctrl.DB.Save(&m).Error; err != nil {
		log.Println("[ERROR] failed to update lesson:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update lesson")
	}

	return helper.JsonUpdated(c, "Lesson updated successfully", courseDTO.FromLessonModel(m, true))
}

/* =========================================================
   DELETE
   DELETE /api/a/lessons/:lesson_id
   ========================================================= */
func (ctrl *LessonAdminController) DeleteLesson(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(strings.TrimSpace(c.Params("lesson_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid lesson ID")
	}

	res := ctrl.DB.Where("lesson_id = ?", lessonID).Delete(&courseModel.LessonModel{})
	if res.Error != nil {
		log.Println("[ERROR] failed to delete lesson:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete lesson")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Lesson not found")
	}

	return helper.JsonDeleted(c, "Lesson deleted successfully", fiber.Map{"lesson_id": lessonID})
}
