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
	courseService "kursusku_backend/internals/features/courses/course/service"
	helper "kursusku_backend/internals/helpers"
)

type ChapterAdminController struct {
	DB *gorm.DB
}

func NewChapterAdminController(db *gorm.DB) *ChapterAdminController {
	return &ChapterAdminController{DB: db}
}

/* =========================================================
   CREATE
   POST /api/a/courses/:course_id/chapters
   ========================================================= */
func (ctrl *ChapterAdminController) CreateChapter(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(strings.TrimSpace(c.Params("course_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course ID")
	}

	if _, err := courseService.FindCourseByID(ctrl.DB, courseID); err != nil {
		if errors.Is(err, courseService.ErrCourseNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Course not found")
		}
		log.Println("[ERROR] failed to load course:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create chapter")
	}

	var req courseDTO.CreateChapterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	req.Title = strings.TrimSpace(req.Title)

	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel(courseID)
	if err := ctrl.DB.Create(&m).Error; err != nil {
		log.Println("[ERROR] failed to create chapter:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create chapter")
	}

	return helper.JsonCreated(c, "Chapter created successfully", courseDTO.FromChapterModel(m))
}

/* =========================================================
   UPDATE
   PATCH /api/a/chapters/:chapter_id
   ========================================================= */
func (ctrl *ChapterAdminController) UpdateChapter(c *fiber.Ctx) error {
	chapterID, err := uuid.Parse(strings.TrimSpace(c.Params("chapter_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid chapter ID")
	}

	var req courseDTO.UpdateChapterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var m courseModel.ChapterModel
	if err := ctrl.DB.Where("chapter_id = ?", chapterID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Chapter not found")
		}
		log.Println("[ERROR] failed to load chapter:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update chapter")
	}

	req.ApplyTo(&m)
	if err := ctrl.DB.Save(&m).Error; err != nil {
		log.Println("[ERROR] failed to update chapter:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update chapter")
	}

	return helper.JsonUpdated(c, "Chapter updated successfully", courseDTO.FromChapterModel(m))
}

/* =========================================================
   DELETE (cascades to lessons via FK)
   DELETE /api/a/chapters/:chapter_id
   ========================================================= */
func (ctrl *ChapterAdminController) DeleteChapter(c *fiber.Ctx) error {
	chapterID, err := uuid.Parse(strings.TrimSpace(c.Params("chapter_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid chapter ID")
	}

	res := ctrl.DB.Where("chapter_id = ?", chapterID).Delete(&courseModel.ChapterModel{})
	if res.Error != nil {
		log.Println("[ERROR] failed to delete chapter:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete chapter")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Chapter not found")
	}

	return helper.JsonDeleted(c, "Chapter deleted successfully", fiber.Map{"chapter_id": chapterID})
}
