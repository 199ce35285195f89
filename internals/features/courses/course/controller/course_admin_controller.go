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

type CourseAdminController struct {
	DB *gorm.DB
}

func NewCourseAdminController(db *gorm.DB) *CourseAdminController {
	return &CourseAdminController{DB: db}
}

/* =========================================================
   CREATE
   POST /api/a/courses
   ========================================================= */
func (ctrl *CourseAdminController) CreateCourse(c *fiber.Ctx) error {
	var req courseDTO.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	req.Title = strings.TrimSpace(req.Title)

	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	slug, err := helper.EnsureUniqueSlug(ctrl.DB, "courses", "course_slug", req.Title)
	if err != nil {
		log.Println("[ERROR] failed to generate course slug:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create course")
	}

	m := req.ToModel(slug)
	if err := ctrl.DB.Create(&m).Error; err != nil {
		log.Println("[ERROR] failed to create course:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create course")
	}

	return helper.JsonCreated(c, "Course created successfully", courseDTO.FromCourseModel(m))
}

/* =========================================================
   LIST (admin — includes unpublished)
   GET /api/a/courses?page=&per_page=
   ========================================================= */
func (ctrl *CourseAdminController) ListAllCourses(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&courseModel.CourseModel{}).Count(&total).Error; err != nil {
		log.Println("[ERROR] failed to count courses:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list courses")
	}

	var items []courseModel.CourseModel
	if err := ctrl.DB.Order("course_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&items).Error; err != nil {
		log.Println("[ERROR] failed to list courses:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list courses")
	}

	return helper.JsonList(c, "Courses fetched successfully",
		courseDTO.FromCourseModels(items),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* =========================================================
   UPDATE
   PATCH /api/a/courses/:course_id
   ========================================================= */
func (ctrl *CourseAdminController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(strings.TrimSpace(c.Params("course_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course ID")
	}

	var req courseDTO.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := validator.New().Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	course, err := courseService.FindCourseByID(ctrl.DB, courseID)
	if err != nil {
		if errors.Is(err, courseService.ErrCourseNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Course not found")
		}
		log.Println("[ERROR] failed to load course:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update course")
	}

	req.ApplyTo(course)
	if err := ctrl.DB.Save(course).Error; err != nil {
		log.Println("[ERROR] failed to update course:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update course")
	}

	return helper.JsonUpdated(c, "Course updated successfully", courseDTO.FromCourseModel(*course))
}

/* =========================================================
   UPLOAD COVER
   PUT /api/a/courses/:course_id/cover  (multipart field "cover")
   ========================================================= */
func (ctrl *CourseAdminController) UploadCourseCover(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(strings.TrimSpace(c.Params("course_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course ID")
	}

	course, err := courseService.FindCourseByID(ctrl.DB, courseID)
	if err != nil {
		if errors.Is(err, courseService.ErrCourseNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Course not found")
		}
		log.Println("[ERROR] failed to load course:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to upload cover")
	}

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cover image file is required")
	}

	url, err := helper.UploadCourseCoverImage("course-covers", fileHeader)
	if err != nil {
		log.Println("[ERROR] cover upload failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to upload cover")
	}

	course.CourseCoverURL = &url
	if err := ctrl.DB.Model(course).
		Update("course_cover_url", url).Error; err != nil {
		log.Println("[ERROR] failed to save cover URL:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to upload cover")
	}

	return helper.JsonUpdated(c, "Course cover updated successfully", courseDTO.FromCourseModel(*course))
}

/* =========================================================
   DELETE (cascades to chapters and lessons via FK)
   DELETE /api/a/courses/:course_id
   ========================================================= */
func (ctrl *CourseAdminController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := uuid.Parse(strings.TrimSpace(c.Params("course_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid course ID")
	}

	res := ctrl.DB.Where("course_id = ?", courseID).Delete(&courseModel.CourseModel{})
	if res.Error != nil {
		log.Println("[ERROR] failed to delete course:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete course")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Course not found")
	}

	return helper.JsonDeleted(c, "Course deleted successfully", fiber.Map{"course_id": courseID})
}
