package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	courseDTO "kursusku_backend/internals/features/courses/course/dto"
	courseService "kursusku_backend/internals/features/courses/course/service"
	enrollmentService "kursusku_backend/internals/features/courses/enrollment/service"
	progressService "kursusku_backend/internals/features/courses/progress/service"
	helper "kursusku_backend/internals/helpers"
)

type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

/* =========================================================
   LIST (public catalog)
   GET /api/public/courses?search=&tag=&page=&per_page=
   ========================================================= */
func (ctrl *CourseController) ListCourses(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	filter := courseService.CatalogFilter{
		Search: c.Query("search"),
		Tag:    c.Query("tag"),
	}

	items, total, err := courseService.ListPublishedCourses(ctrl.DB, filter, paging.Limit, paging.Offset)
	if err != nil {
		log.Println("[ERROR] failed to list courses:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list courses")
	}

	return helper.JsonList(c, "Courses fetched successfully",
		courseDTO.FromCourseModels(items),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* =========================================================
   DETAIL (public, viewer-aware when a token is present)
   GET /api/public/courses/:slug
   ========================================================= */
func (ctrl *CourseController) GetCourseBySlug(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	if slug == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Course slug is required")
	}

	userID := helper.GetUserIDFromTokenOptional(c)
	isAdmin := helper.GetUserRoleFromToken(c) == constants.RoleAdmin

	course, err := courseService.FindCourseBySlug(ctrl.DB, slug, isAdmin)
	if err != nil {
		if errors.Is(err, courseService.ErrCourseNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Course not found")
		}
		log.Println("[ERROR] failed to load course:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load course")
	}

	canAccess, err := enrollmentService.CanAccessCourse(ctrl.DB, userID, course, isAdmin)
	if err != nil {
		log.Println("[ERROR] failed to resolve course access:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load course")
	}

	outline, err := courseService.CourseOutline(ctrl.DB, course.CourseID)
	if err != nil {
		log.Println("[ERROR] failed to load course outline:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load course")
	}

	detail := courseDTO.CourseDetailResponse{
		CourseSummaryResponse: courseDTO.FromCourseModel(*course),
		CanAccess:             canAccess,
		Chapters:              make([]courseDTO.ChapterDetailResponse, 0, len(outline)),
	}

	for _, node := range outline {
		ch := courseDTO.ChapterDetailResponse{
			ChapterResponse: courseDTO.FromChapterModel(node.Chapter),
			Lessons:         make([]courseDTO.LessonResponse, 0, len(node.Lessons)),
		}
		for _, l := range node.Lessons {
			ch.Lessons = append(ch.Lessons, courseDTO.FromLessonModel(l, canAccess))
		}
		detail.Chapters = append(detail.Chapters, ch)
	}

	if userID != nil {
		enrolled, err := enrollmentService.IsEnrolled(ctrl.DB, *userID, course.CourseID)
		if err != nil {
			log.Println("[ERROR] failed to check enrollment:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load course")
		}
		detail.IsEnrolled = enrolled

		if enrolled {
			percent, err := progressService.CourseCompletionPercentage(ctrl.DB, *userID, course.CourseID)
			if err != nil {
				log.Println("[ERROR] failed to compute completion:", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load course")
			}
			detail.CompletionPercent = percent
		}
	}

	return helper.JsonOK(c, "Course detail fetched successfully", detail)
}
