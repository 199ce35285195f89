package dto

import (
	"github.com/google/uuid"

	courseModel "kursusku_backend/internals/features/courses/course/model"
)

type CreateChapterRequest struct {
	Title string `json:"title" validate:"required,min=3,max=255"`
	Order int    `json:"order" validate:"gte=0"`
}

func (r *CreateChapterRequest) ToModel(courseID uuid.UUID) courseModel.ChapterModel {
	return courseModel.ChapterModel{
		ChapterCourseID: courseID,
		ChapterTitle:    r.Title,
		ChapterOrder:    r.Order,
	}
}

type UpdateChapterRequest struct {
	Title *string `json:"title" validate:"omitempty,min=3,max=255"`
	Order *int    `json:"order" validate:"omitempty,gte=0"`
}

func (r *UpdateChapterRequest) ApplyTo(m *courseModel.ChapterModel) {
	if r.Title != nil {
		m.ChapterTitle = *r.Title
	}
	if r.Order != nil {
		m.ChapterOrder = *r.Order
	}
}

type ChapterResponse struct {
	ChapterID string `json:"chapter_id"`
	CourseID  string `json:"course_id"`
	Title     string `json:"title"`
	Order     int    `json:"order"`
}

func FromChapterModel(m courseModel.ChapterModel) ChapterResponse {
	return ChapterResponse{
		ChapterID: m.ChapterID.String(),
		CourseID:  m.ChapterCourseID.String(),
		Title:     m.ChapterTitle,
		Order:     m.ChapterOrder,
	}
}

// ChapterDetailResponse is a chapter with its ordered lessons, as rendered on
// the course page.
type ChapterDetailResponse struct {
	ChapterResponse
	Lessons []LessonResponse `json:"lessons"`
}
