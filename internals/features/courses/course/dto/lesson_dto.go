package dto

import (
	"github.com/google/uuid"

	courseModel "kursusku_backend/internals/features/courses/course/model"
)

type CreateLessonRequest struct {
	Title           string  `json:"title" validate:"required,min=3,max=255"`
	Order           int     `json:"order" validate:"gte=0"`
	IsFree          bool    `json:"is_free"`
	DurationMinutes int     `json:"duration_minutes" validate:"gte=0"`
	VideoURL        *string `json:"video_url" validate:"omitempty,url,max=2000"`
	Content         *string `json:"content" validate:"omitempty"`
}

func (r *CreateLessonRequest) ToModel(chapterID uuid.UUID) courseModel.LessonModel {
	return courseModel.LessonModel{
		LessonChapterID:       chapterID,
		LessonTitle:           r.Title,
		LessonOrder:           r.Order,
		LessonIsFree:          r.IsFree,
		LessonDurationMinutes: r.DurationMinutes,
		LessonVideoURL:        r.VideoURL,
		LessonContent:         r.Content,
	}
}

type UpdateLessonRequest struct {
	Title           *string `json:"title" validate:"omitempty,min=3,max=255"`
	Order           *int    `json:"order" validate:"omitempty,gte=0"`
	IsFree          *bool   `json:"is_free"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,gte=0"`
	VideoURL        *string `json:"video_url" validate:"omitempty,url,max=2000"`
	Content         *string `json:"content" validate:"omitempty"`
}

func (r *UpdateLessonRequest) ApplyTo(m *courseModel.LessonModel) {
	if r.Title != nil {
		m.LessonTitle = *r.Title
	}
	if r.Order != nil {
		m.LessonOrder = *r.Order
	}
	if r.IsFree != nil {
		m.LessonIsFree = *r.IsFree
	}
	if r.DurationMinutes != nil {
		m.LessonDurationMinutes = *r.DurationMinutes
	}
	if r.VideoURL != nil {
		m.LessonVideoURL = r.VideoURL
	}
	if r.Content != nil {
		m.LessonContent = r.Content
	}
}

type LessonResponse struct {
	LessonID        string `json:"lesson_id"`
	ChapterID       string `json:"chapter_id"`
	Title           string `json:"title"`
	Order           int    `json:"order"`
	IsFree          bool   `json:"is_free"`
	DurationMinutes int    `json:"duration_minutes"`

	// Content fields are only filled when the viewer is allowed to watch:
	// free lessons for everyone, the rest behind the plan gate.
	Unlocked bool    `json:"unlocked"`
	VideoURL *string `json:"video_url,omitempty"`
	Content  *string `json:"content,omitempty"`
}

// FromLessonModel renders a lesson for a viewer. When the viewer has no
// access to the course, only the metadata of non-free lessons is exposed.
func FromLessonModel(m courseModel.LessonModel, courseAccess bool) LessonResponse {
	resp := LessonResponse{
		LessonID:        m.LessonID.String(),
		ChapterID:       m.LessonChapterID.String(),
		Title:           m.LessonTitle,
		Order:           m.LessonOrder,
		IsFree:          m.LessonIsFree,
		DurationMinutes: m.LessonDurationMinutes,
	}
	if m.LessonIsFree || courseAccess {
		resp.Unlocked = true
		resp.VideoURL = m.LessonVideoURL
		resp.Content = m.LessonContent
	}
	return resp
}
