package dto

import (
	"time"

	progressModel "kursusku_backend/internals/features/courses/progress/model"
)

type SetProgressRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

type LessonProgressResponse struct {
	LessonID    string     `json:"lesson_id"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromLessonProgressModel(m progressModel.LessonProgressModel) LessonProgressResponse {
	return LessonProgressResponse{
		LessonID:    m.LessonProgressLessonID.String(),
		Completed:   m.LessonProgressCompleted,
		CompletedAt: m.LessonProgressCompletedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
