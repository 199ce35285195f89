package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "kursusku_backend/internals/features/courses/course/model"
)

// LessonProgressModel is one row per (user, lesson). completed_at is set
// exactly when completed flips to true and cleared when it flips back.
type LessonProgressModel struct {
	LessonProgressID       uuid.UUID `gorm:"column:lesson_progress_id;type:uuid;primaryKey" json:"lesson_progress_id"`
	LessonProgressUserID   uuid.UUID `gorm:"column:lesson_progress_user_id;type:uuid;not null;uniqueIndex:uq_lesson_progress_user_lesson,priority:1" json:"lesson_progress_user_id"`
	LessonProgressLessonID uuid.UUID `gorm:"column:lesson_progress_lesson_id;type:uuid;not null;uniqueIndex:uq_lesson_progress_user_lesson,priority:2" json:"lesson_progress_lesson_id"`

	LessonProgressCompleted   bool       `gorm:"column:lesson_progress_completed;not null;default:false" json:"lesson_progress_completed"`
	LessonProgressCompletedAt *time.Time `gorm:"column:lesson_progress_completed_at" json:"lesson_progress_completed_at,omitempty"`

	CreatedAt time.Time `gorm:"column:lesson_progress_created_at;autoCreateTime" json:"lesson_progress_created_at"`
	UpdatedAt time.Time `gorm:"column:lesson_progress_updated_at;autoUpdateTime" json:"lesson_progress_updated_at"`

	Lesson *courseModel.LessonModel `gorm:"foreignKey:LessonProgressLessonID;references:LessonID;constraint:OnDelete:CASCADE" json:"-"`
}

func (LessonProgressModel) TableName() string { return "lesson_progress" }

func (m *LessonProgressModel) BeforeCreate(tx *gorm.DB) error {
	if m.LessonProgressID == uuid.Nil {
		m.LessonProgressID = uuid.New()
	}
	return nil
}
