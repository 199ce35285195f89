package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LessonModel struct {
	LessonID        uuid.UUID `gorm:"column:lesson_id;type:uuid;primaryKey" json:"lesson_id"`
	LessonChapterID uuid.UUID `gorm:"column:lesson_chapter_id;type:uuid;not null;index" json:"lesson_chapter_id"`
	LessonTitle     string    `gorm:"column:lesson_title;size:255;not null" json:"lesson_title"`

	LessonOrder           int  `gorm:"column:lesson_order;not null;default:0" json:"lesson_order"`
	LessonIsFree          bool `gorm:"column:lesson_is_free;not null;default:false" json:"lesson_is_free"`
	LessonDurationMinutes int  `gorm:"column:lesson_duration_minutes;not null;default:0" json:"lesson_duration_minutes"`

	LessonVideoURL *string `gorm:"column:lesson_video_url;size:2000" json:"lesson_video_url,omitempty"`
	LessonContent  *string `gorm:"column:lesson_content" json:"lesson_content,omitempty"`

	CreatedAt time.Time `gorm:"column:lesson_created_at;autoCreateTime" json:"lesson_created_at"`
	UpdatedAt time.Time `gorm:"column:lesson_updated_at;autoUpdateTime" json:"lesson_updated_at"`

	Chapter *ChapterModel `gorm:"foreignKey:LessonChapterID;references:ChapterID;constraint:OnDelete:CASCADE" json:"-"`
}

func (LessonModel) TableName() string { return "lessons" }

func (m *LessonModel) BeforeCreate(tx *gorm.DB) error {
	if m.LessonID == uuid.Nil {
		m.LessonID = uuid.New()
	}
	return nil
}
