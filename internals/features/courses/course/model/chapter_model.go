package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChapterModel struct {
	ChapterID       uuid.UUID `gorm:"column:chapter_id;type:uuid;primaryKey" json:"chapter_id"`
	ChapterCourseID uuid.UUID `gorm:"column:chapter_course_id;type:uuid;not null;index" json:"chapter_course_id"`
	ChapterTitle    string    `gorm:"column:chapter_title;size:255;not null" json:"chapter_title"`

	// Position within the course; traversal order is (chapter_order, lesson_order).
	ChapterOrder int `gorm:"column:chapter_order;not null;default:0" json:"chapter_order"`

	CreatedAt time.Time `gorm:"column:chapter_created_at;autoCreateTime" json:"chapter_created_at"`
	UpdatedAt time.Time `gorm:"column:chapter_updated_at;autoUpdateTime" json:"chapter_updated_at"`

	// Course deletion cascades here, and from here to lessons.
	Course *CourseModel `gorm:"foreignKey:ChapterCourseID;references:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ChapterModel) TableName() string { return "chapters" }

func (m *ChapterModel) BeforeCreate(tx *gorm.DB) error {
	if m.ChapterID == uuid.Nil {
		m.ChapterID = uuid.New()
	}
	return nil
}
