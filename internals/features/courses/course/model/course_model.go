package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	subscriptionModel "kursusku_backend/internals/features/billing/subscription/model"
)

type CourseModel struct {
	CourseID    uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey" json:"course_id"`
	CourseSlug  string    `gorm:"column:course_slug;size:160;not null;uniqueIndex:uq_courses_slug" json:"course_slug"`
	CourseTitle string    `gorm:"column:course_title;size:255;not null" json:"course_title"`

	CourseDescription *string        `gorm:"column:course_description" json:"course_description,omitempty"`
	CourseCoverURL    *string        `gorm:"column:course_cover_url;size:2000" json:"course_cover_url,omitempty"`
	CourseTags        pq.StringArray `gorm:"column:course_tags;type:text[]" json:"course_tags,omitempty"`

	// Plan gating: the user's effective plan must rank at or above this.
	CourseRequiredPlan subscriptionModel.Plan `gorm:"column:course_required_plan;type:varchar(20);not null;default:'free'" json:"course_required_plan"`
	CourseIsPublished  bool                   `gorm:"column:course_is_published;not null;default:false" json:"course_is_published"`

	CreatedAt time.Time `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	UpdatedAt time.Time `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at"`
}

func (CourseModel) TableName() string { return "courses" }

func (m *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseID == uuid.Nil {
		m.CourseID = uuid.New()
	}
	return nil
}
