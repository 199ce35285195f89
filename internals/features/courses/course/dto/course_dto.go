package dto

import (
	"time"

	"github.com/lib/pq"

	subscriptionModel "kursusku_backend/internals/features/billing/subscription/model"
	courseModel "kursusku_backend/internals/features/courses/course/model"
)

/* =========================================================
   Requests
   ========================================================= */

type CreateCourseRequest struct {
	Title        string   `json:"title" validate:"required,min=3,max=255"`
	Description  *string  `json:"description" validate:"omitempty"`
	Tags         []string `json:"tags" validate:"omitempty,dive,min=1,max=50"`
	RequiredPlan string   `json:"required_plan" validate:"required,oneof=free beginner pro"`
	IsPublished  *bool    `json:"is_published"`
}

func (r *CreateCourseRequest) ToModel(slug string) courseModel.CourseModel {
	m := courseModel.CourseModel{
		CourseSlug:         slug,
		CourseTitle:        r.Title,
		CourseDescription:  r.Description,
		CourseTags:         pq.StringArray(r.Tags),
		CourseRequiredPlan: subscriptionModel.Plan(r.RequiredPlan),
	}
	if r.IsPublished != nil {
		m.CourseIsPublished = *r.IsPublished
	}
	return m
}

// UpdateCourseRequest: all fields optional; only non-nil fields are applied.
type UpdateCourseRequest struct {
	Title        *string   `json:"title" validate:"omitempty,min=3,max=255"`
	Description  *string   `json:"description" validate:"omitempty"`
	Tags         *[]string `json:"tags" validate:"omitempty,dive,min=1,max=50"`
	RequiredPlan *string   `json:"required_plan" validate:"omitempty,oneof=free beginner pro"`
	IsPublished  *bool     `json:"is_published"`
}

func (r *UpdateCourseRequest) ApplyTo(m *courseModel.CourseModel) {
	if r.Title != nil {
		m.CourseTitle = *r.Title
	}
	if r.Description != nil {
		m.CourseDescription = r.Description
	}
	if r.Tags != nil {
		m.CourseTags = pq.StringArray(*r.Tags)
	}
	if r.RequiredPlan != nil {
		m.CourseRequiredPlan = subscriptionModel.Plan(*r.RequiredPlan)
	}
	if r.IsPublished != nil {
		m.CourseIsPublished = *r.IsPublished
	}
}

/* =========================================================
   Responses
   ========================================================= */

// CourseSummaryResponse is the catalog list item.
type CourseSummaryResponse struct {
	CourseID     string                 `json:"course_id"`
	Slug         string                 `json:"slug"`
	Title        string                 `json:"title"`
	Description  *string                `json:"description,omitempty"`
	CoverURL     *string                `json:"cover_url,omitempty"`
	Tags         []string               `json:"tags,omitempty"`
	RequiredPlan subscriptionModel.Plan `json:"required_plan"`
	IsPublished  bool                   `json:"is_published"`
	CreatedAt    time.Time              `json:"created_at"`
}

func FromCourseModel(m courseModel.CourseModel) CourseSummaryResponse {
	return CourseSummaryResponse{
		CourseID:     m.CourseID.String(),
		Slug:         m.CourseSlug,
		Title:        m.CourseTitle,
		Description:  m.CourseDescription,
		CoverURL:     m.CourseCoverURL,
		Tags:         m.CourseTags,
		RequiredPlan: m.CourseRequiredPlan,
		IsPublished:  m.CourseIsPublished,
		CreatedAt:    m.CreatedAt,
	}
}

func FromCourseModels(items []courseModel.CourseModel) []CourseSummaryResponse {
	out := make([]CourseSummaryResponse, 0, len(items))
	for _, m := range items {
		out = append(out, FromCourseModel(m))
	}
	return out
}

// CourseDetailResponse is the per-user course page: the outline plus the
// viewer's access flag, enrollment and completion.
type CourseDetailResponse struct {
	CourseSummaryResponse
	CanAccess         bool                    `json:"can_access"`
	IsEnrolled        bool                    `json:"is_enrolled"`
	CompletionPercent int                     `json:"completion_percent"`
	Chapters          []ChapterDetailResponse `json:"chapters"`
}
