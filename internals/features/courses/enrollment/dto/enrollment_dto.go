package dto

import (
	"time"

	courseDTO "kursusku_backend/internals/features/courses/course/dto"
	enrollmentModel "kursusku_backend/internals/features/courses/enrollment/model"
)

type EnrollmentResponse struct {
	EnrollmentID string    `json:"enrollment_id"`
	CourseID     string    `json:"course_id"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}

func FromEnrollmentModel(m enrollmentModel.EnrollmentModel) EnrollmentResponse {
	return EnrollmentResponse{
		EnrollmentID: m.EnrollmentID.String(),
		CourseID:     m.EnrollmentCourseID.String(),
		EnrolledAt:   m.CreatedAt,
	}
}

// MyCourseResponse is one row of the "my courses" listing: the enrolled
// course plus where the user stands in it.
type MyCourseResponse struct {
	Course            courseDTO.CourseSummaryResponse `json:"course"`
	EnrolledAt        time.Time                       `json:"enrolled_at"`
	CompletionPercent int                             `json:"completion_percent"`
	CompletionState   string                          `json:"completion_state"`
}
