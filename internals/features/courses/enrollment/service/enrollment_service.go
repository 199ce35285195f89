package service

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	subscriptionModel "kursusku_backend/internals/features/billing/subscription/model"
	subscriptionService "kursusku_backend/internals/features/billing/subscription/service"
	courseModel "kursusku_backend/internals/features/courses/course/model"
	enrollmentModel "kursusku_backend/internals/features/courses/enrollment/model"
)

var (
	// ErrAccessDenied means the user's effective plan does not cover the
	// course's required plan. User-correctable by upgrading.
	ErrAccessDenied = errors.New("subscription plan does not grant access to this course")
)

// CanAccessCourse decides whether a user (nil = anonymous) may enroll in or
// view a course. Publication gating is checked before plan gating. Read-only,
// so it is safe to call on every page render.
func CanAccessCourse(db *gorm.DB, userID *uuid.UUID, course *courseModel.CourseModel, isAdmin bool) (bool, error) {
	if course == nil {
		return false, nil
	}
	if !course.CourseIsPublished && !isAdmin {
		return false, nil
	}

	effective, err := subscriptionService.EffectivePlan(db, userID)
	if err != nil {
		return false, err
	}
	return subscriptionModel.HasAccess(effective, course.CourseRequiredPlan), nil
}

// IsEnrolled reports whether an enrollment row exists for (user, course).
func IsEnrolled(db *gorm.DB, userID, courseID uuid.UUID) (bool, error) {
	var cnt int64
	err := db.Model(&enrollmentModel.EnrollmentModel{}).
		Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, courseID).
		Count(&cnt).Error
	return cnt > 0, err
}

// Enroll grants the user standing access to the course. Idempotent: a second
// call for the same pair is absorbed by the unique index, never an error.
// Access is only checked when no enrollment exists yet — an enrollment, once
// granted, is deliberately never revoked by a later downgrade.
func Enroll(db *gorm.DB, userID uuid.UUID, course *courseModel.CourseModel, isAdmin bool) (*enrollmentModel.EnrollmentModel, error) {
	existing, err := find(db, userID, course.CourseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	ok, err := CanAccessCourse(db, &userID, course, isAdmin)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccessDenied
	}

	row := enrollmentModel.EnrollmentModel{
		EnrollmentUserID:   userID,
		EnrollmentCourseID: course.CourseID,
	}
	// Insert-ignore so a concurrent double-submit cannot create two rows.
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "enrollment_user_id"},
			{Name: "enrollment_course_id"},
		},
		DoNothing: true,
	}).Create(&row).Error; err != nil {
		log.Println("[ERROR] enrollment insert failed:", err)
		return nil, err
	}

	return find(db, userID, course.CourseID)
}

func find(db *gorm.DB, userID, courseID uuid.UUID) (*enrollmentModel.EnrollmentModel, error) {
	var row enrollmentModel.EnrollmentModel
	err := db.Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, courseID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
