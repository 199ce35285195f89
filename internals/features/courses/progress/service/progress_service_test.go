package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	subscriptionModel "kursusku_backend/internals/features/billing/subscription/model"
	certificateModel "kursusku_backend/internals/features/courses/certificate/model"
	courseModel "kursusku_backend/internals/features/courses/course/model"
	enrollmentModel "kursusku_backend/internals/features/courses/enrollment/model"
	progressModel "kursusku_backend/internals/features/courses/progress/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&subscriptionModel.SubscriptionModel{},
		&courseModel.CourseModel{},
		&courseModel.ChapterModel{},
		&courseModel.LessonModel{},
		&enrollmentModel.EnrollmentModel{},
		&progressModel.LessonProgressModel{},
		&certificateModel.CertificateModel{},
	))
	return db
}

// seedCourseWithLessons builds one course with lessonsPerChapter lessons in
// each of the given chapters and returns the lessons in traversal order.
func seedCourseWithLessons(t *testing.T, db *gorm.DB, chapters, lessonsPerChapter int, free bool) (*courseModel.CourseModel, []courseModel.LessonModel) {
	t.Helper()
	course := &courseModel.CourseModel{
		CourseSlug:         "course-" + uuid.NewString()[:8],
		CourseTitle:        "Test Course",
		CourseRequiredPlan: subscriptionModel.PlanFree,
		CourseIsPublished:  true,
	}
	require.NoError(t, db.Create(course).Error)

	var lessons []courseModel.LessonModel
	for ci := 0; ci < chapters; ci++ {
		chapter := &courseModel.ChapterModel{
			ChapterCourseID: course.CourseID,
			ChapterTitle:    fmt.Sprintf("Chapter %d", ci+1),
			ChapterOrder:    ci,
		}
		require.NoError(t, db.Create(chapter).Error)

		for li := 0; li < lessonsPerChapter; li++ {
			lesson := courseModel.LessonModel{
				LessonChapterID: chapter.ChapterID,
				LessonTitle:     fmt.Sprintf("Lesson %d.%d", ci+1, li+1),
				LessonOrder:     li,
				LessonIsFree:    free,
			}
			require.NoError(t, db.Create(&lesson).Error)
			lessons = append(lessons, lesson)
		}
	}
	return course, lessons
}

func enroll(t *testing.T, db *gorm.DB, userID, courseID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&enrollmentModel.EnrollmentModel{
		EnrollmentUserID:   userID,
		EnrollmentCourseID: courseID,
	}).Error)
}

func TestSetLessonProgress_LessonNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := SetLessonProgress(db, uuid.New(), uuid.New(), true)
	require.ErrorIs(t, err, ErrLessonNotFound)
}

func TestSetLessonProgress_RequiresEnrollmentForGatedLessons(t *testing.T) {
	db := newTestDB(t)
	_, lessons := seedCourseWithLessons(t, db, 1, 1, false)
	userID := uuid.New()

	_, err := SetLessonProgress(db, userID, lessons[0].LessonID, true)
	require.ErrorIs(t, err, ErrNotEnrolled)
}

func TestSetLessonProgress_FreeLessonNeedsNoEnrollment(t *testing.T) {
	db := newTestDB(t)
	_, lessons := seedCourseWithLessons(t, db, 1, 2, true)
	userID := uuid.New()

	row, err := SetLessonProgress(db, userID, lessons[0].LessonID, true)
	require.NoError(t, err)
	require.True(t, row.LessonProgressCompleted)
	require.NotNil(t, row.LessonProgressCompletedAt)
}

func TestSetLessonProgress_UpsertAndToggle(t *testing.T) {
	db := newTestDB(t)
	course, lessons := seedCourseWithLessons(t, db, 1, 2, false)
	userID := uuid.New()
	enroll(t, db, userID, course.CourseID)

	row, err := SetLessonProgress(db, userID, lessons[0].LessonID, true)
	require.NoError(t, err)
	require.True(t, row.LessonProgressCompleted)
	require.NotNil(t, row.LessonProgressCompletedAt)

	// Repeat is a no-op on row count.
	again, err := SetLessonProgress(db, userID, lessons[0].LessonID, true)
	require.NoError(t, err)
	require.Equal(t, row.LessonProgressID, again.LessonProgressID)

	var cnt int64
	require.NoError(t, db.Model(&progressModel.LessonProgressModel{}).Count(&cnt).Error)
	require.EqualValues(t, 1, cnt)

	// Unchecking clears completed_at.
	cleared, err := SetLessonProgress(db, userID, lessons[0].LessonID, false)
	require.NoError(t, err)
	require.False(t, cleared.LessonProgressCompleted)
	require.Nil(t, cleared.LessonProgressCompletedAt)
}

func TestCourseCompletionPercentage(t *testing.T) {
	db := newTestDB(t)
	course, lessons := seedCourseWithLessons(t, db, 2, 2, false)
	userID := uuid.New()
	enroll(t, db, userID, course.CourseID)

	percent, err := CourseCompletionPercentage(db, userID, course.CourseID)
	require.NoError(t, err)
	require.Equal(t, 0, percent)

	for _, l := range lessons[:3] {
		_, err := SetLessonProgress(db, userID, l.LessonID, true)
		require.NoError(t, err)
	}

	percent, err = CourseCompletionPercentage(db, userID, course.CourseID)
	require.NoError(t, err)
	require.Equal(t, 75, percent)
}

func TestCourseCompletionPercentage_EmptyCourseIsZero(t *testing.T) {
	db := newTestDB(t)
	course, _ := seedCourseWithLessons(t, db, 0, 0, false)

	percent, err := CourseCompletionPercentage(db, uuid.New(), course.CourseID)
	require.NoError(t, err)
	require.Equal(t, 0, percent)
}

func TestCompletionState(t *testing.T) {
	require.Equal(t, "not_started", CompletionState(0))
	require.Equal(t, "in_progress", CompletionState(1))
	require.Equal(t, "in_progress", CompletionState(99))
	require.Equal(t, "completed", CompletionState(100))
}

func TestFullCompletionIssuesCertificateOnce(t *testing.T) {
	db := newTestDB(t)
	course, lessons := seedCourseWithLessons(t, db, 2, 2, false)
	userID := uuid.New()
	enroll(t, db, userID, course.CourseID)

	for _, l := range lessons {
		_, err := SetLessonProgress(db, userID, l.LessonID, true)
		require.NoError(t, err)
	}

	var certs []certificateModel.CertificateModel
	require.NoError(t, db.Find(&certs).Error)
	require.Len(t, certs, 1)
	require.Equal(t, userID, certs[0].CertificateUserID)
	require.Equal(t, course.CourseID, certs[0].CertificateCourseID)
	serial := certs[0].CertificateSerial
	require.Len(t, serial, 32)

	// Toggle a lesson off and back on: still one certificate, same serial.
	_, err := SetLessonProgress(db, userID, lessons[0].LessonID, false)
	require.NoError(t, err)
	_, err = SetLessonProgress(db, userID, lessons[0].LessonID, true)
	require.NoError(t, err)

	require.NoError(t, db.Find(&certs).Error)
	require.Len(t, certs, 1)
	require.Equal(t, serial, certs[0].CertificateSerial)
}

func TestPartialCompletionIssuesNoCertificate(t *testing.T) {
	db := newTestDB(t)
	course, lessons := seedCourseWithLessons(t, db, 1, 3, false)
	userID := uuid.New()
	enroll(t, db, userID, course.CourseID)

	for _, l := range lessons[:2] {
		_, err := SetLessonProgress(db, userID, l.LessonID, true)
		require.NoError(t, err)
	}

	var cnt int64
	require.NoError(t, db.Model(&certificateModel.CertificateModel{}).Count(&cnt).Error)
	require.EqualValues(t, 0, cnt)
}
