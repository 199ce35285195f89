package service

import (
	"errors"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	certificateService "kursusku_backend/internals/features/courses/certificate/service"
	courseModel "kursusku_backend/internals/features/courses/course/model"
	enrollmentService "kursusku_backend/internals/features/courses/enrollment/service"
	progressModel "kursusku_backend/internals/features/courses/progress/model"
)

var (
	// ErrLessonNotFound means the lesson id does not exist.
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrNotEnrolled means the user tried to progress a gated lesson without
	// an enrollment in its course.
	ErrNotEnrolled = errors.New("not enrolled in this course")
)

// SetLessonProgress upserts the (user, lesson) progress row. Free lessons
// never require an enrollment; everything else does. When a lesson is marked
// complete the whole course coverage is recounted and, at 100%, the
// certificate issuer runs. The recount is an O(lessons) scan per call —
// course lesson counts are small, so a running counter is not worth the
// bookkeeping.
func SetLessonProgress(db *gorm.DB, userID, lessonID uuid.UUID, completed bool) (*progressModel.LessonProgressModel, error) {
	lesson, courseID, err := lessonWithCourse(db, lessonID)
	if err != nil {
		return nil, err
	}

	if !lesson.LessonIsFree {
		enrolled, err := enrollmentService.IsEnrolled(db, userID, courseID)
		if err != nil {
			return nil, err
		}
		if !enrolled {
			return nil, ErrNotEnrolled
		}
	}

	var completedAt *time.Time
	if completed {
		now := time.Now().UTC()
		completedAt = &now
	}

	row := progressModel.LessonProgressModel{
		LessonProgressUserID:      userID,
		LessonProgressLessonID:    lessonID,
		LessonProgressCompleted:   completed,
		LessonProgressCompletedAt: completedAt,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "lesson_progress_user_id"},
			{Name: "lesson_progress_lesson_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"lesson_progress_completed",
			"lesson_progress_completed_at",
			"lesson_progress_updated_at",
		}),
	}).Create(&row).Error; err != nil {
		log.Println("[ERROR] lesson progress upsert failed:", err)
		return nil, err
	}

	if completed {
		if err := issueCertificateWhenComplete(db, userID, courseID); err != nil {
			return nil, err
		}
	}

	var out progressModel.LessonProgressModel
	if err := db.Where("lesson_progress_user_id = ? AND lesson_progress_lesson_id = ?", userID, lessonID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// issueCertificateWhenComplete recounts the user's coverage of the course and
// issues the certificate on full completion. Derived from a count comparison,
// so redelivered or repeated completion events cannot double-issue.
func issueCertificateWhenComplete(db *gorm.DB, userID, courseID uuid.UUID) error {
	total, err := CountCourseLessons(db, courseID)
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}
	done, err := CountCompletedLessons(db, userID, courseID)
	if err != nil {
		return err
	}
	if done < total {
		return nil
	}

	cert, err := certificateService.IssueCertificateIfAbsent(db, userID, courseID)
	if err != nil {
		return err
	}
	log.Printf("[SUCCESS] course %s completed by %s, certificate %s", courseID, userID, cert.CertificateSerial)
	return nil
}

// CountCourseLessons counts the course's full lesson set across all chapters.
func CountCourseLessons(db *gorm.DB, courseID uuid.UUID) (int64, error) {
	var cnt int64
	err := db.Table("lessons").
		Joins("JOIN chapters ON chapters.chapter_id = lessons.lesson_chapter_id").
		Where("chapters.chapter_course_id = ?", courseID).
		Count(&cnt).Error
	return cnt, err
}

// CountCompletedLessons counts the user's completed lessons within a course.
func CountCompletedLessons(db *gorm.DB, userID, courseID uuid.UUID) (int64, error) {
	var cnt int64
	err := db.Table("lesson_progress").
		Joins("JOIN lessons ON lessons.lesson_id = lesson_progress.lesson_progress_lesson_id").
		Joins("JOIN chapters ON chapters.chapter_id = lessons.lesson_chapter_id").
		Where("chapters.chapter_course_id = ?", courseID).
		Where("lesson_progress.lesson_progress_user_id = ?", userID).
		Where("lesson_progress.lesson_progress_completed = ?", true).
		Count(&cnt).Error
	return cnt, err
}

// CourseCompletionPercentage returns round-half-up(100 * completed / total).
// A course with no lessons is 0%, never an error.
func CourseCompletionPercentage(db *gorm.DB, userID, courseID uuid.UUID) (int, error) {
	total, err := CountCourseLessons(db, courseID)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	done, err := CountCompletedLessons(db, userID, courseID)
	if err != nil {
		return 0, err
	}
	return int(math.Round(100 * float64(done) / float64(total))), nil
}

// CompletionState buckets a percentage for the "my courses" listing.
func CompletionState(percent int) string {
	switch {
	case percent <= 0:
		return "not_started"
	case percent >= 100:
		return "completed"
	default:
		return "in_progress"
	}
}

func lessonWithCourse(db *gorm.DB, lessonID uuid.UUID) (*courseModel.LessonModel, uuid.UUID, error) {
	var lesson courseModel.LessonModel
	if err := db.Where("lesson_id = ?", lessonID).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, ErrLessonNotFound
		}
		return nil, uuid.Nil, err
	}

	var chapter courseModel.ChapterModel
	if err := db.Where("chapter_id = ?", lesson.LessonChapterID).First(&chapter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, ErrLessonNotFound
		}
		return nil, uuid.Nil, err
	}
	return &lesson, chapter.ChapterCourseID, nil
}
