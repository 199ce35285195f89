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
	courseModel "kursusku_backend/internals/features/courses/course/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&courseModel.CourseModel{},
		&courseModel.ChapterModel{},
		&courseModel.LessonModel{},
	))
	return db
}

func seedCourse(t *testing.T, db *gorm.DB, slug, title string, published bool) *courseModel.CourseModel {
	t.Helper()
	course := &courseModel.CourseModel{
		CourseSlug:         slug,
		CourseTitle:        title,
		CourseRequiredPlan: subscriptionModel.PlanFree,
		CourseIsPublished:  published,
	}
	require.NoError(t, db.Create(course).Error)
	return course
}

func TestListPublishedCourses_HidesDrafts(t *testing.T) {
	db := newTestDB(t)
	seedCourse(t, db, "go-basics", "Go Basics", true)
	seedCourse(t, db, "go-advanced", "Go Advanced", true)
	seedCourse(t, db, "draft-course", "Draft Course", false)

	items, total, err := ListPublishedCourses(db, CatalogFilter{}, 20, 0)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	for _, c := range items {
		require.True(t, c.CourseIsPublished)
	}
}

func TestListPublishedCourses_SearchFilter(t *testing.T) {
	db := newTestDB(t)
	seedCourse(t, db, "go-basics", "Go Basics", true)
	seedCourse(t, db, "rust-basics", "Rust Basics", true)

	items, total, err := ListPublishedCourses(db, CatalogFilter{Search: "go"}, 20, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	require.Equal(t, "go-basics", items[0].CourseSlug)
}

func TestListPublishedCourses_Paging(t *testing.T) {
	db := newTestDB(t)
	for i := 0; i < 5; i++ {
		seedCourse(t, db, fmt.Sprintf("course-%d", i), fmt.Sprintf("Course %d", i), true)
	}

	items, total, err := ListPublishedCourses(db, CatalogFilter{}, 2, 2)
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, items, 2)
}

func TestFindCourseBySlug_PublicationGate(t *testing.T) {
	db := newTestDB(t)
	seedCourse(t, db, "published", "Published", true)
	seedCourse(t, db, "draft", "Draft", false)

	found, err := FindCourseBySlug(db, "published", false)
	require.NoError(t, err)
	require.Equal(t, "published", found.CourseSlug)

	// A draft must look identical to a missing course for non-admins.
	_, err = FindCourseBySlug(db, "draft", false)
	require.ErrorIs(t, err, ErrCourseNotFound)
	_, err = FindCourseBySlug(db, "nope", false)
	require.ErrorIs(t, err, ErrCourseNotFound)

	asAdmin, err := FindCourseBySlug(db, "draft", true)
	require.NoError(t, err)
	require.Equal(t, "draft", asAdmin.CourseSlug)
}

func TestCourseOutline_Ordering(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db, "outline", "Outline Course", true)

	// Insert chapters and lessons out of order on purpose.
	ch2 := &courseModel.ChapterModel{ChapterCourseID: course.CourseID, ChapterTitle: "Second", ChapterOrder: 2}
	ch1 := &courseModel.ChapterModel{ChapterCourseID: course.CourseID, ChapterTitle: "First", ChapterOrder: 1}
	require.NoError(t, db.Create(ch2).Error)
	require.NoError(t, db.Create(ch1).Error)

	lb := courseModel.LessonModel{LessonChapterID: ch1.ChapterID, LessonTitle: "1.2", LessonOrder: 2}
	la := courseModel.LessonModel{LessonChapterID: ch1.ChapterID, LessonTitle: "1.1", LessonOrder: 1}
	lc := courseModel.LessonModel{LessonChapterID: ch2.ChapterID, LessonTitle: "2.1", LessonOrder: 1}
	require.NoError(t, db.Create(&lb).Error)
	require.NoError(t, db.Create(&la).Error)
	require.NoError(t, db.Create(&lc).Error)

	outline, err := CourseOutline(db, course.CourseID)
	require.NoError(t, err)
	require.Len(t, outline, 2)

	require.Equal(t, "First", outline[0].Chapter.ChapterTitle)
	require.Len(t, outline[0].Lessons, 2)
	require.Equal(t, "1.1", outline[0].Lessons[0].LessonTitle)
	require.Equal(t, "1.2", outline[0].Lessons[1].LessonTitle)

	require.Equal(t, "Second", outline[1].Chapter.ChapterTitle)
	require.Len(t, outline[1].Lessons, 1)
	require.Equal(t, "2.1", outline[1].Lessons[0].LessonTitle)
}

func TestCourseOutline_EmptyCourse(t *testing.T) {
	db := newTestDB(t)
	course := seedCourse(t, db, "empty", "Empty", true)

	outline, err := CourseOutline(db, course.CourseID)
	require.NoError(t, err)
	require.Empty(t, outline)
}
