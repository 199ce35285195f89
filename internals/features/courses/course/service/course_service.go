package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "kursusku_backend/internals/features/courses/course/model"
)

// ErrCourseNotFound covers both truly absent courses and unpublished ones
// requested by a non-admin — the two must be indistinguishable to the public.
var ErrCourseNotFound = errors.New("course not found")

// CatalogFilter narrows the public catalog listing.
type CatalogFilter struct {
	Search string // matches title, case-insensitive substring
	Tag    string // exact tag membership
}

// ListPublishedCourses pages through the public catalog, newest first.
func ListPublishedCourses(db *gorm.DB, filter CatalogFilter, limit, offset int) ([]courseModel.CourseModel, int64, error) {
	q := db.Model(&courseModel.CourseModel{}).Where("course_is_published = ?", true)

	if s := strings.TrimSpace(filter.Search); s != "" {
		q = q.Where("LOWER(course_title) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if t := strings.TrimSpace(filter.Tag); t != "" {
		q = q.Where("? = ANY(course_tags)", t)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []courseModel.CourseModel
	err := q.Order("course_created_at DESC").Limit(limit).Offset(offset).Find(&items).Error
	return items, total, err
}

// FindCourseBySlug resolves a catalog URL. Unpublished courses stay hidden
// from non-admins.
func FindCourseBySlug(db *gorm.DB, slug string, includeUnpublished bool) (*courseModel.CourseModel, error) {
	var m courseModel.CourseModel
	err := db.Where("course_slug = ?", slug).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if !m.CourseIsPublished && !includeUnpublished {
		return nil, ErrCourseNotFound
	}
	return &m, nil
}

func FindCourseByID(db *gorm.DB, id uuid.UUID) (*courseModel.CourseModel, error) {
	var m courseModel.CourseModel
	err := db.Where("course_id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ChapterWithLessons is one outline node in (chapter_order, lesson_order).
type ChapterWithLessons struct {
	Chapter courseModel.ChapterModel
	Lessons []courseModel.LessonModel
}

// CourseOutline loads the full chapter/lesson tree of a course, ordered the
// way it is traversed. Two queries instead of N+1.
func CourseOutline(db *gorm.DB, courseID uuid.UUID) ([]ChapterWithLessons, error) {
	var chapters []courseModel.ChapterModel
	if err := db.Where("chapter_course_id = ?", courseID).
		Order("chapter_order ASC, chapter_created_at ASC").
		Find(&chapters).Error; err != nil {
		return nil, err
	}
	if len(chapters) == 0 {
		return []ChapterWithLessons{}, nil
	}

	ids := make([]uuid.UUID, 0, len(chapters))
	for _, ch := range chapters {
		ids = append(ids, ch.ChapterID)
	}

	var lessons []courseModel.LessonModel
	if err := db.Where("lesson_chapter_id IN ?", ids).
		Order("lesson_order ASC, lesson_created_at ASC").
		Find(&lessons).Error; err != nil {
		return nil, err
	}

	byChapter := make(map[uuid.UUID][]courseModel.LessonModel, len(chapters))
	for _, l := range lessons {
		byChapter[l.LessonChapterID] = append(byChapter[l.LessonChapterID], l)
	}

	out := make([]ChapterWithLessons, 0, len(chapters))
	for _, ch := range chapters {
		out = append(out, ChapterWithLessons{
			Chapter: ch,
			Lessons: byChapter[ch.ChapterID],
		})
	}
	return out, nil
}
