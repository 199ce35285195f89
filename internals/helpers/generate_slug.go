package helper

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

const DefaultSlugMaxLen = 160

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9]+`)
	dashRuns   = regexp.MustCompile(`-{2,}`)
	trimDashes = regexp.MustCompile(`^-+|-+$`)
)

// GenerateSlug normalizes free text into a URL slug.
func GenerateSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnum.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	s = trimDashes.ReplaceAllString(s, "")
	if len(s) > DefaultSlugMaxLen {
		s = strings.Trim(s[:DefaultSlugMaxLen], "-")
	}
	return s
}

// EnsureUniqueSlug appends -2, -3, ... until the slug is free in the given
// table/column.
func EnsureUniqueSlug(db *gorm.DB, table, column, base string) (string, error) {
	slug := GenerateSlug(base)
	if slug == "" {
		slug = "item"
	}

	candidate := slug
	for i := 2; ; i++ {
		var cnt int64
		if err := db.Table(table).Where(fmt.Sprintf("%s = ?", column), candidate).Count(&cnt).Error; err != nil {
			return "", err
		}
		if cnt == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
}
