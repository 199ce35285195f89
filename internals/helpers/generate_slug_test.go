package helper

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"Go for Beginners":       "go-for-beginners",
		"  Belajar   Golang!!  ": "belajar-golang",
		"Advanced: GORM & Fiber": "advanced-gorm-fiber",
		"---":                    "",
		"UPPER lower 123":        "upper-lower-123",
	}
	for in, want := range cases {
		require.Equalf(t, want, GenerateSlug(in), "input=%q", in)
	}
}

func TestEnsureUniqueSlug(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	type slugRow struct {
		ID   uint   `gorm:"primaryKey"`
		Slug string `gorm:"column:slug;uniqueIndex"`
	}
	require.NoError(t, db.Table("slug_rows").AutoMigrate(&slugRow{}))

	first, err := EnsureUniqueSlug(db, "slug_rows", "slug", "Go Basics")
	require.NoError(t, err)
	require.Equal(t, "go-basics", first)
	require.NoError(t, db.Table("slug_rows").Create(&slugRow{Slug: first}).Error)

	second, err := EnsureUniqueSlug(db, "slug_rows", "slug", "Go Basics")
	require.NoError(t, err)
	require.Equal(t, "go-basics-2", second)
	require.NoError(t, db.Table("slug_rows").Create(&slugRow{Slug: second}).Error)

	third, err := EnsureUniqueSlug(db, "slug_rows", "slug", "Go Basics")
	require.NoError(t, err)
	require.Equal(t, "go-basics-3", third)
}

func TestEnsureUniqueSlug_EmptyInput(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	type slugRow struct {
		ID   uint   `gorm:"primaryKey"`
		Slug string `gorm:"column:slug;uniqueIndex"`
	}
	require.NoError(t, db.Table("slug_rows").AutoMigrate(&slugRow{}))

	slug, err := EnsureUniqueSlug(db, "slug_rows", "slug", "???")
	require.NoError(t, err)
	require.Equal(t, "item", slug)
}
