package service

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	certificateModel "kursusku_backend/internals/features/courses/certificate/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&certificateModel.CertificateModel{}))
	return db
}

func TestNewCertificateSerialShape(t *testing.T) {
	hex32 := regexp.MustCompile(`^[0-9a-f]{32}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		serial, err := NewCertificateSerial()
		require.NoError(t, err)
		require.Regexp(t, hex32, serial)
		require.False(t, seen[serial], "serial repeated")
		seen[serial] = true
	}
}

func TestIssueCertificateIfAbsent_Idempotent(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()
	courseID := uuid.New()

	first, err := IssueCertificateIfAbsent(db, userID, courseID)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := IssueCertificateIfAbsent(db, userID, courseID)
	require.NoError(t, err)
	require.Equal(t, first.CertificateID, second.CertificateID)
	require.Equal(t, first.CertificateSerial, second.CertificateSerial)

	var cnt int64
	require.NoError(t, db.Model(&certificateModel.CertificateModel{}).Count(&cnt).Error)
	require.EqualValues(t, 1, cnt)
}

func TestIssueCertificateIfAbsent_SeparatePerCourse(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()

	a, err := IssueCertificateIfAbsent(db, userID, uuid.New())
	require.NoError(t, err)
	b, err := IssueCertificateIfAbsent(db, userID, uuid.New())
	require.NoError(t, err)

	require.NotEqual(t, a.CertificateSerial, b.CertificateSerial)
}

func TestFindBySerial(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()
	courseID := uuid.New()

	issued, err := IssueCertificateIfAbsent(db, userID, courseID)
	require.NoError(t, err)

	found, err := FindBySerial(db, issued.CertificateSerial)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, issued.CertificateID, found.CertificateID)

	missing, err := FindBySerial(db, "0000000000000000000000000000dead")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestListByUser(t *testing.T) {
	db := newTestDB(t)
	userID := uuid.New()

	_, err := IssueCertificateIfAbsent(db, userID, uuid.New())
	require.NoError(t, err)
	_, err = IssueCertificateIfAbsent(db, userID, uuid.New())
	require.NoError(t, err)
	_, err = IssueCertificateIfAbsent(db, uuid.New(), uuid.New())
	require.NoError(t, err)

	mine, err := ListByUser(db, userID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
}
