package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	certificateModel "kursusku_backend/internals/features/courses/certificate/model"
)

// NewCertificateSerial returns 32 hex characters from crypto/rand. The serial
// is the sole credential for public verification, so it must not be derived
// from anything sequential or guessable.
func NewCertificateSerial() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// IssueCertificateIfAbsent creates the certificate for (user, course) unless
// one already exists, and returns it either way. The insert-ignore on the
// unique pair index makes this safe when two lessons finish back to back and
// both trigger the 100% check.
func IssueCertificateIfAbsent(db *gorm.DB, userID, courseID uuid.UUID) (*certificateModel.CertificateModel, error) {
	serial, err := NewCertificateSerial()
	if err != nil {
		return nil, err
	}

	row := certificateModel.CertificateModel{
		CertificateUserID:   userID,
		CertificateCourseID: courseID,
		CertificateSerial:   serial,
		CertificateIssuedAt: time.Now().UTC(),
	}
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "certificate_user_id"},
			{Name: "certificate_course_id"},
		},
		DoNothing: true,
	}).Create(&row).Error; err != nil {
		log.Println("[ERROR] certificate insert failed:", err)
		return nil, err
	}

	// Fetch the surviving row; on conflict the original keeps its serial.
	var out certificateModel.CertificateModel
	if err := db.Where("certificate_user_id = ? AND certificate_course_id = ?", userID, courseID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// FindBySerial is the public verification lookup. Returns nil without error
// when the serial is unknown.
func FindBySerial(db *gorm.DB, serial string) (*certificateModel.CertificateModel, error) {
	var row certificateModel.CertificateModel
	err := db.Where("certificate_serial = ?", serial).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListByUser returns the user's certificates, newest first.
func ListByUser(db *gorm.DB, userID uuid.UUID) ([]certificateModel.CertificateModel, error) {
	var rows []certificateModel.CertificateModel
	err := db.Where("certificate_user_id = ?", userID).
		Order("certificate_issued_at DESC").
		Find(&rows).Error
	return rows, err
}
