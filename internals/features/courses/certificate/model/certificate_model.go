package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "kursusku_backend/internals/features/courses/course/model"
)

// CertificateModel is issued exactly once per (user, course), the first time
// the user completes every lesson of the course. The serial is the only
// credential for the public verification endpoint, so it must be random.
type CertificateModel struct {
	CertificateID       uuid.UUID `gorm:"column:certificate_id;type:uuid;primaryKey" json:"certificate_id"`
	CertificateUserID   uuid.UUID `gorm:"column:certificate_user_id;type:uuid;not null;uniqueIndex:uq_certificates_user_course,priority:1" json:"certificate_user_id"`
	CertificateCourseID uuid.UUID `gorm:"column:certificate_course_id;type:uuid;not null;uniqueIndex:uq_certificates_user_course,priority:2" json:"certificate_course_id"`

	CertificateSerial   string    `gorm:"column:certificate_serial;size:64;not null;uniqueIndex:uq_certificates_serial" json:"certificate_serial"`
	CertificateIssuedAt time.Time `gorm:"column:certificate_issued_at;not null" json:"certificate_issued_at"`

	CreatedAt time.Time `gorm:"column:certificate_created_at;autoCreateTime" json:"certificate_created_at"`

	Course *courseModel.CourseModel `gorm:"foreignKey:CertificateCourseID;references:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CertificateModel) TableName() string { return "certificates" }

func (m *CertificateModel) BeforeCreate(tx *gorm.DB) error {
	if m.CertificateID == uuid.Nil {
		m.CertificateID = uuid.New()
	}
	return nil
}
