package dto

import (
	"time"

	certificateModel "kursusku_backend/internals/features/courses/certificate/model"
)

type CertificateResponse struct {
	CertificateID string    `json:"certificate_id"`
	Serial        string    `json:"serial"`
	CourseID      string    `json:"course_id"`
	IssuedAt      time.Time `json:"issued_at"`
}

func FromCertificateModel(m certificateModel.CertificateModel) CertificateResponse {
	return CertificateResponse{
		CertificateID: m.CertificateID.String(),
		Serial:        m.CertificateSerial,
		CourseID:      m.CertificateCourseID.String(),
		IssuedAt:      m.CertificateIssuedAt,
	}
}

func FromCertificateModels(items []certificateModel.CertificateModel) []CertificateResponse {
	out := make([]CertificateResponse, 0, len(items))
	for _, m := range items {
		out = append(out, FromCertificateModel(m))
	}
	return out
}

// CertificateVerificationResponse is what the public verification page shows:
// enough to confirm the claim, nothing that identifies the holder beyond the
// display name printed on the certificate itself.
type CertificateVerificationResponse struct {
	Serial      string    `json:"serial"`
	CourseTitle string    `json:"course_title"`
	CourseSlug  string    `json:"course_slug"`
	HolderName  string    `json:"holder_name"`
	IssuedAt    time.Time `json:"issued_at"`
}
