package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	certificateDTO "kursusku_backend/internals/features/courses/certificate/dto"
	certificateService "kursusku_backend/internals/features/courses/certificate/service"
	courseModel "kursusku_backend/internals/features/courses/course/model"
	userModel "kursusku_backend/internals/features/users/auth/model"
	helper "kursusku_backend/internals/helpers"
)

type CertificateController struct {
	DB *gorm.DB
}

func NewCertificateController(db *gorm.DB) *CertificateController {
	return &CertificateController{DB: db}
}

/* =========================================================
   MY CERTIFICATES
   GET /api/u/certificates
   ========================================================= */
func (ctrl *CertificateController) ListMyCertificates(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	items, err := certificateService.ListByUser(ctrl.DB, userID)
	if err != nil {
		log.Println("[ERROR] failed to list certificates:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list certificates")
	}

	return helper.JsonOK(c, "Certificates fetched successfully", certificateDTO.FromCertificateModels(items))
}

/* =========================================================
   PUBLIC VERIFICATION
   GET /api/public/certificates/:serial
   No enumeration: lookup only by the full random serial.
   ========================================================= */
func (ctrl *CertificateController) VerifyCertificate(c *fiber.Ctx) error {
	serial := strings.TrimSpace(c.Params("serial"))
	if serial == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Certificate serial is required")
	}

	cert, err := certificateService.FindBySerial(ctrl.DB, serial)
	if err != nil {
		log.Println("[ERROR] certificate lookup failed:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify certificate")
	}
	if cert == nil {
		return fiber.NewError(fiber.StatusNotFound, "Certificate not found")
	}

	var course courseModel.CourseModel
	if err := ctrl.DB.Where("course_id = ?", cert.CertificateCourseID).First(&course).Error; err != nil {
		log.Println("[ERROR] failed to load certificate course:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify certificate")
	}

	var holder userModel.UserModel
	if err := ctrl.DB.Where("user_id = ?", cert.CertificateUserID).First(&holder).Error; err != nil {
		log.Println("[ERROR] failed to load certificate holder:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to verify certificate")
	}

	return helper.JsonOK(c, "Certificate is valid", certificateDTO.CertificateVerificationResponse{
		Serial:      cert.CertificateSerial,
		CourseTitle: course.CourseTitle,
		CourseSlug:  course.CourseSlug,
		HolderName:  holder.UserName,
		IssuedAt:    cert.CertificateIssuedAt,
	})
}
