package database

import (
	"log"

	"gorm.io/gorm"

	checkoutModel "kursusku_backend/internals/features/billing/checkout/model"
	subscriptionModel "kursusku_backend/internals/features/billing/subscription/model"
	webhookModel "kursusku_backend/internals/features/billing/webhook/model"
	certificateModel "kursusku_backend/internals/features/courses/certificate/model"
	courseModel "kursusku_backend/internals/features/courses/course/model"
	enrollmentModel "kursusku_backend/internals/features/courses/enrollment/model"
	progressModel "kursusku_backend/internals/features/courses/progress/model"
	authModel "kursusku_backend/internals/features/users/auth/model"
)

// Migrate runs GORM auto-migration for every table. The unique indexes on
// (user, course), (user, lesson) and the external billing IDs are what the
// upsert paths rely on, so this must run before the server accepts traffic.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&authModel.UserModel{},
		&authModel.TokenBlacklistModel{},
		&subscriptionModel.SubscriptionModel{},
		&courseModel.CourseModel{},
		&courseModel.ChapterModel{},
		&courseModel.LessonModel{},
		&enrollmentModel.EnrollmentModel{},
		&progressModel.LessonProgressModel{},
		&certificateModel.CertificateModel{},
		&webhookModel.GatewayEventModel{},
		&checkoutModel.PaymentModel{},
	); err != nil {
		log.Printf("[ERROR] auto-migration failed: %v", err)
		return err
	}
	log.Println("✅ Auto-migration done.")
	return nil
}
