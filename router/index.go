package router

import (
	"seminar_manager/handler"
	"seminar_manager/middleware"
	"seminar_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New(), middleware.RequireDatabase())

	auth := api.Group("/auth")
	auth.Post("/register", validate.RegisterUser(), handler.Register)
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Get("/me", middleware.Protected(), handler.Profile)

	user := api.Group("/users", middleware.Protected(), middleware.AdminOnly())
	user.Get("/", handler.GetUsers)
	user.Get("/stats", handler.GetUserStats)
	user.Get("/:userId", validate.GetById("userId"), handler.GetUserById)
	user.Patch("/:userId/block", validate.BlockUser(), handler.BlockUser)
	user.Patch("/:userId/unblock", validate.GetById("userId"), handler.UnblockUser)
	user.Patch("/:userId/warning", validate.GetById("userId"), handler.AddWarning)
	user.Delete("/:userId", validate.GetById("userId"), handler.DeleteUser)

	seminar := api.Group("/seminars")
	seminar.Get("/", handler.GetSeminars)
	seminar.Get("/slug/:slug", handler.GetSeminarBySlug)
	seminar.Get("/:seminarId", validate.GetById("seminarId"), handler.GetSeminarById)
	seminar.Get("/:seminarId/capacity", validate.GetById("seminarId"), handler.GetSeminarCapacity)
	seminar.Get("/:seminarId/registrations", middleware.Protected(), middleware.AdminOnly(), validate.GetById("seminarId"), handler.GetSeminarRegistrations)
	seminar.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreateSeminar(), handler.CreateSeminar)
	seminar.Put("/:seminarId", middleware.Protected(), middleware.AdminOnly(), validate.UpdateSeminar("seminarId"), handler.UpdateSeminar)
	seminar.Delete("/:seminarId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("seminarId"), handler.DeleteSeminar)

	// Live capacity updates. The upgrade guard mirrors what the websocket
	// middleware expects before handing the connection off.
	seminar.Use("/:seminarId/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	seminar.Get("/:seminarId/live", websocket.New(handler.CapacityWebsocket))

	speaker := api.Group("/speakers")
	speaker.Get("/", handler.GetSpeakers)
	speaker.Get("/:speakerId", validate.GetById("speakerId"), handler.GetSpeakerById)
	speaker.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreateSpeaker(), handler.CreateSpeaker)
	speaker.Put("/:speakerId", middleware.Protected(), middleware.AdminOnly(), validate.UpdateSpeaker("speakerId"), handler.UpdateSpeaker)
	speaker.Delete("/:speakerId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("speakerId"), handler.DeleteSpeaker)

	schedule := api.Group("/schedules")
	schedule.Get("/", handler.GetSchedules)
	schedule.Get("/:scheduleId", validate.GetById("scheduleId"), handler.GetScheduleById)
	schedule.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreateSchedule(), handler.CreateSchedule)
	schedule.Put("/:scheduleId", middleware.Protected(), middleware.AdminOnly(), validate.UpdateSchedule("scheduleId"), handler.UpdateSchedule)
	schedule.Delete("/:scheduleId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("scheduleId"), handler.DeleteSchedule)

	registration := api.Group("/registrations")
	registration.Post("/", validate.CreateRegistration(), handler.CreateRegistration)
	registration.Delete("/:registrationId", validate.GetById("registrationId"), handler.CancelRegistration)
	registration.Get("/check/:seminarId/:email", validate.GetById("seminarId"), handler.CheckRegistrationStatus)
	registration.Get("/user/:email", handler.GetUserRegistrations)

	feedback := api.Group("/feedback")
	feedback.Post("/submit", validate.SubmitFeedback(), handler.SubmitFeedback)
	feedback.Get("/seminar/:seminarId", validate.GetById("seminarId"), handler.GetSeminarFeedback)
	feedback.Get("/status/:seminarId/:email", validate.GetById("seminarId"), handler.CheckFeedbackStatus)

	certificate := api.Group("/certificates")
	certificate.Post("/verify", validate.VerifyCertificate(), handler.VerifyCertificate)
	certificate.Get("/student/:email", handler.GetStudentCertificates)
	certificate.Get("/seminar/:seminarId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("seminarId"), handler.GetSeminarCertificates)
	certificate.Get("/:certificateId", validate.GetById("certificateId"), handler.GetCertificateById)
	certificate.Get("/:certificateId/qr", validate.GetById("certificateId"), handler.GetCertificateQR)
	certificate.Post("/generate", middleware.Protected(), middleware.AdminOnly(), validate.GenerateCertificate(), handler.GenerateCertificate)
	certificate.Post("/generate-bulk", middleware.Protected(), middleware.AdminOnly(), validate.GenerateBulkCertificates(), handler.GenerateBulkCertificates)
	certificate.Patch("/:certificateId/revoke", middleware.Protected(), middleware.AdminOnly(), validate.GetById("certificateId"), handler.RevokeCertificate)

	archive := api.Group("/archives")
	archive.Get("/", handler.GetArchives)
	archive.Get("/stats", handler.GetArchiveStats)
	archive.Get("/:archiveId", validate.GetById("archiveId"), handler.GetArchiveById)
	archive.Get("/:archiveId/materials/:publicId", validate.GetById("archiveId"), handler.DownloadMaterial)
	archive.Post("/archive/:seminarId", middleware.Protected(), middleware.AdminOnly(), validate.ArchiveSeminar("seminarId"), handler.ArchiveSeminar)
	archive.Post("/:archiveId/materials", middleware.Protected(), middleware.AdminOnly(), validate.GetById("archiveId"), handler.UploadMaterials)
	archive.Post("/signature", middleware.Protected(), middleware.AdminOnly(), handler.CloudinarySignature)
	archive.Put("/:archiveId", middleware.Protected(), middleware.AdminOnly(), validate.UpdateArchive("archiveId"), handler.UpdateArchive)
	archive.Delete("/:archiveId/materials/:publicId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("archiveId"), handler.DeleteMaterial)
	archive.Delete("/:archiveId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("archiveId"), handler.DeleteArchive)

	notification := api.Group("/notifications", middleware.Protected(), middleware.AdminOnly())
	notification.Post("/confirmation/:registrationId", validate.GetById("registrationId"), handler.ResendConfirmation)
	notification.Post("/reminders/:seminarId", validate.GetById("seminarId"), handler.SendSeminarReminders)
	notification.Post("/feedback-requests/:seminarId", validate.GetById("seminarId"), handler.SendFeedbackRequestsForSeminar)
	notification.Post("/certificate/:registrationId", validate.GetById("registrationId"), handler.SendCertificateEmailForRegistration)
	notification.Post("/cancellation/:seminarId", validate.GetById("seminarId"), handler.SendCancellationNotices)
	notification.Post("/announcement", handler.SendAnnouncementBroadcast)

	report := api.Group("/reports", middleware.Protected(), middleware.AdminOnly())
	report.Get("/system", handler.GetSystemStats)
	report.Get("/attendance", handler.GetAttendanceReport)
	report.Get("/feedback", handler.GetFeedbackStats)
	report.Get("/trends", handler.GetRegistrationTrends)
}
