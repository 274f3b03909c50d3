package handler

import (
	"math"
	"time"

	"seminar_manager/constants"
	"seminar_manager/database"
	"seminar_manager/model"
	"seminar_manager/utils"

	"github.com/gofiber/fiber/v2"
)

func GetSystemStats(c *fiber.Ctx) error {
	db := database.DB

	var stats model.SystemStats
	if err := db.Model(&model.Seminar{}).Count(&stats.Seminars).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	db.Model(&model.SeminarArchive{}).Count(&stats.ArchivedSeminars)
	db.Model(&model.Speaker{}).Count(&stats.Speakers)
	db.Model(&model.Registration{}).Count(&stats.Registrations)
	db.Model(&model.Certificate{}).Count(&stats.Certificates)
	db.Model(&model.Feedback{}).Count(&stats.FeedbackEntries)
	db.Model(&model.User{}).Count(&stats.Users)

	return c.JSON(fiber.Map{"stats": stats})
}

// GetAttendanceReport lists the fill rate of every seminar, fullest first.
func GetAttendanceReport(c *fiber.Ctx) error {
	db := database.DB

	var seminars []model.Seminar
	if err := db.Order("date DESC").Find(&seminars).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	rows := make([]model.AttendanceRow, 0, len(seminars))
	for _, seminar := range seminars {
		fillRate := 0.0
		if seminar.Capacity > 0 {
			fillRate = math.Round(float64(seminar.RegisteredCount)/float64(seminar.Capacity)*1000) / 10
		}
		rows = append(rows, model.AttendanceRow{
			SeminarId:       seminar.ID,
			Title:           seminar.Title,
			Capacity:        seminar.Capacity,
			RegisteredCount: seminar.RegisteredCount,
			FillRate:        fillRate,
		})
	}

	return c.JSON(fiber.Map{"report": rows, "count": len(rows)})
}

func GetFeedbackStats(c *fiber.Ctx) error {
	db := database.DB

	var seminars []model.Seminar
	if err := db.Find(&seminars).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	rows := make([]model.FeedbackStatsRow, 0, len(seminars))
	for _, seminar := range seminars {
		var agg struct {
			Count        int64
			Rating       *float64
			Content      *float64
			Speaker      *float64
			Organization *float64
		}
		err := db.Model(&model.Feedback{}).
			Where("seminar_id = ?", seminar.ID).
			Select("COUNT(*) AS count, AVG(rating) AS rating, AVG(content_quality) AS content, AVG(speaker_effectiveness) AS speaker, AVG(organization_quality) AS organization").
			Scan(&agg).Error
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if agg.Count == 0 {
			continue
		}
		row := model.FeedbackStatsRow{
			SeminarId:     seminar.ID,
			Title:         seminar.Title,
			FeedbackCount: agg.Count,
		}
		if agg.Rating != nil {
			row.OverallRating = round1(*agg.Rating)
		}
		if agg.Content != nil {
			row.ContentQuality = round1(*agg.Content)
		}
		if agg.Speaker != nil {
			row.SpeakerEffectiveness = round1(*agg.Speaker)
		}
		if agg.Organization != nil {
			row.OrganizationQuality = round1(*agg.Organization)
		}
		rows = append(rows, row)
	}

	return c.JSON(fiber.Map{"report": rows, "count": len(rows)})
}

// GetRegistrationTrends counts registrations per calendar month for the last
// six months, oldest first. Months with no registrations still appear.
func GetRegistrationTrends(c *fiber.Ctx) error {
	db := database.DB

	now := time.Now()
	rows := make([]model.TrendRow, 0, 6)
	for i := 5; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)

		var count int64
		err := db.Model(&model.Registration{}).
			Where("registration_date >= ? AND registration_date < ?", monthStart, monthEnd).
			Count(&count).Error
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

		rows = append(rows, model.TrendRow{
			Month:         monthStart.Format("2006-01"),
			Registrations: count,
		})
	}

	return c.JSON(fiber.Map{"trends": rows})
}
