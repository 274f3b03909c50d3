package helper

import (
	"context"
	"log"
	"time"

	"seminar_manager/database"
	"seminar_manager/model"
	"seminar_manager/utils"

	"github.com/go-co-op/gocron/v2"
)

var emailScheduler gocron.Scheduler

// StartEmailSchedulers registers the two daily mail jobs: reminders at 09:00
// for seminars happening tomorrow and feedback requests at 10:00 for seminars
// that ended yesterday. Local calendar dates.
func StartEmailSchedulers() {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.Local))
	if err != nil {
		log.Printf("email scheduler init failed: %v", err)
		return
	}
	emailScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(9, 0, 0))),
		gocron.NewTask(SendTomorrowReminders),
	)
	if err != nil {
		log.Printf("failed to register reminder job: %v", err)
	}

	_, err = s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(10, 0, 0))),
		gocron.NewTask(SendFeedbackRequests),
	)
	if err != nil {
		log.Printf("failed to register feedback request job: %v", err)
	}

	s.Start()
	log.Println("Email schedulers started (reminders 09:00, feedback requests 10:00)")
}

func StopEmailSchedulers() {
	if emailScheduler != nil {
		if err := emailScheduler.Shutdown(); err != nil {
			log.Printf("email scheduler shutdown: %v", err)
		}
	}
}

func dayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// SendTomorrowReminders mails every registrant of every non-archived seminar
// dated tomorrow. One bad recipient never stops the rest of the list.
func SendTomorrowReminders() {
	if database.DB == nil {
		return
	}
	if !AcquireJobLock(context.Background(), "reminders", 23*time.Hour) {
		return
	}
	log.Println("Starting reminder email job")

	start, end := dayRange(time.Now().AddDate(0, 0, 1))
	sent, failed := sendToSeminarsInRange(start, end, utils.SendSeminarReminder)

	log.Printf("Reminder email job completed: sent=%d failed=%d", sent, failed)
}

// SendFeedbackRequests mails every registrant of every non-archived seminar
// dated yesterday asking for feedback.
func SendFeedbackRequests() {
	if database.DB == nil {
		return
	}
	if !AcquireJobLock(context.Background(), "feedback_requests", 23*time.Hour) {
		return
	}
	log.Println("Starting feedback request email job")

	start, end := dayRange(time.Now().AddDate(0, 0, -1))
	sent, failed := sendToSeminarsInRange(start, end, utils.SendFeedbackRequest)

	log.Printf("Feedback request email job completed: sent=%d failed=%d", sent, failed)
}

func sendToSeminarsInRange(start, end time.Time, send func(model.Registration, model.Seminar) error) (int, int) {
	db := database.DB

	var seminars []model.Seminar
	if err := db.Where("date >= ? AND date < ? AND is_archived = ?", start, end, false).
		Find(&seminars).Error; err != nil {
		log.Printf("seminar lookup failed for email job: %v", err)
		return 0, 0
	}

	sent, failed := 0, 0
	for _, seminar := range seminars {
		var registrations []model.Registration
		if err := db.Where("seminar_id = ?", seminar.ID).Find(&registrations).Error; err != nil {
			log.Printf("registration lookup failed for seminar %d: %v", seminar.ID, err)
			continue
		}

		log.Printf("Sending to %d registrations of seminar %q", len(registrations), seminar.Title)
		for _, registration := range registrations {
			if err := send(registration, seminar); err != nil {
				log.Printf("failed to send to %s: %v", registration.Email, err)
				failed++
				continue
			}
			sent++
		}
	}
	return sent, failed
}
