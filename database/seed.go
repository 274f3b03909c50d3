package database

import (
	"log"
	"time"

	"seminar_manager/constants"
	"seminar_manager/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func parseDate(dateStr string) *time.Time {
	t, _ := time.Parse("2006-01-02", dateStr)
	return &t
}

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	hashed := string(bytes)
	if err != nil {
		log.Printf("failed to hash seed password: %v", err)
		return
	}

	users := []model.User{
		{Name: "Administrator", Email: "admin@seminex.edu", Password: hashed, Role: constants.ROLE_ADMIN},
	}
	for _, user := range users {
		if err := db.Where(model.User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed user:", user.Email, "error:", err)
		}
	}

	speakers := []model.Speaker{
		{
			Name: "Dr. Ayesha Rahman", Email: "ayesha.rahman@seminex.edu",
			Organization: "Department of CSE", Designation: "Professor",
			Bio: "Researcher in distributed systems.", Expertise: "Distributed Systems",
			Experience: "15 years",
		},
		{
			Name: "Prof. Kamal Hossain", Email: "kamal.hossain@seminex.edu",
			Organization: "Department of EEE", Designation: "Associate Professor",
			Bio: "Works on embedded platforms and IoT.", Expertise: "Embedded Systems",
			Experience: "12 years",
		},
	}
	for _, speaker := range speakers {
		if err := db.Where(model.Speaker{Email: speaker.Email}).FirstOrCreate(&speaker).Error; err != nil {
			log.Println("failed to seed speaker:", speaker.Email, "error:", err)
		}
	}

	seminars := []model.Seminar{
		{
			Title: "Introduction to Cloud Computing", Slug: "introduction-to-cloud-computing",
			Speaker: "Dr. Ayesha Rahman", Topic: "Cloud Computing",
			Description: "Fundamentals of cloud platforms and deployment models.",
			Date:        parseDate("2026-10-15"), Time: "10:00 AM",
			Venue: "Auditorium A", Capacity: 120,
		},
	}
	for _, seminar := range seminars {
		if err := db.Where(model.Seminar{Slug: seminar.Slug}).FirstOrCreate(&seminar).Error; err != nil {
			log.Println("failed to seed seminar:", seminar.Title, "error:", err)
		}
	}
}
