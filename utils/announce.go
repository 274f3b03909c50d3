package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"

	"github.com/jordan-wright/email"
)

// SendAnnouncement delivers a plain-text broadcast to every recipient, one
// message each so a bad address never blocks the rest. Returns per-recipient
// outcome counts.
func SendAnnouncement(recipients []string, subject, body string) (int, int) {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "seminex@example.com"
	}

	sent, failed := 0, 0
	for _, to := range recipients {
		if host == "" {
			log.Printf("========== ANNOUNCEMENT WOULD BE SENT ==========\nTo: %s\nSubject: %s\n================================================", to, subject)
			sent++
			continue
		}

		e := email.NewEmail()
		e.From = from
		e.To = []string{to}
		e.Subject = subject
		e.Text = []byte(body)

		addr := fmt.Sprintf("%s:%s", host, port)
		auth := smtp.PlainAuth("", os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), host)
		if err := e.Send(addr, auth); err != nil {
			log.Printf("announcement to %s failed: %v", to, err)
			failed++
			continue
		}
		sent++
	}
	return sent, failed
}
