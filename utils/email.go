package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"seminar_manager/model"

	"gopkg.in/gomail.v2"
)

const emailWrapper = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>{{.Heading}}</h2>
  <p>Dear {{.StudentName}},</p>
  <p>{{.Intro}}</p>
  <div style="background-color: #f5f5f5; padding: 15px; border-radius: 5px; margin: 15px 0;">
    <h3 style="margin-top: 0;">{{.SeminarTitle}}</h3>
    <p><strong>Date:</strong> {{.Date}}</p>
    <p><strong>Time:</strong> {{.Time}}</p>
    <p><strong>Venue:</strong> {{.Venue}}</p>
    <p><strong>Speaker:</strong> {{.Speaker}}</p>
    {{if .Extra}}<p>{{.Extra}}</p>{{end}}
  </div>
  <p>{{.Outro}}</p>
  <p>Thank you,<br>SemiNex Team</p>
</div>`

var emailTemplate = template.Must(template.New("seminar_email").Parse(emailWrapper))

type emailData struct {
	Heading      string
	StudentName  string
	Intro        string
	SeminarTitle string
	Date         string
	Time         string
	Venue        string
	Speaker      string
	Extra        string
	Outro        string
}

func seminarDate(seminar model.Seminar) string {
	if seminar.Date == nil {
		return "TBA"
	}
	return seminar.Date.Format("January 2, 2006")
}

// SendMail delivers one HTML message over SMTP. Without SMTP_HOST configured
// the message is logged instead of sent, mirroring a development transport.
func SendMail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Printf("========== EMAIL WOULD BE SENT ==========\nTo: %s\nSubject: %s\n=========================================", to, subject)
		return nil
	}

	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "seminex@example.com"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	return d.DialAndSend(m)
}

func sendSeminarEmail(to, subject string, data emailData) error {
	var body bytes.Buffer
	if err := emailTemplate.Execute(&body, data); err != nil {
		return err
	}
	return SendMail(to, subject, body.String())
}

func SendRegistrationConfirmation(registration model.Registration, seminar model.Seminar) error {
	return sendSeminarEmail(registration.Email, "Registration Confirmed: "+seminar.Title, emailData{
		Heading:      "Registration Confirmed",
		StudentName:  registration.StudentName,
		Intro:        "Your registration for the following seminar has been confirmed:",
		SeminarTitle: seminar.Title,
		Date:         seminarDate(seminar),
		Time:         seminar.Time,
		Venue:        seminar.Venue,
		Speaker:      seminar.Speaker,
		Outro:        "Please arrive 15 minutes before the scheduled start time.",
	})
}

// SendRegistrationConfirmationAsync fires the confirmation without delaying
// the response; a failed send never fails the registration.
func SendRegistrationConfirmationAsync(registration model.Registration, seminar model.Seminar) {
	go func() {
		if err := SendRegistrationConfirmation(registration, seminar); err != nil {
			log.Printf("failed to send confirmation email to %s: %v", registration.Email, err)
		}
	}()
}

func SendSeminarReminder(registration model.Registration, seminar model.Seminar) error {
	return sendSeminarEmail(registration.Email, "Reminder: "+seminar.Title+" - Tomorrow", emailData{
		Heading:      "Seminar Reminder",
		StudentName:  registration.StudentName,
		Intro:        "This is a friendly reminder that you are registered for the following seminar tomorrow:",
		SeminarTitle: seminar.Title,
		Date:         seminarDate(seminar),
		Time:         seminar.Time,
		Venue:        seminar.Venue,
		Speaker:      seminar.Speaker,
		Outro:        "We look forward to seeing you!",
	})
}

func SendFeedbackRequest(registration model.Registration, seminar model.Seminar) error {
	return sendSeminarEmail(registration.Email, "How was "+seminar.Title+"?", emailData{
		Heading:      "We Value Your Feedback",
		StudentName:  registration.StudentName,
		Intro:        "Thank you for attending the seminar below. Please take a minute to share your feedback:",
		SeminarTitle: seminar.Title,
		Date:         seminarDate(seminar),
		Time:         seminar.Time,
		Venue:        seminar.Venue,
		Speaker:      seminar.Speaker,
		Outro:        "Your feedback helps us improve future seminars.",
	})
}

func SendCancellationNotice(registration model.Registration, seminar model.Seminar) error {
	return sendSeminarEmail(registration.Email, "Cancelled: "+seminar.Title, emailData{
		Heading:      "Seminar Cancelled",
		StudentName:  registration.StudentName,
		Intro:        "We regret to inform you that the following seminar has been cancelled:",
		SeminarTitle: seminar.Title,
		Date:         seminarDate(seminar),
		Time:         seminar.Time,
		Venue:        seminar.Venue,
		Speaker:      seminar.Speaker,
		Outro:        "We apologize for the inconvenience and hope to see you at a future seminar.",
	})
}

func SendCertificateEmail(certificate model.Certificate, registration model.Registration, seminar model.Seminar) error {
	return sendSeminarEmail(registration.Email, "Your Certificate for "+seminar.Title, emailData{
		Heading:      "Certificate of Participation",
		StudentName:  registration.StudentName,
		Intro:        "Your certificate of participation has been issued for:",
		SeminarTitle: seminar.Title,
		Date:         seminarDate(seminar),
		Time:         seminar.Time,
		Venue:        seminar.Venue,
		Speaker:      seminar.Speaker,
		Extra:        "Certificate Number: " + certificate.CertificateNumber + " | Verification Code: " + certificate.VerificationCode,
		Outro:        "You can verify this certificate at any time using the number and code above.",
	})
}
