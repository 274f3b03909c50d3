package utils

import (
	"testing"
	"time"

	"seminar_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeminar() model.Seminar {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	return model.Seminar{
		Title:   "Cloud Native Go",
		Speaker: "Dr. Jane Doe",
		Date:    &date,
		Time:    "14:00",
		Venue:   "Hall B",
	}
}

// Without SMTP_HOST the mailers log and succeed, so registration flows never
// fail on mail delivery in development.
func TestSendMailDevMode(t *testing.T) {
	t.Setenv("SMTP_HOST", "")

	registration := model.Registration{StudentName: "Alice", Email: "alice@example.com"}
	require.NoError(t, SendRegistrationConfirmation(registration, testSeminar()))
	require.NoError(t, SendSeminarReminder(registration, testSeminar()))
	require.NoError(t, SendFeedbackRequest(registration, testSeminar()))
}

func TestSeminarDateFallback(t *testing.T) {
	assert.Equal(t, "TBA", seminarDate(model.Seminar{}))
	assert.Equal(t, "September 15, 2026", seminarDate(testSeminar()))
}

func TestSendAnnouncementDevMode(t *testing.T) {
	t.Setenv("SMTP_HOST", "")

	sent, failed := SendAnnouncement([]string{"a@example.com", "b@example.com"}, "Venue change", "Hall B instead of Hall A")
	assert.Equal(t, 2, sent)
	assert.Equal(t, 0, failed)
}

func TestGenerateQRCode(t *testing.T) {
	png, err := GenerateQRCode("https://example.com/certificates/verify?number=SEMINEX-123456-0001&code=ABCD1234", 256)
	require.NoError(t, err)
	// PNG magic bytes.
	require.Greater(t, len(png), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
