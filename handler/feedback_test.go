package handler_test

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"seminar_manager/constants"
	"seminar_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitFeedback(t *testing.T) {
	app, db := newTestApp(t)
	seminar := createSeminar(t, db, "Feedback Seminar", 50)
	registration := createRegistration(t, db, seminar.ID, "Alice", "alice@example.com")

	req := jsonRequest(fiber.MethodPost, "/api/feedback/submit", model.SubmitFeedbackInput{
		RegistrationId:       registration.ID,
		SeminarId:            seminar.ID,
		Rating:               5,
		ContentQuality:       4,
		SpeakerEffectiveness: 5,
		OrganizationQuality:  3,
		Comments:             "Great session",
	})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Second submission for the same registration is rejected.
	req = jsonRequest(fiber.MethodPost, "/api/feedback/submit", model.SubmitFeedbackInput{
		RegistrationId:       registration.ID,
		SeminarId:            seminar.ID,
		Rating:               1,
		ContentQuality:       1,
		SpeakerEffectiveness: 1,
		OrganizationQuality:  1,
	})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, constants.FEEDBACK_EXISTS, body["message"])
}

func TestSubmitFeedbackSeminarMismatch(t *testing.T) {
	app, db := newTestApp(t)
	attended := createSeminar(t, db, "Attended", 50)
	other := createSeminar(t, db, "Not Attended", 50)
	registration := createRegistration(t, db, attended.ID, "Alice", "alice@example.com")

	req := jsonRequest(fiber.MethodPost, "/api/feedback/submit", model.SubmitFeedbackInput{
		RegistrationId:       registration.ID,
		SeminarId:            other.ID,
		Rating:               4,
		ContentQuality:       4,
		SpeakerEffectiveness: 4,
		OrganizationQuality:  4,
	})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, constants.FEEDBACK_MISMATCH, body["message"])
}

func TestSubmitFeedbackUnknownRegistration(t *testing.T) {
	app, db := newTestApp(t)
	seminar := createSeminar(t, db, "Lonely Seminar", 50)

	req := jsonRequest(fiber.MethodPost, "/api/feedback/submit", model.SubmitFeedbackInput{
		RegistrationId:       9999,
		SeminarId:            seminar.ID,
		Rating:               4,
		ContentQuality:       4,
		SpeakerEffectiveness: 4,
		OrganizationQuality:  4,
	})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, constants.REGISTRATION_NOT_FOUND, body["message"])
}

func TestGetSeminarFeedbackAverages(t *testing.T) {
	app, db := newTestApp(t)
	seminar := createSeminar(t, db, "Rated Seminar", 50)

	ratings := []struct {
		email   string
		overall int
		content int
	}{
		{"alice@example.com", 5, 4},
		{"bob@example.com", 4, 5},
		{"carol@example.com", 2, 3},
	}
	for _, r := range ratings {
		registration := createRegistration(t, db, seminar.ID, r.email, r.email)
		req := jsonRequest(fiber.MethodPost, "/api/feedback/submit", model.SubmitFeedbackInput{
			RegistrationId:       registration.ID,
			SeminarId:            seminar.ID,
			Rating:               r.overall,
			ContentQuality:       r.content,
			SpeakerEffectiveness: 4,
			OrganizationQuality:  4,
		})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	req := httptest.NewRequest(fiber.MethodGet, fmt.Sprintf("/api/feedback/seminar/%d", seminar.ID), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.EqualValues(t, 3, body["count"])
	averages := body["averageRatings"].(map[string]any)
	assert.InDelta(t, 3.7, averages["overallRating"].(float64), 0.01)
	assert.InDelta(t, 4.0, averages["contentQuality"].(float64), 0.01)
	assert.InDelta(t, 4.0, averages["speakerEffectiveness"].(float64), 0.01)
}

func TestCheckFeedbackStatus(t *testing.T) {
	app, db := newTestApp(t)
	seminar := createSeminar(t, db, "Status Seminar", 50)
	registration := createRegistration(t, db, seminar.ID, "Alice", "alice@example.com")

	req := httptest.NewRequest(fiber.MethodGet,
		fmt.Sprintf("/api/feedback/status/%d/alice@example.com", seminar.ID), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["isRegistered"])
	assert.Equal(t, false, body["hasFeedback"])

	feedbackReq := jsonRequest(fiber.MethodPost, "/api/feedback/submit", model.SubmitFeedbackInput{
		RegistrationId:       registration.ID,
		SeminarId:            seminar.ID,
		Rating:               5,
		ContentQuality:       5,
		SpeakerEffectiveness: 5,
		OrganizationQuality:  5,
	})
	feedbackResp, err := app.Test(feedbackReq, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, feedbackResp.StatusCode)
	feedbackResp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet,
		fmt.Sprintf("/api/feedback/status/%d/alice@example.com", seminar.ID), nil), -1)
	require.NoError(t, err)
	body = decodeBody(t, resp)
	assert.Equal(t, true, body["hasFeedback"])

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet,
		fmt.Sprintf("/api/feedback/status/%d/nobody@example.com", seminar.ID), nil), -1)
	require.NoError(t, err)
	body = decodeBody(t, resp)
	assert.Equal(t, false, body["isRegistered"])
}
