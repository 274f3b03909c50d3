package handler_test

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"seminar_manager/constants"
	"seminar_manager/model"
	"seminar_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSeminarGeneratesSlug(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createAdmin(t, db)

	input := model.CreateSeminarInput{
		Title:       "Machine Learning 101",
		Speaker:     "Dr. Jane Doe",
		Topic:       "ML",
		Description: "An introduction",
		Capacity:    100,
	}
	req := authedRequest(fiber.MethodPost, "/api/seminars", input, token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	first := body["seminar"].(map[string]any)
	assert.Equal(t, "machine-learning-101", first["slug"])

	// Same title gets a suffixed slug, not a failure.
	req = authedRequest(fiber.MethodPost, "/api/seminars", input, token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body = decodeBody(t, resp)
	second := body["seminar"].(map[string]any)
	assert.Equal(t, "machine-learning-101-1", second["slug"])

	slugResp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/seminars/slug/machine-learning-101", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, slugResp.StatusCode)
	body = decodeBody(t, slugResp)
	assert.EqualValues(t, first["id"], body["seminar"].(map[string]any)["id"])
}

func TestUpdateSeminarCapacityBelowCount(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createAdmin(t, db)
	seminar := createSeminar(t, db, "Shrinking Room", 10)

	for i := 0; i < 3; i++ {
		resp := registerStudent(t, app, seminar.ID, fmt.Sprintf("Student %d", i), fmt.Sprintf("s%d@example.com", i))
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	req := authedRequest(fiber.MethodPut, fmt.Sprintf("/api/seminars/%d", seminar.ID),
		model.UpdateSeminarInput{Capacity: utils.Ptr(2)}, token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, constants.CAPACITY_BELOW_COUNT, body["message"])

	// Reducing to exactly the current count is allowed.
	req = authedRequest(fiber.MethodPut, fmt.Sprintf("/api/seminars/%d", seminar.ID),
		model.UpdateSeminarInput{Capacity: utils.Ptr(3)}, token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var updated model.Seminar
	require.NoError(t, db.First(&updated, seminar.ID).Error)
	assert.Equal(t, 3, updated.Capacity)
}

func TestDeleteSeminarCascades(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createAdmin(t, db)
	seminar := createSeminar(t, db, "Doomed Seminar", 10)

	resp := registerStudent(t, app, seminar.ID, "Alice", "alice@example.com")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	req := authedRequest(fiber.MethodDelete, fmt.Sprintf("/api/seminars/%d", seminar.ID), nil, token)
	delResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, delResp.StatusCode)
	delResp.Body.Close()

	var seminars, registrations int64
	db.Model(&model.Seminar{}).Count(&seminars)
	db.Model(&model.Registration{}).Count(&registrations)
	assert.Zero(t, seminars)
	assert.Zero(t, registrations)
}

func TestCreateSeminarRequiresAdmin(t *testing.T) {
	app, db := newTestApp(t)
	_, studentToken := createStudent(t, db, "student@example.com")

	input := model.CreateSeminarInput{
		Title:       "Forbidden Seminar",
		Speaker:     "Dr. Jane Doe",
		Topic:       "Auth",
		Description: "Should not exist",
		Capacity:    10,
	}
	req := authedRequest(fiber.MethodPost, "/api/seminars", input, studentToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	var count int64
	db.Model(&model.Seminar{}).Count(&count)
	assert.Zero(t, count)
}
