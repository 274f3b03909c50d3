package handler_test

import (
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"seminar_manager/constants"
	"seminar_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRegistration(t *testing.T) {
	app, db := newTestApp(t)
	seminar := createSeminar(t, db, "Intro to Go", 50)

	resp := registerStudent(t, app, seminar.ID, "Alice", "alice@example.com")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, constants.REGISTRATION_SUCCESS, body["message"])
	registration := body["registration"].(map[string]any)
	assert.Equal(t, "Alice", registration["name"])
	assert.Equal(t, "alice@example.com", registration["email"])

	var updated model.Seminar
	require.NoError(t, db.First(&updated, seminar.ID).Error)
	assert.Equal(t, 1, updated.RegisteredCount)
}

func TestCreateRegistrationDuplicateEmail(t *testing.T) {
	app, db := newTestApp(t)
	seminar := createSeminar(t, db, "Duplicate Check", 50)

	resp := registerStudent(t, app, seminar.ID, "Alice", "alice@example.com")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Same email with different casing still counts as the same registrant.
	resp = registerStudent(t, app, seminar.ID, "Alice Again", "Alice@Example.com")
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, constants.REGISTRATION_DUPLICATE, body["message"])

	var count int64
	db.Model(&model.Registration{}).Where("seminar_id = ?", seminar.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	var updated model.Seminar
	require.NoError(t, db.First(&updated, seminar.ID).Error)
	assert.Equal(t, 1, updated.RegisteredCount)
}

func TestCreateRegistrationSeminarFull(t *testing.T) {
	app, db := newTestApp(t)
	seminar := createSeminar(t, db, "Tiny Room", 1)

	resp := registerStudent(t, app, seminar.ID, "Alice", "alice@example.com")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = registerStudent(t, app, seminar.ID, "Bob", "bob@example.com")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, constants.SEMINAR_FULL, body["message"])
}

func TestCreateRegistrationArchivedSeminar(t *testing.T) {
	app, db := newTestApp(t)
	seminar := createSeminar(t, db, "Old News", 50)
	now := time.Now()
	require.NoError(t, db.Model(&seminar).Updates(map[string]any{
		"is_archived": true,
		"archived_at": now,
	}).Error)

	resp := registerStudent(t, app, seminar.ID, "Alice", "alice@example.com")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, constants.SEMINAR_ARCHIVED, body["message"])
}

func TestCreateRegistrationUnknownSeminar(t *testing.T) {
	app, _ := newTestApp(t)

	resp := registerStudent(t, app, 9999, "Alice", "alice@example.com")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, constants.SEMINAR_NOT_FOUND, body["message"])
}

// Many registrants fighting for a handful of seats must produce exactly
// capacity successes, never an oversell.
func TestConcurrentRegistrationsNeverOversell(t *testing.T) {
	app, db := newTestApp(t)
	const capacity = 3
	const attempts = 12
	seminar := createSeminar(t, db, "Hot Ticket", capacity)

	var wg sync.WaitGroup
	statuses := make([]int, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := registerStudent(t, app, seminar.ID, fmt.Sprintf("Student %d", i), fmt.Sprintf("student%d@example.com", i))
			statuses[i] = resp.StatusCode
			resp.Body.Close()
		}(i)
	}
	wg.Wait()

	created := 0
	for _, status := range statuses {
		if status == fiber.StatusCreated {
			created++
		} else {
			assert.Equal(t, fiber.StatusBadRequest, status)
		}
	}
	assert.Equal(t, capacity, created)

	var updated model.Seminar
	require.NoError(t, db.First(&updated, seminar.ID).Error)
	assert.Equal(t, capacity, updated.RegisteredCount)

	var count int64
	db.Model(&model.Registration{}).Where("seminar_id = ?", seminar.ID).Count(&count)
	assert.EqualValues(t, capacity, count)
}

func TestCancelRegistrationReleasesSeat(t *testing.T) {
	app, db := newTestApp(t)
	seminar := createSeminar(t, db, "One Seat Only", 1)

	resp := registerStudent(t, app, seminar.ID, "Alice", "alice@example.com")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	registrationId := uint(body["registration"].(map[string]any)["id"].(float64))

	req := httptest.NewRequest(fiber.MethodDelete, fmt.Sprintf("/api/registrations/%d", registrationId), nil)
	cancelResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, cancelResp.StatusCode)
	cancelResp.Body.Close()

	var updated model.Seminar
	require.NoError(t, db.First(&updated, seminar.ID).Error)
	assert.Equal(t, 0, updated.RegisteredCount)

	// Seat is usable again.
	resp = registerStudent(t, app, seminar.ID, "Bob", "bob@example.com")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func TestCancelRegistrationTwiceDecrementsOnce(t *testing.T) {
	app, db := newTestApp(t)
	seminar := createSeminar(t, db, "Double Cancel", 5)

	resp := registerStudent(t, app, seminar.ID, "Alice", "alice@example.com")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	registrationId := uint(body["registration"].(map[string]any)["id"].(float64))

	req := httptest.NewRequest(fiber.MethodDelete, fmt.Sprintf("/api/registrations/%d", registrationId), nil)
	cancelResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, cancelResp.StatusCode)
	cancelResp.Body.Close()

	req = httptest.NewRequest(fiber.MethodDelete, fmt.Sprintf("/api/registrations/%d", registrationId), nil)
	cancelResp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, cancelResp.StatusCode)
	cancelResp.Body.Close()

	var updated model.Seminar
	require.NoError(t, db.First(&updated, seminar.ID).Error)
	assert.Equal(t, 0, updated.RegisteredCount)
}

func TestCancelRegistrationNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodDelete, "/api/registrations/424242", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, constants.REGISTRATION_NOT_FOUND, body["message"])
}

func TestCheckRegistrationStatus(t *testing.T) {
	app, db := newTestApp(t)
	seminar := createSeminar(t, db, "Status Check", 50)

	resp := registerStudent(t, app, seminar.ID, "Alice", "alice@example.com")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	req := httptest.NewRequest(fiber.MethodGet,
		fmt.Sprintf("/api/registrations/check/%d/alice@example.com", seminar.ID), nil)
	checkResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, checkResp.StatusCode)
	body := decodeBody(t, checkResp)
	assert.Equal(t, true, body["isRegistered"])

	req = httptest.NewRequest(fiber.MethodGet,
		fmt.Sprintf("/api/registrations/check/%d/nobody@example.com", seminar.ID), nil)
	checkResp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, checkResp.StatusCode)
	body = decodeBody(t, checkResp)
	assert.Equal(t, false, body["isRegistered"])
}

func TestGetSeminarCapacity(t *testing.T) {
	app, db := newTestApp(t)
	seminar := createSeminar(t, db, "Capacity View", 4)

	resp := registerStudent(t, app, seminar.ID, "Alice", "alice@example.com")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	req := httptest.NewRequest(fiber.MethodGet, fmt.Sprintf("/api/seminars/%d/capacity", seminar.ID), nil)
	capResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, capResp.StatusCode)
	body := decodeBody(t, capResp)
	capacity := body["capacityStatus"].(map[string]any)
	assert.EqualValues(t, 4, capacity["capacity"])
	assert.EqualValues(t, 1, capacity["registeredCount"])
	assert.EqualValues(t, 3, capacity["availableSeats"])
	assert.Equal(t, false, capacity["isFull"])
	assert.EqualValues(t, 25, capacity["percentageFilled"])
}
