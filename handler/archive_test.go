package handler_test

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"seminar_manager/constants"
	"seminar_manager/model"
	"seminar_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveSeminar(t *testing.T) {
	app, db := newTestApp(t)
	admin, token := createAdmin(t, db)
	seminar := createSeminar(t, db, "Archivable", 50)

	resp := registerStudent(t, app, seminar.ID, "Alice", "alice@example.com")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	req := authedRequest(fiber.MethodPost,
		fmt.Sprintf("/api/archives/archive/%d", seminar.ID),
		model.ArchiveSeminarInput{RecordingUrl: "https://example.com/recording.mp4"},
		token)
	archiveResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, archiveResp.StatusCode)

	body := decodeBody(t, archiveResp)
	archive := body["archive"].(map[string]any)
	assert.Equal(t, "Archivable", archive["title"])
	assert.EqualValues(t, seminar.ID, archive["originalSeminarId"])
	assert.EqualValues(t, 1, archive["totalAttendees"])
	assert.EqualValues(t, admin.ID, archive["archivedBy"])
	assert.Equal(t, "https://example.com/recording.mp4", archive["recordingUrl"])

	var updated model.Seminar
	require.NoError(t, db.First(&updated, seminar.ID).Error)
	assert.True(t, updated.IsArchived)
	require.NotNil(t, updated.ArchivedAt)
}

func TestArchiveSeminarTwice(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createAdmin(t, db)
	seminar := createSeminar(t, db, "Archive Once", 50)

	req := authedRequest(fiber.MethodPost,
		fmt.Sprintf("/api/archives/archive/%d", seminar.ID), nil, token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	req = authedRequest(fiber.MethodPost,
		fmt.Sprintf("/api/archives/archive/%d", seminar.ID), nil, token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, constants.ARCHIVE_EXISTS, body["message"])
}

func TestArchivedSeminarHiddenFromListing(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createAdmin(t, db)
	live := createSeminar(t, db, "Still Live", 50)
	archived := createSeminar(t, db, "Going Away", 50)

	req := authedRequest(fiber.MethodPost,
		fmt.Sprintf("/api/archives/archive/%d", archived.ID), nil, token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	listResp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/seminars", nil), -1)
	require.NoError(t, err)
	body := decodeBody(t, listResp)
	seminars := body["seminars"].([]any)
	require.Len(t, seminars, 1)
	assert.EqualValues(t, live.ID, seminars[0].(map[string]any)["id"])

	// The archived one is still reachable when asked for explicitly.
	listResp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/api/seminars?includeArchived=true", nil), -1)
	require.NoError(t, err)
	body = decodeBody(t, listResp)
	assert.Len(t, body["seminars"].([]any), 2)
}

func TestRegistrationRejectedAfterArchive(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createAdmin(t, db)
	seminar := createSeminar(t, db, "Closing Soon", 50)

	req := authedRequest(fiber.MethodPost,
		fmt.Sprintf("/api/archives/archive/%d", seminar.ID), nil, token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	regResp := registerStudent(t, app, seminar.ID, "Alice", "alice@example.com")
	require.Equal(t, fiber.StatusBadRequest, regResp.StatusCode)
	body := decodeBody(t, regResp)
	assert.Equal(t, constants.SEMINAR_ARCHIVED, body["message"])
}

func TestUpdateArchive(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createAdmin(t, db)

	archive := model.SeminarArchive{
		OriginalSeminarId: 1,
		Title:             "Editable Archive",
		Speaker:           "Dr. Jane Doe",
		Topic:             "Testing",
		ArchivedAt:        time.Now(),
	}
	require.NoError(t, db.Create(&archive).Error)

	req := authedRequest(fiber.MethodPut,
		fmt.Sprintf("/api/archives/%d", archive.ID),
		model.UpdateArchiveInput{
			TotalAttendees: utils.Ptr(42),
			AverageRating:  utils.Ptr(4.5),
		}, token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var updated model.SeminarArchive
	require.NoError(t, db.First(&updated, archive.ID).Error)
	assert.Equal(t, 42, updated.TotalAttendees)
	assert.Equal(t, 4.5, updated.AverageRating)
}

func TestDeleteArchive(t *testing.T) {
	app, db := newTestApp(t)
	_, token := createAdmin(t, db)

	archive := model.SeminarArchive{
		OriginalSeminarId: 2,
		Title:             "Doomed Archive",
		Speaker:           "Dr. Jane Doe",
		Topic:             "Cleanup",
		ArchivedAt:        time.Now(),
	}
	require.NoError(t, db.Create(&archive).Error)
	// A material whose file never existed on disk must not break the delete.
	require.NoError(t, db.Create(&model.ArchiveMaterial{
		PublicId:   "11111111-2222-3333-4444-555555555555",
		ArchiveId:  archive.ID,
		Filename:   "slides.pdf",
		Path:       "/nonexistent/slides.pdf",
		Size:       1024,
		UploadedAt: time.Now(),
	}).Error)

	req := authedRequest(fiber.MethodDelete,
		fmt.Sprintf("/api/archives/%d", archive.ID), nil, token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var archives, materials int64
	db.Model(&model.SeminarArchive{}).Count(&archives)
	db.Model(&model.ArchiveMaterial{}).Count(&materials)
	assert.Zero(t, archives)
	assert.Zero(t, materials)
}

func TestGetArchiveStats(t *testing.T) {
	app, db := newTestApp(t)

	for i, rating := range []float64{4.0, 5.0} {
		require.NoError(t, db.Create(&model.SeminarArchive{
			OriginalSeminarId: uint(i + 1),
			Title:             fmt.Sprintf("Archive %d", i),
			Speaker:           "Dr. Jane Doe",
			Topic:             "Stats",
			TotalAttendees:    10,
			AverageRating:     rating,
			ArchivedAt:        time.Now(),
		}).Error)
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/archives/stats", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	stats := body["stats"].(map[string]any)
	assert.EqualValues(t, 2, stats["totalArchives"])
	assert.EqualValues(t, 20, stats["totalAttendees"])
	assert.InDelta(t, 4.5, stats["averageRating"].(float64), 0.01)
}

func TestGetArchivesFilters(t *testing.T) {
	app, db := newTestApp(t)

	for i, archive := range []model.SeminarArchive{
		{Title: "Go Workshop", Speaker: "Dr. Jane Doe", Topic: "Distributed Systems"},
		{Title: "Rust Workshop", Speaker: "Prof. John Smith", Topic: "Memory Safety"},
	} {
		archive.OriginalSeminarId = uint(i + 1)
		archive.ArchivedAt = time.Now()
		require.NoError(t, db.Create(&archive).Error)
	}

	// Filters match case-insensitively on substrings.
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/archives?speaker=jane", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.EqualValues(t, 1, body["count"])
	archives := body["archives"].([]any)
	assert.Equal(t, "Go Workshop", archives[0].(map[string]any)["title"])

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/api/archives?topic=MEMORY", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	require.EqualValues(t, 1, body["count"])
	archives = body["archives"].([]any)
	assert.Equal(t, "Rust Workshop", archives[0].(map[string]any)["title"])

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/api/archives?speaker=nobody", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.EqualValues(t, 0, body["count"])
}

func TestDownloadUnknownMaterial(t *testing.T) {
	app, db := newTestApp(t)

	archive := model.SeminarArchive{
		OriginalSeminarId: 3,
		Title:             "No Materials",
		Speaker:           "Dr. Jane Doe",
		Topic:             "Files",
		ArchivedAt:        time.Now(),
	}
	require.NoError(t, db.Create(&archive).Error)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet,
		fmt.Sprintf("/api/archives/%d/materials/does-not-exist", archive.ID), nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, constants.MATERIAL_NOT_FOUND, body["message"])
}
