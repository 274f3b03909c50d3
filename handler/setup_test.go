package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"seminar_manager/constants"
	"seminar_manager/database"
	"seminar_manager/helper"
	"seminar_manager/model"
	"seminar_manager/router"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestApp wires the full route table against a throwaway sqlite database.
// The database is file-backed so concurrent requests in the capacity tests go
// through real write contention.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout(10000)",
		filepath.Join(t.TempDir(), "test.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.Migrate(db)
	database.DB = db
	t.Cleanup(func() {
		database.DB = nil
		sqlDB.Close()
	})

	app := fiber.New()
	router.SetupRoutes(app)
	return app, db
}

func createSeminar(t *testing.T, db *gorm.DB, title string, capacity int) model.Seminar {
	t.Helper()
	date := time.Now().AddDate(0, 0, 7)
	seminar := model.Seminar{
		Title:    title,
		Slug:     helper.GenerateUniqueSeminarSlug(db, title),
		Speaker:  "Dr. Jane Doe",
		Topic:    "Distributed Systems",
		Date:     &date,
		Time:     "14:00",
		Venue:    "Auditorium A",
		Capacity: capacity,
	}
	require.NoError(t, db.Create(&seminar).Error)
	return seminar
}

func createAdmin(t *testing.T, db *gorm.DB) (model.User, string) {
	t.Helper()
	hash, err := helper.HashPassword("admin123")
	require.NoError(t, err)
	admin := model.User{
		Name:     "Test Admin",
		Email:    fmt.Sprintf("admin+%d@seminex.edu", time.Now().UnixNano()),
		Password: hash,
		Role:     constants.ROLE_ADMIN,
	}
	require.NoError(t, db.Create(&admin).Error)

	token, err := helper.GenerateAccessToken(model.TokenClaim{
		UserId: admin.ID,
		Email:  admin.Email,
		Role:   admin.Role,
	})
	require.NoError(t, err)
	return admin, token
}

func createStudent(t *testing.T, db *gorm.DB, email string) (model.User, string) {
	t.Helper()
	hash, err := helper.HashPassword("student123")
	require.NoError(t, err)
	student := model.User{
		Name:     "Test Student",
		Email:    email,
		Password: hash,
		Role:     constants.ROLE_STUDENT,
	}
	require.NoError(t, db.Create(&student).Error)

	token, err := helper.GenerateAccessToken(model.TokenClaim{
		UserId: student.ID,
		Email:  student.Email,
		Role:   student.Role,
	})
	require.NoError(t, err)
	return student, token
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, buf)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func authedRequest(method, target string, body any, token string) *http.Request {
	req := jsonRequest(method, target, body)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func registerStudent(t *testing.T, app *fiber.App, seminarId uint, name, email string) *http.Response {
	t.Helper()
	req := jsonRequest(fiber.MethodPost, "/api/registrations", model.CreateRegistrationInput{
		Name:      name,
		Email:     email,
		SeminarId: seminarId,
	})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}
