package handler

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"seminar_manager/config"
	"seminar_manager/constants"
	"seminar_manager/database"
	"seminar_manager/helper"
	"seminar_manager/model"
	"seminar_manager/utils"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

const (
	maxMaterialFiles = 10
	maxMaterialSize  = 50 * 1024 * 1024
)

var allowedMaterialExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true,
	".ppt": true, ".pptx": true,
	".mp4": true, ".mp3": true, ".wav": true, ".avi": true, ".mov": true,
	".txt": true,
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
}

func materialUploadDir() string {
	return config.ConfigOr("UPLOAD_DIR", "./uploads/archive")
}

// ArchiveSeminar snapshots a seminar into the archive and flags the original
// so it stops accepting registrations. Attendance and rating default to the
// live numbers when the caller does not supply them.
func ArchiveSeminar(c *fiber.Ctx) error {
	seminarId := c.Locals("inputId").(uint)
	input := c.Locals("input").(model.ArchiveSeminarInput)
	db := database.DB

	var seminar model.Seminar
	if err := db.First(&seminar, seminarId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SEMINAR_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var existing model.SeminarArchive
	if err := db.Where("original_seminar_id = ?", seminar.ID).First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ARCHIVE_EXISTS, nil)
	}

	totalAttendees := seminar.RegisteredCount
	if input.TotalAttendees != nil {
		totalAttendees = *input.TotalAttendees
	}

	averageRating := 0.0
	if input.AverageRating != nil {
		averageRating = *input.AverageRating
	} else {
		var avg *float64
		db.Model(&model.Feedback{}).
			Where("seminar_id = ?", seminar.ID).
			Select("AVG(rating)").Scan(&avg)
		if avg != nil {
			averageRating = round1(*avg)
		}
	}

	var archive model.SeminarArchive
	if err := copier.Copy(&archive, &seminar); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	archive.ID = 0
	archive.OriginalSeminarId = seminar.ID
	archive.TotalAttendees = totalAttendees
	archive.AverageRating = averageRating
	archive.RecordingUrl = input.RecordingUrl
	archive.ArchivedAt = time.Now()
	if user, ok := c.Locals("actingUser").(*model.User); ok && user != nil {
		archive.ArchivedBy = user.ID
	}

	now := time.Now()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&archive).Error; err != nil {
			return err
		}
		return tx.Model(&seminar).Updates(map[string]any{
			"is_archived": true,
			"archived_at": now,
		}).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Seminar archived successfully",
		"archive": archive,
	})
}

func GetArchives(c *fiber.Ctx) error {
	db := database.DB

	query := db.Model(&model.SeminarArchive{}).Preload("Materials").Order("archived_at DESC")

	if speaker := c.Query("speaker"); speaker != "" {
		query = query.Where("LOWER(speaker) LIKE LOWER(?)", "%"+speaker+"%")
	}
	if topic := c.Query("topic"); topic != "" {
		query = query.Where("LOWER(topic) LIKE LOWER(?)", "%"+topic+"%")
	}

	var archives []model.SeminarArchive
	if err := query.Find(&archives).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{"archives": archives, "count": len(archives)})
}

func GetArchiveById(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var archive model.SeminarArchive
	if err := db.Preload("Materials").First(&archive, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ARCHIVE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{"archive": archive})
}

// UploadMaterials stores up to 10 files for an archive. Each stored file gets
// a random public id so download links stay valid when other materials are
// removed.
func UploadMaterials(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var archive model.SeminarArchive
	if err := db.First(&archive, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ARCHIVE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.NO_FILES_UPLOADED, err)
	}
	files := form.File["files"]
	if len(files) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.NO_FILES_UPLOADED, nil)
	}
	if len(files) > maxMaterialFiles {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.TOO_MANY_FILES, nil)
	}
	for _, file := range files {
		if file.Size > maxMaterialSize {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.FILE_TOO_LARGE, nil)
		}
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedMaterialExtensions[ext] {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.FILE_TYPE_NOT_ALLOWED, nil)
		}
	}

	dir := materialUploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	materials := make([]model.ArchiveMaterial, 0, len(files))
	for _, file := range files {
		publicId := uuid.New().String()
		path := filepath.Join(dir, publicId+strings.ToLower(filepath.Ext(file.Filename)))
		if err := c.SaveFile(file, path); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		materials = append(materials, model.ArchiveMaterial{
			PublicId:   publicId,
			ArchiveId:  archive.ID,
			Filename:   file.Filename,
			Path:       path,
			Size:       file.Size,
			MimeType:   file.Header.Get(fiber.HeaderContentType),
			UploadedAt: time.Now(),
		})
	}

	if err := db.Create(&materials).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   fmt.Sprintf("%d file(s) uploaded successfully", len(materials)),
		"materials": materials,
	})
}

func findMaterial(c *fiber.Ctx) (*model.ArchiveMaterial, error) {
	archiveId := c.Locals("inputId").(uint)
	publicId := c.Params("publicId")

	var material model.ArchiveMaterial
	err := database.DB.
		Where("archive_id = ? AND public_id = ?", archiveId, publicId).
		First(&material).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func DownloadMaterial(c *fiber.Ctx) error {
	material, err := findMaterial(c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MATERIAL_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if _, err := os.Stat(material.Path); err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.FILE_MISSING_ON_SERVER, nil)
	}

	return c.Download(material.Path, material.Filename)
}

func DeleteMaterial(c *fiber.Ctx) error {
	material, err := findMaterial(c)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MATERIAL_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := database.DB.Delete(material).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}
	// The row is the source of truth; a file already gone from disk is fine.
	if err := os.Remove(material.Path); err != nil && !os.IsNotExist(err) {
		fmt.Printf("could not remove material file %s: %v\n", material.Path, err)
	}

	return c.JSON(fiber.Map{"message": "Material deleted successfully"})
}

func UpdateArchive(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	input := c.Locals("input").(model.UpdateArchiveInput)
	db := database.DB

	var archive model.SeminarArchive
	if err := db.First(&archive, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ARCHIVE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	updates := map[string]any{}
	if input.TotalAttendees != nil {
		updates["total_attendees"] = *input.TotalAttendees
	}
	if input.AverageRating != nil {
		updates["average_rating"] = *input.AverageRating
	}
	if input.RecordingUrl != nil {
		updates["recording_url"] = *input.RecordingUrl
	}
	if len(updates) > 0 {
		if err := db.Model(&archive).Updates(updates).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_UPDATE, err)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Archive updated successfully",
		"archive": archive,
	})
}

// DeleteArchive removes the archive row, its materials, and their files.
// Files already missing from disk do not fail the delete.
func DeleteArchive(c *fiber.Ctx) error {
	id := c.Locals("inputId").(uint)
	db := database.DB

	var archive model.SeminarArchive
	if err := db.Preload("Materials").First(&archive, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ARCHIVE_NOT_FOUND, nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("archive_id = ?", archive.ID).Delete(&model.ArchiveMaterial{}).Error; err != nil {
			return err
		}
		return tx.Delete(&archive).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_DELETE, err)
	}

	for _, material := range archive.Materials {
		if err := os.Remove(material.Path); err != nil && !os.IsNotExist(err) {
			fmt.Printf("could not remove material file %s: %v\n", material.Path, err)
		}
	}

	return c.JSON(fiber.Map{"message": "Archive deleted successfully"})
}

func GetArchiveStats(c *fiber.Ctx) error {
	db := database.DB

	var stats model.ArchiveStats
	if err := db.Model(&model.SeminarArchive{}).Count(&stats.TotalArchives).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	db.Model(&model.ArchiveMaterial{}).Count(&stats.TotalMaterials)

	var avg *float64
	db.Model(&model.SeminarArchive{}).Select("AVG(average_rating)").Scan(&avg)
	if avg != nil {
		stats.AverageRating = round1(*avg)
	}

	var attendees *int64
	db.Model(&model.SeminarArchive{}).Select("SUM(total_attendees)").Scan(&attendees)
	if attendees != nil {
		stats.TotalAttendees = *attendees
	}

	return c.JSON(fiber.Map{"stats": stats})
}

// CloudinarySignature hands the frontend a signed parameter set so it can
// upload seminar recordings straight to Cloudinary.
func CloudinarySignature(c *fiber.Ctx) error {
	cld := helper.Cloudinary
	if cld == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Recording uploads are not configured", nil)
	}
	cloud := cld.Config.Cloud

	timestamp := time.Now().Unix()
	folder := "seminars/recordings"

	params := url.Values{}
	params.Set("folder", folder)
	params.Set("timestamp", fmt.Sprintf("%d", timestamp))
	signature, err := api.SignParameters(params, cloud.APISecret)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{
		"cloudName": cloud.CloudName,
		"apiKey":    cloud.APIKey,
		"timestamp": timestamp,
		"folder":    folder,
		"signature": signature,
	})
}
