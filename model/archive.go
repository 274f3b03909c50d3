package model

import "time"

type SeminarArchive struct {
	DTO
	OriginalSeminarId uint       `gorm:"not null;uniqueIndex" json:"originalSeminarId"`
	Title             string     `gorm:"size:200;not null" json:"title"`
	Speaker           string     `gorm:"size:100;not null" json:"speaker"`
	Topic             string     `gorm:"size:150;not null" json:"topic"`
	Description       string     `gorm:"size:1000" json:"description"`
	Date              *time.Time `json:"date"`
	Venue             string     `gorm:"size:200" json:"venue"`
	TotalAttendees    int        `gorm:"not null;default:0" json:"totalAttendees"`
	AverageRating     float64    `gorm:"not null;default:0" json:"averageRating"`
	RecordingUrl      string     `json:"recordingUrl"`
	ArchivedAt        time.Time  `gorm:"not null" json:"archivedAt"`
	ArchivedBy        uint       `json:"archivedBy"`

	Materials []ArchiveMaterial `gorm:"foreignKey:ArchiveId;constraint:OnDelete:CASCADE" json:"materials"`
}

// ArchiveMaterial is one uploaded file attached to an archive. PublicId is the
// stable handle used in URLs so materials survive concurrent deletes.
type ArchiveMaterial struct {
	DTO
	PublicId   string    `gorm:"size:36;uniqueIndex;not null" json:"publicId"`
	ArchiveId  uint      `gorm:"not null" json:"archiveId"`
	Filename   string    `gorm:"not null" json:"filename"`
	Path       string    `gorm:"not null" json:"path"`
	Size       int64     `gorm:"not null" json:"size"`
	MimeType   string    `json:"mimetype"`
	UploadedAt time.Time `gorm:"not null" json:"uploadedAt"`
}

type ArchiveSeminarInput struct {
	TotalAttendees *int     `json:"totalAttendees" validate:"omitempty,min=0"`
	AverageRating  *float64 `json:"averageRating" validate:"omitempty,min=0,max=5"`
	RecordingUrl   string   `json:"recordingUrl"`
}

type UpdateArchiveInput struct {
	TotalAttendees *int     `json:"totalAttendees" validate:"omitempty,min=0"`
	AverageRating  *float64 `json:"averageRating" validate:"omitempty,min=0,max=5"`
	RecordingUrl   *string  `json:"recordingUrl"`
}

type ArchiveStats struct {
	TotalArchives  int64   `json:"totalArchives"`
	TotalMaterials int64   `json:"totalMaterials"`
	AverageRating  float64 `json:"averageRating"`
	TotalAttendees int64   `json:"totalAttendees"`
}
