package model

type SystemStats struct {
	Seminars         int64 `json:"seminars"`
	ArchivedSeminars int64 `json:"archivedSeminars"`
	Speakers         int64 `json:"speakers"`
	Registrations    int64 `json:"registrations"`
	Certificates     int64 `json:"certificates"`
	FeedbackEntries  int64 `json:"feedbackEntries"`
	Users            int64 `json:"users"`
}

type AttendanceRow struct {
	SeminarId       uint    `json:"seminarId"`
	Title           string  `json:"title"`
	Capacity        int     `json:"capacity"`
	RegisteredCount int     `json:"registeredCount"`
	FillRate        float64 `json:"fillRate"` // %
}

type FeedbackStatsRow struct {
	SeminarId            uint    `json:"seminarId"`
	Title                string  `json:"title"`
	FeedbackCount        int64   `json:"feedbackCount"`
	OverallRating        float64 `json:"overallRating"`
	ContentQuality       float64 `json:"contentQuality"`
	SpeakerEffectiveness float64 `json:"speakerEffectiveness"`
	OrganizationQuality  float64 `json:"organizationQuality"`
}

type TrendRow struct {
	Month         string `json:"month"` // "2026-09"
	Registrations int64  `json:"registrations"`
}
