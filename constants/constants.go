package constants

// Roles
const (
	ROLE_ADMIN   = "admin"
	ROLE_STUDENT = "student"
)

// Certificate
const (
	CERTIFICATE_PREFIX  = "SEMINEX"
	CERTIFICATE_ISSUED  = "issued"
	CERTIFICATE_REVOKED = "revoked"
)

// Generic
const (
	ERROR_INTERNAL_ERROR     = "Server error"
	ERROR_INPUT              = "Invalid input data"
	ERROR_CREATE             = "Create failed"
	ERROR_UPDATE             = "Update failed"
	ERROR_DELETE             = "Delete failed"
	NOT_FOUND_RECORDS        = "No records found"
	DATA_INPUT_IS_NOT_NUMBER = "Input is not a number"
	DATABASE_UNAVAILABLE     = "Database is not available"
)

// Auth
const (
	MISSING_LOGIN_INPUT = "Email and password are required"
	INVALID_CREDENTIALS = "Invalid credentials"
	INVALID_EMAIL       = "Invalid email address"
	ACCOUNT_BLOCKED     = "Account has been blocked"
	EMAIL_EXISTS        = "User already exists with this email"
	MISSING_TOKEN       = "Missing token"
	INVALID_TOKEN       = "Invalid token"
	NOT_ADMIN           = "Admin access required"
	USER_NOT_FOUND      = "User not found"
)

// Seminars & schedules
const (
	SEMINAR_NOT_FOUND        = "Seminar not found"
	SEMINAR_ARCHIVED         = "Cannot register for archived seminar"
	SEMINAR_FULL             = "Seminar has reached maximum capacity"
	CAPACITY_BELOW_COUNT     = "Cannot reduce capacity below current registration count"
	SCHEDULE_NOT_FOUND       = "Schedule not found"
	SPEAKER_NOT_FOUND        = "Speaker not found"
	SEMINAR_NO_REGISTRATIONS = "No registrations found for this seminar"
)

// Registrations
const (
	REGISTRATION_NOT_FOUND = "Registration not found"
	REGISTRATION_DUPLICATE = "This email is already registered for the seminar"
	REGISTRATION_SUCCESS   = "Registration successful"
	REGISTRATION_CANCELLED = "Registration cancelled successfully"
)

// Feedback & certificates
const (
	FEEDBACK_EXISTS       = "Feedback already submitted for this registration"
	FEEDBACK_MISMATCH     = "Registration does not match the seminar"
	CERTIFICATE_NOT_FOUND = "Certificate not found"
	CERTIFICATE_EXISTS    = "Certificate already generated for this registration"
	CERTIFICATE_INVALID   = "Certificate not found or verification code is incorrect"
	CERTIFICATE_IS_VALID  = "Certificate is valid"
	CERTIFICATE_WAS_REVOKED = "Certificate has been revoked"
)

// Archives
const (
	ARCHIVE_NOT_FOUND      = "Archived seminar not found"
	ARCHIVE_EXISTS         = "Seminar is already archived"
	MATERIAL_NOT_FOUND     = "Material not found"
	FILE_MISSING_ON_SERVER = "File not found on server"
	NO_FILES_UPLOADED      = "No files uploaded"
	TOO_MANY_FILES         = "A maximum of 10 files can be uploaded at once"
	FILE_TOO_LARGE         = "File exceeds the 50MB limit"
	FILE_TYPE_NOT_ALLOWED  = "Only documents, presentations, videos, audio, and images are allowed"
)
