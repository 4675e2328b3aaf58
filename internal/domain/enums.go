package domain

// Frequency defines how often a compliance rule recurs.
type Frequency string

const (
	FrequencyFirstYear Frequency = "first-year"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnual    Frequency = "annual"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyFirstYear, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnual:
		return true
	}
	return false
}

// VerificationRequired defines which parties must verify a rule's tasks.
type VerificationRequired string

const (
	VerificationNone VerificationRequired = "none"
	VerificationCA   VerificationRequired = "ca"
	VerificationCS   VerificationRequired = "cs"
	VerificationBoth VerificationRequired = "both"
)

// Valid reports whether v is a known verification requirement.
func (v VerificationRequired) Valid() bool {
	switch v {
	case VerificationNone, VerificationCA, VerificationCS, VerificationBoth:
		return true
	}
	return false
}

// VerificationStatus is the per-party status of a single compliance task.
type VerificationStatus string

const (
	StatusPending   VerificationStatus = "pending"
	StatusSubmitted VerificationStatus = "submitted"
	StatusVerified  VerificationStatus = "verified"
	StatusRejected  VerificationStatus = "rejected"
)

// Valid reports whether s is a known verification status.
func (s VerificationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusSubmitted, StatusVerified, StatusRejected:
		return true
	}
	return false
}

// VerificationParty identifies one of the two verifying columns on a task.
type VerificationParty string

const (
	PartyCA VerificationParty = "ca"
	PartyCS VerificationParty = "cs"
)

// Valid reports whether p is a known verification party.
func (p VerificationParty) Valid() bool {
	return p == PartyCA || p == PartyCS
}

// ComplianceStatus is the aggregate roll-up status stored on the startup record.
type ComplianceStatus string

const (
	CompliancePending      ComplianceStatus = "pending"
	ComplianceCompliant    ComplianceStatus = "compliant"
	ComplianceNonCompliant ComplianceStatus = "non_compliant"
)

// UserRole defines the platform roles.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleStartup UserRole = "startup"
	RoleCA      UserRole = "ca"
	RoleCS      UserRole = "cs"
)

// ValidUserRoles is the set of assignable roles.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:   true,
	RoleStartup: true,
	RoleCA:      true,
	RoleCS:      true,
}

// Party returns the verification column a verifying role may edit, or "" for
// non-verifier roles.
func (r UserRole) Party() VerificationParty {
	switch r {
	case RoleCA:
		return PartyCA
	case RoleCS:
		return PartyCS
	default:
		return ""
	}
}

// FileType represents the allowed evidence file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}
