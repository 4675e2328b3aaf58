package domain

import (
	"time"

	"github.com/google/uuid"
)

// Startup represents a startup onboarded onto the platform.
type Startup struct {
	ID                    uuid.UUID        `db:"id" json:"id"`
	Name                  string           `db:"name" json:"name"`
	CountryOfRegistration string           `db:"country_of_registration" json:"country_of_registration"`
	CompanyType           string           `db:"company_type" json:"company_type"`
	RegistrationDate      time.Time        `db:"registration_date" json:"registration_date"`
	ComplianceStatus      ComplianceStatus `db:"compliance_status" json:"compliance_status"`
	ContactName           string           `db:"contact_name" json:"contact_name"`
	ContactEmail          string           `db:"contact_email" json:"contact_email"`
	IsActive              bool             `db:"is_active" json:"is_active"`
	CreatedAt             time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time        `db:"updated_at" json:"updated_at"`
}

// Subsidiary is a legal entity owned by a startup in some jurisdiction.
type Subsidiary struct {
	ID        uuid.UUID `db:"id" json:"id"`
	StartupID uuid.UUID `db:"startup_id" json:"startup_id"`
	Country   string    `db:"country" json:"country"`
	CACode    string    `db:"ca_code" json:"ca_code"`
	CSCode    string    `db:"cs_code" json:"cs_code"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// InternationalOperation is a foreign operation of a startup that carries its
// own jurisdiction-specific obligations.
type InternationalOperation struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	StartupID uuid.UUID  `db:"startup_id" json:"startup_id"`
	Country   string     `db:"country" json:"country"`
	StartDate *time.Time `db:"start_date" json:"start_date"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// ComplianceRule defines an obligation type for a (country, company type) pair.
// Rules are administered by platform admins and read-only to the engine.
type ComplianceRule struct {
	ID                   int64                `db:"id" json:"id"`
	CountryCode          string               `db:"country_code" json:"country_code"`
	CompanyType          string               `db:"company_type" json:"company_type"`
	Name                 string               `db:"name" json:"name"`
	Description          string               `db:"description" json:"description"`
	Frequency            Frequency            `db:"frequency" json:"frequency"`
	VerificationRequired VerificationRequired `db:"verification_required" json:"verification_required"`
	CAType               string               `db:"ca_type" json:"ca_type"`
	CSType               string               `db:"cs_type" json:"cs_type"`
	IsActive             bool                 `db:"is_active" json:"is_active"`
	CreatedAt            time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time            `db:"updated_at" json:"updated_at"`
}

// CARequired reports whether the rule's tasks need CA verification.
func (r *ComplianceRule) CARequired() bool {
	return r.VerificationRequired == VerificationCA || r.VerificationRequired == VerificationBoth
}

// CSRequired reports whether the rule's tasks need CS verification.
func (r *ComplianceRule) CSRequired() bool {
	return r.VerificationRequired == VerificationCS || r.VerificationRequired == VerificationBoth
}

// ComplianceTaskRecord is the persisted status row for one materialized task.
// (startup_id, task_id) is the upsert key. IsApplicable is nullable in the
// store; absence means applicable.
type ComplianceTaskRecord struct {
	ID                uuid.UUID          `db:"id" json:"id"`
	StartupID         uuid.UUID          `db:"startup_id" json:"startup_id"`
	TaskID            string             `db:"task_id" json:"task_id"`
	EntityIdentifier  string             `db:"entity_identifier" json:"entity_identifier"`
	EntityDisplayName string             `db:"entity_display_name" json:"entity_display_name"`
	Year              int                `db:"year" json:"year"`
	TaskName          string             `db:"task_name" json:"task_name"`
	CARequired        bool               `db:"ca_required" json:"ca_required"`
	CSRequired        bool               `db:"cs_required" json:"cs_required"`
	CAStatus          VerificationStatus `db:"ca_status" json:"ca_status"`
	CSStatus          VerificationStatus `db:"cs_status" json:"cs_status"`
	IsApplicable      *bool              `db:"is_applicable" json:"is_applicable"`
	CreatedAt         time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `db:"updated_at" json:"updated_at"`
}

// GeneratedTask is one raw row returned by the server-side task generation
// function generate_compliance_tasks_for_startup.
type GeneratedTask struct {
	TaskID               string               `db:"task_id" json:"task_id"`
	EntityIdentifier     string               `db:"entity_identifier" json:"entity_identifier"`
	EntityDisplayName    string               `db:"entity_display_name" json:"entity_display_name"`
	Year                 int                  `db:"year" json:"year"`
	TaskName             string               `db:"task_name" json:"task_name"`
	CARequired           bool                 `db:"ca_required" json:"ca_required"`
	CSRequired           bool                 `db:"cs_required" json:"cs_required"`
	TaskType             Frequency            `db:"task_type" json:"task_type"`
	Description          string               `db:"description" json:"description"`
	VerificationRequired VerificationRequired `db:"verification_required" json:"verification_required"`
	CAType               string               `db:"ca_type" json:"ca_type"`
	CSType               string               `db:"cs_type" json:"cs_type"`
}

// ComplianceUpload is an evidence document linked to one task instance.
type ComplianceUpload struct {
	ID         uuid.UUID `db:"id" json:"id"`
	StartupID  uuid.UUID `db:"startup_id" json:"startup_id"`
	TaskID     string    `db:"task_id" json:"task_id"`
	FileName   string    `db:"file_name" json:"file_name"`
	FileURL    string    `db:"file_url" json:"file_url"`
	UploadedBy uuid.UUID `db:"uploaded_by" json:"uploaded_by"`
	FileSize   int64     `db:"file_size" json:"file_size"`
	FileType   string    `db:"file_type" json:"file_type"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// User represents an authenticated platform user. Startup users carry the
// startup they belong to; verifier and admin users do not.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FullName     string     `db:"full_name" json:"full_name"`
	Role         UserRole   `db:"role" json:"role"`
	StartupID    *uuid.UUID `db:"startup_id" json:"startup_id"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
