package domain

// TaskInstance is a fully reconciled, presentation-ready compliance task.
// Instances are only built through NewTaskInstance so that applicability is
// always a resolved boolean, never the store's tri-state value.
type TaskInstance struct {
	TaskID            string             `json:"task_id"`
	EntityIdentifier  string             `json:"entity_identifier"`
	EntityDisplayName string             `json:"entity_display_name"`
	Year              int                `json:"year"`
	TaskName          string             `json:"task_name"`
	Description       string             `json:"description"`
	TaskType          Frequency          `json:"task_type"`
	CARequired        bool               `json:"ca_required"`
	CSRequired        bool               `json:"cs_required"`
	CAStatus          VerificationStatus `json:"ca_status"`
	CSStatus          VerificationStatus `json:"cs_status"`
	CAType            string             `json:"ca_type"`
	CSType            string             `json:"cs_type"`
	IsApplicable      bool               `json:"is_applicable"`
	Uploads           []ComplianceUpload `json:"uploads"`
}

// ResolveApplicable collapses the store's tri-state applicability to a
// boolean: only an explicit false means not applicable.
func ResolveApplicable(v *bool) bool {
	return v == nil || *v
}

// NewTaskInstance builds a TaskInstance, normalizing applicability and
// defaulting missing statuses to pending.
func NewTaskInstance(t TaskInstance, isApplicable *bool) TaskInstance {
	t.IsApplicable = ResolveApplicable(isApplicable)
	if t.CAStatus == "" {
		t.CAStatus = StatusPending
	}
	if t.CSStatus == "" {
		t.CSStatus = StatusPending
	}
	return t
}

// RequiredFor reports whether the given party must verify this task.
func (t *TaskInstance) RequiredFor(p VerificationParty) bool {
	if p == PartyCA {
		return t.CARequired
	}
	return t.CSRequired
}

// StatusFor returns the given party's verification status.
func (t *TaskInstance) StatusFor(p VerificationParty) VerificationStatus {
	if p == PartyCA {
		return t.CAStatus
	}
	return t.CSStatus
}

// SetStatus sets the given party's verification status.
func (t *TaskInstance) SetStatus(p VerificationParty, s VerificationStatus) {
	if p == PartyCA {
		t.CAStatus = s
	} else {
		t.CSStatus = s
	}
}

// statusLabels maps statuses to their display form.
var statusLabels = map[VerificationStatus]string{
	StatusPending:   "Pending",
	StatusSubmitted: "Submitted",
	StatusVerified:  "Verified",
	StatusRejected:  "Rejected",
}

// StatusLabel returns the display label for a party's column. A column whose
// party is not required always renders as "Not Required".
func (t *TaskInstance) StatusLabel(p VerificationParty) string {
	if !t.RequiredFor(p) {
		return "Not Required"
	}
	if label, ok := statusLabels[t.StatusFor(p)]; ok {
		return label
	}
	return "Pending"
}
