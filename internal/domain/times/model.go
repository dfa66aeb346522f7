package times

import "time"

// TimeType distinguishes tracked work from inferred idle gaps
type TimeType string

const (
	TypeManual TimeType = "manual"
	TypeBreak  TimeType = "break"
)

// Time represents a single tracked interval. Duration is in
// milliseconds; End is derived as Start + Duration.
type Time struct {
	ID   string   `json:"id"`
	Type TimeType `json:"type"`

	Start    time.Time `json:"start"`
	Duration int64     `json:"duration"`

	Notes string `json:"notes"`

	ProjectID string `json:"projectId,omitempty"`

	OrganisationID       string `json:"organisationId,omitempty"`
	OrganisationMemberID string `json:"organisationMemberId,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// EntityID implements store.Entity.
func (t Time) EntityID() string { return t.ID }

// IsOnline reports whether the entry is owned by the server of
// record. This is a pure predicate of the record itself, never of the
// current session state.
func (t Time) IsOnline() bool { return t.OrganisationMemberID != "" }

// End returns the instant the entry finished.
func (t Time) End() time.Time {
	return t.Start.Add(time.Duration(t.Duration) * time.Millisecond)
}

// Draft is an in-flight entry: a Time without an id or duration.
// At most one Draft exists per device at any moment.
type Draft struct {
	Type TimeType `json:"type"`

	Start time.Time `json:"start"`

	Notes string `json:"notes"`

	ProjectID string `json:"projectId,omitempty"`

	OrganisationID       string `json:"organisationId,omitempty"`
	OrganisationMemberID string `json:"organisationMemberId,omitempty"`
}
