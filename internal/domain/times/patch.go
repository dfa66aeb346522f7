package times

import "time"

// Patch describes a partial update to a Time entry. Nil fields are
// left untouched; set fields win.
type Patch struct {
	Type      *TimeType  `json:"type,omitempty"`
	Start     *time.Time `json:"start,omitempty"`
	Duration  *int64     `json:"duration,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	ProjectID *string    `json:"projectId,omitempty"`
}

// Apply merges the patch onto t.
func (p Patch) Apply(t *Time) {
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Start != nil {
		t.Start = *p.Start
	}
	if p.Duration != nil {
		t.Duration = *p.Duration
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
}

// Complete reports whether the patch carries both edges of the
// interval, which is what the rounding policy needs to operate on.
func (p Patch) Complete() bool {
	return p.Start != nil && p.Duration != nil
}

// DraftPatch describes a partial update to the running Draft.
type DraftPatch struct {
	Type      *TimeType  `json:"type,omitempty"`
	Start     *time.Time `json:"start,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	ProjectID *string    `json:"projectId,omitempty"`
}

// Apply merges the patch onto d.
func (p DraftPatch) Apply(d *Draft) {
	if p.Type != nil {
		d.Type = *p.Type
	}
	if p.Start != nil {
		d.Start = *p.Start
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	if p.ProjectID != nil {
		d.ProjectID = *p.ProjectID
	}
}
