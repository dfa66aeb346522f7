package project

import "time"

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	StatusActive ProjectStatus = "active"
	StatusClosed ProjectStatus = "closed"
)

// Project groups time entries under a named piece of work.
type Project struct {
	ID string `json:"id"`

	Name   string        `json:"name"`
	Status ProjectStatus `json:"status"`
	Notes  string        `json:"notes"`

	UserID         string `json:"userId,omitempty"`
	OrganisationID string `json:"organisationId,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// EntityID implements store.Entity.
func (p Project) EntityID() string { return p.ID }

// IsOnline reports whether the project is owned by the server of
// record, determined solely by the organisation linkage on the record.
func (p Project) IsOnline() bool { return p.OrganisationID != "" }
