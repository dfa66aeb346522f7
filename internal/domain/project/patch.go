package project

// Patch describes a partial update to a Project. Nil fields are left
// untouched; set fields win.
type Patch struct {
	Name   *string        `json:"name,omitempty"`
	Status *ProjectStatus `json:"status,omitempty"`
	Notes  *string        `json:"notes,omitempty"`
}

// Apply merges the patch onto p.
func (patch Patch) Apply(p *Project) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}
}
