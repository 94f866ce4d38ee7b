package entities

import (
	"strings"
	"time"
)

// Role is the privilege level of the acting user.
type Role string

const (
	RoleOperator    Role = "operator"
	RoleServiceHead Role = "service_head"
	RoleAdmin       Role = "admin"
)

// Actor is the user performing an operation. It is always passed explicitly.
type Actor struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

// ParseRole normalizes a role string; unknown values fall back to operator.
func ParseRole(v string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(v))) {
	case RoleServiceHead:
		return RoleServiceHead
	case RoleAdmin:
		return RoleAdmin
	}
	return RoleOperator
}

// CanEditDraftOf reports whether the actor may mutate or delete a draft created by createdBy.
func (a Actor) CanEditDraftOf(createdBy string) bool {
	if a.Role == RoleAdmin || a.Role == RoleServiceHead {
		return true
	}
	return a.ID != "" && a.ID == createdBy
}

// CanVoid reports whether the actor may void a sent document.
func (a Actor) CanVoid() bool {
	return a.Role == RoleAdmin
}

// ClientSnapshot holds client contact details copied at document creation.
// Later changes to the client record never flow back into a document.
type ClientSnapshot struct {
	Name    string `json:"client_name,omitempty"`
	Email   string `json:"client_email,omitempty"`
	Phone   string `json:"client_phone,omitempty"`
	Address string `json:"client_address,omitempty"`
}

// FillBlanks returns s with empty fields taken from fallback.
func (s ClientSnapshot) FillBlanks(fallback ClientSnapshot) ClientSnapshot {
	if strings.TrimSpace(s.Name) == "" {
		s.Name = fallback.Name
	}
	if strings.TrimSpace(s.Email) == "" {
		s.Email = fallback.Email
	}
	if strings.TrimSpace(s.Phone) == "" {
		s.Phone = fallback.Phone
	}
	if strings.TrimSpace(s.Address) == "" {
		s.Address = fallback.Address
	}
	return s
}

// VoidInfo records an elevated void of a sent document.
type VoidInfo struct {
	VoidedAt   *time.Time `json:"voided_at,omitempty"`
	VoidedBy   string     `json:"voided_by,omitempty"`
	VoidReason string     `json:"void_reason,omitempty"`
}

// IsVoided reports whether the document was voided.
func (v VoidInfo) IsVoided() bool {
	return v.VoidedAt != nil
}
