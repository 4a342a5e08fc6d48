package domain

import (
	"time"

	"github.com/google/uuid"
)

// Report is an operational report entry shown in the admin console
type Report struct {
	ID        uuid.UUID  `json:"id"`
	Type      ReportType `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	CreatedBy string     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
}

// ReportType is the category of a report
type ReportType string

// ReportType constants
const (
	ReportDaily    ReportType = "daily"
	ReportWeekly   ReportType = "weekly"
	ReportIncident ReportType = "incident"
)

// ValidReportType reports whether t is a known report type
func ValidReportType(t ReportType) bool {
	switch t {
	case ReportDaily, ReportWeekly, ReportIncident:
		return true
	}
	return false
}

// AuditLog records an admin action against a user account. Every status
// transition and bulk run writes one entry per affected user.
type AuditLog struct {
	ID        uuid.UUID  `json:"id"`
	ActorID   uuid.UUID  `json:"actor_id"`
	Action    Action     `json:"action"`
	TargetID  *uuid.UUID `json:"target_id,omitempty"`
	Detail    string     `json:"detail,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
