package models

import (
	"time"
)

// Report statuses. PENDING is the initial status. RESOLVED and DISMISSED
// are terminal. Transitions are staff initiated only; there is no enforced
// ordering, a report may go straight from PENDING to a terminal status.
const (
	ReportStatusPending     = "PENDING"
	ReportStatusUnderReview = "UNDER_REVIEW"
	ReportStatusResolved    = "RESOLVED"
	ReportStatusDismissed   = "DISMISSED"
)

// Reason codes for the seeded report reasons. Visibility rules match on
// the code rather than on row ids, so reordering the seed data is safe.
const (
	ReasonInappropriateContent = "inappropriate_content"
	ReasonNotPetRelated        = "not_pet_related"
	ReasonTooMuchHuman         = "too_much_human"
	ReasonOther                = "other"
)

// ValidReportStatus reports whether s is one of the defined report statuses.
func ValidReportStatus(s string) bool {
	switch s {
	case ReportStatusPending, ReportStatusUnderReview, ReportStatusResolved, ReportStatusDismissed:
		return true
	}
	return false
}

// ReportReason is admin managed reference data explaining why a post was
// reported.
type ReportReason struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string `gorm:"unique;not null;type:varchar(64)" json:"code"`
	Name        string `gorm:"unique;not null;type:varchar(64)" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

// PostReport is a flag raised by a profile against a post. A profile may
// report a given post only once. Reports are never hard deleted by the
// normal flow; their lifecycle is the status column.
type PostReport struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	PostID         uint      `gorm:"not null;uniqueIndex:idx_report_post_reporter" json:"post_id"`
	ReporterID     *uint     `gorm:"uniqueIndex:idx_report_post_reporter" json:"reporter_id"`
	ReasonID       uint      `gorm:"not null" json:"reason_id"`
	Details        string    `gorm:"type:varchar(1000)" json:"details"`
	Status         string    `gorm:"not null;default:'PENDING';type:varchar(16)" json:"status"`
	ResolvedByID   *uint     `json:"resolved_by_id"`
	ResolutionNote string    `gorm:"type:varchar(1000)" json:"resolution_note"`

	Post       Post         `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Reporter   *Profile     `json:"reporter" gorm:"foreignKey:ReporterID;constraint:OnDelete:SET NULL"`
	Reason     ReportReason `json:"reason" gorm:"foreignKey:ReasonID"`
	ResolvedBy *Profile     `json:"resolved_by" gorm:"foreignKey:ResolvedByID;constraint:OnDelete:SET NULL"`
}

// SeedReportReasons inserts the preset report reasons if they are missing.
var SeedReportReasons = []ReportReason{
	{Code: ReasonInappropriateContent, Name: "Inappropriate Content", Description: "Content contains inappropriate, offensive, or explicit material"},
	{Code: ReasonNotPetRelated, Name: "Not Pet Related", Description: "Content is not pet related"},
	{Code: ReasonTooMuchHuman, Name: "Too Much Human", Description: "Content contains too much human presence and I'm not here for that"},
	{Code: ReasonOther, Name: "Other", Description: "A reason other than the ones listed"},
}
