package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidReportStatus(t *testing.T) {
	valid := []string{
		ReportStatusPending,
		ReportStatusUnderReview,
		ReportStatusResolved,
		ReportStatusDismissed,
	}
	for _, status := range valid {
		assert.True(t, ValidReportStatus(status), status)
	}

	invalid := []string{"", "pending", "DELETED", "Pending", "UNDER REVIEW"}
	for _, status := range invalid {
		assert.False(t, ValidReportStatus(status), status)
	}
}

func TestSeedReportReasons(t *testing.T) {
	codes := make(map[string]bool, len(SeedReportReasons))
	for _, reason := range SeedReportReasons {
		assert.NotEmpty(t, reason.Code)
		assert.NotEmpty(t, reason.Name)
		assert.False(t, codes[reason.Code], "duplicate seed code %s", reason.Code)
		codes[reason.Code] = true
	}
	assert.True(t, codes[ReasonInappropriateContent])
	assert.True(t, codes[ReasonOther])
}
