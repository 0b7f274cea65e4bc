package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brandondykun/onlypaws-api/models"
)

func report(status, reasonCode string, reporterID uint) models.PostReport {
	id := reporterID
	return models.PostReport{
		Status:     status,
		ReporterID: &id,
		Reason:     models.ReportReason{Code: reasonCode},
	}
}

func TestHidden(t *testing.T) {
	t.Run("no reports", func(t *testing.T) {
		assert.False(t, Hidden(nil))
	})

	t.Run("pending report hides", func(t *testing.T) {
		reports := []models.PostReport{report(models.ReportStatusPending, models.ReasonOther, 2)}
		assert.True(t, Hidden(reports))
	})

	t.Run("under review report hides", func(t *testing.T) {
		reports := []models.PostReport{report(models.ReportStatusUnderReview, models.ReasonOther, 2)}
		assert.True(t, Hidden(reports))
	})

	t.Run("resolved report still hides", func(t *testing.T) {
		reports := []models.PostReport{report(models.ReportStatusResolved, models.ReasonOther, 2)}
		assert.True(t, Hidden(reports))
	})

	t.Run("dismissed report does not hide", func(t *testing.T) {
		reports := []models.PostReport{report(models.ReportStatusDismissed, models.ReasonOther, 2)}
		assert.False(t, Hidden(reports))
	})

	t.Run("new report after dismissal hides again", func(t *testing.T) {
		reports := []models.PostReport{
			report(models.ReportStatusDismissed, models.ReasonInappropriateContent, 2),
			report(models.ReportStatusPending, models.ReasonOther, 3),
		}
		assert.True(t, Hidden(reports))
	})
}

func TestHiddenInappropriate(t *testing.T) {
	t.Run("live inappropriate report hides", func(t *testing.T) {
		reports := []models.PostReport{report(models.ReportStatusPending, models.ReasonInappropriateContent, 2)}
		assert.True(t, HiddenInappropriate(reports))
	})

	t.Run("live report with other reason does not hide", func(t *testing.T) {
		reports := []models.PostReport{
			report(models.ReportStatusPending, models.ReasonNotPetRelated, 2),
			report(models.ReportStatusUnderReview, models.ReasonTooMuchHuman, 3),
		}
		assert.False(t, HiddenInappropriate(reports))
	})

	t.Run("dismissed inappropriate report does not hide", func(t *testing.T) {
		reports := []models.PostReport{report(models.ReportStatusDismissed, models.ReasonInappropriateContent, 2)}
		assert.False(t, HiddenInappropriate(reports))
	})

	t.Run("one dismissed one live", func(t *testing.T) {
		reports := []models.PostReport{
			report(models.ReportStatusDismissed, models.ReasonInappropriateContent, 2),
			report(models.ReportStatusUnderReview, models.ReasonInappropriateContent, 3),
		}
		assert.True(t, HiddenInappropriate(reports))
	})
}

func TestReportedBy(t *testing.T) {
	reports := []models.PostReport{
		report(models.ReportStatusDismissed, models.ReasonOther, 7),
	}

	assert.True(t, ReportedBy(reports, 7), "a dismissed report still counts as reported by the reporter")
	assert.False(t, ReportedBy(reports, 8))

	t.Run("nil reporter after profile deletion", func(t *testing.T) {
		orphaned := []models.PostReport{{Status: models.ReportStatusPending, ReporterID: nil}}
		assert.False(t, ReportedBy(orphaned, 7))
	})
}

func TestLiveReports(t *testing.T) {
	reports := []models.PostReport{
		report(models.ReportStatusPending, models.ReasonOther, 2),
		report(models.ReportStatusDismissed, models.ReasonOther, 3),
		report(models.ReportStatusResolved, models.ReasonInappropriateContent, 4),
	}

	live := LiveReports(reports)
	assert.Len(t, live, 2)
	for _, r := range live {
		assert.NotEqual(t, models.ReportStatusDismissed, r.Status)
	}

	t.Run("empty slice not nil", func(t *testing.T) {
		assert.NotNil(t, LiveReports(nil))
		assert.Empty(t, LiveReports(nil))
	})
}

func TestFeedScenario(t *testing.T) {
	// Four posts by followed authors, one carrying a live
	// inappropriate-content report. The feed shows the other three;
	// explore would drop a post for any live reason.
	type post struct {
		owner   uint
		reports []models.PostReport
	}
	posts := []post{
		{owner: 2},
		{owner: 3, reports: []models.PostReport{report(models.ReportStatusPending, models.ReasonInappropriateContent, 9)}},
		{owner: 4, reports: []models.PostReport{report(models.ReportStatusDismissed, models.ReasonInappropriateContent, 9)}},
		{owner: 5, reports: []models.PostReport{report(models.ReportStatusUnderReview, models.ReasonTooMuchHuman, 9)}},
	}

	const viewer = uint(1)

	feedCount := 0
	exploreCount := 0
	for _, p := range posts {
		if Visible(Feed, p.owner, viewer, p.reports) {
			feedCount++
		}
		if Visible(Explore, p.owner, viewer, p.reports) {
			exploreCount++
		}
	}

	assert.Equal(t, 3, feedCount)
	assert.Equal(t, 2, exploreCount)
}

func TestVisible(t *testing.T) {
	const owner, viewer = uint(1), uint(2)

	inappropriate := []models.PostReport{report(models.ReportStatusPending, models.ReasonInappropriateContent, 3)}
	offTopic := []models.PostReport{report(models.ReportStatusPending, models.ReasonNotPetRelated, 3)}

	tests := []struct {
		name     string
		view     View
		ownerID  uint
		viewerID uint
		reports  []models.PostReport
		want     bool
	}{
		{"own profile always visible", OwnProfile, owner, owner, inappropriate, true},
		{"owner viewing any listing", Feed, owner, owner, inappropriate, true},
		{"feed hides inappropriate", Feed, owner, viewer, inappropriate, false},
		{"feed keeps other reasons", Feed, owner, viewer, offTopic, true},
		{"other profile hides inappropriate", OtherProfile, owner, viewer, inappropriate, false},
		{"other profile keeps other reasons", OtherProfile, owner, viewer, offTopic, true},
		{"similar hides inappropriate", Similar, owner, viewer, inappropriate, false},
		{"explore hides any live report", Explore, owner, viewer, offTopic, false},
		{"explore with no reports", Explore, owner, viewer, nil, true},
		{"single always returned", Single, owner, viewer, inappropriate, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Visible(tt.view, tt.ownerID, tt.viewerID, tt.reports))
		})
	}
}
