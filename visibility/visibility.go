// Package visibility holds the rules deciding which posts a profile is
// shown, and the gorm scopes that translate those rules into queries.
//
// Own profile listings are never filtered: an owner always sees their own
// posts. Feed, other profile, and similar listings hide posts with a live
// (non dismissed) inappropriate-content report. Explore is stricter and
// hides posts with a live report of any reason. Single post fetches are
// never filtered server side; the response carries is_hidden and
// is_reported so the client can gate display.
package visibility

import (
	"github.com/brandondykun/onlypaws-api/models"
	"gorm.io/gorm"
)

// View identifies the listing a post is being considered for.
type View int

const (
	OwnProfile View = iota
	OtherProfile
	Feed
	Explore
	Similar
	Single
)

// live reports are ones still in play: everything except DISMISSED.
// A dismissed report stops hiding a post; a later report with a different
// reason starts hiding it again.
func live(r models.PostReport) bool {
	return r.Status != models.ReportStatusDismissed
}

// Hidden reports whether any live report exists on the post.
func Hidden(reports []models.PostReport) bool {
	for _, r := range reports {
		if live(r) {
			return true
		}
	}
	return false
}

// HiddenInappropriate reports whether a live inappropriate-content report
// exists on the post. Reports must be loaded with their Reason.
func HiddenInappropriate(reports []models.PostReport) bool {
	for _, r := range reports {
		if live(r) && r.Reason.Code == models.ReasonInappropriateContent {
			return true
		}
	}
	return false
}

// ReportedBy reports whether profileID has a report (of any status) on
// the post.
func ReportedBy(reports []models.PostReport, profileID uint) bool {
	for _, r := range reports {
		if r.ReporterID != nil && *r.ReporterID == profileID {
			return true
		}
	}
	return false
}

// LiveReports returns the subset of reports still in play, for the
// report previews exposed on single post fetches.
func LiveReports(reports []models.PostReport) []models.PostReport {
	out := []models.PostReport{}
	for _, r := range reports {
		if live(r) {
			out = append(out, r)
		}
	}
	return out
}

// Visible decides whether a post authored by ownerID is shown to viewerID
// in the given view.
func Visible(view View, ownerID, viewerID uint, reports []models.PostReport) bool {
	if view == OwnProfile || ownerID == viewerID {
		return true
	}
	switch view {
	case OtherProfile, Feed, Similar:
		return !HiddenInappropriate(reports)
	case Explore:
		return !Hidden(reports)
	}
	// Single: always returned, gating is left to the client.
	return true
}

// FeedScope filters out posts with a live inappropriate-content report.
// Used for feed, similar, and other-profile listings.
func FeedScope(db *gorm.DB) *gorm.DB {
	return db.Where(`NOT EXISTS (
		SELECT 1 FROM post_reports
		JOIN report_reasons ON report_reasons.id = post_reports.reason_id
		WHERE post_reports.post_id = posts.id
		AND post_reports.status <> ?
		AND report_reasons.code = ?
	)`, models.ReportStatusDismissed, models.ReasonInappropriateContent)
}

// ExploreScope filters out posts with a live report of any reason.
func ExploreScope(db *gorm.DB) *gorm.DB {
	return db.Where(`NOT EXISTS (
		SELECT 1 FROM post_reports
		WHERE post_reports.post_id = posts.id
		AND post_reports.status <> ?
	)`, models.ReportStatusDismissed)
}

// ProfilePostsScope applies the profile-listing rule: the owner sees
// everything, everyone else gets the feed rule.
func ProfilePostsScope(profileID, viewerID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if profileID == viewerID {
			return db
		}
		return FeedScope(db)
	}
}
