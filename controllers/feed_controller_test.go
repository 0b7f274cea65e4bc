package controllers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandondykun/onlypaws-api/models"
)

// Explore must exclude posts from every profile owned by the viewer's
// user, not just the acting profile. A user browsing as one pet must
// not be shown their other pets' posts.
func TestGetExploreExcludesOwnUsersProfiles(t *testing.T) {
	db, mock := mockDB(t)
	fc := NewFeedController(db)

	profile := &models.Profile{ID: 5, UserID: 1}

	userExclusion := `SELECT id FROM profiles WHERE user_id`
	mock.ExpectQuery(`(?s)SELECT count\(\*\) FROM "posts".*` + userExclusion).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`(?s)SELECT.*FROM "posts".*` + userExclusion).
		WillReturnRows(sqlmock.NewRows([]string{"id", "profile_id", "caption"}))

	c, w := actingContext(t, "GET", "/explore", profile, nil)

	fc.GetExplore(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
