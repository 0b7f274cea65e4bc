package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandondykun/onlypaws-api/models"
	"github.com/brandondykun/onlypaws-api/utils"
)

func resolveContext(t *testing.T, body string, user *utils.UserClaims) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("PUT", "/reports/1/resolve", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	if user != nil {
		c.Set(string(utils.UserContextKey), user)
	}
	return c, w
}

func TestResolveReportValidation(t *testing.T) {
	rc := NewReportController(nil)

	staff := &utils.UserClaims{UserID: 1, Email: "mod@example.com", IsStaff: true}
	member := &utils.UserClaims{UserID: 2, Email: "user@example.com", IsStaff: false}

	t.Run("unknown status rejected before anything else", func(t *testing.T) {
		c, w := resolveContext(t, `{"status":"DELETED"}`, staff)
		rc.ResolveReport(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid status")
	})

	t.Run("unknown status rejected even for non staff", func(t *testing.T) {
		c, w := resolveContext(t, `{"status":"nonsense"}`, member)
		rc.ResolveReport(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing status rejected", func(t *testing.T) {
		c, w := resolveContext(t, `{}`, staff)
		rc.ResolveReport(c)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non staff forbidden", func(t *testing.T) {
		c, w := resolveContext(t, `{"status":"RESOLVED"}`, member)
		rc.ResolveReport(c)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no user forbidden", func(t *testing.T) {
		c, w := resolveContext(t, `{"status":"DISMISSED"}`, nil)
		rc.ResolveReport(c)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCreateReportDuplicate(t *testing.T) {
	db, mock := mockDB(t)
	rc := NewReportController(db)
	profile := &models.Profile{ID: 5, UserID: 1}

	mock.ExpectQuery(`SELECT \* FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "profile_id"}).AddRow(10, 6))
	mock.ExpectQuery(`SELECT \* FROM "report_reasons"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "is_active"}).
			AddRow(1, models.ReasonInappropriateContent, "Inappropriate Content", true))
	mock.ExpectQuery(`SELECT \* FROM "post_reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "reporter_id"}).AddRow(3, 10, 5))

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/posts/10/reports", bytes.NewBufferString(`{"reason_id":1}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "10"}}
	c.Set(string(utils.ProfileContextKey), profile)

	rc.CreateReport(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already reported")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveReportSuccess(t *testing.T) {
	db, mock := mockDB(t)
	rc := NewReportController(db)

	staff := &utils.UserClaims{UserID: 1, Email: "mod@example.com", IsStaff: true}
	staffProfile := &models.Profile{ID: 5, UserID: 1}
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "post_reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "reporter_id", "reason_id", "status"}).
			AddRow(1, 10, 7, 1, models.ReportStatusPending))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "post_reports"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT \* FROM "post_reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "reporter_id", "reason_id", "status", "resolved_by_id", "resolution_note", "created_at"}).
			AddRow(1, 10, 7, 1, models.ReportStatusResolved, 5, "removed after review", now))
	mock.ExpectQuery(`SELECT \* FROM "report_reasons"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name"}).
			AddRow(1, models.ReasonInappropriateContent, "Inappropriate Content"))
	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(7, "reporter_cat"))
	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(5, "staff_dog"))

	c, w := resolveContext(t, `{"status":"RESOLVED","resolution_note":"removed after review"}`, staff)
	c.Set(string(utils.ProfileContextKey), staffProfile)

	rc.ResolveReport(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"RESOLVED"`)
	assert.Contains(t, w.Body.String(), "removed after review")
	assert.Contains(t, w.Body.String(), `"resolved_by_id":5`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllReportsStatusFilter(t *testing.T) {
	rc := NewReportController(nil)
	staff := &utils.UserClaims{UserID: 1, IsStaff: true}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/reports/all?status=bogus", nil)
	c.Set(string(utils.UserContextKey), staff)

	rc.ListAllReports(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAllReportsStaffOnly(t *testing.T) {
	rc := NewReportController(nil)
	member := &utils.UserClaims{UserID: 2, IsStaff: false}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/reports/all", nil)
	c.Set(string(utils.UserContextKey), member)

	rc.ListAllReports(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListReportedPostsStaffOnly(t *testing.T) {
	rc := NewReportController(nil)
	member := &utils.UserClaims{UserID: 2, IsStaff: false}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/reports/posts", nil)
	c.Set(string(utils.UserContextKey), member)
	c.Set(string(utils.ProfileContextKey), &models.Profile{ID: 5})

	rc.ListReportedPosts(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
