package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brandondykun/onlypaws-api/models"
	"github.com/brandondykun/onlypaws-api/utils"
)

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func actingContext(t *testing.T, method, path string, profile *models.Profile, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, nil)
	c.Params = params
	c.Set(string(utils.ProfileContextKey), profile)
	return c, w
}

func TestFollowProfileSelfFollow(t *testing.T) {
	ic := NewInteractionController(nil)
	profile := &models.Profile{ID: 5, Username: "noodle_the_cat", UserID: 1}

	c, w := actingContext(t, "POST", "/profiles/5/follow", profile,
		gin.Params{{Key: "id", Value: "5"}})

	ic.FollowProfile(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "follow yourself")
}

func TestFollowProfileBadID(t *testing.T) {
	ic := NewInteractionController(nil)
	profile := &models.Profile{ID: 5, UserID: 1}

	c, w := actingContext(t, "POST", "/profiles/abc/follow", profile,
		gin.Params{{Key: "id", Value: "abc"}})

	ic.FollowProfile(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFollowProfileTargetMissing(t *testing.T) {
	db, mock := mockDB(t)
	ic := NewInteractionController(db)
	profile := &models.Profile{ID: 5, UserID: 1}

	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	c, w := actingContext(t, "POST", "/profiles/9/follow", profile,
		gin.Params{{Key: "id", Value: "9"}})

	ic.FollowProfile(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollowProfileDuplicate(t *testing.T) {
	db, mock := mockDB(t)
	ic := NewInteractionController(db)
	profile := &models.Profile{ID: 5, UserID: 1}

	mock.ExpectQuery(`SELECT \* FROM "profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(9, 2))
	mock.ExpectQuery(`SELECT \* FROM "follows"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "followed_id", "followed_by_id"}).AddRow(1, 9, 5))

	c, w := actingContext(t, "POST", "/profiles/9/follow", profile,
		gin.Params{{Key: "id", Value: "9"}})

	ic.FollowProfile(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already following")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLikePostOwnPost(t *testing.T) {
	db, mock := mockDB(t)
	ic := NewInteractionController(db)
	profile := &models.Profile{ID: 5, UserID: 1}

	mock.ExpectQuery(`SELECT \* FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "profile_id"}).AddRow(10, 5))

	c, w := actingContext(t, "POST", "/posts/10/likes", profile,
		gin.Params{{Key: "id", Value: "10"}})

	ic.LikePost(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "your own post")
}

func TestLikePostDuplicate(t *testing.T) {
	db, mock := mockDB(t)
	ic := NewInteractionController(db)
	profile := &models.Profile{ID: 5, UserID: 1}

	mock.ExpectQuery(`SELECT \* FROM "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "profile_id"}).AddRow(10, 6))
	mock.ExpectQuery(`SELECT \* FROM "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "profile_id", "post_id"}).AddRow(1, 5, 10))

	c, w := actingContext(t, "POST", "/posts/10/likes", profile,
		gin.Params{{Key: "id", Value: "10"}})

	ic.LikePost(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already liked")
}

func TestUnlikePostNotLiked(t *testing.T) {
	db, mock := mockDB(t)
	ic := NewInteractionController(db)
	profile := &models.Profile{ID: 5, UserID: 1}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "likes"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	c, w := actingContext(t, "DELETE", "/posts/10/likes", profile,
		gin.Params{{Key: "id", Value: "10"}})

	ic.UnlikePost(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
