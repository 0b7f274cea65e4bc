package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brandondykun/onlypaws-api/utils"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func authTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", testSecret)

	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		user := utils.GetUser(c)
		c.JSON(http.StatusOK, gin.H{"user_id": user.UserID, "is_staff": user.IsStaff})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := authTestRouter(t)

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/me", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "not-a-bearer-token")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad signature", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1})
		signed, err := token.SignedString([]byte("wrong-secret"))
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		signed := signToken(t, jwt.MapClaims{
			"user_id": 1,
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		signed := signToken(t, jwt.MapClaims{
			"user_id":  float64(42),
			"email":    "noodle@example.com",
			"is_staff": true,
			"exp":      time.Now().Add(time.Hour).Unix(),
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":42`)
		assert.Contains(t, w.Body.String(), `"is_staff":true`)
	})
}

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

func TestProfileMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", testSecret)

	newRouter := func(db *gorm.DB) *gin.Engine {
		r := gin.New()
		r.GET("/posts", AuthMiddleware(), ProfileMiddleware(db), func(c *gin.Context) {
			profile := utils.GetProfile(c)
			c.JSON(http.StatusOK, gin.H{"profile_id": profile.ID, "username": profile.Username})
		})
		return r
	}

	token := signToken(t, jwt.MapClaims{
		"user_id": float64(7),
		"email":   "noodle@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	t.Run("missing profile header", func(t *testing.T) {
		db, _ := mockDB(t)
		r := newRouter(db)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/posts", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("profile not owned by user", func(t *testing.T) {
		db, mock := mockDB(t)
		r := newRouter(db)

		mock.ExpectQuery(`SELECT \* FROM "profiles"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/posts", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("auth-profile-id", "3")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("profile resolved", func(t *testing.T) {
		db, mock := mockDB(t)
		r := newRouter(db)

		mock.ExpectQuery(`SELECT \* FROM "profiles"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "user_id"}).
				AddRow(3, "noodle_the_cat", 7))

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/posts", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("auth-profile-id", "3")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"profile_id":3`)
		assert.Contains(t, w.Body.String(), `"username":"noodle_the_cat"`)
	})
}
