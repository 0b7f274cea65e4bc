package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func pageContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"default", "", 1},
		{"explicit", "page=3", 3},
		{"not a number", "page=abc", 1},
		{"zero", "page=0", 1},
		{"negative", "page=-2", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := ParsePage(pageContext(t, tt.query), PageSizeFeed)
			assert.Equal(t, tt.want, page.Number)
			assert.Equal(t, PageSizeFeed, page.Size)
		})
	}
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Number: 1, Size: 24}.Offset())
	assert.Equal(t, 24, Page{Number: 2, Size: 24}.Offset())
	assert.Equal(t, 26, Page{Number: 3, Size: 13}.Offset())
}

func TestPageTotalPages(t *testing.T) {
	page := Page{Number: 1, Size: 10}
	assert.Equal(t, 0, page.TotalPages(0))
	assert.Equal(t, 1, page.TotalPages(1))
	assert.Equal(t, 1, page.TotalPages(10))
	assert.Equal(t, 2, page.TotalPages(11))
	assert.Equal(t, 5, page.TotalPages(50))
}
