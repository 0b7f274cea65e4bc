package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Page sizes per view. Each listing has its own fixed size.
const (
	PageSizeProfileSearch  = 13
	PageSizeProfilePosts   = 24
	PageSizeExplore        = 24
	PageSizeFeed           = 24
	PageSizeSimilar        = 5
	PageSizeFollowList     = 15
	PageSizePostComments   = 10
	PageSizeCommentReplies = 8
)

// Page is a parsed page-number pagination request.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func (p Page) TotalPages(total int64) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(p.Size) - 1) / int64(p.Size))
}

// ParsePage reads the page query param, defaulting to the first page.
// The page size is fixed per view and never client controlled.
func ParsePage(c *gin.Context, size int) Page {
	number, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || number < 1 {
		number = 1
	}
	return Page{Number: number, Size: size}
}
