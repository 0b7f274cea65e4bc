package controllers

import (
	"github.com/brandondykun/onlypaws-api/models"
)

type PaginationMeta struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
}

// PostDetail is a Post with the read-time derived fields every listing
// exposes. The booleans and counts are computed fresh per request from
// the current relationship rows; nothing here is cached.
type PostDetail struct {
	models.Post
	LikesCount    int64 `json:"likes_count"`
	CommentsCount int64 `json:"comments_count"`
	Liked         bool  `json:"liked"`
	IsSaved       bool  `json:"is_saved"`
	IsHidden      bool  `json:"is_hidden"`
	IsReported    bool  `json:"is_reported"`
}

// ReportPreview is the trimmed report shape attached to single post
// fetches so the client can gate display of flagged posts.
type ReportPreview struct {
	ID     uint                `json:"id"`
	Reason models.ReportReason `json:"reason"`
	Status string              `json:"status"`
}
