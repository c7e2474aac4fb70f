package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"Content_Service/internal/middleware"
	"Content_Service/internal/pkg"
	"Content_Service/internal/service"
)

type PostHandler struct {
	svc      *service.PostService
	maxBytes int64
}

// CreatePostReq binds from JSON or, when a file rides along, multipart form fields.
type CreatePostReq struct {
	CommunityID string  `json:"community_id" form:"community_id" binding:"required"`
	UserID      string  `json:"user_id" form:"user_id" binding:"required"`
	Title       string  `json:"title" form:"title" binding:"required,max=200"`
	Category    string  `json:"category" form:"category" binding:"required,max=50"`
	Description string  `json:"description" form:"description" binding:"required"`
	MediaURL    *string `json:"media_url" form:"media_url"`
}

type UpdatePostReq struct {
	Title       string  `json:"title" binding:"required,min=3,max=100"`
	Category    string  `json:"category" binding:"required,min=3,max=50"`
	Description string  `json:"description" binding:"required,min=10"`
	MediaURL    *string `json:"media_url" binding:"omitempty,url"`
}

type searchQuery struct {
	pageQuery
	Query string `form:"query" binding:"required,min=1"`
}

type titleQuery struct {
	Title string `form:"title" binding:"required"`
}

func NewPostHandler(svc *service.PostService, maxUploadBytes int64) *PostHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = service.DefaultMaxUploadBytes
	}
	return &PostHandler{svc: svc, maxBytes: maxUploadBytes}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var (
		req   CreatePostReq
		media io.Reader
	)
	if isMultipart(c) {
		limitBody(c, h.maxBytes)
		if err := c.ShouldBind(&req); err != nil {
			failBind(c, err)
			return
		}
		file, err := formFile(c, "media")
		if err != nil {
			failBind(c, err)
			return
		}
		if file != nil {
			defer file.Close()
			media = file
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		pkg.FailBind(c, err)
		return
	}
	if !middleware.MatchUser(c, req.UserID) {
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), service.CreatePostInput{
		CommunityID: req.CommunityID,
		UserID:      req.UserID,
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		MediaURL:    req.MediaURL,
		Media:       media,
	})
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OKMsg(c, http.StatusCreated, "post created", post)
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		pkg.FailBind(c, err)
		return
	}
	posts, err := h.svc.ListPosts(c.Request.Context(), q.Page, q.Size)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, posts)
}

// SearchPosts matches the query against title or description, ignoring case.
func (h *PostHandler) SearchPosts(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		pkg.FailBind(c, err)
		return
	}
	posts, err := h.svc.SearchPosts(c.Request.Context(), q.Query, q.Page, q.Size)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, posts)
}

func (h *PostHandler) GetPostByTitle(c *gin.Context) {
	var q titleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		pkg.FailBind(c, err)
		return
	}
	post, err := h.svc.GetPostByTitle(c.Request.Context(), q.Title)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, post)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.svc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, post)
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req UpdatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.FailBind(c, err)
		return
	}
	post, err := h.svc.UpdatePost(c.Request.Context(), middleware.UserID(c), c.Param("id"), service.UpdatePostInput{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		MediaURL:    req.MediaURL,
	})
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OKMsg(c, http.StatusOK, "post updated", post)
}

// DeletePost removes the post together with its comments and likes.
func (h *PostHandler) DeletePost(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeletePost(c.Request.Context(), middleware.UserID(c), id); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OKMsg(c, http.StatusOK, "post deleted", gin.H{"id": id})
}
