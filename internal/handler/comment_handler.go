package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Content_Service/internal/middleware"
	"Content_Service/internal/pkg"
	"Content_Service/internal/service"
)

type CommentHandler struct {
	svc *service.CommentService
}

type AddCommentReq struct {
	PostID   string  `json:"post_id" binding:"required"`
	UserID   string  `json:"user_id" binding:"required"`
	ParentID *string `json:"parent_id"`
	Content  string  `json:"content" binding:"required"`
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

func (h *CommentHandler) Add(c *gin.Context) {
	var req AddCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.FailBind(c, err)
		return
	}
	if !middleware.MatchUser(c, req.UserID) {
		return
	}

	comment, err := h.svc.AddComment(c.Request.Context(), service.AddCommentInput{
		PostID:   req.PostID,
		UserID:   req.UserID,
		ParentID: req.ParentID,
		Content:  req.Content,
	})
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OKMsg(c, http.StatusCreated, "comment added", comment)
}

// ListByPost returns the post's comments oldest first.
func (h *CommentHandler) ListByPost(c *gin.Context) {
	comments, err := h.svc.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, comments)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	n, err := h.svc.DeleteComment(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OKMsg(c, http.StatusOK, "comment deleted", gin.H{"id": id, "removed": n})
}
