package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Content_Service/internal/middleware"
	"Content_Service/internal/pkg"
	"Content_Service/internal/service"
)

type LikeHandler struct {
	svc *service.LikeService
}

type LikePostReq struct {
	UserID string `json:"user_id" binding:"required"`
	PostID string `json:"post_id" binding:"required"`
}

type LikeCommentReq struct {
	UserID    string `json:"user_id" binding:"required,uuid"`
	CommentID string `json:"comment_id" binding:"required,uuid"`
}

func NewLikeHandler(svc *service.LikeService) *LikeHandler {
	return &LikeHandler{svc: svc}
}

// LikePost toggles: 201 when the like was created, 200 when it was removed.
func (h *LikeHandler) LikePost(c *gin.Context) {
	var req LikePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.FailBind(c, err)
		return
	}
	if !middleware.MatchUser(c, req.UserID) {
		return
	}
	res, err := h.svc.LikePost(c.Request.Context(), req.UserID, req.PostID)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	if res.Liked {
		pkg.OKMsg(c, http.StatusCreated, "Liked the post", res)
		return
	}
	pkg.OKMsg(c, http.StatusOK, "Unlike the post", res)
}

func (h *LikeHandler) LikeComment(c *gin.Context) {
	var req LikeCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.FailBind(c, err)
		return
	}
	if !middleware.MatchUser(c, req.UserID) {
		return
	}
	res, err := h.svc.LikeComment(c.Request.Context(), req.UserID, req.CommentID)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	if res.Liked {
		pkg.OKMsg(c, http.StatusCreated, "Liked the comment", res)
		return
	}
	pkg.OKMsg(c, http.StatusOK, "Unlike the comment", res)
}

func (h *LikeHandler) PostCount(c *gin.Context) {
	cnt, err := h.svc.PostLikeCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, cnt)
}

func (h *LikeHandler) CommentCount(c *gin.Context) {
	cnt, err := h.svc.CommentLikeCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, cnt)
}
