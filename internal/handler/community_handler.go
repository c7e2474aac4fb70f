package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Content_Service/internal/middleware"
	"Content_Service/internal/pkg"
	"Content_Service/internal/service"
)

type CommunityHandler struct {
	svc *service.CommunityService
}

type CommunityCreateReq struct {
	UserID      string  `json:"user_id" binding:"required,uuid"`
	Name        string  `json:"name" binding:"required,max=64"`
	Description *string `json:"description"`
}

func NewCommunityHandler(svc *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

func (h *CommunityHandler) Create(c *gin.Context) {
	var req CommunityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.FailBind(c, err)
		return
	}
	if !middleware.MatchUser(c, req.UserID) {
		return
	}

	community, err := h.svc.CreateCommunity(c.Request.Context(), service.CreateCommunityInput{
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusCreated, community)
}

func (h *CommunityHandler) List(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		pkg.FailBind(c, err)
		return
	}
	list, err := h.svc.ListCommunities(c.Request.Context(), q.Page, q.Size)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, list)
}

func (h *CommunityHandler) Get(c *gin.Context) {
	community, err := h.svc.GetCommunity(c.Request.Context(), c.Param("id"))
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, community)
}

func (h *CommunityHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeleteCommunity(c.Request.Context(), middleware.UserID(c), id); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OKMsg(c, http.StatusOK, "community deleted", gin.H{"id": id})
}

// ListPosts returns the community's posts newest first.
func (h *CommunityHandler) ListPosts(c *gin.Context) {
	posts, err := h.svc.ListCommunityPosts(c.Request.Context(), c.Param("id"))
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, posts)
}

func (h *CommunityHandler) ListEvents(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		pkg.FailBind(c, err)
		return
	}
	events, err := h.svc.ListCommunityEvents(c.Request.Context(), c.Param("id"), q.Page, q.Size)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, events)
}
