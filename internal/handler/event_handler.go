package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"Content_Service/internal/middleware"
	"Content_Service/internal/pkg"
	"Content_Service/internal/service"
)

type EventHandler struct {
	svc *service.EventService
}

type CreateEventReq struct {
	CommunityID string     `json:"community_id" binding:"required"`
	UserID      string     `json:"user_id" binding:"required"`
	Title       string     `json:"title" binding:"required,max=200"`
	Description *string    `json:"description"`
	Location    *string    `json:"location" binding:"omitempty,max=255"`
	StartsAt    time.Time  `json:"starts_at" binding:"required"`
	EndsAt      *time.Time `json:"ends_at"`
}

type UpdateEventReq struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description *string    `json:"description"`
	Location    *string    `json:"location" binding:"omitempty,max=255"`
	StartsAt    time.Time  `json:"starts_at" binding:"required"`
	EndsAt      *time.Time `json:"ends_at"`
}

type listEventsQuery struct {
	pageQuery
	CommunityID string `form:"community_id"`
	Upcoming    bool   `form:"upcoming"`
}

func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) Create(c *gin.Context) {
	var req CreateEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.FailBind(c, err)
		return
	}
	if !middleware.MatchUser(c, req.UserID) {
		return
	}
	e, err := h.svc.CreateEvent(c.Request.Context(), service.CreateEventInput{
		CommunityID: req.CommunityID,
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OKMsg(c, http.StatusCreated, "event created", e)
}

// List filters by community and, with upcoming=true, drops events already started.
func (h *EventHandler) List(c *gin.Context) {
	var q listEventsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		pkg.FailBind(c, err)
		return
	}
	events, err := h.svc.ListEvents(c.Request.Context(), service.ListEventsInput{
		CommunityID: q.CommunityID,
		Upcoming:    q.Upcoming,
		Page:        q.Page,
		Size:        q.Size,
	})
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, events)
}

func (h *EventHandler) Get(c *gin.Context) {
	e, err := h.svc.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, e)
}

func (h *EventHandler) Update(c *gin.Context) {
	var req UpdateEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.FailBind(c, err)
		return
	}
	e, err := h.svc.UpdateEvent(c.Request.Context(), middleware.UserID(c), c.Param("id"), service.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OKMsg(c, http.StatusOK, "event updated", e)
}

func (h *EventHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeleteEvent(c.Request.Context(), middleware.UserID(c), id); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OKMsg(c, http.StatusOK, "event deleted", gin.H{"id": id})
}
