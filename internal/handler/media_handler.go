package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"Content_Service/internal/pkg"
	"Content_Service/internal/service"
)

type MediaHandler struct {
	svc *service.MediaService
}

func NewMediaHandler(svc *service.MediaService) *MediaHandler {
	return &MediaHandler{svc: svc}
}

// Upload stores the multipart field "media" on the media host.
func (h *MediaHandler) Upload(c *gin.Context) {
	limitBody(c, h.svc.MaxBytes())

	file, err := formFile(c, "media")
	if err != nil {
		failBind(c, err)
		return
	}
	if file == nil {
		pkg.Fail(c, fmt.Errorf("%w: no file uploaded", pkg.ErrInvalid))
		return
	}
	defer file.Close()

	media, err := h.svc.UploadImage(c.Request.Context(), file)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OKMsg(c, http.StatusOK, "file uploaded", media)
}
