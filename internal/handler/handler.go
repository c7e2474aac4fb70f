package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"Content_Service/internal/pkg"
)

// formOverhead is allowed on top of the media limit for the other multipart fields.
const formOverhead = 64 << 10

type pageQuery struct {
	Page int `form:"page" binding:"omitempty,min=1"`
	Size int `form:"size" binding:"omitempty,min=1,max=100"`
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// limitBody caps the request body so an oversized upload fails while parsing.
func limitBody(c *gin.Context, maxBytes int64) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+formOverhead)
}

// failBind reports a body that blew the size cap as 413 and anything else as a
// validation failure.
func failBind(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		pkg.Fail(c, fmt.Errorf("%w: request body exceeds %d bytes", pkg.ErrTooLarge, tooLarge.Limit))
		return
	}
	pkg.FailBind(c, err)
}

// formFile returns the named upload, or nil when the field is absent.
func formFile(c *gin.Context, field string) (multipart.File, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fh.Open()
}
