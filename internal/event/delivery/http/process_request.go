package http

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
)

// processProcessImageReq reads the multipart upload. Size and type
// limits are enforced by the use case, not here, so every rejection
// carries the pipeline's error taxonomy.
func (h *handler) processProcessImageReq(c *gin.Context) (processImageReq, error) {
	var req processImageReq

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return req, fmt.Errorf("missing file field: %w", err)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return req, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return req, fmt.Errorf("reading upload: %w", err)
	}

	req.data = data
	req.contentType = fileHeader.Header.Get("Content-Type")
	req.filename = fileHeader.Filename
	return req, nil
}
