package http

import (
	"github.com/gin-gonic/gin"

	"image-calendar-generator/pkg/response"
)

// ProcessImage godoc
// @Summary     Create a calendar event from an image
// @Description Accepts an image of a flyer or invitation, extracts the event it shows and creates it in Google Calendar.
// @Tags        Event
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "Image file (JPEG, PNG, GIF or WebP)"
// @Success     200 {object} processImageResp
// @Failure     400 {object} response.Resp "Bad Request - not a usable image"
// @Failure     422 {object} response.Resp "Unprocessable - no event found in the image"
// @Failure     429 {object} response.Resp "Vision provider rate limit"
// @Failure     502 {object} response.Resp "Upstream provider failure"
// @Failure     503 {object} response.Resp "Calendar authorization required"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/process-image [POST]
func (h *handler) ProcessImage(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processProcessImageReq(c)
	if err != nil {
		h.l.Warnf(ctx, "invalid process-image request: %v", err)
		response.Error(c, 400, "a file form field with the image is required")
		return
	}

	output, err := h.uc.ProcessImage(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ProcessImage: %v", err)
		status, message := h.mapError(err)
		response.Error(c, status, message)
		return
	}

	response.OK(c, h.newProcessImageResp(output))
}
