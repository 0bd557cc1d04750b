package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/precept-hq/contact-api/internal/models"
	"github.com/precept-hq/contact-api/internal/services"
	apperrors "github.com/precept-hq/contact-api/pkg/errors"
)

type ContactHandler struct {
	service services.ContactSubmitter
}

func NewContactHandler(service services.ContactSubmitter) *ContactHandler {
	return &ContactHandler{service: service}
}

// SubmitContact handles POST /api/contact. Request metadata (timestamp,
// client IP, user agent) is captured here, never taken from the body.
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ContactResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	meta := models.RequestMeta{
		SubmittedAt: time.Now(),
		ClientIP:    c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	}

	resp, err := h.service.Submit(c.Request.Context(), &req, meta)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, resp)
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, resp)
	default:
		c.JSON(http.StatusInternalServerError, resp)
	}
}
