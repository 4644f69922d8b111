package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tirematch/backend/internal/installers"
	"github.com/tirematch/backend/internal/models"
)

// orderPayload is the subset of the commerce order-created webhook body the
// handler cares about.
type orderPayload struct {
	ID          int64  `json:"id"`
	OrderNumber int    `json:"order_number"`
	CartToken   string `json:"cart_token"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Customer    struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
	} `json:"customer"`
	NoteAttributes []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"note_attributes"`
}

func (p orderPayload) attribute(name string) string {
	for _, attr := range p.NoteAttributes {
		if attr.Name == name {
			return attr.Value
		}
	}
	return ""
}

func (p orderPayload) customerName() string {
	return strings.TrimSpace(p.Customer.FirstName + " " + p.Customer.LastName)
}

func (p orderPayload) customerEmail() string {
	if p.Customer.Email != "" {
		return p.Customer.Email
	}
	return p.Email
}

func (p orderPayload) customerPhone() string {
	if p.Customer.Phone != "" {
		return p.Customer.Phone
	}
	return p.Phone
}

// @Summary Order-created webhook
// @Description Confirms the pending installation job for orders flagged with
// the _installation attribute. Orders without the flag are acknowledged
// without any mutation.
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /api/webhooks/order-created [post]
func (h *Handler) OrderCreated(c *gin.Context) {
	var payload orderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid order payload", err.Error())
		return
	}

	if payload.attribute("_installation") != "true" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	// The job was seeded under PENDING-{cartToken} at checkout; the order
	// payload carries the same token back.
	ref := models.PendingJobRef(payload.CartToken)
	job, err := h.Installers.FindJobByRef(c.Request.Context(), ref)
	if err != nil {
		h.Logger.Error().Err(err).Str("ref", ref).Msg("webhook job lookup failed")
		writeError(c, http.StatusInternalServerError, "WEBHOOK_ERROR", "Failed to resolve installation job", nil)
		return
	}

	extra := map[string]any{
		"Order ID":       strconv.FormatInt(payload.ID, 10),
		"Order Number":   strconv.Itoa(payload.OrderNumber),
		"Customer Name":  payload.customerName(),
		"Customer Email": payload.customerEmail(),
		"Customer Phone": payload.customerPhone(),
	}
	updated, err := h.Installers.UpdateJobStatus(c.Request.Context(), job.ID, models.JobStatusPending, models.JobStatusConfirmed, extra)
	if err != nil {
		if errors.Is(err, installers.ErrStatusConflict) {
			// Replayed delivery after the job already advanced: acknowledge,
			// do not roll the status back.
			h.Logger.Info().Str("job_id", job.ID).Msg("webhook replay ignored, job already past Pending")
			c.JSON(http.StatusOK, gin.H{"status": "already_processed", "job_id": job.ID})
			return
		}
		h.Logger.Error().Err(err).Str("job_id", job.ID).Msg("webhook job update failed")
		writeError(c, http.StatusInternalServerError, "WEBHOOK_ERROR", "Failed to update installation job", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "confirmed", "job_id": updated.ID})
}
