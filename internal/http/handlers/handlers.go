package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/tirematch/backend/internal/checkout"
	"github.com/tirematch/backend/internal/db"
	"github.com/tirematch/backend/internal/installers"
	"github.com/tirematch/backend/internal/models"
	"github.com/tirematch/backend/internal/service"
)

type Handler struct {
	Recommender     *service.Recommender
	Installers      *installers.Client
	Checkout        *checkout.Builder
	Store           *db.Store
	Validator       *validator.Validate
	Logger          zerolog.Logger
	AdminKey        string
	DefaultRadiusKm float64
}

func (h *Handler) Healthz(c *gin.Context) {
	if h.Store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.Store.Ping(ctx); err != nil {
			writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type TireRequest struct {
	Query    string   `json:"query" validate:"required,min=3"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	RadiusKm float64  `json:"radius_km"`
}

// @Summary Recommend tires
// @Description Free-text tire request matched against live inventory
// @Tags tires
// @Accept json
// @Produce json
// @Param request body TireRequest true "recommendation request"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/tires [post]
func (h *Handler) TireRecommendations(c *gin.Context) {
	var req TireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	res, err := h.Recommender.Recommend(c.Request.Context(), req.Query)
	if err != nil {
		h.Logger.Error().Err(err).Msg("recommendation pipeline failed")
		writeError(c, http.StatusInternalServerError, "RECOMMENDATION_ERROR", "Something went wrong", nil)
		return
	}

	resp := gin.H{
		"products":       res.Products,
		"source":         res.Source,
		"catalog_source": res.CatalogSource,
	}

	if req.Lat != nil && req.Lng != nil && h.Installers != nil {
		radius := req.RadiusKm
		if radius <= 0 {
			radius = h.DefaultRadiusKm
		}
		nearby, err := h.Installers.FindNearby(c.Request.Context(), *req.Lat, *req.Lng, radius)
		if err != nil {
			// Installer lookup failures should not sink the recommendations.
			h.Logger.Warn().Err(err).Msg("nearby installer lookup failed")
		} else {
			resp["installers"] = nearby
		}
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List active installers
// @Tags installers
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/installers [get]
func (h *Handler) InstallersList(c *gin.Context) {
	items, err := h.Installers.ListActive(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusBadGateway, "DIRECTORY_ERROR", "Failed to list installers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// @Summary Find installers near a point
// @Tags installers
// @Produce json
// @Param lat query number true "latitude"
// @Param lng query number true "longitude"
// @Param radius_km query number false "search radius in km"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/installers/nearby [get]
func (h *Handler) InstallersNearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "lat is required and must be a number", nil)
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "lng is required and must be a number", nil)
		return
	}
	radius, err := strconv.ParseFloat(c.DefaultQuery("radius_km", "0"), 64)
	if err != nil || radius < 0 {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "radius_km must be a non-negative number", nil)
		return
	}
	if radius == 0 {
		radius = h.DefaultRadiusKm
	}

	items, err := h.Installers.FindNearby(c.Request.Context(), lat, lng, radius)
	if err != nil {
		writeError(c, http.StatusBadGateway, "DIRECTORY_ERROR", "Failed to search installers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "radius_km": radius})
}

type CheckoutLine struct {
	VariantID string `json:"variant_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type CheckoutInstallation struct {
	InstallerID   string `json:"installer_id" validate:"required"`
	TireBrand     string `json:"tire_brand"`
	TireModel     string `json:"tire_model"`
	CartToken     string `json:"cart_token" validate:"required"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email"`
}

type CheckoutRequest struct {
	Lines        []CheckoutLine        `json:"lines" validate:"required,min=1,dive"`
	Installation *CheckoutInstallation `json:"installation" validate:"omitempty"`
}

// @Summary Build a checkout
// @Description Creates a cart (permalink fallback on failure) and, when
// installation is requested, a Pending installation job.
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body CheckoutRequest true "checkout request"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/checkout [post]
func (h *Handler) CheckoutCreate(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	lines := make([]checkout.Line, 0, len(req.Lines))
	quantity := 0
	for _, l := range req.Lines {
		lines = append(lines, checkout.Line{VariantID: l.VariantID, Quantity: l.Quantity})
		quantity += l.Quantity
	}

	meta := checkout.Meta{}
	var jobID string
	if inst := req.Installation; inst != nil {
		meta = checkout.Meta{Installation: true, TireBrand: inst.TireBrand, TireModel: inst.TireModel}

		// The job is seeded under PENDING-{cartToken} before the checkout
		// URL is handed out; the order-created webhook resolves it by the
		// same reference.
		job, err := h.Installers.CreateJob(c.Request.Context(), models.InstallationJob{
			JobRef:        models.PendingJobRef(inst.CartToken),
			InstallerID:   inst.InstallerID,
			TireBrand:     inst.TireBrand,
			TireModel:     inst.TireModel,
			Quantity:      quantity,
			CustomerName:  inst.CustomerName,
			CustomerEmail: inst.CustomerEmail,
		})
		if err != nil {
			writeError(c, http.StatusBadGateway, "JOB_ERROR", "Failed to create installation job", err.Error())
			return
		}
		jobID = job.ID
	}

	res := h.Checkout.Build(c.Request.Context(), lines, meta)
	resp := gin.H{"checkout_url": res.URL, "source": res.Source}
	if res.CartID != "" {
		resp["cart_id"] = res.CartID
	}
	if jobID != "" {
		resp["job_id"] = jobID
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Recent recommendation runs
// @Tags runs
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/runs/recent [get]
func (h *Handler) RunsRecent(c *gin.Context) {
	if h.Store == nil {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Request log not configured", nil)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	items, err := h.Store.RecentRuns(c.Request.Context(), limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list runs", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
