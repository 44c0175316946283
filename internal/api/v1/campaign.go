package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/noorcentre/donations-api/internal/errors"
	"github.com/noorcentre/donations-api/internal/logger"
	"github.com/noorcentre/donations-api/internal/service"
)

type CampaignHandler struct {
	service service.CampaignService
	log     *logger.Logger
}

func NewCampaignHandler(service service.CampaignService, log *logger.Logger) *CampaignHandler {
	return &CampaignHandler{service: service, log: log}
}

// @Summary Get a campaign by slug
// @Description Get a campaign with its current eligibility and billing preview
// @Tags Campaigns
// @Produce json
// @Param slug path string true "Campaign slug"
// @Success 200 {object} dto.CampaignResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /campaigns/{slug} [get]
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		c.Error(ierr.NewError("slug is required").
			WithHint("Campaign slug is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetCampaign(c.Request.Context(), slug)
	if err != nil {
		h.log.Error("Failed to get campaign", "error", err, "slug", slug)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List active campaigns
// @Description List campaigns currently visible on the site
// @Tags Campaigns
// @Produce json
// @Success 200 {object} dto.ListCampaignsResponse
// @Failure 502 {object} ierr.ErrorResponse
// @Router /campaigns [get]
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	resp, err := h.service.ListCampaigns(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list campaigns", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
