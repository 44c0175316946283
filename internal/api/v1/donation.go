package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/noorcentre/donations-api/internal/api/dto"
	ierr "github.com/noorcentre/donations-api/internal/errors"
	"github.com/noorcentre/donations-api/internal/logger"
	"github.com/noorcentre/donations-api/internal/service"
)

type DonationHandler struct {
	service service.DonationService
	log     *logger.Logger
}

func NewDonationHandler(service service.DonationService, log *logger.Logger) *DonationHandler {
	return &DonationHandler{service: service, log: log}
}

// @Summary Create a donation checkout session
// @Description Validates the donation against the authoritative campaign and creates a hosted checkout session
// @Tags Donations
// @Accept json
// @Produce json
// @Param donation body dto.CreateDonationCheckoutRequest true "Donation request"
// @Success 200 {object} dto.DonationCheckoutResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 502 {object} ierr.ErrorResponse
// @Router /donations/checkout [post]
func (h *DonationHandler) CreateCheckout(c *gin.Context) {
	var req dto.CreateDonationCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateCheckout(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to create donation checkout", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
