package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/noorcentre/donations-api/internal/api/v1"
	"github.com/noorcentre/donations-api/internal/logger"
	"github.com/noorcentre/donations-api/internal/rest/middleware"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Campaign *v1.CampaignHandler
	Donation *v1.DonationHandler
}

func NewRouter(handlers Handlers, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.RequestLogger(log),
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	campaigns := router.Group("/campaigns")
	{
		campaigns.GET("", handlers.Campaign.ListCampaigns)
		campaigns.GET("/:slug", handlers.Campaign.GetCampaign)
	}

	donations := router.Group("/donations")
	{
		donations.POST("/checkout", handlers.Donation.CreateCheckout)
	}
}
