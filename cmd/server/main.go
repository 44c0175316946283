package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/noorcentre/donations-api/internal/api"
	v1 "github.com/noorcentre/donations-api/internal/api/v1"
	"github.com/noorcentre/donations-api/internal/config"
	"github.com/noorcentre/donations-api/internal/domain/campaign"
	"github.com/noorcentre/donations-api/internal/domain/payment"
	"github.com/noorcentre/donations-api/internal/httpclient"
	stripegateway "github.com/noorcentre/donations-api/internal/integration/stripe"
	"github.com/noorcentre/donations-api/internal/logger"
	"github.com/noorcentre/donations-api/internal/repository/sanity"
	"github.com/noorcentre/donations-api/internal/sentry"
	"github.com/noorcentre/donations-api/internal/service"
	"github.com/noorcentre/donations-api/internal/types"
	"github.com/noorcentre/donations-api/internal/validator"
	"go.uber.org/fx"
)

// @title Donations API
// @version 1.0
// @description Recurring donation checkout service
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// HTTP Client
			httpclient.NewDefaultClient,

			// Repositories
			sanity.NewCampaignRepository,

			// Payment gateway
			stripegateway.NewClient,
			provideGateway,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			provideServiceParams,
			service.NewCampaignService,
			service.NewDonationService,
		),
	)

	// Monitoring
	opts = append(opts, sentry.Module())

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideGateway(client *stripegateway.Client) payment.Gateway {
	return client
}

func provideServiceParams(
	cfg *config.Configuration,
	log *logger.Logger,
	campaignRepo campaign.Repository,
	gateway payment.Gateway,
) service.ServiceParams {
	return service.ServiceParams{
		Logger:       log,
		Config:       cfg,
		Clock:        time.Now,
		CampaignRepo: campaignRepo,
		Gateway:      gateway,
	}
}

func provideHandlers(
	log *logger.Logger,
	campaignService service.CampaignService,
	donationService service.DonationService,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(log),
		Campaign: v1.NewCampaignHandler(campaignService, log),
		Donation: v1.NewDonationHandler(donationService, log),
	}
}

func provideRouter(handlers api.Handlers, log *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, log)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting API server...")
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
