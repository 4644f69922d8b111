package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tirematch/backend/internal/checkout"
	"github.com/tirematch/backend/internal/config"
	"github.com/tirematch/backend/internal/db"
	"github.com/tirematch/backend/internal/http/handlers"
	"github.com/tirematch/backend/internal/http/middleware"
	"github.com/tirematch/backend/internal/installers"
	"github.com/tirematch/backend/internal/service"

	_ "github.com/tirematch/backend/docs"
)

func Router(cfg config.Config, recommender *service.Recommender, installerClient *installers.Client, builder *checkout.Builder, store *db.Store, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.HandleMethodNotAllowed = true

	corsCfg := cors.Config{
		AllowMethods:              []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:              []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials:          true,
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Recommender:     recommender,
		Installers:      installerClient,
		Checkout:        builder,
		Store:           store,
		Validator:       validator.New(),
		Logger:          logger,
		AdminKey:        cfg.AdminKey,
		DefaultRadiusKm: cfg.DefaultRadiusKm,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.POST("/tires", h.TireRecommendations)
		api.GET("/installers", h.InstallersList)
		api.GET("/installers/nearby", h.InstallersNearby)
		api.POST("/checkout", h.CheckoutCreate)
		api.POST("/webhooks/order-created", h.OrderCreated)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.GET("/runs/recent", h.RunsRecent)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
