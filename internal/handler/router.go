package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/authlend-api/internal/middleware"
)

type RouterDeps struct {
	DB               Pinger
	Tokens           middleware.TokenValidator
	RateCounter      middleware.Counter
	SimulationLimit  int
	SimulationWindow time.Duration
	// TrustedProxies lists the proxy CIDRs whose forwarding headers are
	// believed. Empty means the client IP is always the socket peer.
	TrustedProxies    []string
	Simulations       SimulationService
	CardFlags         CardFlagService
	InstallmentLimits InstallmentLimitService
	ValueTypes        ValueTypeService
	InterestConfigs   InterestConfigurationService
	Stores            StoreService
}

func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(d.TrustedProxies); err != nil {
		log.Error().Err(err).Strs("trusted_proxies", d.TrustedProxies).Msg("invalid trusted proxies, trusting none")
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(middleware.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("recovered from panic")
		fail(c, http.StatusInternalServerError, "Internal server error.", nil)
		c.Abort()
	}))
	router.Use(middleware.ErrorHandler())

	router.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "Route not found.", nil)
	})

	router.GET("/health", NewHealthHandler(d.DB).Health)
	SetupSwagger(router)

	admin := middleware.RequireAdmin(d.Tokens)

	simulations := NewSimulationHandler(d.Simulations)
	cardFlags := NewCardFlagHandler(d.CardFlags)
	limits := NewInstallmentLimitHandler(d.InstallmentLimits)
	valueTypes := NewValueTypeHandler(d.ValueTypes)
	configs := NewInterestConfigurationHandler(d.InterestConfigs)
	stores := NewStoreHandler(d.Stores)

	api := router.Group("/api/v1")
	{
		api.POST("/simulations",
			middleware.RateLimit(d.RateCounter, "simulations", d.SimulationLimit, d.SimulationWindow),
			simulations.Create)
		api.GET("/simulations/:uuid", simulations.Show)
		api.GET("/simulations", admin, simulations.List)
		api.PATCH("/simulations/:id", admin, simulations.Update)
		api.DELETE("/simulations/:id", admin, simulations.Delete)

		api.GET("/card-flags", cardFlags.List)
		api.POST("/card-flags", admin, cardFlags.Create)
		api.PUT("/card-flags/:id", admin, cardFlags.Update)
		api.DELETE("/card-flags/:id", admin, cardFlags.Delete)

		api.GET("/card-flag-installment-limits", limits.List)
		api.POST("/card-flag-installment-limits", admin, limits.Create)
		api.PUT("/card-flag-installment-limits/:id", admin, limits.Update)
		api.DELETE("/card-flag-installment-limits/:id", admin, limits.Delete)

		api.GET("/value-types", valueTypes.List)
		api.POST("/value-types", admin, valueTypes.Create)
		api.PUT("/value-types/:id", admin, valueTypes.Update)
		api.DELETE("/value-types/:id", admin, valueTypes.Delete)

		api.GET("/interest-configurations", configs.List)
		api.POST("/interest-configurations", admin, configs.Create)
		api.PUT("/interest-configurations/:id", admin, configs.Update)
		api.DELETE("/interest-configurations/:id", admin, configs.Delete)

		api.GET("/stores", stores.List)
		api.POST("/stores", admin, stores.Create)
		api.PUT("/stores/:id", admin, stores.Update)
		api.DELETE("/stores/:id", admin, stores.Delete)
	}

	return router
}
