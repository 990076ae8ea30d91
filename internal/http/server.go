// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rentalpromo/internal/http/handlers"
	"rentalpromo/internal/http/middleware"
	"rentalpromo/internal/infra"
	"rentalpromo/internal/modules/location"
	"rentalpromo/internal/modules/offering"
	"rentalpromo/internal/modules/pricing"
)

type ServerDeps struct {
	Offering *offering.Service
	Location *location.Service
	Pricing  *pricing.Service
	// Verifier may be nil, in which case every caller is anonymous.
	Verifier infra.TokenVerifier
}

type Server struct {
	offering *offering.Service
	location *location.Service
	pricing  *pricing.Service
	verifier infra.TokenVerifier
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		offering: deps.Offering,
		location: deps.Location,
		pricing:  deps.Pricing,
		verifier: deps.Verifier,
	}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.OptionalAuth(s.verifier), middleware.Logging())

	offeringHandler := handlers.NewOfferingHandler(s.offering, s.location)
	r.GET("/api/offerings/nearby", offeringHandler.Nearby)
	r.GET("/api/offerings/joined", offeringHandler.Joined)

	pricingHandler := handlers.NewPricingHandler(s.pricing)
	r.POST("/api/pricing/preview", pricingHandler.Preview)

	locationHandler := handlers.NewLocationHandler(s.location)
	r.PUT("/api/agents/:id/location", middleware.RequireCaller(), locationHandler.Update)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
