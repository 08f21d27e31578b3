package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokehaven_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// PokemonSold counts creatures removed by sell operations.
	PokemonSold = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokehaven_pokemon_sold_total",
		Help: "Total number of Pokemon sold, by operation (single or sweep)",
	}, []string{"operation"})

	// WonderTrades counts completed wonder trades.
	WonderTrades = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokehaven_wonder_trades_total",
		Help: "Total number of completed wonder trades",
	})

	// DailyClaims counts daily reward claims by outcome.
	DailyClaims = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokehaven_daily_claims_total",
		Help: "Total number of daily claim attempts by outcome",
	}, []string{"outcome"})

	// SpeciesLookupFailures counts degraded species-name lookups.
	SpeciesLookupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokehaven_species_lookup_failures_total",
		Help: "Total number of species lookups that fell back to Unknown",
	})
)

// InitMetrics creates the fiberprometheus middleware for HTTP-level metrics.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus handler as a Fiber middleware.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
