package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts failed Redis commands, labelled by operation.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mayz_redis_errors_total",
		Help: "Total number of Redis command errors.",
	}, []string{"operation"})

	// VotesCast counts vote submissions by direction.
	VotesCast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mayz_votes_cast_total",
		Help: "Total number of votes cast, by direction.",
	}, []string{"direction"})
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics builds the Prometheus HTTP middleware for the given service
// name. The underlying collectors register globally, so the instance is
// created once and shared.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	return prom
}

// MetricsMiddleware wraps the Prometheus middleware as a Fiber handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
