package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StatusUp   = "up"
	StatusDown = "down"
)

// Pinger is satisfied by *pgxpool.Pool and by the in-memory store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type HealthResult struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks,omitempty"`
}

// Checker reports whether the post and user store is reachable.
type Checker struct {
	store     Pinger
	storeName string
	logger    *slog.Logger
	gauge     *prometheus.GaugeVec
}

// NewChecker creates a health checker and registers its Prometheus gauge.
func NewChecker(store Pinger, storeName string, logger *slog.Logger, reg prometheus.Registerer) *Checker {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blogapi",
		Name:      "health_check_up",
		Help:      "Whether a dependency is reachable. 1 = up, 0 = down.",
	}, []string{"dependency"})
	reg.MustRegister(gauge)

	return &Checker{
		store:     store,
		storeName: storeName,
		logger:    logger.With("component", "health"),
		gauge:     gauge,
	}
}

func (c *Checker) Liveness(_ context.Context) HealthResult {
	return HealthResult{Status: StatusUp}
}

func (c *Checker) Readiness(ctx context.Context) HealthResult {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	result := HealthResult{Status: StatusUp, Checks: make(map[string]CheckResult, 1)}

	if err := c.store.Ping(checkCtx); err != nil {
		c.logger.WarnContext(ctx, "store health check failed", "store", c.storeName, "error", err)
		result.Status = StatusDown
		result.Checks[c.storeName] = CheckResult{Status: StatusDown, Error: err.Error()}
		c.gauge.WithLabelValues(c.storeName).Set(0)
		return result
	}

	result.Checks[c.storeName] = CheckResult{Status: StatusUp}
	c.gauge.WithLabelValues(c.storeName).Set(1)
	return result
}
