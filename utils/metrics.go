package utils

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "businessconnect",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "businessconnect",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ProfileViews counts recorded profile views by read path.
	ProfileViews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "businessconnect",
			Subsystem: "analytics",
			Name:      "profile_views_total",
			Help:      "Total number of recorded profile views",
		},
		[]string{"source"}, // single, owner_list, public_list
	)

	// ReviewsCreated counts accepted reviews.
	ReviewsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "businessconnect",
			Subsystem: "reviews",
			Name:      "created_total",
			Help:      "Total number of reviews created",
		},
	)

	// VersionConflicts counts optimistic-concurrency retries on business writes.
	VersionConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "businessconnect",
			Subsystem: "business",
			Name:      "version_conflicts_total",
			Help:      "Total number of business writes that lost a version race",
		},
	)
)

// MetricsMiddleware records request counts and latency per route.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
