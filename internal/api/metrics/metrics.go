// Package metrics defines the custom Prometheus metrics of the blog API. It
// is the single source of truth for metric names and help strings.
//
// Metrics register with the default registry on package init (promauto);
// they are scraped through /metrics when METRICS_ENABLED is set.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostsCreatedTotal counts posts persisted by POST /api/posts. Idempotent
// replays are not counted here.
var PostsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "posts_created_total",
	Help:      "Total number of posts created.",
})

var PostsUpdatedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "posts_updated_total",
	Help:      "Total number of posts updated.",
})

var PostsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "posts_deleted_total",
	Help:      "Total number of posts deleted.",
})

// IdempotentReplaysTotal counts create requests answered from a remembered
// Idempotency-Key instead of inserting a new post.
var IdempotentReplaysTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "idempotent_replays_total",
	Help:      "Total number of post creations replayed from an idempotency key.",
})

// ── User metrics ──────────────────────────────────────────────────────────────

var UsersRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "users_registered_total",
	Help:      "Total number of successful user registrations.",
})
