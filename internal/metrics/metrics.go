// File: internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// result 標籤值
const (
	ResultSuccess   = "success"
	ResultFailure   = "failure"
	ResultDuplicate = "duplicate"
)

// action 標籤值
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

var (
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_logins_total",
		Help: "Login attempts by result.",
	}, []string{"result"})

	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_registrations_total",
		Help: "Registration attempts by result.",
	}, []string{"result"})

	PostMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_post_mutations_total",
		Help: "Post create/update/delete operations performed by the administrator.",
	}, []string{"action"})

	Comments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_comments_total",
		Help: "Comments created.",
	})
)
