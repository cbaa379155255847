package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCountersRegistered(t *testing.T) {
	before := testutil.ToFloat64(Logins.WithLabelValues(ResultSuccess))
	Logins.WithLabelValues(ResultSuccess).Inc()
	require.Equal(t, before+1, testutil.ToFloat64(Logins.WithLabelValues(ResultSuccess)))

	beforeComments := testutil.ToFloat64(Comments)
	Comments.Inc()
	require.Equal(t, beforeComments+1, testutil.ToFloat64(Comments))

	PostMutations.WithLabelValues(ActionDelete).Inc()
	Registrations.WithLabelValues(ResultDuplicate).Inc()

	n, err := testutil.GatherAndCount(prometheus.DefaultGatherer,
		"blog_logins_total",
		"blog_registrations_total",
		"blog_post_mutations_total",
		"blog_comments_total",
	)
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, 4)

	require.NoError(t, testutil.CollectAndCompare(Registrations, strings.NewReader(`
# HELP blog_registrations_total Registration attempts by result.
# TYPE blog_registrations_total counter
blog_registrations_total{result="duplicate"} 1
`)))
}
