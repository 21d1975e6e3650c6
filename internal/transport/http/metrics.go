package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// parsesTotal counts report parse requests by report type and outcome.
var parsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "studiolens",
	Name:      "report_parses_total",
	Help:      "Report parse requests by report type and outcome.",
}, []string{"report_type", "status"})
