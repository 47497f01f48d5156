package metricskey

import "github.com/effective-security/metrics"

// Perf
var (
	// PerfJWTOperation is perf metric
	PerfJWTOperation = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_jwt",
		Help:         "perf_jwt provides the sample metrics of JWT sign and verify operations",
		RequiredTags: []string{"alg", "action"},
	}

	// PerfJWTDecode is perf metric
	PerfJWTDecode = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_jwt_decode",
		Help:         "perf_jwt_decode provides the sample metrics of unverified token decoding",
		RequiredTags: []string{"result"},
	}
)

// Metrics returns slice of metrics from this repo
var Metrics = []*metrics.Describe{
	&PerfJWTOperation,
	&PerfJWTDecode,
}
