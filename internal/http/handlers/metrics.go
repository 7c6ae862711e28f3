package handlers

import (
	"bytes"
	"log"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/valyala/fasthttp"
)

var (
	analysesTotal    *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	quotaDeniedTotal prometheus.Counter
)

func InitPrometheusMetrics() {
	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reviewpulse",
			Name:      "analyses_total",
			Help:      "Total number of completed sentiment analyses.",
		},
		[]string{"sentiment", "method"},
	)
	analysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reviewpulse",
			Name:      "analysis_duration_seconds",
			Help:      "Histogram of sentiment analysis durations in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method"},
	)
	quotaDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reviewpulse",
			Name:      "quota_denied_total",
			Help:      "Total number of analysis requests denied by the usage quota.",
		},
	)
	prometheus.MustRegister(analysesTotal, analysisDuration, quotaDeniedTotal)
}

func observeAnalysis(sentiment, method string, elapsed time.Duration) {
	if analysesTotal == nil {
		return
	}
	analysesTotal.WithLabelValues(sentiment, method).Inc()
	analysisDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func observeQuotaDenied() {
	if quotaDeniedTotal == nil {
		return
	}
	quotaDeniedTotal.Inc()
}

// MetricsHandler exposes the service's own metric families in the
// prometheus text format. Runtime collector families are filtered out;
// only the reviewpulse namespace is published.
func MetricsHandler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		metricFamilies, err := prometheus.DefaultGatherer.Gather()
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusInternalServerError)
			ctx.SetBodyString("failed to gather metrics")
			return
		}

		filtered := make([]*dto.MetricFamily, 0, len(metricFamilies))
		for _, mf := range metricFamilies {
			if strings.HasPrefix(mf.GetName(), "reviewpulse_") {
				filtered = append(filtered, mf)
			}
		}

		var buf bytes.Buffer
		encoder := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
		for _, mf := range filtered {
			if err := encoder.Encode(mf); err != nil {
				ctx.SetStatusCode(fasthttp.StatusInternalServerError)
				ctx.SetBodyString("failed to encode metrics")
				return
			}
		}

		ctx.SetContentType(string(expfmt.NewFormat(expfmt.TypeTextPlain)))
		ctx.Response.Header.Set("Cache-Control", "no-store")
		ctx.SetBody(buf.Bytes())
	}
}

// RequestLogger returns fasthttp middleware that logs method, path, status, duration.
func RequestLogger(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		log.Printf("%s %s -> %d (%s) ip=%s", ctx.Method(), ctx.Path(), ctx.Response.StatusCode(), time.Since(start), ctx.RemoteAddr())
	}
}
