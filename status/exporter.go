package status

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "warehouse"

// Exporter publishes the registry to Prometheus, reading atomics at scrape time
// Kill counters become one labeled series, every other integer metric a gauge
type Exporter struct {
	reg *Registry

	kills *prometheus.Desc
	info  *prometheus.Desc
}

// NewExporter wraps reg as a prometheus.Collector
func NewExporter(reg *Registry) *Exporter {
	return &Exporter{
		reg: reg,
		kills: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "monsters_killed"),
			"Monsters killed by encirclement, per kind.",
			[]string{"kind"}, nil,
		),
		info: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "session_info"),
			"Current session identity.",
			[]string{"session_id"}, nil,
		),
	}
}

// Describe sends nothing, making this an unchecked collector
// The key set grows at runtime as systems register metrics
func (e *Exporter) Describe(chan<- *prometheus.Desc) {}

// Collect reads every registered metric
func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	for _, m := range e.reg.Ints.Entries() {
		v := float64(m.Ptr.Load())
		if kind, ok := strings.CutPrefix(m.Key, KeyKillsPrefix); ok && m.Key != KeyKillsTotal {
			ch <- prometheus.MustNewConstMetric(e.kills, prometheus.CounterValue, v, kind)
			continue
		}
		desc := prometheus.NewDesc(metricName(m.Key), "Registry metric "+m.Key+".", nil, nil)
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, v)
	}

	if id := e.reg.Strings.Get(KeySessionID).Load(); id != "" {
		ch <- prometheus.MustNewConstMetric(e.info, prometheus.GaugeValue, 1, id)
	}
}

func metricName(key string) string {
	return prometheus.BuildFQName(namespace, "", strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// Handler returns a /metrics handler over a private prometheus registry
// A private registry lets repeated sessions and tests register without collisions
func Handler(reg *Registry) (http.Handler, error) {
	promReg := prometheus.NewRegistry()
	if err := promReg.Register(NewExporter(reg)); err != nil {
		return nil, err
	}
	return promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}), nil
}

// Serve exposes /metrics on addr until ctx is cancelled
func Serve(ctx context.Context, addr string, reg *Registry) error {
	h, err := Handler(reg)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[status] prometheus /metrics on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
