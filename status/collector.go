package status

import (
	"strings"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "vi_compositor"

// Collector exports registry counters to Prometheus
// Keys of the form "<subsystem>.<label>.<name>" become
// vi_compositor_<subsystem>_<name>{<subsystem>="<label>"}; other keys are
// flattened with underscores
type Collector struct {
	reg *Registry
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector wraps reg for registration with a prometheus.Registerer
func NewCollector(reg *Registry) *Collector {
	return &Collector{reg: reg}
}

// Describe sends nothing; the metric set grows as actors register, so the
// collector is unchecked
func (c *Collector) Describe(chan<- *prometheus.Desc) {}

// Collect emits one untyped sample per counter
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.reg.Range(func(key string, v *atomic.Int64) {
		name, labelName, labelValue := splitKey(key)
		var desc *prometheus.Desc
		var labels []string
		if labelName != "" {
			desc = prometheus.NewDesc(prometheus.BuildFQName(metricNamespace, labelName, name),
				"Compositor runtime counter.", []string{labelName}, nil)
			labels = []string{labelValue}
		} else {
			desc = prometheus.NewDesc(prometheus.BuildFQName(metricNamespace, "", name),
				"Compositor runtime counter.", nil, nil)
		}
		ch <- prometheus.MustNewConstMetric(desc, prometheus.UntypedValue, float64(v.Load()), labels...)
	})
}

func splitKey(key string) (name, labelName, labelValue string) {
	parts := strings.Split(key, ".")
	if len(parts) == 3 {
		return sanitize(parts[2]), sanitize(parts[0]), parts[1]
	}
	return sanitize(strings.Join(parts, "_")), "", ""
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, s)
}
