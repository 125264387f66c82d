package metric

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "traceid"

type MetricService interface {
	IncrementCounter(metricName string, by uint, tags map[string]string)
	RecordDuration(metricName string, tags map[string]string, fn func())
}

type metricService struct {
	factory   promauto.Factory
	counters  map[string]*prometheus.CounterVec
	durations map[string]*prometheus.HistogramVec
	mu        sync.Mutex
}

// NewMetricService creates a MetricService registering its collectors with reg.
// Counters and histograms are created on first use and keyed by name, so every
// call for the same metric must use the same set of tag keys.
func NewMetricService(reg prometheus.Registerer) MetricService {
	return &metricService{
		factory:   promauto.With(reg),
		counters:  make(map[string]*prometheus.CounterVec),
		durations: make(map[string]*prometheus.HistogramVec),
	}
}

func (m *metricService) IncrementCounter(metricName string, by uint, tags map[string]string) {
	metric := m.getOrCreateCounterVec(metricName, m.getKeys(tags))
	metric.With(tags).Add(float64(by))
}

// RecordDuration runs fn and observes how long it took in seconds.
func (m *metricService) RecordDuration(metricName string, tags map[string]string, fn func()) {
	metric := m.getOrCreateHistogramVec(metricName, m.getKeys(tags))

	start := time.Now()

	defer func() {
		metric.With(tags).Observe(time.Since(start).Seconds())
	}()

	fn()
}

func (m *metricService) getOrCreateCounterVec(metricName string, tagKeys []string) *prometheus.CounterVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	if counter, exists := m.counters[metricName]; exists {
		return counter
	}

	counter := m.factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      metricName,
		Help:      "A counter for " + metricName,
	}, tagKeys)

	m.counters[metricName] = counter

	return counter
}

func (m *metricService) getOrCreateHistogramVec(metricName string, tagKeys []string) *prometheus.HistogramVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	if duration, exists := m.durations[metricName]; exists {
		return duration
	}

	observer := m.factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      metricName,
		Help:      "A histogram for " + metricName,
		Buckets:   prometheus.DefBuckets,
	}, tagKeys)

	m.durations[metricName] = observer

	return observer
}

func (m *metricService) getKeys(tags map[string]string) []string {
	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
