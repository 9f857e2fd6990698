// Package metrics reports pipeline analysis counters to a DogStatsD agent.
package metrics

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
)

// Metric names, relative to the configured namespace.
const (
	MetricAnalyzed    = "pipelines.analyzed"
	MetricCyclic      = "pipelines.cyclic"
	MetricAnalyzeTime = "pipelines.analyze_time"
	MetricNodes       = "pipelines.nodes"
	MetricEdges       = "pipelines.edges"
)

// Recorder receives one observation per analyzed pipeline.
type Recorder interface {
	Analyzed(numNodes, numEdges int, cyclic bool, elapsed time.Duration)
	Close() error
}

// Noop discards every observation.
type Noop struct{}

func (Noop) Analyzed(int, int, bool, time.Duration) {}
func (Noop) Close() error                           { return nil }

// Statsd sends observations through a DogStatsD client. Send errors are
// dropped; metrics must never fail a validation request.
type Statsd struct {
	client statsd.ClientInterface
}

// NewStatsd connects a DogStatsD client to addr (host:port or a unix://
// socket path).
func NewStatsd(addr, namespace string, tags []string) (*Statsd, error) {
	if !strings.HasPrefix(addr, "unix://") {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return nil, fmt.Errorf("invalid statsd address %q: %w", addr, err)
		}
	}
	client, err := statsd.New(addr, statsd.WithNamespace(namespace), statsd.WithTags(tags))
	if err != nil {
		return nil, fmt.Errorf("failed to create statsd client for %s: %w", addr, err)
	}
	return &Statsd{client: client}, nil
}

func (s *Statsd) Analyzed(numNodes, numEdges int, cyclic bool, elapsed time.Duration) {
	tags := []string{fmt.Sprintf("is_dag:%t", !cyclic)}
	_ = s.client.Incr(MetricAnalyzed, tags, 1)
	if cyclic {
		_ = s.client.Incr(MetricCyclic, nil, 1)
	}
	_ = s.client.Timing(MetricAnalyzeTime, elapsed, tags, 1)
	_ = s.client.Histogram(MetricNodes, float64(numNodes), nil, 1)
	_ = s.client.Histogram(MetricEdges, float64(numEdges), nil, 1)
}

func (s *Statsd) Close() error {
	return s.client.Close()
}
