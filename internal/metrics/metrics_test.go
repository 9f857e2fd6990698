package metrics

import (
	"testing"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingClient struct {
	statsd.NoOpClient
	incrs      []string
	timings    map[string]time.Duration
	histograms map[string]float64
	closed     bool
}

func newRecordingClient() *recordingClient {
	return &recordingClient{
		timings:    make(map[string]time.Duration),
		histograms: make(map[string]float64),
	}
}

func (c *recordingClient) Incr(name string, tags []string, rate float64) error {
	c.incrs = append(c.incrs, name)
	return nil
}

func (c *recordingClient) Timing(name string, value time.Duration, tags []string, rate float64) error {
	c.timings[name] = value
	return nil
}

func (c *recordingClient) Histogram(name string, value float64, tags []string, rate float64) error {
	c.histograms[name] = value
	return nil
}

func (c *recordingClient) Close() error {
	c.closed = true
	return nil
}

func TestStatsd_Analyzed(t *testing.T) {
	t.Run("acyclic", func(t *testing.T) {
		client := newRecordingClient()
		s := &Statsd{client: client}

		s.Analyzed(3, 2, false, 5*time.Millisecond)

		assert.Equal(t, []string{MetricAnalyzed}, client.incrs)
		assert.Equal(t, 5*time.Millisecond, client.timings[MetricAnalyzeTime])
		assert.Equal(t, 3.0, client.histograms[MetricNodes])
		assert.Equal(t, 2.0, client.histograms[MetricEdges])
	})

	t.Run("cyclic", func(t *testing.T) {
		client := newRecordingClient()
		s := &Statsd{client: client}

		s.Analyzed(2, 2, true, time.Millisecond)

		assert.Equal(t, []string{MetricAnalyzed, MetricCyclic}, client.incrs)
	})
}

func TestStatsd_Close(t *testing.T) {
	client := newRecordingClient()
	s := &Statsd{client: client}
	require.NoError(t, s.Close())
	assert.True(t, client.closed)
}

func TestNewStatsd(t *testing.T) {
	s, err := NewStatsd("127.0.0.1:8125", "pipecheck.", []string{"env:test"})
	require.NoError(t, err)
	s.Analyzed(1, 0, false, time.Microsecond)
	assert.NoError(t, s.Close())
}

func TestNewStatsd_InvalidAddress(t *testing.T) {
	_, err := NewStatsd("statsd-without-port", "pipecheck.", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid statsd address "statsd-without-port"`)
}

func TestNoop(t *testing.T) {
	var r Recorder = Noop{}
	r.Analyzed(1, 1, true, time.Second)
	assert.NoError(t, r.Close())
}
