package handlers

import "time"

// noopMetrics satisfies services.MetricsRecorderInterface for handler tests
type noopMetrics struct{}

func (noopMetrics) IncrementCounter(name string, tags map[string]string) {}

func (noopMetrics) RecordProcessingTime(name string, duration time.Duration) {}

func (noopMetrics) RecordGauge(name string, value float64, tags map[string]string) {}
