package scheduler

import (
	"github.com/uber-go/tally/v4"
)

// Metrics 调度器的监控指标
type Metrics struct {
	scheduled  tally.Counter
	succeeded  tally.Counter
	failed     tally.Counter
	runLatency tally.Timer
}

func NewMetrics(scope tally.Scope) *Metrics {
	s := scope.SubScope("scheduler")
	return &Metrics{
		scheduled:  s.Counter("scheduled"),
		succeeded:  s.Counter("succeeded"),
		failed:     s.Counter("failed"),
		runLatency: s.Timer("run_latency"),
	}
}
