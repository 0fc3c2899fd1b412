package queue

import (
	"github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"
	"k8s.io/utils/clock"
)

type options struct {
	clock   clock.Clock
	metrics *Metrics
	logger  logrus.FieldLogger
}

// Option option模式
type Option func(opts *options)

func newOptions(opts ...Option) *options {
	res := &options{
		clock:  clock.RealClock{},
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(res)
	}
	if res.metrics == nil {
		res.metrics = NewMetrics(tally.NoopScope)
	}
	return res
}

// WithClock 指定时间源，测试时可以传入 fake clock
func WithClock(c clock.Clock) Option {
	return func(opts *options) {
		opts.clock = c
	}
}

func WithMetrics(m *Metrics) Option {
	return func(opts *options) {
		opts.metrics = m
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(opts *options) {
		opts.logger = l
	}
}
