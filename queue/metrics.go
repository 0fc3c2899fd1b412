package queue

import (
	"github.com/uber-go/tally/v4"
)

// Metrics 队列相关的监控指标
type Metrics struct {
	length   tally.Gauge // 队列长度，包含还未到期的元素
	popDelay tally.Timer // 元素到期之后，过了多久才被取走

	enqueued tally.Counter
	dequeued tally.Counter
	rejected tally.Counter // 因为关闭或者超时而没有入队
	timeouts tally.Counter // Dequeue 因为 ctx 结束而返回
	wakeups  tally.Counter // 等待被唤醒的次数，用于确认没有空转
}

// NewMetrics 在 scope 下创建 queue 子 scope
func NewMetrics(scope tally.Scope) *Metrics {
	queueScope := scope.SubScope("queue")
	return &Metrics{
		length:   queueScope.Gauge("length"),
		popDelay: queueScope.Timer("pop_delay"),
		enqueued: queueScope.Counter("enqueued"),
		dequeued: queueScope.Counter("dequeued"),
		rejected: queueScope.Counter("rejected"),
		timeouts: queueScope.Counter("timeouts"),
		wakeups:  queueScope.Counter("wakeups"),
	}
}
