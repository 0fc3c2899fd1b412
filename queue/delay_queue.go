package queue

import (
	"context"
	"time"
)

var _ Queue[Delayable] = &DelayQueue[Delayable]{}

type Delayable interface {
	// Deadline 元素可以被取出的时间
	Deadline() time.Time
}

// DelayQueue 元素自己携带到期时间的延时队列
type DelayQueue[T Delayable] struct {
	q *DeadlineQueue[T]
}

// NewDelayQueue 新建一个延时队列，当size<=0时，表示无界
func NewDelayQueue[T Delayable](size int, opts ...Option) *DelayQueue[T] {
	return &DelayQueue[T]{
		q: New[T](size, opts...),
	}
}

// Enqueue 入队操作，到期时间取 val.Deadline()
func (d *DelayQueue[T]) Enqueue(ctx context.Context, val T) error {
	return d.q.Enqueue(ctx, val, val.Deadline())
}

// Dequeue 出队操作，会一直阻塞到队首元素到期
func (d *DelayQueue[T]) Dequeue(ctx context.Context) (T, error) {
	return d.q.Dequeue(ctx)
}

func (d *DelayQueue[T]) Len() int {
	return d.q.Len()
}

func (d *DelayQueue[T]) Close() error {
	return d.q.Close()
}
