package queue

import (
	"context"
	"time"
)

var _ Queue[any] = &Channel[any]{}

// Channel 多生产者多消费者的有界通道，先进先出
// 关闭之后不能再发送，但是已经发送的元素仍然可以被接收
type Channel[T any] struct {
	q *DeadlineQueue[T]
}

// NewChannel capacity <= 0 时为无界通道
func NewChannel[T any](capacity int, opts ...Option) *Channel[T] {
	return &Channel[T]{
		q: New[T](capacity, opts...),
	}
}

// Send 通道满时阻塞，关闭（包括等待期间被关闭）时返回 ErrQueueClosed
func (c *Channel[T]) Send(ctx context.Context, val T) error {
	// 所有元素的到期时间相同，顺序完全由入队序号决定
	return c.q.Enqueue(ctx, val, time.Time{})
}

// Recv 通道为空时阻塞，关闭且取空之后返回 ErrQueueClosed
func (c *Channel[T]) Recv(ctx context.Context) (T, error) {
	return c.q.Dequeue(ctx)
}

func (c *Channel[T]) TryRecv() (T, bool) {
	return c.q.TryDequeue()
}

func (c *Channel[T]) Enqueue(ctx context.Context, val T) error {
	return c.Send(ctx, val)
}

func (c *Channel[T]) Dequeue(ctx context.Context) (T, error) {
	return c.Recv(ctx)
}

// Shutdown 关闭通道，唤醒所有阻塞的发送者和接收者
func (c *Channel[T]) Shutdown() {
	_ = c.q.Close()
}

func (c *Channel[T]) Len() int {
	return c.q.Len()
}

func (c *Channel[T]) Cap() int {
	return c.q.Cap()
}
