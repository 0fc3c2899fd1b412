package queue

import (
	"context"
	"deadlineq/internal/errs"
	"sync"
)

var (
	ErrQueueClosed   = errs.ErrQueueClosed
	ErrOutOfCapacity = errs.ErrOutOfCapacity
	ErrEmptyQueue    = errs.ErrEmptyQueue
)

type Queue[T any] interface {
	Enqueue(ctx context.Context, val T) error
	Dequeue(ctx context.Context) (T, error)
}

// cond 基于 channel 的条件变量，和 sync.Cond 不同的是，等待可以和 ctx、定时器一起 select
type cond struct {
	signal chan struct{}
	l      sync.Locker
}

func newCond(l sync.Locker) *cond {
	return &cond{
		l:      l,
		signal: make(chan struct{}),
	}
}

// waitCh 返回一个 channel，用于监听广播信号
// 必须在锁范围内使用，调用后锁会被释放
// 被唤醒后需要调用方自己重新加锁，并重新校验等待条件
func (c *cond) waitCh() <-chan struct{} {
	res := c.signal
	c.l.Unlock()
	return res
}

// broadcast 唤醒所有等待者
// 必须加锁之后才能调用这个方法，不会释放锁
func (c *cond) broadcast() {
	old := c.signal
	c.signal = make(chan struct{})
	close(old)
}
