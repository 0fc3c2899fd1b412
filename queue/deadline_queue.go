package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// RejectedError 入队失败时返回，元素会原样交还给调用方
type RejectedError[T any] struct {
	Item T
	// Err 为 ErrQueueClosed 或者 ctx.Err()
	Err error
}

func (r *RejectedError[T]) Error() string {
	return fmt.Sprintf("deadlineq: 元素未能入队: %v", r.Err)
}

func (r *RejectedError[T]) Unwrap() error {
	return r.Err
}

type entry[T any] struct {
	val     T
	readyAt time.Time
	// seq 入队序号，到期时间相同的元素按照入队顺序出队
	seq uint64
}

func compareEntry[T any](src *entry[T], dst *entry[T]) int {
	if src.readyAt.Before(dst.readyAt) {
		return -1
	} else if src.readyAt.After(dst.readyAt) {
		return 1
	}
	if src.seq < dst.seq {
		return -1
	} else if src.seq > dst.seq {
		return 1
	}
	return 0
}

// DeadlineQueue 有界、按到期时间排序、可关闭的阻塞队列
// 所有状态都由同一把锁保护，readCond 唤醒消费者，writeCond 唤醒生产者
type DeadlineQueue[T any] struct {
	mu       *sync.Mutex
	entries  *PriorityQueue[*entry[T]]
	seq      uint64
	closed   bool
	capacity int

	readCond  *cond
	writeCond *cond

	clock   clock.Clock
	metrics *Metrics
	logger  logrus.FieldLogger
}

// New 新建一个队列，当 capacity <= 0 时，表示无界
func New[T any](capacity int, opts ...Option) *DeadlineQueue[T] {
	if capacity < 0 {
		capacity = 0
	}
	o := newOptions(opts...)
	mu := &sync.Mutex{}
	return &DeadlineQueue[T]{
		mu:        mu,
		entries:   NewPriorityQueue[*entry[T]](capacity, compareEntry[T]),
		capacity:  capacity,
		readCond:  newCond(mu),
		writeCond: newCond(mu),
		clock:     o.clock,
		metrics:   o.metrics,
		logger:    o.logger,
	}
}

// Enqueue 入队操作，队列满时阻塞，直到有空位、队列关闭或者 ctx 结束
// 失败时返回 *RejectedError，元素不会被插入
func (d *DeadlineQueue[T]) Enqueue(ctx context.Context, val T, readyAt time.Time) error {
	if ctx.Err() != nil {
		return d.reject(val, ctx.Err())
	}
	d.mu.Lock()
	for {
		// 每次被唤醒之后都要重新检查，关闭之后不再接收新元素
		if d.closed {
			d.mu.Unlock()
			return d.reject(val, ErrQueueClosed)
		}
		e := &entry[T]{val: val, readyAt: readyAt, seq: d.seq}
		err := d.entries.Enqueue(ctx, e)
		switch err {
		case nil:
			d.seq++
			d.metrics.enqueued.Inc(1)
			d.metrics.length.Update(float64(d.entries.Len()))
			// 新元素可能是最早到期的，所有消费者都要重新看一眼队首
			d.readCond.broadcast()
			d.mu.Unlock()
			return nil
		case ErrOutOfCapacity:
			// 注意：里面会进行解锁操作，防止自己既在阻塞，又拿着锁不释放
			ch := d.writeCond.waitCh()
			select {
			case <-ctx.Done():
				return d.reject(val, ctx.Err())
			case <-ch:
				d.metrics.wakeups.Inc(1)
				d.mu.Lock()
			}
		default:
			d.mu.Unlock()
			return d.reject(val, err)
		}
	}
}

// EnqueueTimeout timeout <= 0 时一直等待
// 超时使用的是真实时间，和 WithClock 无关
func (d *DeadlineQueue[T]) EnqueueTimeout(val T, readyAt time.Time, timeout time.Duration) error {
	ctx, cancel := withTimeout(timeout)
	defer cancel()
	return d.Enqueue(ctx, val, readyAt)
}

// Dequeue 出队操作
// 1. 队列为空且已关闭，返回 ErrQueueClosed
// 2. 队列为空且未关闭，阻塞直到有新元素、队列关闭或者 ctx 结束
// 3. 有元素，看一眼队首元素的到期时间
// 3.1 已经到期，直接出队并且返回
// 3.2 还未到期，阻塞直到到期，或者被新元素、关闭唤醒
// 3.2.1 被唤醒之后重新取队首，因为可能来了更早到期的元素，或者队首已经被别人取走
// 4. 等待期间 ctx 结束，直接返回 ctx.Err()，不会取走任何元素
func (d *DeadlineQueue[T]) Dequeue(ctx context.Context) (T, error) {
	var zero T
	if ctx.Err() != nil {
		return zero, ctx.Err()
	}
	d.mu.Lock()
	for {
		head, err := d.entries.Peek()
		if err != nil {
			if d.closed {
				d.mu.Unlock()
				return zero, ErrQueueClosed
			}
			ch := d.readCond.waitCh()
			select {
			case <-ctx.Done():
				d.metrics.timeouts.Inc(1)
				return zero, ctx.Err()
			case <-ch:
				d.metrics.wakeups.Inc(1)
				d.mu.Lock()
			}
			continue
		}

		remaining := head.readyAt.Sub(d.clock.Now())
		if remaining <= 0 {
			e := d.pop()
			d.mu.Unlock()
			return e.val, nil
		}

		timer := d.clock.NewTimer(remaining)
		ch := d.readCond.waitCh()
		select {
		case <-ctx.Done():
			timer.Stop()
			d.metrics.timeouts.Inc(1)
			return zero, ctx.Err()
		case <-timer.C():
		case <-ch:
			// 说明此时有新元素进来了，或者队列被关闭，或者队首被取走
			timer.Stop()
		}
		d.metrics.wakeups.Inc(1)
		d.mu.Lock()
	}
}

// DequeueTimeout timeout <= 0 时一直等待
func (d *DeadlineQueue[T]) DequeueTimeout(timeout time.Duration) (T, error) {
	ctx, cancel := withTimeout(timeout)
	defer cancel()
	return d.Dequeue(ctx)
}

// TryDequeue 不阻塞，只有队首已经到期时才返回
func (d *DeadlineQueue[T]) TryDequeue() (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	head, err := d.entries.Peek()
	if err != nil || head.readyAt.After(d.clock.Now()) {
		var t T
		return t, false
	}
	return d.pop().val, true
}

// pop 必须在锁范围内调用，调用方已经确认队首到期
func (d *DeadlineQueue[T]) pop() *entry[T] {
	e, _ := d.entries.Dequeue(context.Background())
	d.metrics.dequeued.Inc(1)
	d.metrics.length.Update(float64(d.entries.Len()))
	if !e.readyAt.IsZero() {
		d.metrics.popDelay.Record(d.clock.Since(e.readyAt))
	}
	// 腾出了空位，唤醒生产者
	d.writeCond.broadcast()
	return e
}

// Len 元素个数，不区分是否到期
func (d *DeadlineQueue[T]) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.entries.Len()
}

// Cap 无界队列返回 0
func (d *DeadlineQueue[T]) Cap() int {
	return d.capacity
}

// Closed 队列是否已经关闭，关闭之后可能还有没取完的元素
func (d *DeadlineQueue[T]) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Close 关闭队列，可以重复调用
// 已有的元素不会被丢弃，消费者可以继续取到队列为空为止
func (d *DeadlineQueue[T]) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	// 生产者和消费者都要被唤醒，重新检查自己的退出条件
	d.readCond.broadcast()
	d.writeCond.broadcast()
	d.logger.WithField("remaining", d.entries.Len()).Debug("deadline queue closed")
	return nil
}

func (d *DeadlineQueue[T]) reject(val T, err error) error {
	d.metrics.rejected.Inc(1)
	return &RejectedError[T]{Item: val, Err: err}
}

func withTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}
