package queue

import (
	"context"
)

// Comparator 用于比较两个元素的大小
// src < dst 返回 -1，src == dst 返回 0，src > dst 返回 1
type Comparator[T any] func(src T, dst T) int

type RealNumber interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func ComparatorRealNumber[T RealNumber](src T, dst T) int {
	if src < dst {
		return -1
	} else if src == dst {
		return 0
	}
	return 1
}

// PriorityQueue 基于小顶堆的优先队列，队首为 compare 意义下最小的元素
// 非并发安全，由上层负责加锁
type PriorityQueue[T any] struct {
	compare  Comparator[T]
	capacity int
	data     []T
}

// NewPriorityQueue 新建一个优先队列，capacity <= 0 时为无界队列
func NewPriorityQueue[T any](capacity int, compare Comparator[T]) *PriorityQueue[T] {
	sliceCap := capacity
	if sliceCap <= 0 {
		capacity = 0
		sliceCap = 64
	}
	return &PriorityQueue[T]{
		compare:  compare,
		capacity: capacity,
		data:     make([]T, 0, sliceCap),
	}
}

func (p *PriorityQueue[T]) Len() int {
	return len(p.data)
}

// Cap 无界队列返回 0
func (p *PriorityQueue[T]) Cap() int {
	return p.capacity
}

func (p *PriorityQueue[T]) isBoundless() bool {
	return p.capacity <= 0
}

func (p *PriorityQueue[T]) isFull() bool {
	return !p.isBoundless() && len(p.data) >= p.capacity
}

func (p *PriorityQueue[T]) isEmpty() bool {
	return len(p.data) == 0
}

func (p *PriorityQueue[T]) Peek() (T, error) {
	if p.isEmpty() {
		var t T
		return t, ErrEmptyQueue
	}
	return p.data[0], nil
}

func (p *PriorityQueue[T]) Enqueue(ctx context.Context, val T) error {
	if p.isFull() {
		return ErrOutOfCapacity
	}
	p.data = append(p.data, val)
	p.siftUp(len(p.data) - 1)
	return nil
}

func (p *PriorityQueue[T]) Dequeue(ctx context.Context) (T, error) {
	if p.isEmpty() {
		var t T
		return t, ErrEmptyQueue
	}
	last := len(p.data) - 1
	res := p.data[0]
	p.data[0] = p.data[last]
	// 为了释放内存，GC
	var t T
	p.data[last] = t
	p.data = p.data[:last]
	p.siftDown(0)
	return res, nil
}

func (p *PriorityQueue[T]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if p.compare(p.data[i], p.data[parent]) >= 0 {
			return
		}
		p.data[i], p.data[parent] = p.data[parent], p.data[i]
		i = parent
	}
}

func (p *PriorityQueue[T]) siftDown(i int) {
	n := len(p.data)
	for {
		minPos := i
		left, right := 2*i+1, 2*i+2
		if left < n && p.compare(p.data[left], p.data[minPos]) < 0 {
			minPos = left
		}
		if right < n && p.compare(p.data[right], p.data[minPos]) < 0 {
			minPos = right
		}
		if minPos == i {
			return
		}
		p.data[i], p.data[minPos] = p.data[minPos], p.data[i]
		i = minPos
	}
}
