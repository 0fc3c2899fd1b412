package syncx

import (
	"sync"

	"go.uber.org/atomic"
)

// Once 和 sync.Once 不同的是，f 返回 error 时不算执行过，下次调用会重试
type Once struct {
	m    sync.Mutex
	done atomic.Bool
}

func (o *Once) Do(f func() error) error {
	if o.done.Load() {
		return nil
	}
	return o.slowDo(f)
}

// Done 是否已经成功执行过
func (o *Once) Done() bool {
	return o.done.Load()
}

func (o *Once) slowDo(f func() error) error {
	o.m.Lock()
	defer o.m.Unlock()
	if o.done.Load() {
		return nil
	}
	if err := f(); err != nil {
		return err
	}
	o.done.Store(true)
	return nil
}
