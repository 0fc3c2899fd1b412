package scheduler

import (
	"context"
	"sync"
	"time"

	"deadlineq/internal/config"
	"deadlineq/queue"
	"deadlineq/syncx"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"
)

var (
	ErrStopped   = errors.New("deadlineq: 调度器已停止")
	ErrNilTask   = errors.New("deadlineq: 任务不能为空")
	errTaskPanic = errors.New("deadlineq: 任务 panic")
)

// Task 可以被调度执行的任务
type Task interface {
	Run(ctx context.Context) error
}

// TaskFunc 把函数适配为 Task
type TaskFunc func(ctx context.Context) error

func (f TaskFunc) Run(ctx context.Context) error {
	return f(ctx)
}

type scheduledTask struct {
	id      string
	task    Task
	readyAt time.Time
}

// Stats 调度器运行情况的快照
type Stats struct {
	Pending   int
	Succeeded int64
	Failed    int64
}

type Option func(s *Scheduler)

func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

func WithScope(scope tally.Scope) Option {
	return func(s *Scheduler) {
		s.scope = scope
	}
}

// Scheduler 延时任务调度器，任务按照到期时间先后执行，到期时间相同的按提交顺序执行
// 可以由调用方自己调用 RunNext 执行，也可以 Start 启动一组 worker
type Scheduler struct {
	cfg     Config
	tasks   *queue.DeadlineQueue[*scheduledTask]
	clock   clock.Clock
	logger  logrus.FieldLogger
	scope   tally.Scope
	metrics *Metrics

	// mu 保证 Start 和 Stop 互斥，Stop 之后不会再启动 worker
	mu       sync.Mutex
	started  bool
	stopOnce syncx.Once
	cancel   context.CancelFunc
	group    *errgroup.Group

	succeeded atomic.Int64
	failed    atomic.Int64
}

func New(cfg Config, opts ...Option) (*Scheduler, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid scheduler config")
	}
	s := &Scheduler{
		cfg:    cfg,
		clock:  clock.RealClock{},
		logger: logrus.StandardLogger(),
		scope:  tally.NoopScope,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = NewMetrics(s.scope)
	s.tasks = queue.New[*scheduledTask](cfg.Capacity,
		queue.WithClock(s.clock),
		queue.WithLogger(s.logger),
		queue.WithMetrics(queue.NewMetrics(s.scope)))
	return s, nil
}

// Schedule 提交一个 delay 之后才能执行的任务，返回任务 id
// 队列满时阻塞，直到有空位或者 ctx 结束
func (s *Scheduler) Schedule(ctx context.Context, task Task, delay time.Duration) (string, error) {
	return s.ScheduleAt(ctx, task, s.clock.Now().Add(delay))
}

// ScheduleAt 提交一个在 at 之后才能执行的任务
func (s *Scheduler) ScheduleAt(ctx context.Context, task Task, at time.Time) (string, error) {
	if task == nil {
		return "", ErrNilTask
	}
	st := &scheduledTask{
		id:      uuid.New().String(),
		task:    task,
		readyAt: at,
	}
	if err := s.tasks.Enqueue(ctx, st, at); err != nil {
		if errors.Is(err, queue.ErrQueueClosed) {
			return "", ErrStopped
		}
		return "", errors.Wrap(err, "schedule task")
	}
	s.metrics.scheduled.Inc(1)
	s.logger.WithFields(logrus.Fields{
		"task_id":  st.id,
		"ready_at": at,
	}).Debug("task scheduled")
	return st.id, nil
}

// RunNext 阻塞直到下一个任务到期，然后在当前 goroutine 中执行它
// 调度器已停止且没有剩余任务时返回 ErrStopped
func (s *Scheduler) RunNext(ctx context.Context) error {
	st, err := s.tasks.Dequeue(ctx)
	if err != nil {
		if errors.Is(err, queue.ErrQueueClosed) {
			return ErrStopped
		}
		return err
	}
	return s.run(ctx, st)
}

func (s *Scheduler) run(ctx context.Context, st *scheduledTask) error {
	logger := s.logger.WithField("task_id", st.id)
	start := s.clock.Now()
	err := safeRun(ctx, st.task)
	s.metrics.runLatency.Record(s.clock.Since(start))
	if err != nil {
		s.failed.Inc()
		s.metrics.failed.Inc(1)
		logger.WithError(err).Warn("task failed")
		return errors.Wrapf(err, "task %s", st.id)
	}
	s.succeeded.Inc()
	s.metrics.succeeded.Inc(1)
	logger.WithField("delay", start.Sub(st.readyAt)).Debug("task done")
	return nil
}

func safeRun(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(errTaskPanic, "%v", r)
		}
	}()
	return task.Run(ctx)
}

// Start 启动 cfg.Workers 个 worker，重复调用无效果
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tasks.Closed() {
		return ErrStopped
	}
	if s.started {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	group, gctx := errgroup.WithContext(ctx)
	for i := 0; i < s.cfg.Workers; i++ {
		worker := i
		group.Go(func() error {
			return s.work(gctx, worker)
		})
	}
	s.cancel = cancel
	s.group = group
	s.started = true
	s.logger.WithField("workers", s.cfg.Workers).Info("scheduler started")
	return nil
}

func (s *Scheduler) work(ctx context.Context, worker int) error {
	logger := s.logger.WithField("worker", worker)
	for {
		st, err := s.tasks.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, queue.ErrQueueClosed) {
				logger.Debug("worker exited, no task left")
				return nil
			}
			return err
		}
		// 任务失败已经记录过日志，worker 继续处理下一个
		_ = s.run(ctx, st)
	}
}

// Stop 不再接收新任务，等待 worker 执行完剩余的任务
// 超过 cfg.StopTimeout 后取消所有 worker 并立即返回，还没执行的任务被放弃
// 正在执行且不响应 ctx 的任务会在 Stop 返回后继续运行到结束
func (s *Scheduler) Stop() error {
	var err error
	_ = s.stopOnce.Do(func() error {
		err = s.stop()
		return nil
	})
	return err
}

func (s *Scheduler) stop() error {
	s.mu.Lock()
	_ = s.tasks.Close()
	started := s.started
	s.mu.Unlock()
	if !started {
		return nil
	}
	defer s.cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.group.Wait()
	}()

	var timeout <-chan time.Time
	if s.cfg.StopTimeout > 0 {
		timer := s.clock.NewTimer(s.cfg.StopTimeout)
		defer timer.Stop()
		timeout = timer.C()
	}

	select {
	case err := <-done:
		s.logger.Info("scheduler stopped")
		return err
	case <-timeout:
		s.cancel()
		abandoned := s.tasks.Len()
		s.logger.WithField("abandoned", abandoned).Warn("scheduler stop timed out")
		return errors.Wrapf(context.DeadlineExceeded, "stop scheduler, %d tasks abandoned", abandoned)
	}
}

// Pending 还在排队的任务数，包括未到期的
func (s *Scheduler) Pending() int {
	return s.tasks.Len()
}

func (s *Scheduler) Stats() Stats {
	return Stats{
		Pending:   s.tasks.Len(),
		Succeeded: s.succeeded.Load(),
		Failed:    s.failed.Load(),
	}
}
