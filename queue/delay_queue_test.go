package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

type delayElem struct {
	deadline time.Time
	val      int
}

func (d delayElem) Deadline() time.Time {
	return d.deadline
}

func TestDelayQueue(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fc := testingclock.NewFakeClock(start)
	q := NewDelayQueue[delayElem](3, WithClock(fc))
	ctx := context.Background()

	for _, e := range []delayElem{
		{deadline: start.Add(3 * time.Second), val: 3},
		{deadline: start.Add(time.Second), val: 1},
		{deadline: start.Add(2 * time.Second), val: 2},
	} {
		require.NoError(t, q.Enqueue(ctx, e))
	}
	assert.Equal(t, 3, q.Len())

	timeoutCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	_, err := q.Dequeue(timeoutCtx)
	cancel()
	assert.Equal(t, context.DeadlineExceeded, err)

	fc.Step(3 * time.Second)
	for _, want := range []int{1, 2, 3} {
		e, err := q.Dequeue(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, e.val)
	}
	require.NoError(t, q.Close())
	_, err = q.Dequeue(ctx)
	assert.Equal(t, ErrQueueClosed, err)
}
