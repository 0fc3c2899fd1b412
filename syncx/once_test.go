package syncx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

var errStartFailed = errors.New("启动失败")

func TestOnce(t *testing.T) {
	var (
		once  Once
		calls atomic.Int32
	)
	c := make(chan bool)
	const N = 10
	for i := 0; i < N; i++ {
		go func() {
			err := once.Do(func() error {
				calls.Inc()
				return nil
			})
			assert.NoError(t, err)
			c <- true
		}()
	}
	for i := 0; i < N; i++ {
		<-c
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, once.Done())
}

func TestOnce_FuncError(t *testing.T) {
	var (
		once  Once
		calls atomic.Int32
	)
	c := make(chan bool)
	const N = 10
	for i := 0; i < N; i++ {
		go func() {
			err := once.Do(func() error {
				calls.Inc()
				return errStartFailed
			})
			require.EqualError(t, err, errStartFailed.Error())
			c <- true
		}()
	}
	for i := 0; i < N; i++ {
		<-c
	}
	assert.Equal(t, int32(N), calls.Load())
	assert.False(t, once.Done())

	// 失败之后可以重试
	require.NoError(t, once.Do(func() error { return nil }))
	assert.True(t, once.Done())
}
