package queue_test

import (
	"context"
	"fmt"
	"time"

	"deadlineq/queue"
)

func ExampleNew() {
	q := queue.New[string](2)
	ctx := context.Background()
	now := time.Now()

	_ = q.Enqueue(ctx, "later", now.Add(-time.Second))
	_ = q.Enqueue(ctx, "earliest", now.Add(-2*time.Second))
	_ = q.Close()

	for {
		v, err := q.Dequeue(ctx)
		if err != nil {
			fmt.Println(err == queue.ErrQueueClosed)
			break
		}
		fmt.Println(v)
	}

	// Output:
	// earliest
	// later
	// true
}

func ExampleChannel() {
	c := queue.NewChannel[int](3)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		_ = c.Send(ctx, i)
	}
	c.Shutdown()
	fmt.Println(c.Send(ctx, 4) != nil)
	for {
		v, err := c.Recv(ctx)
		if err != nil {
			break
		}
		fmt.Println(v)
	}

	// Output:
	// true
	// 1
	// 2
	// 3
}
