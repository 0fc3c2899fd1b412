/*
Package queue 实现了有界、按到期时间排序、可关闭的并发阻塞队列。

DeadlineQueue 中的每个元素都带有一个到期时间，Dequeue 只会取出已经到期的元素，
到期时间相同的按照入队顺序取出。队列满时 Enqueue 阻塞，队列为空或者队首未到期时 Dequeue 阻塞，
所有等待都可以通过 ctx 设置超时。Close 之后不再接收新元素，已有的元素仍然可以被取完。

DelayQueue 和 Channel 是在 DeadlineQueue 之上的两种常用形式：
前者由元素自己提供到期时间，后者所有元素立即可取，即先进先出的多生产者多消费者通道。
*/
package queue
