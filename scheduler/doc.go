/*
Package scheduler 基于 queue.DeadlineQueue 实现的延时任务调度器。

任务通过 Schedule/ScheduleAt 提交，按照到期时间先后执行，到期时间相同的按照提交顺序执行。
调用方可以自己循环调用 RunNext，也可以通过 Start 启动一组 worker，Stop 时会等待剩余任务执行完。
*/
package scheduler
