package scheduler

import (
	"time"

	"deadlineq/internal/config"
)

const (
	// DefaultWorkers Start 时启动的 worker 数量
	DefaultWorkers     = 4
	DefaultStopTimeout = 30 * time.Second
)

// Config 调度器配置
type Config struct {
	// Capacity 最多可以排队的任务数，0 表示不限制
	Capacity int `yaml:"capacity" validate:"min=0"`
	Workers  int `yaml:"workers" validate:"min=1"`
	// StopTimeout Stop 时等待剩余任务执行完的最长时间，<= 0 表示一直等
	StopTimeout time.Duration `yaml:"stop_timeout"`
}

func DefaultConfig() Config {
	return Config{
		Workers:     DefaultWorkers,
		StopTimeout: DefaultStopTimeout,
	}
}

// LoadConfig 在默认配置的基础上加载 yaml 文件
func LoadConfig(files ...string) (Config, error) {
	cfg := DefaultConfig()
	if err := config.Parse(&cfg, files...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
