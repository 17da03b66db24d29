package pkg

import "time"

// Clock 抽象当前时间，退款计算等逻辑通过它取时间，测试时注入固定时钟
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock 始终返回同一时刻
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
